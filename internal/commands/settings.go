package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/gerunddev/weeknote/internal/styles"
	"github.com/gerunddev/weeknote/internal/tui"
)

// Settings runs the interactive settings panel
func Settings() {
	e := mustSetup()
	defer e.cleanup()

	m := tui.NewSettings(e.cfg, saver(e.log), e.vault.Folders, time.Now)
	if err := tui.RunSettings(m); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}

// Set changes one setting from the command line
func Set(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: weeknote set <folder|date-format|week-start> <value>")
		os.Exit(1)
	}

	e := mustSetup()
	defer e.cleanup()

	key, err := ApplySetting(e.cfg, args[0], args[1])
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	if err := saver(e.log)(e.cfg, key); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to save config: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("✓ %s set to %q", key, settingValue(e.cfg, key))))
	if key != "folder" {
		stem := e.settings().Stem(time.Now())
		fmt.Println(styles.DimStyle.Render("  This week's note: " + stem + ".md"))
	}
}

// Pick chooses the notes folder with the fuzzy folder picker
func Pick() {
	e := mustSetup()
	defer e.cleanup()

	folders, err := e.vault.Folders()
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to list folders: " + err.Error()))
		os.Exit(1)
	}

	path, ok, err := tui.RunPicker(folders)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
	if !ok {
		fmt.Println(styles.DimStyle.Render("No folder selected"))
		return
	}

	e.cfg.Folder = path
	if err := saver(e.log)(e.cfg, "folder"); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to save config: " + err.Error()))
		os.Exit(1)
	}
	fmt.Println(styles.SuccessStyle.Render("✓ Weekly notes folder set to " + path))
}

// Folders lists every folder in the vault
func Folders() {
	e := mustSetup()
	defer e.cleanup()

	folders, err := e.vault.Folders()
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to list folders: " + err.Error()))
		os.Exit(1)
	}

	for _, f := range folders {
		fmt.Println(f)
	}
}
