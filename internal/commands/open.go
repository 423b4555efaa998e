package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/gerunddev/weeknote/internal/config"
	"github.com/gerunddev/weeknote/internal/dateformat"
	"github.com/gerunddev/weeknote/internal/diff"
	"github.com/gerunddev/weeknote/internal/note"
	"github.com/gerunddev/weeknote/internal/styles"
)

// Open opens this week's note, creating it first if needed
func Open() {
	e := mustSetup()
	defer e.cleanup()

	st := loadState(e.log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := e.opener(st).Open(ctx, e.settings())

	if res != nil && res.Created {
		if serr := st.Save(config.StateFilePath()); serr != nil {
			e.log.StateError("save", serr)
		}
	}

	if err != nil {
		e.log.Error("open failed", "error", err)
		os.Exit(1)
	}
}

// Path prints the vault path of this week's note. With --abs it prints the
// filesystem path instead.
func Path(args []string) {
	e := mustSetup()
	defer e.cleanup()

	_, _, path := e.settings().Resolve(time.Now())

	if hasFlag(args, "--abs") {
		abs, err := e.vault.Abs(path)
		if err != nil {
			fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
			os.Exit(1)
		}
		path = abs
	}

	fmt.Println(path)
}

// Status shows the settings and what the opener would do right now
func Status() {
	e := mustSetup()
	defer e.cleanup()

	st := loadState(e.log)
	_, stem, path := e.settings().Resolve(time.Now())

	fmt.Println(styles.TitleStyle.Render("Weekly Note Status"))
	fmt.Println()

	var rows []string
	row := func(label, value string) {
		rows = append(rows, styles.LabelStyle.Render(fmt.Sprintf("%-12s", label))+" "+value)
	}

	row("Vault", e.cfg.Vault)
	row("Folder", e.cfg.Folder)
	row("Date format", e.cfg.DateFormat)
	row("Week start", e.cfg.WeekStart)
	row("Editor", fmt.Sprint(e.editor()))
	row("Note", styles.HighlightStyle.Render(stem+".md"))
	row("Path", path)
	fmt.Println(styles.PanelStyle.Render(strings.Join(rows, "\n")))
	fmt.Println()

	entry, err := e.vault.Lookup(path)
	switch {
	case err != nil:
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
	case entry == nil:
		fmt.Println(styles.WarningStyle.Render("○ Not created yet"))
	case !entry.IsFile():
		fmt.Println(styles.WarningStyle.Render("! A folder exists at the note path"))
	default:
		fmt.Println(styles.SuccessStyle.Render("✓ Exists"))
		abs, err := e.vault.Abs(path)
		if err != nil {
			break
		}
		if st.Tracked(path) {
			if changed, err := st.HasChanged(path, abs); err == nil && changed {
				fmt.Println(styles.DimStyle.Render("  Edited since it was created"))
			} else if err == nil {
				fmt.Println(styles.DimStyle.Render("  Unchanged since it was created"))
			}
		}
		if content, err := os.ReadFile(abs); err == nil {
			for _, line := range noteDetails(string(content)) {
				fmt.Println(styles.DimStyle.Render("  " + line))
			}
		}
	}

	if created, at, ok := LastCreated(e.cfg.LogFile, 200); ok {
		when := "unknown time"
		if !at.IsZero() {
			when = dateformat.Format(at, "ddd MMM D HH:mm")
		}
		fmt.Println()
		fmt.Println(styles.DimStyle.Render(fmt.Sprintf("Last created: %s (%s)", created, when)))
	}
}

// noteDetails summarizes a note for status: its front-matter id, section
// titles and list item count
func noteDetails(content string) []string {
	var lines []string
	if fm, err := note.ParseFrontMatter(content); err == nil && fm != nil && fm.ID != "" {
		lines = append(lines, "Note id: "+fm.ID)
	}

	o := note.ParseOutline(content)
	if sections := o.Sections(); len(sections) > 0 {
		lines = append(lines, "Sections: "+strings.Join(sections, ", "))
	}
	return append(lines, fmt.Sprintf("%d list items", o.Items))
}

// Show renders this week's note in the terminal
func Show() {
	e := mustSetup()
	defer e.cleanup()

	_, _, path := e.settings().Resolve(time.Now())

	entry, err := e.vault.Lookup(path)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}
	if !entry.IsFile() {
		fmt.Println(styles.DimStyle.Render("No note for this week yet. Run 'weeknote' to create it."))
		return
	}

	abs, err := e.vault.Abs(path)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to read note: " + err.Error()))
		os.Exit(1)
	}

	fmt.Print(Render(string(content)))
}

// Diff shows what was written in this week's note since it was created
func Diff() {
	e := mustSetup()
	defer e.cleanup()

	st := loadState(e.log)
	_, stem, path := e.settings().Resolve(time.Now())

	ns, ok := st.Notes[path]
	if !ok {
		fmt.Println(styles.DimStyle.Render("This week's note was not created by weeknote"))
		return
	}

	abs, err := e.vault.Abs(path)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to read note: " + err.Error()))
		os.Exit(1)
	}

	unified := diff.Unified(stem+".md", ns.Initial, string(content))
	if unified == "" {
		fmt.Println(styles.DimStyle.Render("No changes since " + dateformat.Format(ns.Created.Local(), "dddd, MMMM Do [at] HH:mm")))
		return
	}

	fmt.Print(diff.Render(unified))
}

// Render formats a note for the terminal. Front matter is dropped and the
// raw markdown is returned if rendering fails.
func Render(content string) string {
	body := note.StripFrontMatter(content)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return body
	}

	rendered, err := renderer.Render(body)
	if err != nil {
		return body
	}

	return rendered
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
