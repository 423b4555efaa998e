package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/weeknote/internal/commands"
	"github.com/gerunddev/weeknote/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		commands.Open()
		return
	}

	command := os.Args[1]

	switch command {
	case "open":
		commands.Open()
	case "path":
		commands.Path(os.Args[2:])
	case "settings":
		commands.Settings()
	case "set":
		commands.Set(os.Args[2:])
	case "pick":
		commands.Pick()
	case "folders":
		commands.Folders()
	case "status":
		commands.Status()
	case "show":
		commands.Show()
	case "diff":
		commands.Diff()
	case "version", "-v", "--version":
		fmt.Printf("weeknote v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`weeknote - Open this week's note in your vault

Usage:
  weeknote [command] [options]

Commands:
  open        Open this week's note, creating it if needed (default)
  path        Print the vault path of this week's note (--abs for the file path)
  settings    Edit the notes folder and date format
  set         Change one setting: folder, date-format or week-start
  pick        Choose the notes folder with a fuzzy folder picker
  folders     List every folder in the vault
  status      Show settings and whether this week's note exists
  show        Render this week's note in the terminal
  diff        Show what changed in this week's note since it was created
  version     Show version information
  help        Show this help message

Examples:
  weeknote
  weeknote path --abs
  weeknote set folder "2 - areas/journals/weekly"
  weeknote set date-format "gggg-[W]ww"
  weeknote set week-start monday
  weeknote pick
  weeknote show

Configuration:
  Config file: %s
  State file:  %s
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
