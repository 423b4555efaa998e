package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	Red     = "#FF6188" // Errors
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights, fuzzy matches
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Focused inputs
	Magenta = "#FF6188" // Titles

	Comment = "#727072" // Dim text, help
	Border  = "#5B595C"
)

// Notice styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
)

// Settings panel and picker styles
var (
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Foreground))

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))

	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Comment)).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border))

	ActiveButtonStyle = ButtonStyle.
				Foreground(lipgloss.Color(Background)).
				Background(lipgloss.Color(Cyan))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Background)).
			Background(lipgloss.Color(Yellow))

	MatchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Yellow)).
			Underline(true)

	NormalTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Foreground))

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)
)
