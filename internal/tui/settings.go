package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/weeknote/internal/config"
	"github.com/gerunddev/weeknote/internal/dateformat"
	"github.com/gerunddev/weeknote/internal/styles"
)

// Focus positions in the settings panel
const (
	focusFolder = iota
	focusDateFormat
	focusBrowse
	focusCount
)

// SaveFunc persists a changed setting. key is the config key that changed.
type SaveFunc func(cfg *config.Config, key string) error

// FolderLister enumerates the vault folders offered by the picker
type FolderLister func() ([]string, error)

// SettingsModel edits the folder and date format settings. Every edit is
// saved immediately.
type SettingsModel struct {
	cfg         *config.Config
	save        SaveFunc
	listFolders FolderLister
	now         func() time.Time

	inputs [2]textinput.Model
	focus  int
	picker *PickerModel
	err    error
}

// NewSettings creates the settings panel for cfg
func NewSettings(cfg *config.Config, save SaveFunc, listFolders FolderLister, now func() time.Time) SettingsModel {
	folder := textinput.New()
	folder.Placeholder = "Example: " + config.DefaultFolder
	folder.CharLimit = 512
	folder.Width = 50
	folder.SetValue(cfg.Folder)
	folder.Focus()

	format := textinput.New()
	format.Placeholder = "Example: " + config.DefaultDateFormat
	format.CharLimit = 128
	format.Width = 50
	format.SetValue(cfg.DateFormat)

	if now == nil {
		now = time.Now
	}

	return SettingsModel{
		cfg:         cfg,
		save:        save,
		listFolders: listFolders,
		now:         now,
		inputs:      [2]textinput.Model{folder, format},
		focus:       focusFolder,
	}
}

func (m SettingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.picker != nil {
		return m.updatePicker(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % focusCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
		case "enter":
			if m.focus == focusBrowse {
				return m, m.openPicker()
			}
			return m, m.setFocus(m.focus + 1)
		}
	}

	if m.focus == focusBrowse {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if value := m.inputs[m.focus].Value(); value != before {
		m.apply(m.focus, value)
	}
	return m, cmd
}

func (m SettingsModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FolderSelectedMsg:
		m.picker = nil
		m.inputs[focusFolder].SetValue(msg.Path)
		m.inputs[focusFolder].CursorEnd()
		m.apply(focusFolder, msg.Path)
		return m, m.setFocus(focusFolder)
	case PickerClosedMsg:
		m.picker = nil
		return m, nil
	}

	picker, cmd := m.picker.Update(msg)
	m.picker = &picker
	return m, cmd
}

// openPicker lists the vault folders afresh and shows the picker
func (m *SettingsModel) openPicker() tea.Cmd {
	folders, err := m.listFolders()
	if err != nil {
		m.err = err
		return nil
	}

	picker := NewPicker(folders)
	m.picker = &picker
	return picker.Init()
}

func (m *SettingsModel) setFocus(focus int) tea.Cmd {
	if focus >= focusCount {
		focus = focusBrowse
	}
	m.focus = focus

	var cmd tea.Cmd
	for i := range m.inputs {
		if i == focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// apply writes an edited field into the config and saves it
func (m *SettingsModel) apply(field int, value string) {
	key := "folder"
	if field == focusDateFormat {
		key = "date_format"
		m.cfg.DateFormat = value
	} else {
		m.cfg.Folder = value
	}
	m.err = m.save(m.cfg, key)
}

// Config returns the settings being edited
func (m SettingsModel) Config() *config.Config {
	return m.cfg
}

// PickerOpen reports whether the folder picker is showing
func (m SettingsModel) PickerOpen() bool {
	return m.picker != nil
}

func (m SettingsModel) View() string {
	if m.picker != nil {
		return m.picker.View()
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Weekly Note Opener Settings"))
	b.WriteString("\n\n")

	m.field(&b, focusFolder, "Weekly Notes Folder", "Path to the folder where weekly notes are stored.")

	browse := styles.ButtonStyle
	if m.focus == focusBrowse {
		browse = styles.ActiveButtonStyle
	}
	b.WriteString(browse.Render("Browse folders"))
	b.WriteString("\n\n")

	m.field(&b, focusDateFormat, "Date Format", "Moment.js format for the weekly note filename.")

	stem := dateformat.FormatWeek(m.now(), m.cfg.DateFormat, m.cfg.WeekRule())
	b.WriteString(styles.DimStyle.Render("Today's note: "))
	b.WriteString(styles.HighlightStyle.Render(stem + ".md"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.HelpStyle.Render("tab next • shift+tab previous • enter browse • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m SettingsModel) field(b *strings.Builder, idx int, name, desc string) {
	label := styles.LabelStyle.Render(name)
	if m.focus == idx {
		label = styles.FocusedStyle.Bold(true).Render(name)
	}
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(desc))
	b.WriteString("\n")
	b.WriteString(m.inputs[idx].View())
	b.WriteString("\n\n")
}

// RunSettings runs the settings panel until the user quits
func RunSettings(m SettingsModel) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
