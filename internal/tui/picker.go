package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/weeknote/internal/styles"
	"github.com/sahilm/fuzzy"
)

const pickerRows = 10

// FolderSelectedMsg is sent when a folder is chosen in the picker
type FolderSelectedMsg struct {
	Path string
}

// PickerClosedMsg is sent when the picker is dismissed without a choice
type PickerClosedMsg struct{}

// suggestion is a folder path with the byte offsets that matched the query
type suggestion struct {
	path    string
	matched []int
}

// PickerModel is a fuzzy search over vault folders
type PickerModel struct {
	input       textinput.Model
	folders     []string
	suggestions []suggestion
	cursor      int
	rows        int
}

// NewPicker creates a picker over folders
func NewPicker(folders []string) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type a folder name"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	m := PickerModel{
		input:   ti,
		folders: folders,
		rows:    pickerRows,
	}
	m.filter()
	return m
}

func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles picker input. The returned command carries
// FolderSelectedMsg or PickerClosedMsg once the user decides.
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rows = min(max(msg.Height-8, 1), pickerRows)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, func() tea.Msg { return PickerClosedMsg{} }
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.suggestions)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			path, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return FolderSelectedMsg{Path: path} }
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

// Selected returns the highlighted folder
func (m PickerModel) Selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.suggestions) {
		return "", false
	}
	return m.suggestions[m.cursor].path, true
}

// Matches returns the folders matching the current query, best first
func (m PickerModel) Matches() []string {
	out := make([]string, len(m.suggestions))
	for i, s := range m.suggestions {
		out[i] = s.path
	}
	return out
}

// filter recomputes suggestions for the current query. An empty query
// lists every folder in traversal order.
func (m *PickerModel) filter() {
	m.cursor = 0
	query := m.input.Value()

	if query == "" {
		m.suggestions = make([]suggestion, len(m.folders))
		for i, f := range m.folders {
			m.suggestions[i] = suggestion{path: f}
		}
		return
	}

	matches := fuzzy.Find(query, m.folders)
	m.suggestions = make([]suggestion, len(matches))
	for i, match := range matches {
		m.suggestions[i] = suggestion{path: match.Str, matched: match.MatchedIndexes}
	}
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Choose a folder"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.suggestions) == 0 {
		b.WriteString(styles.DimStyle.Render("  No matching folders"))
		b.WriteString("\n")
	}

	// Keep the cursor inside the visible window
	start := 0
	if m.cursor >= m.rows {
		start = m.cursor - m.rows + 1
	}
	end := start + m.rows
	if end > len(m.suggestions) {
		end = len(m.suggestions)
	}

	for i := start; i < end; i++ {
		s := m.suggestions[i]
		if i == m.cursor {
			b.WriteString(styles.SelectedStyle.Render("› " + s.path))
		} else {
			b.WriteString("  " + highlight(s))
		}
		b.WriteString("\n")
	}

	if hidden := len(m.suggestions) - end; hidden > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  … %d more", hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func highlight(s suggestion) string {
	if len(s.matched) == 0 {
		return styles.NormalTextStyle.Render(s.path)
	}

	hit := make(map[int]bool, len(s.matched))
	for _, idx := range s.matched {
		hit[idx] = true
	}

	var b strings.Builder
	for i, r := range s.path {
		if hit[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(styles.NormalTextStyle.Render(string(r)))
		}
	}
	return b.String()
}

// pickerProgram runs a picker on its own and remembers the choice
type pickerProgram struct {
	picker   PickerModel
	selected string
	chosen   bool
}

func (p pickerProgram) Init() tea.Cmd {
	return p.picker.Init()
}

func (p pickerProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FolderSelectedMsg:
		p.selected = msg.Path
		p.chosen = true
		return p, tea.Quit
	case PickerClosedMsg:
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)
	return p, cmd
}

func (p pickerProgram) View() string {
	if p.chosen {
		return ""
	}
	return p.picker.View()
}

// RunPicker shows the picker and returns the chosen folder. ok is false
// when the user cancelled.
func RunPicker(folders []string) (path string, ok bool, err error) {
	final, err := tea.NewProgram(pickerProgram{picker: NewPicker(folders)}).Run()
	if err != nil {
		return "", false, err
	}
	p := final.(pickerProgram)
	return p.selected, p.chosen, nil
}
