package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/codecvt"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Width(10)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(12)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxRowBytes caps the bytes shown per row in the table view.
const maxRowBytes = 24

type row struct {
	enc  encoding
	out  []byte
	text string
	err  error
}

type interactiveModel struct {
	input    textinput.Model
	rows     []row
	selected int
	state    modelState
}

type modelState int

const (
	stateTable modelState = iota
	stateDetail
)

func newInteractiveModel(initial string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type some text"
	ti.Prompt = "text: "
	ti.Width = 60
	ti.SetValue(initial)
	ti.Focus()

	m := &interactiveModel{input: ti, state: stateTable}
	m.refresh()
	return m
}

// refresh re-encodes the current input into every encoding.
func (m *interactiveModel) refresh() {
	text := codecvt.UTF8(m.input.Value())
	m.rows = m.rows[:0]
	for _, enc := range encodings {
		r := row{enc: enc}
		r.out, r.err = enc.encode(text)
		if r.err == nil {
			var back codecvt.UTF8
			back, r.err = enc.decode(r.out)
			r.text = string(back)
		}
		m.rows = append(m.rows, r)
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			if m.state == stateDetail && key.String() == "esc" {
				m.state = stateTable
				return m, nil
			}
			return m, tea.Quit

		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateTable {
				m.state = stateDetail
			} else {
				m.state = stateTable
			}
			return m, nil
		}
	}

	if m.state != stateTable {
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("codecvt"))
	b.WriteString(fmt.Sprintf(" backend=%s narrow=%s\n\n", codecvt.Backend(), codecvt.NarrowEncoding()))

	switch m.state {
	case stateTable:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		for i, r := range m.rows {
			line := nameStyle.Render(r.enc.name) + countStyle.Render(m.count(r)) + m.preview(r)
			if i == m.selected {
				cursor := selectedStyle.Render("> ")
				b.WriteString(cursor + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to re-encode • ↑/↓ select • enter details • esc quit"))

	case stateDetail:
		r := m.rows[m.selected]
		b.WriteString(fmt.Sprintf("%s  %s\n\n", nameStyle.Render(r.enc.name), countStyle.Render(m.count(r))))
		if r.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", r.err)))
		} else {
			b.WriteString(resultStyle.Render(units(r.out, unitWidth(r.enc))))
			b.WriteString("\n\n")
			b.WriteString(fmt.Sprintf("decodes to %q", r.text))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back • ctrl+c quit"))
	}

	return b.String()
}

func (m *interactiveModel) count(r row) string {
	if r.err != nil {
		return "-"
	}
	w := unitWidth(r.enc)
	return fmt.Sprintf("%d units", len(r.out)/w)
}

func (m *interactiveModel) preview(r row) string {
	if r.err != nil {
		return errorStyle.Render(r.err.Error())
	}
	out := r.out
	suffix := ""
	if len(out) > maxRowBytes {
		out = out[:maxRowBytes]
		suffix = " …"
	}
	return resultStyle.Render(units(out, unitWidth(r.enc)) + suffix)
}

func unitWidth(e encoding) int {
	switch e.kind {
	case kindUTF16:
		return 2
	case kindUTF32:
		return 4
	case kindWide:
		return len(codecvt.Wide{0}.Bytes())
	default:
		return 1
	}
}

// units formats raw bytes as hex grouped by code unit width.
func units(raw []byte, width int) string {
	var b strings.Builder
	for i := 0; i < len(raw); i += width {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := min(i+width, len(raw))
		fmt.Fprintf(&b, "%X", raw[i:end])
	}
	return b.String()
}

func runInteractive(initial string) error {
	p := tea.NewProgram(newInteractiveModel(initial), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
