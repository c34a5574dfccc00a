// Package gameprompt is the overlay that asks for a game id to load.
package gameprompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/trolleydash/tui/shared"
)

const maxRecent = 5

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionClose
	ActionLoad
)

type KeyResult struct {
	Action ActionKind
	GameID string
}

type Model struct {
	input  textinput.Model
	recent []string
	cursor int // -1 while typing

	width  int
	height int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "game id..."
	ti.CharLimit = 128
	ti.Prompt = "› "
	return Model{input: ti, cursor: -1}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Open resets the prompt with current as its initial value.
func (m *Model) Open(current string) {
	m.input.SetValue(current)
	m.input.CursorEnd()
	m.input.Focus()
	m.cursor = -1
}

// Remember records a loaded game id at the front of the recent list.
func (m *Model) Remember(id string) {
	if id == "" {
		return
	}
	out := []string{id}
	for _, r := range m.recent {
		if r != id && len(out) < maxRecent {
			out = append(out, r)
		}
	}
	m.recent = out
}

func (m Model) Recent() []string { return m.recent }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// HandleKey consumes navigation and submit keys. Anything it leaves as
// ActionNone should also go to Update so the text input sees it.
func (m *Model) HandleKey(msg tea.KeyMsg) (KeyResult, bool) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		return KeyResult{Action: ActionClose}, true
	case "enter":
		id := strings.TrimSpace(m.input.Value())
		if id == "" {
			return KeyResult{Action: ActionNone}, true
		}
		m.input.Blur()
		return KeyResult{Action: ActionLoad, GameID: id}, true
	case "up":
		if m.cursor < len(m.recent)-1 {
			m.cursor++
			m.input.SetValue(m.recent[m.cursor])
			m.input.CursorEnd()
		}
		return KeyResult{Action: ActionNone}, true
	case "down":
		if m.cursor > 0 {
			m.cursor--
			m.input.SetValue(m.recent[m.cursor])
			m.input.CursorEnd()
		}
		return KeyResult{Action: ActionNone}, true
	}
	return KeyResult{Action: ActionNone}, false
}

func (m Model) ViewOverlay(w, h int) string {
	overlay := shared.PromptOverlayStyle.Render(m.renderContent())
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderContent() string {
	var b strings.Builder
	b.WriteString(shared.TitleStyle.Render("Load game"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(shared.DimStyle.Render("Recent"))
		b.WriteString("\n")
		for i, id := range m.recent {
			line := "  " + shared.Clean(id)
			if i == m.cursor {
				line = shared.AccentStyle.Render("› " + shared.Clean(id))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(shared.HelpDescStyle.Render("enter: load  up/down: recent  esc: cancel"))
	return b.String()
}
