package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/trolleydash/tui/shared"
)

var groupNames = []string{"Game", "Round", "Fillers", "Feed", "General"}

type Model struct {
	width  int
	height int

	fillers int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFillerCount shows the count the add-filler key will use.
func (m *Model) SetFillerCount(n int) {
	m.fillers = n
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(shared.TitleStyle.Render("TrolleyDash Help"))
	b.WriteString("\n\n")

	for i, group := range shared.Keys.FullHelp() {
		if i < len(groupNames) {
			name := groupNames[i]
			if name == "Fillers" && m.fillers > 0 {
				name = fmt.Sprintf("Fillers (adding %d)", m.fillers)
			}
			b.WriteString(shared.SectionHeaderStyle.Render(name))
			b.WriteString("\n")
		}
		for _, k := range group {
			help := k.Help()
			key := shared.HelpKeyStyle.Render(fmt.Sprintf("%-6s", help.Key))
			desc := shared.HelpDescStyle.Render(help.Desc)
			b.WriteString("  " + key + "  " + desc + "\n")
		}
		b.WriteString("\n")
	}

	content := shared.HelpOverlayStyle.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
