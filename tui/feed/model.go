package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/dylan/trolleydash/tui/shared"
	"github.com/dylan/trolleydash/view"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Model is the scrollable dialogue and events pane.
type Model struct {
	vp    viewport.Model
	feed  view.Feed
	ready bool

	width  int
	height int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = max(h, 1)
	offset := m.vp.YOffset
	m.vp = viewport.New(m.width, m.height)
	m.ready = true
	m.vp.SetContent(m.render())
	m.vp.SetYOffset(offset)
}

// SetFeed replaces the content. The scroll position is kept so a poll does
// not yank the reader back to the top.
func (m *Model) SetFeed(f view.Feed) {
	m.feed = f
	if m.ready {
		m.vp.SetContent(m.render())
	}
}

func (m *Model) ScrollUp()   { m.vp.LineUp(1) }
func (m *Model) ScrollDown() { m.vp.LineDown(1) }
func (m *Model) PageUp()     { m.vp.ViewUp() }
func (m *Model) PageDown()   { m.vp.ViewDown() }

func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.vp.View()
}

// Content is the full rendered feed, independent of scrolling.
func (m Model) Content() string {
	return m.render()
}

func (m Model) render() string {
	width := max(m.width-2, 10)
	var b strings.Builder

	b.WriteString(shared.SectionHeaderStyle.Render("Dialogue"))
	b.WriteByte('\n')
	if m.feed.DialoguePlaceholder != "" {
		b.WriteString(shared.DimStyle.Render(wordwrap.String(m.feed.DialoguePlaceholder, width)))
		b.WriteByte('\n')
	}
	for _, line := range m.feed.Dialogue {
		header := shared.SpeakerStyle.Render(shared.Clean(line.Speaker))
		if line.Phase != "" {
			header += shared.DimStyle.Render(" · " + shared.Clean(line.Phase))
		}
		b.WriteString(header)
		b.WriteByte('\n')
		text := wordwrap.String(shared.Clean(line.Text, true), width-2)
		b.WriteString(indent.String(text, 2))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(shared.SectionHeaderStyle.Render("Events"))
	b.WriteByte('\n')
	if m.feed.EventsPlaceholder != "" {
		b.WriteString(shared.DimStyle.Render(m.feed.EventsPlaceholder))
		b.WriteByte('\n')
	}
	for _, e := range m.feed.Events {
		b.WriteString(shared.EventTagStyle.Render("Event"))
		b.WriteString(" ")
		b.WriteString(shared.MutedStyle.Render(shared.Clean(e.Summary)))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}
