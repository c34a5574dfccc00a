package feed

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/dylan/trolleydash/api"
	"github.com/dylan/trolleydash/view"
	"github.com/stretchr/testify/assert"
)

func TestPlaceholdersRender(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetFeed(view.PartitionFeed(nil, 0, 0))

	out := ansi.Strip(m.Content())
	assert.Contains(t, out, "No arguments yet.")
	assert.Contains(t, out, view.NoEventsText)
}

func TestDialogueWrapsAndEventsTagged(t *testing.T) {
	items := []api.FeedItem{
		{Kind: api.FeedArgument, Argument: api.Argument{
			DisplayName: "Ann",
			Phase:       api.Phase2,
			Text:        strings.Repeat("save the many ", 8),
		}},
		{Kind: api.FeedEvent, Event: api.Event{Payload: map[string]any{"event_type": "round_started"}}},
	}
	m := New()
	m.SetSize(30, 5)
	m.SetFeed(view.PartitionFeed(items, 0, 0))

	out := ansi.Strip(m.Content())
	assert.Contains(t, out, "Ann · Phase 2")
	assert.Regexp(t, `Event +round_started`, out)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 30, "line %q", line)
	}
}

func TestScrollingStaysInBounds(t *testing.T) {
	var items []api.FeedItem
	for i := 0; i < 20; i++ {
		items = append(items, api.FeedItem{Kind: api.FeedArgument, Argument: api.Argument{DisplayName: "A", Text: "x"}})
	}
	m := New()
	m.SetSize(30, 4)
	m.SetFeed(view.PartitionFeed(items, 0, 0))

	m.ScrollUp()
	first := m.View()
	m.PageDown()
	assert.NotEqual(t, first, m.View())
	m.PageUp()
	m.ScrollDown()
	m.ScrollUp()
	assert.Equal(t, first, m.View())
}

func TestArgumentPhaseIsCleaned(t *testing.T) {
	items := []api.FeedItem{
		{Kind: api.FeedArgument, Argument: api.Argument{
			DisplayName: "Ann",
			Phase:       "phase_1\x1b]0;pwned\x07\x1b[2J",
			Text:        "hold the lever",
		}},
	}
	m := New()
	m.SetSize(40, 5)
	m.SetFeed(view.PartitionFeed(items, 0, 0))

	out := m.Content()
	assert.NotContains(t, out, "\x1b]")
	assert.NotContains(t, out, "\x1b[2J")
	assert.NotContains(t, out, "pwned")
	assert.Contains(t, ansi.Strip(out), "Ann · Phase 1")
}
