package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/dylan/trolleydash/api"
)

const (
	DefaultMaxArguments = 50
	DefaultMaxEvents    = 25

	NoArgumentsText = "No arguments yet. Use Run fillers or have agents submit via API during debate phases."
	NoEventsText    = "No events yet."

	eventSummaryMax = 60
)

type DialogueLine struct {
	Speaker string
	Phase   string
	Text    string
}

type EventLine struct {
	Summary string
}

// Feed is the partitioned feed. A placeholder is set exactly when its list is
// empty.
type Feed struct {
	Dialogue            []DialogueLine
	Events              []EventLine
	DialoguePlaceholder string
	EventsPlaceholder   string
}

// PartitionFeed splits items by kind, keeping server order, and truncates each
// list to its limit. Non-positive limits use the defaults. Unknown kinds are
// skipped.
func PartitionFeed(items []api.FeedItem, maxArgs, maxEvents int) Feed {
	if maxArgs <= 0 {
		maxArgs = DefaultMaxArguments
	}
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}

	var f Feed
	for _, it := range items {
		switch it.Kind {
		case api.FeedArgument:
			if len(f.Dialogue) < maxArgs {
				f.Dialogue = append(f.Dialogue, dialogueLine(it.Argument))
			}
		case api.FeedEvent:
			if len(f.Events) < maxEvents {
				f.Events = append(f.Events, EventLine{Summary: EventSummary(it.Event.Payload)})
			}
		}
	}
	if len(f.Dialogue) == 0 {
		f.DialoguePlaceholder = NoArgumentsText
	}
	if len(f.Events) == 0 {
		f.EventsPlaceholder = NoEventsText
	}
	return f
}

func dialogueLine(a api.Argument) DialogueLine {
	return DialogueLine{
		Speaker: pickName(a.DisplayName, a.AgentID, "Agent"),
		Phase:   PhaseLabel(a.Phase),
		Text:    a.Text,
	}
}

// EventSummary is "Phase: <phase>" when the payload names a phase, else its
// event_type, else its JSON cut to 60 characters.
func EventSummary(payload map[string]any) string {
	if s := payloadString(payload, "phase"); s != "" {
		return "Phase: " + s
	}
	if s := payloadString(payload, "event_type"); s != "" {
		return s
	}
	if payload == nil {
		payload = map[string]any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return ""
	}
	return truncateRunes(string(bytes.TrimRight(buf.Bytes(), "\n")), eventSummaryMax)
}

func payloadString(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
		return "true"
	default:
		return fmt.Sprint(v)
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func pickName(names ...string) string {
	for _, n := range names {
		if n != "" {
			return n
		}
	}
	return ""
}
