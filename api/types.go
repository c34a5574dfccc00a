package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status is the server-side game status. Unknown values are kept verbatim.
type Status string

const (
	StatusWaitingForAgents Status = "waiting_for_agents"
	StatusReadyToStart     Status = "ready_to_start"
	StatusInProgress       Status = "in_progress"
	StatusGameCompleted    Status = "game_completed"
)

// Phase is a round phase. The empty Phase means no round is running.
type Phase string

const (
	PhaseNone             Phase = ""
	Phase1                Phase = "phase_1"
	Phase2                Phase = "phase_2"
	Phase3                Phase = "phase_3"
	PhaseAwaitingDecision Phase = "awaiting_decision"
	PhaseResolved         Phase = "resolved"
)

// Decision is the operator's choice. Also used for Board.SelectedBranch.
type Decision string

const (
	DecisionNone         Decision = ""
	DecisionSaveMajority Decision = "save_majority"
	DecisionSaveMinority Decision = "save_minority"
)

type Agent struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	ArguedThisPhase bool   `json:"argued_this_phase"`
}

// Flag decodes a boolean that older servers send as a non-empty string
// ("resolved") or null.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = false
	case bytes.Equal(data, []byte("true")):
		*f = true
	case bytes.Equal(data, []byte("false")):
		*f = false
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = s != ""
	default:
		return fmt.Errorf("flag: unexpected value %s", data)
	}
	return nil
}

type Board struct {
	SelectedBranch  Decision `json:"selected_branch"`
	ResolutionState Flag     `json:"resolution_state"`
	Survivors       []string `json:"survivors"`
	Lost            []string `json:"lost"`
}

// IsSurvivor reports whether id is listed in Survivors.
func (b Board) IsSurvivor(id string) bool {
	return contains(b.Survivors, id)
}

// IsLost reports whether id is listed in Lost.
func (b Board) IsLost(id string) bool {
	return contains(b.Lost, id)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// GameSnapshot is one GET /state payload.
type GameSnapshot struct {
	GameID             string   `json:"game_id"`
	Status             Status   `json:"status"`
	CurrentRoundNumber int      `json:"current_round_number"`
	CurrentPhase       Phase    `json:"current_phase"`
	Operator           *Agent   `json:"operator"`
	MajorityAgents     []Agent  `json:"majority_agents"`
	MinorityAgents     []Agent  `json:"minority_agents"`
	Board              Board    `json:"board"`
	Decision           Decision `json:"decision"`
}

// FeedKind discriminates FeedItem.
type FeedKind string

const (
	FeedArgument FeedKind = "argument"
	FeedEvent    FeedKind = "event"
)

type Argument struct {
	AgentID     string `json:"agent_id"`
	DisplayName string `json:"display_name"`
	Phase       Phase  `json:"phase"`
	Text        string `json:"text"`
}

type Event struct {
	Payload map[string]any `json:"payload"`
}

// FeedItem is either an Argument or an Event, selected by Kind.
type FeedItem struct {
	Kind     FeedKind
	Argument Argument
	Event    Event
}

type wireFeedItem struct {
	Type string `json:"type"`
	Argument
	Event
}

func (it *FeedItem) UnmarshalJSON(data []byte) error {
	var w wireFeedItem
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*it = FeedItem{Kind: FeedKind(w.Type)}
	switch it.Kind {
	case FeedArgument:
		it.Argument = w.Argument
	case FeedEvent:
		it.Event = w.Event
	}
	return nil
}

type feedResponse struct {
	Items []FeedItem `json:"items"`
}

type ScoreEntry struct {
	AgentID     string  `json:"agent_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

type CoverageEntry struct {
	AgentID         string `json:"agent_id"`
	DisplayName     string `json:"display_name"`
	HasBeenOperator bool   `json:"has_been_operator"`
	HasBeenMajority bool   `json:"has_been_majority"`
	HasBeenMinority bool   `json:"has_been_minority"`
	Complete        bool   `json:"complete"`
}

// Scoreboard is one GET /scoreboard payload.
type Scoreboard struct {
	Scores   []ScoreEntry    `json:"scores"`
	Coverage []CoverageEntry `json:"coverage"`
}

type CreateDemoResponse struct {
	GameID string `json:"game_id"`
}

// AdvanceAction is the body of POST /advance.
type AdvanceAction string

const (
	AdvanceNextPhase    AdvanceAction = "next_phase"
	AdvanceResolveRound AdvanceAction = "resolve_round"
)

// CommandResponse is the decoded body of a successful command.
type CommandResponse struct {
	Added  []Agent         `json:"added"`
	Action json.RawMessage `json:"action"`
	Error  string          `json:"error"`
}

// Acted reports whether a tick-filler response carried a non-null action.
func (r CommandResponse) Acted() bool {
	a := bytes.TrimSpace(r.Action)
	return len(a) > 0 && !bytes.Equal(a, []byte("null"))
}
