package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dylan/trolleydash/api"
)

// Placeholder stands in for any value the server did not provide.
const Placeholder = "—"

// Inputs are the results of one sync cycle.
type Inputs struct {
	GameID     string
	State      api.Result[api.GameSnapshot]
	Feed       []api.FeedItem
	Scoreboard api.Result[api.Scoreboard]

	MaxArguments int
	MaxEvents    int
	Layout       *Layout
}

type RoleLine struct {
	Label string
	Names []string
}

type ScoreRow struct {
	Name  string
	Score string
}

type CoverageRow struct {
	Name     string
	Complete bool
	Operator bool
	Majority bool
	Minority bool
}

// Model is everything the renderers draw. It holds no references into the
// snapshots it was built from.
type Model struct {
	GameID    string
	Available bool
	Status    api.Status

	StatusText string
	RoundText  string
	Steps      []Step

	OperatorName string
	Majority     []Token
	Minority     []Token

	MajorityTrack TrackTone
	MinorityTrack TrackTone

	ResolutionText    string
	ResolutionVisible bool

	Roles []RoleLine

	Feed Feed

	Scores   []ScoreRow
	Coverage []CoverageRow
}

// Build derives a Model. Unavailable results render as placeholders.
func Build(in Inputs) Model {
	layout := DefaultLayout
	if in.Layout != nil {
		layout = *in.Layout
	}

	m := Model{
		GameID:       in.GameID,
		StatusText:   "Status: " + Placeholder,
		RoundText:    Placeholder,
		Steps:        PhaseProgress(api.PhaseNone),
		OperatorName: Placeholder,
		Feed:         PartitionFeed(in.Feed, in.MaxArguments, in.MaxEvents),
	}

	if snap, ok := in.State.Get(); ok {
		m.Available = true
		m.Status = snap.Status
		m.StatusText = "Status: " + orPlaceholder(string(snap.Status))
		m.RoundText = fmt.Sprintf("Round %d · %s", snap.CurrentRoundNumber, orPlaceholder(string(snap.CurrentPhase)))
		m.Steps = PhaseProgress(snap.CurrentPhase)
		if snap.Operator != nil {
			m.OperatorName = pickName(snap.Operator.DisplayName, "Op")
		}
		m.Majority = Tokens(snap, RoleMajority, layout)
		m.Minority = Tokens(snap, RoleMinority, layout)
		m.MajorityTrack, m.MinorityTrack = BranchHighlight(snap.Board.SelectedBranch)
		m.ResolutionText, m.ResolutionVisible = Resolution(snap)
		m.Roles = RoleSummary(snap)
	}

	if sb, ok := in.Scoreboard.Get(); ok {
		m.Scores = ScoreRows(sb.Scores)
		m.Coverage = CoverageRows(sb.Coverage)
	}
	return m
}

// RoleSummary lists who holds each role. Empty roles are left out.
func RoleSummary(snap api.GameSnapshot) []RoleLine {
	var lines []RoleLine
	if snap.Operator != nil {
		lines = append(lines, RoleLine{Label: "Operator", Names: []string{snap.Operator.DisplayName}})
	}
	if len(snap.MajorityAgents) > 0 {
		lines = append(lines, RoleLine{Label: "Majority", Names: names(snap.MajorityAgents)})
	}
	if len(snap.MinorityAgents) > 0 {
		lines = append(lines, RoleLine{Label: "Minority", Names: names(snap.MinorityAgents)})
	}
	return lines
}

func (l RoleLine) String() string {
	return l.Label + ": " + strings.Join(l.Names, ", ")
}

func names(agents []api.Agent) []string {
	out := make([]string, len(agents))
	for i, a := range agents {
		out[i] = a.DisplayName
	}
	return out
}

func ScoreRows(scores []api.ScoreEntry) []ScoreRow {
	rows := make([]ScoreRow, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, ScoreRow{
			Name:  s.DisplayName,
			Score: strconv.FormatFloat(s.Score, 'f', -1, 64),
		})
	}
	return rows
}

func CoverageRows(coverage []api.CoverageEntry) []CoverageRow {
	rows := make([]CoverageRow, 0, len(coverage))
	for _, c := range coverage {
		rows = append(rows, CoverageRow{
			Name:     c.DisplayName,
			Complete: c.Complete,
			Operator: c.HasBeenOperator,
			Majority: c.HasBeenMajority,
			Minority: c.HasBeenMinority,
		})
	}
	return rows
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
