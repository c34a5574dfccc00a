package export

import (
	"testing"

	"github.com/dylan/trolleydash/api"
	"github.com/dylan/trolleydash/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummaryNeedsGame(t *testing.T) {
	_, err := BuildSummary(view.Build(view.Inputs{}))
	assert.ErrorIs(t, err, ErrNoGame)
}

func TestBuildSummary(t *testing.T) {
	snap := api.GameSnapshot{
		Status:             api.StatusInProgress,
		CurrentRoundNumber: 1,
		CurrentPhase:       api.PhaseResolved,
		Operator:           &api.Agent{ID: "o", DisplayName: "Olive"},
		MajorityAgents:     []api.Agent{{ID: "a", DisplayName: "Ann"}},
		MinorityAgents:     []api.Agent{{ID: "b", DisplayName: "Bob"}},
		Decision:           api.DecisionSaveMinority,
		Board:              api.Board{ResolutionState: true},
	}
	sb := api.Scoreboard{
		Scores:   []api.ScoreEntry{{DisplayName: "Ann", Score: 1.5}},
		Coverage: []api.CoverageEntry{{DisplayName: "Ann", Complete: true}, {DisplayName: "Bob"}},
	}
	m := view.Build(view.Inputs{GameID: "g1", State: api.Available(snap), Scoreboard: api.Available(sb)})

	out, err := BuildSummary(m)
	require.NoError(t, err)
	assert.Contains(t, out, "# Game g1")
	assert.Contains(t, out, "- Status: in_progress")
	assert.Contains(t, out, "- Round 1 · resolved")
	assert.Contains(t, out, "- Saved: Minority")
	assert.Contains(t, out, "- Majority: Ann")
	assert.Contains(t, out, "- Ann: 1.5")
	assert.Contains(t, out, "coverage complete for 1 of 2 agents")
}
