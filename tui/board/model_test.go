package board

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/dylan/trolleydash/api"
	"github.com/dylan/trolleydash/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedModel() view.Model {
	snap := api.GameSnapshot{
		GameID:             "g1",
		Status:             api.StatusInProgress,
		CurrentRoundNumber: 2,
		CurrentPhase:       api.PhaseResolved,
		Operator:           &api.Agent{ID: "o", DisplayName: "Olive"},
		MajorityAgents: []api.Agent{
			{ID: "a1", DisplayName: "Ada Lovelace", ArguedThisPhase: true},
			{ID: "a2", DisplayName: "Grace"},
		},
		MinorityAgents: []api.Agent{{ID: "b1", DisplayName: "Bob\x1b[31m"}},
		Decision:       api.DecisionSaveMajority,
		Board: api.Board{
			SelectedBranch:  api.DecisionSaveMajority,
			ResolutionState: true,
			Survivors:       []string{"a1", "a2"},
			Lost:            []string{"b1"},
		},
	}
	return view.Build(view.Inputs{GameID: "g1", State: api.Available(snap)})
}

func TestRenderIsIdempotent(t *testing.T) {
	m := resolvedModel()
	assert.Equal(t, Render(m, 60), Render(m, 60))
}

func TestRenderPlacesEveryToken(t *testing.T) {
	out := ansi.Strip(Render(resolvedModel(), 60))
	assert.Contains(t, out, "•AL ", "argued marker sits in the gap")
	assert.Contains(t, out, " GR ")
	assert.Contains(t, out, " BO ")
	assert.Contains(t, out, "Olive")
	assert.Contains(t, out, "Saved: Majority")
	assert.NotContains(t, out, "\x1b[31m")

	lines := strings.Split(out, "\n")
	var majority string
	for _, l := range lines {
		if strings.Contains(l, "AL") {
			majority = l
			break
		}
	}
	require.NotEmpty(t, majority)
	assert.Equal(t, view.DefaultLayout.Base+1, column(majority, "AL"))
	assert.Equal(t, view.DefaultLayout.Base+view.DefaultLayout.Spacing+1, column(majority, "GR"))
}

func column(line, sub string) int {
	return utf8.RuneCountInString(line[:strings.Index(line, sub)])
}

func TestRenderKeepsHeightWithoutResolution(t *testing.T) {
	resolved := Render(resolvedModel(), 60)
	empty := Render(view.Build(view.Inputs{GameID: "g1"}), 60)

	assert.Equal(t, strings.Count(resolved, "\n"), strings.Count(empty, "\n"))
	assert.NotContains(t, ansi.Strip(empty), "Saved:")
	assert.Contains(t, ansi.Strip(empty), view.Placeholder)
}
