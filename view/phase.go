// Package view derives render-ready structures from server snapshots. Every
// function here is pure: the same inputs always give the same Model.
package view

import (
	"strings"

	"github.com/dylan/trolleydash/api"
)

// Phases is the fixed order of a round.
var Phases = []api.Phase{
	api.Phase1,
	api.Phase2,
	api.Phase3,
	api.PhaseAwaitingDecision,
	api.PhaseResolved,
}

type StepState int

const (
	StepPending StepState = iota
	StepActive
	StepDone
)

// Step is one marker of the phase stepper.
type Step struct {
	Phase api.Phase
	Label string
	State StepState
}

// PhaseIndex returns the ordinal of p in Phases, or -1.
func PhaseIndex(p api.Phase) int {
	for i, q := range Phases {
		if q == p {
			return i
		}
	}
	return -1
}

// PhaseProgress marks every phase before current done and current active.
// An unknown or empty phase leaves every step pending.
func PhaseProgress(current api.Phase) []Step {
	cur := PhaseIndex(current)
	steps := make([]Step, len(Phases))
	for i, p := range Phases {
		s := Step{Phase: p, Label: StepLabel(p)}
		switch {
		case cur < 0:
		case i < cur:
			s.State = StepDone
		case i == cur:
			s.State = StepActive
		}
		steps[i] = s
	}
	return steps
}

// StepLabel is the short stepper caption for a phase.
func StepLabel(p api.Phase) string {
	switch p {
	case api.PhaseAwaitingDecision:
		return "Decision"
	case api.PhaseResolved:
		return "Resolved"
	}
	return PhaseLabel(p)
}

// PhaseLabel turns "phase_2" into "Phase 2". Empty phases give "".
func PhaseLabel(p api.Phase) string {
	if p == api.PhaseNone {
		return ""
	}
	return "Phase " + strings.Replace(string(p), "phase_", "", 1)
}
