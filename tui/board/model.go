// Package board draws the trolley board: the phase stepper, the operator and
// the two tracks with their agent tokens.
package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/trolleydash/tui/icons"
	"github.com/dylan/trolleydash/tui/shared"
	"github.com/dylan/trolleydash/view"
)

const (
	// trackStart is the column where both tracks leave the switch.
	trackStart = 8
	tokenWidth = 4
)

// Render draws m into a block width cells wide. It reads nothing but m, so
// the same model always renders the same board.
func Render(m view.Model, width int) string {
	if width < trackStart+tokenWidth {
		width = trackStart + tokenWidth
	}

	var b strings.Builder
	b.WriteString(renderStepper(m.Steps))
	b.WriteString("\n\n")
	b.WriteString(renderOperator(m.OperatorName))
	b.WriteString("\n\n")

	trackLen := max(width-trackStart, lastCell(m.Majority, m.Minority)-trackStart)

	b.WriteString(renderTokens(m.Majority))
	b.WriteByte('\n')
	b.WriteString(renderTrack("╭", "Majority", m.MajorityTrack, shared.MajorityActiveTrack, trackLen))
	b.WriteByte('\n')
	b.WriteString(renderSwitch())
	b.WriteByte('\n')
	b.WriteString(renderTrack("╰", "Minority", m.MinorityTrack, shared.MinorityActiveTrack, trackLen))
	b.WriteByte('\n')
	b.WriteString(renderTokens(m.Minority))
	b.WriteString("\n\n")

	// The line stays even when hidden so the board keeps its height.
	if m.ResolutionVisible {
		b.WriteString(shared.ResolutionStyle.Render(m.ResolutionText))
	} else {
		b.WriteString(" ")
	}
	return b.String()
}

func renderStepper(steps []view.Step) string {
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		label := icons.ForStep(s.State) + " " + s.Label
		switch s.State {
		case view.StepActive:
			parts = append(parts, shared.PhaseActiveStyle.Render(label))
		case view.StepDone:
			parts = append(parts, shared.PhaseDoneStyle.Render(label))
		default:
			parts = append(parts, shared.PhasePendingStyle.Render(label))
		}
	}
	return strings.Join(parts, shared.DimStyle.Render(" ─ "))
}

func renderOperator(name string) string {
	icon := icons.ForRole(view.RoleOperator)
	return shared.DimStyle.Render("Operator ") +
		shared.OperatorStyle.Render(icon+" "+shared.Clean(name))
}

// renderTokens places each token at its X cell. Tokens are laid out left to
// right, so a token that would overlap its predecessor is pushed right.
func renderTokens(tokens []view.Token) string {
	var b strings.Builder
	col := 0
	for _, t := range tokens {
		if t.X > col {
			b.WriteString(strings.Repeat(" ", t.X-col))
			col = t.X
		}
		b.WriteString(renderToken(t))
		col += tokenWidth
	}
	return b.String()
}

func renderToken(t view.Token) string {
	marker := " "
	if t.Argued {
		marker = shared.ArguedMarkerStyle.Render(icons.Argued())
	}

	initials := shared.Clean(t.Initials)
	if lipgloss.Width(initials) < 2 {
		initials += strings.Repeat(" ", 2-lipgloss.Width(initials))
	}

	var style lipgloss.Style
	switch t.Style() {
	case view.TokenLost:
		style = shared.LostTokenStyle
	case view.TokenSurvived:
		style = tokenStyle(t.Role).Bold(true).Underline(true)
	default:
		style = tokenStyle(t.Role)
	}
	return marker + style.Render(initials) + " "
}

func tokenStyle(r view.Role) lipgloss.Style {
	if r == view.RoleMinority {
		return shared.MinorityTokenStyle
	}
	return shared.MajorityTokenStyle
}

func renderTrack(corner, label string, tone view.TrackTone, active lipgloss.Style, length int) string {
	style := shared.NeutralTrackStyle
	switch tone {
	case view.TrackActive:
		style = active
	case view.TrackMuted:
		style = shared.MutedTrackStyle
	}

	rail := strings.Repeat("━", max(length-len(label)-3, 1))
	return strings.Repeat(" ", trackStart-1) +
		style.Render(corner+"━ "+label+" "+rail)
}

func renderSwitch() string {
	return " " + shared.OperatorStyle.Render(icons.Trolley()) +
		shared.NeutralTrackStyle.Render(" ━━━━┫")
}

// lastCell returns the column just past the rightmost token.
func lastCell(groups ...[]view.Token) int {
	end := 0
	for _, g := range groups {
		for _, t := range g {
			end = max(end, t.X+tokenWidth)
		}
	}
	return end
}
