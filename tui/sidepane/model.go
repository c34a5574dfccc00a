// Package sidepane renders the status column: game status, role holders, the
// scoreboard and per-agent role coverage.
package sidepane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/trolleydash/tui/icons"
	"github.com/dylan/trolleydash/tui/shared"
	"github.com/dylan/trolleydash/view"
)

// Render draws the pane for m, width cells wide.
func Render(m view.Model, width int) string {
	sections := []string{
		renderStatus(m),
		renderRoles(m.Roles),
		renderScores(m.Scores, width),
		renderCoverage(m.Coverage, width),
	}
	return strings.Join(sections, "\n\n")
}

func renderStatus(m view.Model) string {
	var b strings.Builder
	b.WriteString(shared.SectionHeaderStyle.Render("Game"))
	b.WriteByte('\n')
	if m.GameID == "" {
		b.WriteString(shared.DimStyle.Render("No game loaded"))
	} else {
		b.WriteString(shared.AccentStyle.Render(shared.Clean(m.GameID)))
	}
	b.WriteByte('\n')
	b.WriteString(shared.Clean(m.StatusText))
	b.WriteByte('\n')
	b.WriteString(shared.DimStyle.Render(shared.Clean(m.RoundText)))
	return b.String()
}

func renderRoles(roles []view.RoleLine) string {
	var b strings.Builder
	b.WriteString(shared.SectionHeaderStyle.Render("Roles"))
	if len(roles) == 0 {
		b.WriteString("\n" + shared.DimStyle.Render(view.Placeholder))
		return b.String()
	}
	for _, r := range roles {
		line := view.RoleLine{Label: r.Label, Names: make([]string, len(r.Names))}
		for i, n := range r.Names {
			line.Names[i] = shared.Clean(n)
		}
		b.WriteString("\n" + roleIcon(r.Label) + " " + line.String())
	}
	return b.String()
}

func roleIcon(label string) string {
	switch label {
	case "Operator":
		return shared.OperatorStyle.UnsetPadding().UnsetBackground().Render(icons.ForRole(view.RoleOperator))
	case "Majority":
		return shared.MajorityActiveTrack.Render(icons.ForRole(view.RoleMajority))
	case "Minority":
		return shared.MinorityActiveTrack.Render(icons.ForRole(view.RoleMinority))
	}
	return " "
}

func renderScores(rows []view.ScoreRow, width int) string {
	var b strings.Builder
	b.WriteString(shared.SectionHeaderStyle.Render("Scoreboard"))
	if len(rows) == 0 {
		b.WriteString("\n" + shared.DimStyle.Render(view.Placeholder))
		return b.String()
	}
	for _, r := range rows {
		b.WriteString("\n" + spread(shared.Clean(r.Name), shared.ScoreStyle.Render(r.Score), width))
	}
	return b.String()
}

func renderCoverage(rows []view.CoverageRow, width int) string {
	var b strings.Builder
	b.WriteString(shared.SectionHeaderStyle.Render("Coverage"))
	if len(rows) == 0 {
		b.WriteString("\n" + shared.DimStyle.Render(view.Placeholder))
		return b.String()
	}
	for _, r := range rows {
		b.WriteString("\n" + spread(shared.Clean(r.Name), coverageCell(r), width))
	}
	return b.String()
}

// coverageCell is a check once every role is covered, else the role tags
// with the covered ones dimmed.
func coverageCell(r view.CoverageRow) string {
	if r.Complete {
		return shared.CoverageDoneStyle.Render("✓")
	}
	tag := func(label string, covered bool) string {
		if covered {
			return shared.CoverageCoveredStyle.Render(label)
		}
		return shared.CoveragePendingStyle.Render(label)
	}
	return fmt.Sprintf("%s %s %s", tag("Op", r.Operator), tag("Maj", r.Majority), tag("Min", r.Minority))
}

// spread puts left and right on one line, right-aligned, truncating left
// when both do not fit.
func spread(left, right string, width int) string {
	rw := lipgloss.Width(right)
	room := max(width-rw-1, 1)
	if lipgloss.Width(left) > room {
		r := []rune(left)
		for len(r) > 0 && lipgloss.Width(string(r))+1 > room {
			r = r[:len(r)-1]
		}
		left = string(r) + "…"
	}
	gap := max(width-lipgloss.Width(left)-rw, 1)
	return left + strings.Repeat(" ", gap) + right
}
