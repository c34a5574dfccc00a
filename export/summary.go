// Package export turns the current game view into a markdown summary and
// puts it on the system clipboard.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/dylan/trolleydash/view"
)

// ErrNoGame is returned when there is nothing to summarise.
var ErrNoGame = errors.New("no game loaded")

// BuildSummary renders m as markdown: status, roles, scores and coverage.
func BuildSummary(m view.Model) (string, error) {
	if m.GameID == "" {
		return "", ErrNoGame
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Game %s\n\n", m.GameID)
	fmt.Fprintf(&b, "- %s\n", m.StatusText)
	fmt.Fprintf(&b, "- %s\n", m.RoundText)
	if m.ResolutionVisible {
		fmt.Fprintf(&b, "- %s\n", m.ResolutionText)
	}

	if len(m.Roles) > 0 {
		b.WriteString("\n## Roles\n")
		for _, r := range m.Roles {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	if len(m.Scores) > 0 {
		b.WriteString("\n## Scores\n")
		for _, s := range m.Scores {
			fmt.Fprintf(&b, "- %s: %s\n", s.Name, s.Score)
		}
	}

	if len(m.Coverage) > 0 {
		complete := 0
		for _, c := range m.Coverage {
			if c.Complete {
				complete++
			}
		}
		fmt.Fprintf(&b, "\n<!-- coverage complete for %d of %d agents -->\n", complete, len(m.Coverage))
	}

	return b.String(), nil
}

func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
