package view

import (
	"strings"
	"unicode/utf8"

	"github.com/dylan/trolleydash/api"
)

type Role int

const (
	RoleOperator Role = iota
	RoleMajority
	RoleMinority
)

func (r Role) String() string {
	switch r {
	case RoleOperator:
		return "operator"
	case RoleMajority:
		return "majority"
	case RoleMinority:
		return "minority"
	}
	return "unknown"
}

// Layout places tokens on the board canvas, in terminal cells. The majority
// track sits above the minority track.
type Layout struct {
	Base      int
	Spacing   int
	MajorityY int
	MinorityY int
}

// DefaultLayout fits the board pane: the first token starts right of the
// switch and tokens are one cell apart.
var DefaultLayout = Layout{Base: 14, Spacing: 5, MajorityY: 0, MinorityY: 4}

// Position returns the cell of the index-th token of a role. It depends on
// nothing else.
func (l Layout) Position(role Role, index int) (x, y int) {
	x = l.Base + index*l.Spacing
	if role == RoleMinority {
		return x, l.MinorityY
	}
	return x, l.MajorityY
}

// TokenStyle is the fill a token is drawn with.
type TokenStyle int

const (
	TokenNormal TokenStyle = iota
	TokenSurvived
	TokenLost
)

type Token struct {
	AgentID  string
	Name     string
	Initials string
	Role     Role
	X, Y     int

	Argued   bool
	Lost     bool
	Survived bool
}

// Style resolves the fill. Lost wins over survived.
func (t Token) Style() TokenStyle {
	switch {
	case t.Lost:
		return TokenLost
	case t.Survived:
		return TokenSurvived
	}
	return TokenNormal
}

// Tokens lays out one role group of snap. Only RoleMajority and RoleMinority
// have groups.
func Tokens(snap api.GameSnapshot, role Role, layout Layout) []Token {
	var agents []api.Agent
	switch role {
	case RoleMajority:
		agents = snap.MajorityAgents
	case RoleMinority:
		agents = snap.MinorityAgents
	default:
		return nil
	}
	decided := snap.Decision != api.DecisionNone
	tokens := make([]Token, 0, len(agents))
	for i, a := range agents {
		x, y := layout.Position(role, i)
		tokens = append(tokens, Token{
			AgentID:  a.ID,
			Name:     a.DisplayName,
			Initials: Initials(a.DisplayName),
			Role:     role,
			X:        x,
			Y:        y,
			Argued:   a.ArguedThisPhase,
			Lost:     snap.Board.IsLost(a.ID),
			Survived: decided && snap.Board.IsSurvivor(a.ID),
		})
	}
	return tokens
}

// Initials takes the first letters of the first two words, or the first two
// characters of a single word. Empty names give "?".
func Initials(name string) string {
	parts := strings.Fields(name)
	switch {
	case len(parts) == 0:
		return "?"
	case len(parts) >= 2:
		a, _ := utf8.DecodeRuneInString(parts[0])
		b, _ := utf8.DecodeRuneInString(parts[1])
		return strings.ToUpper(string([]rune{a, b}))
	}
	r := []rune(parts[0])
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

type TrackTone int

const (
	TrackNeutral TrackTone = iota
	TrackActive
	TrackMuted
)

// BranchHighlight colours both tracks from the selected branch.
func BranchHighlight(selected api.Decision) (majority, minority TrackTone) {
	switch selected {
	case api.DecisionSaveMajority:
		return TrackActive, TrackMuted
	case api.DecisionSaveMinority:
		return TrackMuted, TrackActive
	}
	return TrackNeutral, TrackNeutral
}

// Resolution returns the outcome line and whether it is shown at all.
func Resolution(snap api.GameSnapshot) (string, bool) {
	if !bool(snap.Board.ResolutionState) || snap.Decision == api.DecisionNone {
		return "", false
	}
	if snap.Decision == api.DecisionSaveMajority {
		return "Saved: Majority", true
	}
	return "Saved: Minority", true
}
