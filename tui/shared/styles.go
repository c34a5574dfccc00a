package shared

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/trolleydash/config"
)

var (
	// Chrome
	TitleStyle         lipgloss.Style
	SectionHeaderStyle lipgloss.Style
	DimStyle           lipgloss.Style
	MutedStyle         lipgloss.Style
	AccentStyle        lipgloss.Style
	ErrorStyle         lipgloss.Style
	PaneBorderStyle    lipgloss.Style

	// Status bar
	StatusBarStyle lipgloss.Style

	// Help styles
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	HelpOverlayStyle lipgloss.Style

	// Game id prompt
	PromptOverlayStyle lipgloss.Style

	// Phase stepper
	PhaseActiveStyle  lipgloss.Style
	PhaseDoneStyle    lipgloss.Style
	PhasePendingStyle lipgloss.Style

	// Board
	OperatorStyle       lipgloss.Style
	MajorityTokenStyle  lipgloss.Style
	MinorityTokenStyle  lipgloss.Style
	LostTokenStyle      lipgloss.Style
	ArguedMarkerStyle   lipgloss.Style
	MajorityActiveTrack lipgloss.Style
	MinorityActiveTrack lipgloss.Style
	MutedTrackStyle     lipgloss.Style
	NeutralTrackStyle   lipgloss.Style
	ResolutionStyle     lipgloss.Style

	// Feed
	SpeakerStyle  lipgloss.Style
	EventTagStyle lipgloss.Style

	// Scoreboard and coverage
	ScoreStyle           lipgloss.Style
	CoverageDoneStyle    lipgloss.Style
	CoveragePendingStyle lipgloss.Style
	CoverageCoveredStyle lipgloss.Style

	// Spinner
	SpinnerStyle lipgloss.Style

	// Feedback
	FeedbackSuccessStyle lipgloss.Style
	FeedbackWarningStyle lipgloss.Style
	FeedbackErrorStyle   lipgloss.Style
	FatalOverlayStyle    lipgloss.Style
)

// InitStyles configures all styles from a resolved theme.
func InitStyles(theme config.ThemeConfig) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.FG))

	SectionHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	DimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	MutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted))

	AccentStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent2))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))

	PaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(theme.Muted)).
		PaddingLeft(1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarFG)).
		Background(lipgloss.Color(theme.StatusBarBG)).
		Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(1, 2)

	PromptOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2)

	PhaseActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.PhaseActiveFG)).
		Background(lipgloss.Color(theme.PhaseActiveBG)).
		Padding(0, 1)

	PhaseDoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.PhaseDoneFG)).
		Padding(0, 1)

	PhasePendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Padding(0, 1)

	OperatorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.FG)).
		Background(lipgloss.Color(theme.Operator)).
		Padding(0, 1)

	MajorityTokenStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FG)).
		Background(lipgloss.Color(theme.Majority))

	MinorityTokenStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FG)).
		Background(lipgloss.Color(theme.Minority))

	LostTokenStyle = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(lipgloss.Color(theme.LostText)).
		Background(lipgloss.Color(theme.LostFill))

	ArguedMarkerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ArguedMarker))

	MajorityActiveTrack = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Majority))

	MinorityActiveTrack = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Minority))

	MutedTrackStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.TrackMuted))

	NeutralTrackStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.TrackNeutral))

	ResolutionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	SpeakerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent2))

	EventTagStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarBG)).
		Background(lipgloss.Color(theme.Dim)).
		Padding(0, 1)

	ScoreStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.FG))

	CoverageDoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Majority))

	CoveragePendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	CoverageCoveredStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted))

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.SpinnerFG))

	FeedbackSuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FeedbackSuccessFG)).
		Background(lipgloss.Color(theme.FeedbackSuccessBG)).
		Padding(0, 1)

	FeedbackWarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FeedbackWarningFG)).
		Background(lipgloss.Color(theme.FeedbackWarningBG)).
		Padding(0, 1)

	FeedbackErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FeedbackErrorFG)).
		Background(lipgloss.Color(theme.FeedbackErrorBG)).
		Padding(0, 1)

	FatalOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.FeedbackErrorFG)).
		Foreground(lipgloss.Color(theme.FG)).
		Padding(1, 2)
}

// FeedbackStyle picks the inline style for a non-modal feedback level.
func FeedbackStyle(level FeedbackLevel) lipgloss.Style {
	switch level {
	case FeedbackSuccess:
		return FeedbackSuccessStyle
	case FeedbackWarning:
		return FeedbackWarningStyle
	case FeedbackError, FeedbackFatal:
		return FeedbackErrorStyle
	}
	return DimStyle
}

// ResolveSpinnerType maps a config string to a bubbles spinner type.
func ResolveSpinnerType(name string) spinner.Spinner {
	switch strings.ToLower(name) {
	case "dot":
		return spinner.Dot
	case "line":
		return spinner.Line
	case "minidot":
		return spinner.MiniDot
	case "pulse":
		return spinner.Pulse
	case "points":
		return spinner.Points
	case "meter":
		return spinner.Meter
	case "ellipsis":
		return spinner.Ellipsis
	default:
		return spinner.MiniDot
	}
}

func init() {
	// Initialize with defaults so styles work even without explicit InitStyles call
	InitStyles(config.DefaultTheme())
}
