package shared

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FeedbackLevel controls styling and auto-clear duration.
type FeedbackLevel int

const (
	FeedbackInfo    FeedbackLevel = iota // transient, auto-clears 4s
	FeedbackSuccess                      // green styled, auto-clears 4s
	FeedbackWarning                      // yellow, auto-clears 8s
	FeedbackError                        // red, auto-clears 12s
	FeedbackFatal                        // red modal overlay, requires keypress
)

// FeedbackTTL returns the auto-clear duration for a given level.
func FeedbackTTL(level FeedbackLevel) time.Duration {
	switch level {
	case FeedbackInfo, FeedbackSuccess:
		return 4 * time.Second
	case FeedbackWarning:
		return 8 * time.Second
	case FeedbackError:
		return 12 * time.Second
	default:
		return 0 // FeedbackFatal never auto-clears
	}
}

// Feedback represents a user-facing feedback message.
type Feedback struct {
	Level     FeedbackLevel
	Message   string
	Timestamp time.Time
	Op        LoaderOp // command that produced this, if any
}

// Modal reports whether the feedback blocks input until dismissed.
func (f Feedback) Modal() bool {
	return f.Level == FeedbackFatal
}

// FeedbackExpiredMsg clears the feedback stamped with Timestamp, if it is
// still the one shown.
type FeedbackExpiredMsg struct {
	Timestamp time.Time
}

// ExpireFeedback schedules the auto-clear for f. Modal feedback never expires.
func ExpireFeedback(f Feedback) tea.Cmd {
	ttl := FeedbackTTL(f.Level)
	if ttl == 0 {
		return nil
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return FeedbackExpiredMsg{Timestamp: f.Timestamp}
	})
}
