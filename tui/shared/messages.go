package shared

// LoadGameMsg points the session at a game typed into the prompt.
type LoadGameMsg struct {
	GameID string
}

type ClosePromptMsg struct{}

// SummaryCopiedMsg reports the outcome of copying the game summary.
type SummaryCopiedMsg struct {
	Err error
}
