package command

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/dylan/trolleydash/api"
)

// SyncedMsg is one finished sync cycle. The three results always render
// together.
type SyncedMsg struct {
	GameID     string
	State      api.Result[api.GameSnapshot]
	Feed       []api.FeedItem
	Scoreboard api.Result[api.Scoreboard]
	At         time.Time
}

// Sync fetches state, feed and scoreboard for id, in that order, in one
// command. Failed reads are logged and carried as unavailable.
func (d *Dispatcher) Sync(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()

		state := d.client.GetState(ctx, id)
		feed := d.client.GetFeed(ctx, id, d.feedLimit)
		board := d.client.GetScoreboard(ctx, id)

		for name, err := range map[string]error{
			"state":      state.Cause(),
			"feed":       feed.Cause(),
			"scoreboard": board.Cause(),
		} {
			if err != nil {
				log.Debug().Err(err).Str("game_id", id).Str("resource", name).Msg("read unavailable")
			}
		}

		return SyncedMsg{
			GameID:     id,
			State:      state,
			Feed:       feed.ValueOr(nil),
			Scoreboard: board,
			At:         d.clock.Now(),
		}
	}
}
