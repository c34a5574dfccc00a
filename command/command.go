// Package command turns user actions into tea.Cmds that talk to the game
// server. Mutations come back as ResultMsg, sync cycles as SyncedMsg.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/dylan/trolleydash/api"
)

const (
	CreateDemoMessage = "Demo game created. Press s to start the game, or run the simulator."
	noGameMessage     = "Load or create a game first"
)

// Client is the part of api.Client the dispatcher uses.
type Client interface {
	CreateDemo(ctx context.Context) (api.CreateDemoResponse, error)
	GetState(ctx context.Context, id string) api.Result[api.GameSnapshot]
	GetFeed(ctx context.Context, id string, limit int) api.Result[[]api.FeedItem]
	GetScoreboard(ctx context.Context, id string) api.Result[api.Scoreboard]
	Start(ctx context.Context, id string) (api.CommandResponse, error)
	Advance(ctx context.Context, id string, action api.AdvanceAction) (api.CommandResponse, error)
	AddFiller(ctx context.Context, id string, count int) (api.CommandResponse, error)
	TickFiller(ctx context.Context, id string) (api.CommandResponse, error)
}

// Session yields the active game id.
type Session interface {
	GameID() string
}

// ResultMsg reports a finished command. On success Resync asks the app to
// restart polling against GameID. On failure nothing else may change.
type ResultMsg struct {
	Action  string
	GameID  string
	Resync  bool
	Auto    bool
	Message string
	Err     error
}

func (m ResultMsg) Failed() bool {
	return m.Err != nil
}

// FailureText is the line shown to the user for a failed command.
func (m ResultMsg) FailureText() string {
	if m.Err == nil {
		return ""
	}
	if errors.Is(m.Err, api.ErrNoGame) {
		return noGameMessage
	}
	title := ActionTitle(m.Action)
	var cerr *api.CommandError
	if errors.As(m.Err, &cerr) && cerr.Detail == "" && cerr.Err == nil {
		return title + " failed"
	}
	return title + " failed: " + m.Err.Error()
}

// ActionTitle turns "add-filler" into "Add filler".
func ActionTitle(action string) string {
	if action == "" {
		return "Command"
	}
	s := strings.ReplaceAll(action, "-", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

type Options struct {
	Timeout   time.Duration
	FeedLimit int
	Clock     clockwork.Clock
}

// Dispatcher issues commands for the session's current game.
type Dispatcher struct {
	client    Client
	session   Session
	timeout   time.Duration
	feedLimit int
	clock     clockwork.Clock
}

func New(client Client, session Session, opts Options) *Dispatcher {
	if opts.Timeout <= 0 {
		opts.Timeout = api.DefaultTimeout
	}
	if opts.FeedLimit <= 0 {
		opts.FeedLimit = 50
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Dispatcher{
		client:    client,
		session:   session,
		timeout:   opts.Timeout,
		feedLimit: opts.FeedLimit,
		clock:     opts.Clock,
	}
}

func (d *Dispatcher) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.timeout)
}

// CreateDemo needs no game. Success points the session at the new game.
func (d *Dispatcher) CreateDemo() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		demo, err := d.client.CreateDemo(ctx)
		if err != nil {
			return d.failed(api.CmdCreateDemo, "", err)
		}
		log.Info().Str("game_id", demo.GameID).Msg("demo game created")
		return ResultMsg{Action: api.CmdCreateDemo, GameID: demo.GameID, Resync: true, Message: CreateDemoMessage}
	}
}

func (d *Dispatcher) Start() tea.Cmd {
	return d.mutate(api.CmdStart, func(ctx context.Context, id string) (string, error) {
		_, err := d.client.Start(ctx, id)
		return "", err
	})
}

func (d *Dispatcher) Advance() tea.Cmd {
	return d.mutate(api.CmdAdvance, func(ctx context.Context, id string) (string, error) {
		_, err := d.client.Advance(ctx, id, api.AdvanceNextPhase)
		return "", err
	})
}

// Resolve asks the server to resolve the round. Whether the round may be
// resolved now is the server's call.
func (d *Dispatcher) Resolve() tea.Cmd {
	return d.mutate(api.CmdResolve, func(ctx context.Context, id string) (string, error) {
		_, err := d.client.Advance(ctx, id, api.AdvanceResolveRound)
		return "", err
	})
}

// AddFiller adds count filler agents, clamped to [1,5].
func (d *Dispatcher) AddFiller(count int) tea.Cmd {
	count = api.ClampFillers(count)
	return d.mutate(api.CmdAddFiller, func(ctx context.Context, id string) (string, error) {
		resp, err := d.client.AddFiller(ctx, id, count)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %d filler agent(s). Start the game when ready.", len(resp.Added)), nil
	})
}

// TickFiller is the manual tick. Any success re-syncs.
func (d *Dispatcher) TickFiller() tea.Cmd {
	return d.mutate(api.CmdTickFiller, func(ctx context.Context, id string) (string, error) {
		_, err := d.client.TickFiller(ctx, id)
		return "", err
	})
}

// mutate validates the game id before any I/O and wraps the outcome.
func (d *Dispatcher) mutate(action string, run func(ctx context.Context, id string) (string, error)) tea.Cmd {
	id := d.session.GameID()
	if id == "" {
		return func() tea.Msg {
			return ResultMsg{Action: action, Err: api.ErrNoGame}
		}
	}
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		msg, err := run(ctx, id)
		if err != nil {
			return d.failed(action, id, err)
		}
		log.Info().Str("game_id", id).Str("action", action).Msg("command ok")
		return ResultMsg{Action: action, GameID: id, Resync: true, Message: msg}
	}
}

func (d *Dispatcher) failed(action, id string, err error) ResultMsg {
	log.Warn().Err(err).Str("game_id", id).Str("action", action).Msg("command failed")
	return ResultMsg{Action: action, GameID: id, Err: err}
}

// TickEligible reports whether auto-tick may act on a game in status s.
func TickEligible(s api.Status) bool {
	switch s {
	case api.StatusGameCompleted, api.StatusWaitingForAgents, api.StatusReadyToStart:
		return false
	}
	return true
}

// AutoTick is one auto-tick step for id: re-read state, tick a filler when
// the game is running, and ask for a re-sync only when a filler acted.
// Failures are logged and otherwise ignored.
func (d *Dispatcher) AutoTick(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		state, ok := d.client.GetState(ctx, id).Get()
		if !ok || !TickEligible(state.Status) {
			return nil
		}
		resp, err := d.client.TickFiller(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("game_id", id).Msg("auto-tick failed")
			return nil
		}
		if !resp.Acted() {
			return nil
		}
		log.Debug().Str("game_id", id).Msg("auto-tick acted")
		return ResultMsg{Action: api.CmdTickFiller, GameID: id, Resync: true, Auto: true}
	}
}
