// Package scheduler runs the two periodic tasks of a game session: the
// primary state poll and the optional filler auto-tick. Timers are tea.Cmds
// that sleep on a clockwork.Clock; each armed timer carries a generation tag
// so firings from a cancelled timer are dropped.
package scheduler

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPollInterval     = 2500 * time.Millisecond
	DefaultAutoTickInterval = 4 * time.Second
)

// ErrIdle is returned when auto-tick is turned on with no game loaded.
var ErrIdle = errors.New("load a game first")

type State int

const (
	Idle State = iota
	Polling
	PollingAutoTick
)

func (s State) String() string {
	switch s {
	case Polling:
		return "polling"
	case PollingAutoTick:
		return "polling+autotick"
	}
	return "idle"
}

// PollTickMsg is a primary timer firing.
type PollTickMsg struct{ Gen uint64 }

// AutoTickMsg is an auto-tick timer firing.
type AutoTickMsg struct{ Gen uint64 }

type Intervals struct {
	Poll     time.Duration
	AutoTick time.Duration
}

// Action builds the command run on a firing for the given game id.
type Action func(gameID string) tea.Cmd

type timer struct {
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func (t *timer) armed() bool {
	return t.cancel != nil
}

func (t *timer) stop() {
	if t.cancel != nil {
		t.cancel()
	}
	*t = timer{}
}

// Scheduler is not safe for concurrent use. Call it from Update only.
type Scheduler struct {
	clock     clockwork.Clock
	intervals Intervals
	session   Session
	sync      Action
	autoTick  Action

	gen  uint64
	poll timer
	auto timer
}

// New builds an idle scheduler. sync runs one full sync cycle; autoTick runs
// one auto-tick step. Zero intervals use the defaults.
func New(clock clockwork.Clock, intervals Intervals, sync, autoTick Action) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if intervals.Poll <= 0 {
		intervals.Poll = DefaultPollInterval
	}
	if intervals.AutoTick <= 0 {
		intervals.AutoTick = DefaultAutoTickInterval
	}
	return &Scheduler{
		clock:     clock,
		intervals: intervals,
		sync:      sync,
		autoTick:  autoTick,
	}
}

func (s *Scheduler) State() State {
	switch {
	case !s.poll.armed():
		return Idle
	case s.auto.armed():
		return PollingAutoTick
	}
	return Polling
}

// GameID is the id the session currently points at.
func (s *Scheduler) GameID() string {
	return s.session.GameID()
}

func (s *Scheduler) Intervals() Intervals {
	return s.intervals
}

// StartPolling points the session at id, syncs once right away and arms the
// primary timer. Any armed primary timer is cancelled first, so calling it
// twice leaves one timer. Auto-tick is left running. An empty id stops
// everything.
func (s *Scheduler) StartPolling(id string) tea.Cmd {
	s.poll.stop()
	if s.session.setGameID(id) {
		log.Debug().Str("game_id", id).Msg("session game changed")
	}
	if id == "" {
		s.Stop()
		return nil
	}

	s.arm(&s.poll)
	log.Debug().Str("game_id", id).Uint64("gen", s.poll.gen).Dur("every", s.intervals.Poll).Msg("polling started")
	return tea.Batch(s.sync(id), s.wait(s.poll, s.intervals.Poll, PollTickMsg{Gen: s.poll.gen}))
}

// SetAutoTick arms or cancels the auto-tick timer. The primary timer is never
// touched. Turning it on while idle returns ErrIdle.
func (s *Scheduler) SetAutoTick(on bool) (tea.Cmd, error) {
	if !on {
		if s.auto.armed() {
			log.Debug().Str("game_id", s.GameID()).Msg("auto-tick stopped")
		}
		s.auto.stop()
		return nil, nil
	}
	if s.State() == Idle {
		return nil, ErrIdle
	}
	if s.auto.armed() {
		return nil, nil
	}
	s.arm(&s.auto)
	log.Debug().Str("game_id", s.GameID()).Uint64("gen", s.auto.gen).Dur("every", s.intervals.AutoTick).Msg("auto-tick started")
	return s.wait(s.auto, s.intervals.AutoTick, AutoTickMsg{Gen: s.auto.gen}), nil
}

// HandlePollTick runs a sync for a live firing and re-arms the timer. Stale
// firings return nil.
func (s *Scheduler) HandlePollTick(msg PollTickMsg) tea.Cmd {
	if !s.poll.armed() || msg.Gen != s.poll.gen {
		return nil
	}
	return tea.Batch(
		s.wait(s.poll, s.intervals.Poll, msg),
		s.sync(s.GameID()),
	)
}

// HandleAutoTick runs one auto-tick against the current game id and re-arms.
func (s *Scheduler) HandleAutoTick(msg AutoTickMsg) tea.Cmd {
	if !s.auto.armed() || msg.Gen != s.auto.gen {
		return nil
	}
	return tea.Batch(
		s.wait(s.auto, s.intervals.AutoTick, msg),
		s.autoTick(s.GameID()),
	)
}

// Stop cancels both timers. The session keeps its game id. Stopping an idle
// scheduler does nothing.
func (s *Scheduler) Stop() {
	if s.poll.armed() || s.auto.armed() {
		log.Debug().Str("game_id", s.GameID()).Msg("scheduler stopped")
	}
	s.poll.stop()
	s.auto.stop()
}

func (s *Scheduler) arm(t *timer) {
	s.gen++
	ctx, cancel := context.WithCancel(context.Background())
	*t = timer{gen: s.gen, ctx: ctx, cancel: cancel}
}

// wait sleeps d on the clock and then yields msg, unless t is cancelled first.
func (s *Scheduler) wait(t timer, d time.Duration, msg tea.Msg) tea.Cmd {
	ctx, clock := t.ctx, s.clock
	return func() tea.Msg {
		if ctx.Err() != nil {
			return nil
		}
		tm := clock.NewTimer(d)
		defer tm.Stop()
		select {
		case <-ctx.Done():
			return nil
		case <-tm.Chan():
			return msg
		}
	}
}
