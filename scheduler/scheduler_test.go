package scheduler

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncMsg struct{ id string }

type tickMsg struct{ id string }

// harness runs commands the way the tea runtime does: each in its own
// goroutine, with batches flattened and nil messages dropped.
type harness struct {
	t    *testing.T
	msgs chan tea.Msg
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, msgs: make(chan tea.Msg, 64)}
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		switch msg := cmd().(type) {
		case nil:
		case tea.BatchMsg:
			for _, c := range msg {
				h.run(c)
			}
		default:
			h.msgs <- msg
		}
	}()
}

func (h *harness) next() tea.Msg {
	h.t.Helper()
	select {
	case msg := <-h.msgs:
		return msg
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for a message")
		return nil
	}
}

func (h *harness) quiet(d time.Duration) {
	h.t.Helper()
	select {
	case msg := <-h.msgs:
		h.t.Fatalf("unexpected message %#v", msg)
	case <-time.After(d):
	}
}

func newTestScheduler(clk clockwork.Clock, iv Intervals) *Scheduler {
	return New(clk, iv,
		func(id string) tea.Cmd { return func() tea.Msg { return syncMsg{id} } },
		func(id string) tea.Cmd { return func() tea.Msg { return tickMsg{id} } },
	)
}

func waiters(t *testing.T, clk *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clk.BlockUntilContext(ctx, n))
}

func TestDoubleStartPollingFiresOncePerInterval(t *testing.T) {
	clk := clockwork.NewFakeClock()
	s := newTestScheduler(clk, Intervals{Poll: time.Second, AutoTick: time.Hour})
	h := newHarness(t)

	first := s.StartPolling("g1")
	second := s.StartPolling("g1")
	h.run(first)
	h.run(second)
	assert.Equal(t, syncMsg{"g1"}, h.next())
	assert.Equal(t, syncMsg{"g1"}, h.next())
	assert.Equal(t, Polling, s.State())

	const intervals = 5
	fired := 0
	for i := 0; i < intervals; i++ {
		waiters(t, clk, 1)
		clk.Advance(time.Second)

		tick, ok := h.next().(PollTickMsg)
		require.True(t, ok)
		cmd := s.HandlePollTick(tick)
		require.NotNil(t, cmd)
		fired++
		h.run(cmd)
		assert.Equal(t, syncMsg{"g1"}, h.next())
	}
	assert.Equal(t, intervals, fired)
	h.quiet(50 * time.Millisecond)
}

func TestStaleFiringsAreDropped(t *testing.T) {
	s := newTestScheduler(clockwork.NewFakeClock(), Intervals{})
	s.StartPolling("g1")
	old := PollTickMsg{Gen: s.poll.gen}

	s.StartPolling("g1")
	assert.Nil(t, s.HandlePollTick(old))
	assert.NotNil(t, s.HandlePollTick(PollTickMsg{Gen: s.poll.gen}))

	_, err := s.SetAutoTick(true)
	require.NoError(t, err)
	live := AutoTickMsg{Gen: s.auto.gen}
	_, err = s.SetAutoTick(false)
	require.NoError(t, err)
	assert.Nil(t, s.HandleAutoTick(live))
}

func TestAutoTickRefusedWhileIdle(t *testing.T) {
	s := newTestScheduler(clockwork.NewFakeClock(), Intervals{})
	cmd, err := s.SetAutoTick(true)
	assert.ErrorIs(t, err, ErrIdle)
	assert.Nil(t, cmd)
	assert.Equal(t, Idle, s.State())
}

func TestAutoTickFollowsGameChange(t *testing.T) {
	clk := clockwork.NewFakeClock()
	s := newTestScheduler(clk, Intervals{Poll: time.Hour, AutoTick: time.Second})
	h := newHarness(t)

	h.run(s.StartPolling("g1"))
	assert.Equal(t, syncMsg{"g1"}, h.next())

	cmd, err := s.SetAutoTick(true)
	require.NoError(t, err)
	h.run(cmd)
	assert.Equal(t, PollingAutoTick, s.State())
	waiters(t, clk, 2)

	again, err := s.SetAutoTick(true)
	require.NoError(t, err)
	assert.Nil(t, again, "auto-tick is never armed twice")

	autoGen := s.auto.gen
	h.run(s.StartPolling("g2"))
	assert.Equal(t, syncMsg{"g2"}, h.next())
	assert.Equal(t, PollingAutoTick, s.State())
	assert.Equal(t, autoGen, s.auto.gen, "restarting polling keeps auto-tick")

	waiters(t, clk, 2)
	clk.Advance(time.Second)
	tick, ok := h.next().(AutoTickMsg)
	require.True(t, ok)
	h.run(s.HandleAutoTick(tick))
	assert.Equal(t, tickMsg{"g2"}, h.next())
}

func TestLeavingAutoTickKeepsPolling(t *testing.T) {
	s := newTestScheduler(clockwork.NewFakeClock(), Intervals{})
	s.StartPolling("g1")
	pollGen := s.poll.gen

	_, err := s.SetAutoTick(true)
	require.NoError(t, err)
	_, err = s.SetAutoTick(false)
	require.NoError(t, err)

	assert.Equal(t, Polling, s.State())
	assert.Equal(t, pollGen, s.poll.gen)
}

func TestStopIsIdempotent(t *testing.T) {
	clk := clockwork.NewFakeClock()
	s := newTestScheduler(clk, Intervals{Poll: time.Second, AutoTick: time.Second})
	h := newHarness(t)

	h.run(s.StartPolling("g1"))
	assert.Equal(t, syncMsg{"g1"}, h.next())
	cmd, err := s.SetAutoTick(true)
	require.NoError(t, err)
	h.run(cmd)
	waiters(t, clk, 2)
	gen := s.poll.gen

	s.Stop()
	s.Stop()
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, "g1", s.GameID())
	assert.Nil(t, s.HandlePollTick(PollTickMsg{Gen: gen}))

	waiters(t, clk, 0)
	clk.Advance(5 * time.Second)
	h.quiet(50 * time.Millisecond)
}

func TestStartPollingWithoutGameStaysIdle(t *testing.T) {
	s := newTestScheduler(clockwork.NewFakeClock(), Intervals{})
	assert.Nil(t, s.StartPolling(""))
	assert.Equal(t, Idle, s.State())
}

func TestDefaultIntervals(t *testing.T) {
	s := New(nil, Intervals{}, nil, nil)
	assert.Equal(t, DefaultPollInterval, s.Intervals().Poll)
	assert.Equal(t, DefaultAutoTickInterval, s.Intervals().AutoTick)
}
