package tui

import (
	"context"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylan/trolleydash/api"
	"github.com/dylan/trolleydash/api/apitest"
	"github.com/dylan/trolleydash/command"
	"github.com/dylan/trolleydash/config"
	"github.com/dylan/trolleydash/scheduler"
	"github.com/dylan/trolleydash/tui/shared"
)

// driver plays the tea runtime: commands run in goroutines and their
// messages are fed back through Update one at a time.
type driver struct {
	t    *testing.T
	app  App
	clk  *clockwork.FakeClock
	srv  *apitest.Server
	msgs chan tea.Msg
}

func newDriver(t *testing.T) *driver {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	clk := clockwork.NewFakeClock()
	cfg := config.Config{Server: config.ServerConfig{BaseURL: srv.URL}}
	app := NewApp(cfg, api.NewClient(cfg.ResolvedBaseURL(), cfg.ResolvedAPIPrefix()), clk)

	d := &driver{t: t, app: app, clk: clk, srv: srv, msgs: make(chan tea.Msg, 256)}
	t.Cleanup(d.app.sched.Stop)
	d.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return d
}

func (d *driver) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		switch msg := cmd().(type) {
		case nil:
		case tea.BatchMsg:
			for _, c := range msg {
				d.run(c)
			}
		default:
			d.msgs <- msg
		}
	}()
}

func (d *driver) send(msg tea.Msg) {
	m, cmd := d.app.Update(msg)
	d.app = m.(App)
	d.run(cmd)
}

func (d *driver) press(keys string) {
	for _, r := range keys {
		d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		d.settle()
	}
}

// settle feeds messages back until nothing arrives for a while.
func (d *driver) settle() {
	for {
		select {
		case msg := <-d.msgs:
			d.send(msg)
		case <-time.After(300 * time.Millisecond):
			return
		}
	}
}

func (d *driver) feedback() shared.Feedback {
	d.t.Helper()
	require.NotNil(d.t, d.app.feedback)
	return *d.app.feedback
}

func TestCreateDemoThenAddFillers(t *testing.T) {
	d := newDriver(t)

	d.press("n")
	assert.Equal(t, api.StatusWaitingForAgents, d.app.model.Status)
	assert.NotEmpty(t, d.app.sched.GameID())
	assert.Equal(t, scheduler.Polling, d.app.sched.State())
	assert.Equal(t, command.CreateDemoMessage, d.feedback().Message)
	assert.False(t, d.app.loader.Active())

	d.press("+f")
	require.Len(t, d.app.model.Coverage, 3)
	var names []string
	for _, row := range d.app.model.Coverage {
		names = append(names, row.Name)
		assert.False(t, row.Complete, row.Name)
	}
	assert.ElementsMatch(t, []string{"Filler 1", "Filler 2", "Filler 3"}, names)
	assert.Equal(t, api.StatusReadyToStart, d.app.model.Status)

	out := ansi.Strip(d.app.View())
	assert.Contains(t, out, "Filler 3")
	assert.Contains(t, out, "fillers 3")
}

func TestFailedCommandChangesNothing(t *testing.T) {
	d := newDriver(t)
	d.press("n+f")
	require.Equal(t, api.StatusReadyToStart, d.app.model.Status)

	before := d.app.model
	lastSync := d.app.lastSync
	state := d.app.sched.State()
	stateHits := d.srv.Hits("state")

	d.srv.Fail("start", http.StatusInternalServerError, "engine exploded")
	d.press("s")

	assert.Equal(t, before, d.app.model)
	assert.Equal(t, lastSync, d.app.lastSync)
	assert.Equal(t, state, d.app.sched.State())
	assert.Equal(t, stateHits, d.srv.Hits("state"), "no re-fetch after a failure")

	fb := d.feedback()
	assert.True(t, fb.Modal())
	assert.Equal(t, "Start failed: engine exploded", fb.Message)
	assert.Contains(t, ansi.Strip(d.app.View()), "engine exploded")

	// The dismissing key does nothing else.
	d.press("n")
	assert.Nil(t, d.app.feedback)
	assert.Equal(t, 1, d.srv.Hits("create-demo"))

	d.srv.Recover("start")
	d.press("s")
	assert.Equal(t, api.StatusInProgress, d.app.model.Status)
	assert.Greater(t, d.srv.Hits("state"), stateHits)
}

func TestCommandWithoutGame(t *testing.T) {
	d := newDriver(t)

	d.press("s")
	fb := d.feedback()
	assert.True(t, fb.Modal())
	assert.Equal(t, "Load or create a game first", fb.Message)
	assert.Zero(t, d.srv.Hits("start"))
	assert.Equal(t, scheduler.Idle, d.app.sched.State())
}

func TestAutoTickWhileIdleWarns(t *testing.T) {
	d := newDriver(t)

	d.press("T")
	fb := d.feedback()
	assert.Equal(t, shared.FeedbackWarning, fb.Level)
	assert.Equal(t, "Load a game first", fb.Message)
	assert.Equal(t, scheduler.Idle, d.app.sched.State())
}

func TestLoadGameFromPrompt(t *testing.T) {
	d := newDriver(t)
	d.srv.AddGame("g9")

	d.press("l")
	require.True(t, d.app.showPrompt)
	d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g9")})
	d.send(tea.KeyMsg{Type: tea.KeyEnter})
	d.settle()

	assert.False(t, d.app.showPrompt)
	assert.Equal(t, "g9", d.app.sched.GameID())
	assert.Equal(t, "g9", d.app.model.GameID)
	assert.Equal(t, api.StatusWaitingForAgents, d.app.model.Status)
	assert.Equal(t, []string{"g9"}, d.app.prompt.Recent())
}

func TestPollingFollowsTheClock(t *testing.T) {
	d := newDriver(t)
	d.srv.AddGame("g1")
	d.send(shared.LoadGameMsg{GameID: "g1"})
	d.settle()
	hits := d.srv.Hits("state")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.clk.BlockUntilContext(ctx, 1))
	d.clk.Advance(d.app.sched.Intervals().Poll)
	d.settle()

	assert.Equal(t, hits+1, d.srv.Hits("state"))
	assert.Equal(t, d.clk.Now(), d.app.lastSync)
}

func TestStaleSyncIsDropped(t *testing.T) {
	d := newDriver(t)
	d.srv.AddGame("g1")
	d.send(shared.LoadGameMsg{GameID: "g1"})
	d.settle()
	before := d.app.model

	d.send(command.SyncedMsg{GameID: "other", State: api.Available(api.GameSnapshot{Status: api.StatusGameCompleted})})
	assert.Equal(t, before, d.app.model)
}

func TestQuitStopsScheduler(t *testing.T) {
	d := newDriver(t)
	d.srv.AddGame("g1")
	d.send(shared.LoadGameMsg{GameID: "g1"})
	d.settle()
	require.Equal(t, scheduler.Polling, d.app.sched.State())

	_, cmd := d.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, scheduler.Idle, d.app.sched.State())
}

func TestCopyWithoutGameReportsError(t *testing.T) {
	d := newDriver(t)

	d.press("y")
	fb := d.feedback()
	assert.Equal(t, shared.FeedbackError, fb.Level)
	assert.Equal(t, "Copy failed: no game loaded", fb.Message)
	assert.False(t, fb.Modal())
}

func TestStatusBarCleansServerStatus(t *testing.T) {
	d := newDriver(t)
	d.srv.AddGame("g1")
	d.send(shared.LoadGameMsg{GameID: "g1"})
	d.settle()

	snap := api.GameSnapshot{Status: "in_progress\x1b]0;pwned\x07\x1b[2J"}
	d.send(command.SyncedMsg{GameID: "g1", State: api.Available(snap), At: d.clk.Now()})

	out := d.app.View()
	assert.NotContains(t, out, "\x1b]")
	assert.NotContains(t, out, "\x1b[2J")
	assert.NotContains(t, out, "pwned")
	assert.Contains(t, ansi.Strip(out), "in_progress")
}

func TestAutoTickResultKeepsManualSpinner(t *testing.T) {
	d := newDriver(t)
	d.app.loader.Start(shared.OpTickFiller, "ticking")
	require.True(t, d.app.loader.Active())

	d.send(command.ResultMsg{Action: api.CmdTickFiller, GameID: "g1", Resync: true, Auto: true})
	assert.True(t, d.app.loader.Active(), "auto-tick must not stop a manual tick")

	d.send(command.ResultMsg{Action: api.CmdTickFiller, GameID: "g1", Resync: true})
	assert.False(t, d.app.loader.Active())
}
