package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/dylan/trolleydash/api"
	"github.com/dylan/trolleydash/command"
	"github.com/dylan/trolleydash/config"
	"github.com/dylan/trolleydash/export"
	"github.com/dylan/trolleydash/scheduler"
	"github.com/dylan/trolleydash/tui/board"
	"github.com/dylan/trolleydash/tui/feed"
	"github.com/dylan/trolleydash/tui/gameprompt"
	"github.com/dylan/trolleydash/tui/help"
	"github.com/dylan/trolleydash/tui/icons"
	"github.com/dylan/trolleydash/tui/shared"
	"github.com/dylan/trolleydash/tui/sidepane"
	"github.com/dylan/trolleydash/view"
)

const (
	boardHeight  = 12
	sidebarWidth = 34
)

type App struct {
	cfg   config.Config
	clock clockwork.Clock

	sched    *scheduler.Scheduler
	dispatch *command.Dispatcher

	model    view.Model
	lastSync time.Time
	fillers  int

	feed     feed.Model
	helpView help.Model
	prompt   gameprompt.Model
	loader   shared.Loader
	feedback *shared.Feedback

	showHelp    bool
	showPrompt  bool
	showSidebar bool

	width  int
	height int
}

// NewApp wires the scheduler and dispatcher around client. A nil clock uses
// the real one.
func NewApp(cfg config.Config, client command.Client, clock clockwork.Clock) App {
	shared.InitStyles(cfg.ResolvedTheme())
	icons.SetNerdFonts(cfg.Display.NerdFonts)
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	// The scheduler's timers call into the dispatcher, and the dispatcher
	// reads the game id from the scheduler's session.
	var d *command.Dispatcher
	sched := scheduler.New(clock,
		scheduler.Intervals{
			Poll:     cfg.ResolvedPollInterval(),
			AutoTick: cfg.ResolvedAutoTickInterval(),
		},
		func(id string) tea.Cmd { return d.Sync(id) },
		func(id string) tea.Cmd { return d.AutoTick(id) },
	)
	d = command.New(client, sched, command.Options{
		Timeout:   cfg.ResolvedTimeout(),
		FeedLimit: cfg.ResolvedFeedLimit(),
		Clock:     clock,
	})

	a := App{
		cfg:         cfg,
		clock:       clock,
		sched:       sched,
		dispatch:    d,
		fillers:     cfg.ResolvedFillerCount(),
		feed:        feed.New(),
		helpView:    help.New(),
		prompt:      gameprompt.New(),
		loader:      shared.NewLoader(cfg.ResolvedTheme().SpinnerType),
		showSidebar: cfg.ResolvedShowSidebar(),
	}
	a.model = a.build(command.SyncedMsg{GameID: cfg.GameID})
	a.feed.SetFeed(a.model.Feed)
	a.helpView.SetFillerCount(a.fillers)
	a.prompt.Remember(cfg.GameID)
	return a
}

func (a App) Init() tea.Cmd {
	if a.cfg.GameID == "" {
		return nil
	}
	return a.sched.StartPolling(a.cfg.GameID)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layoutSizes()
		a.helpView.SetSize(msg.Width, msg.Height)
		a.prompt.SetSize(msg.Width, msg.Height)
		return a, nil

	case command.SyncedMsg:
		if msg.GameID != a.sched.GameID() {
			log.Debug().Str("game_id", msg.GameID).Msg("dropping sync for previous game")
			return a, nil
		}
		a.model = a.build(msg)
		a.feed.SetFeed(a.model.Feed)
		a.lastSync = msg.At
		return a, nil

	case command.ResultMsg:
		return a.handleResult(msg)

	case scheduler.PollTickMsg:
		return a, a.sched.HandlePollTick(msg)

	case scheduler.AutoTickMsg:
		return a, a.sched.HandleAutoTick(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.loader, cmd = a.loader.Update(msg)
		return a, cmd

	case shared.FeedbackExpiredMsg:
		if a.feedback != nil && !a.feedback.Modal() && a.feedback.Timestamp.Equal(msg.Timestamp) {
			a.feedback = nil
		}
		return a, nil

	case shared.LoadGameMsg:
		a.showPrompt = false
		a.prompt.Remember(msg.GameID)
		log.Info().Str("game_id", msg.GameID).Msg("loading game")
		return a, a.sched.StartPolling(msg.GameID)

	case shared.ClosePromptMsg:
		a.showPrompt = false
		return a, nil

	case shared.SummaryCopiedMsg:
		if msg.Err != nil {
			cmd := a.setFeedback(shared.FeedbackError, "Copy failed: "+msg.Err.Error())
			return a, cmd
		}
		cmd := a.setFeedback(shared.FeedbackSuccess, "Game summary copied to clipboard")
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.showPrompt {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) build(msg command.SyncedMsg) view.Model {
	return view.Build(view.Inputs{
		GameID:       msg.GameID,
		State:        msg.State,
		Feed:         msg.Feed,
		Scoreboard:   msg.Scoreboard,
		MaxArguments: a.cfg.ResolvedMaxArguments(),
		MaxEvents:    a.cfg.ResolvedMaxEvents(),
	})
}

// handleResult applies a finished command. A failure only raises the modal.
// Auto-tick results leave the spinner alone, it belongs to a manual command.
func (a App) handleResult(msg command.ResultMsg) (tea.Model, tea.Cmd) {
	if !msg.Auto {
		a.loader.Stop(shared.LoaderOp(msg.Action))
	}

	if msg.Failed() {
		a.feedback = &shared.Feedback{
			Level:     shared.FeedbackFatal,
			Message:   msg.FailureText(),
			Timestamp: a.clock.Now(),
			Op:        shared.LoaderOp(msg.Action),
		}
		return a, nil
	}

	var cmds []tea.Cmd
	if msg.Message != "" {
		cmds = append(cmds, a.setFeedback(shared.FeedbackSuccess, msg.Message))
	}
	if msg.Resync {
		switch {
		case msg.Action == api.CmdCreateDemo:
			a.prompt.Remember(msg.GameID)
			cmds = append(cmds, a.sched.StartPolling(msg.GameID))
		case msg.GameID == a.sched.GameID():
			cmds = append(cmds, a.sched.StartPolling(msg.GameID))
		default:
			log.Debug().Str("game_id", msg.GameID).Str("action", msg.Action).Msg("skipping resync for previous game")
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) setFeedback(level shared.FeedbackLevel, message string) tea.Cmd {
	f := shared.Feedback{Level: level, Message: message, Timestamp: a.clock.Now()}
	a.feedback = &f
	return shared.ExpireFeedback(f)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.sched.Stop()
		return a, tea.Quit
	}

	// A modal swallows the key that dismisses it.
	if a.feedback != nil && a.feedback.Modal() {
		a.feedback = nil
		return a, nil
	}

	if a.showPrompt {
		return a.handlePromptKey(msg)
	}

	if key.Matches(msg, shared.Keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, shared.Keys.Quit):
		a.sched.Stop()
		return a, tea.Quit

	case key.Matches(msg, shared.Keys.CreateDemo):
		cmd := a.run(shared.OpCreateDemo, "creating demo", a.dispatch.CreateDemo())
		return a, cmd
	case key.Matches(msg, shared.Keys.Start):
		cmd := a.run(shared.OpStart, "starting", a.dispatch.Start())
		return a, cmd
	case key.Matches(msg, shared.Keys.Advance):
		cmd := a.run(shared.OpAdvance, "advancing", a.dispatch.Advance())
		return a, cmd
	case key.Matches(msg, shared.Keys.Resolve):
		cmd := a.run(shared.OpResolve, "resolving", a.dispatch.Resolve())
		return a, cmd
	case key.Matches(msg, shared.Keys.AddFiller):
		cmd := a.run(shared.OpAddFiller, fmt.Sprintf("adding %d", a.fillers), a.dispatch.AddFiller(a.fillers))
		return a, cmd
	case key.Matches(msg, shared.Keys.Tick):
		cmd := a.run(shared.OpTickFiller, "ticking", a.dispatch.TickFiller())
		return a, cmd

	case key.Matches(msg, shared.Keys.MoreFillers):
		cmd := a.setFillers(a.fillers + 1)
		return a, cmd
	case key.Matches(msg, shared.Keys.FewerFillers):
		cmd := a.setFillers(a.fillers - 1)
		return a, cmd

	case key.Matches(msg, shared.Keys.AutoTick):
		on := a.sched.State() != scheduler.PollingAutoTick
		cmd, err := a.sched.SetAutoTick(on)
		if err != nil {
			warn := a.setFeedback(shared.FeedbackWarning, "Load a game first")
			return a, warn
		}
		label := "Auto-tick off"
		if on {
			label = "Auto-tick on"
		}
		info := a.setFeedback(shared.FeedbackInfo, label)
		return a, tea.Batch(cmd, info)

	case key.Matches(msg, shared.Keys.Copy):
		return a, copySummaryCmd(a.model)

	case key.Matches(msg, shared.Keys.Load):
		a.prompt.Open(a.sched.GameID())
		a.showPrompt = true
		return a, textinput.Blink

	case key.Matches(msg, shared.Keys.Up):
		a.feed.ScrollUp()
	case key.Matches(msg, shared.Keys.Down):
		a.feed.ScrollDown()
	case key.Matches(msg, shared.Keys.PageUp):
		a.feed.PageUp()
	case key.Matches(msg, shared.Keys.PageDown):
		a.feed.PageDown()
	}
	return a, nil
}

func (a App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, handled := a.prompt.HandleKey(msg)
	switch res.Action {
	case gameprompt.ActionClose:
		return a, func() tea.Msg { return shared.ClosePromptMsg{} }
	case gameprompt.ActionLoad:
		id := res.GameID
		return a, func() tea.Msg { return shared.LoadGameMsg{GameID: id} }
	}
	if handled {
		return a, nil
	}
	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

// run starts the spinner for op alongside cmd.
func (a *App) run(op shared.LoaderOp, label string, cmd tea.Cmd) tea.Cmd {
	return tea.Batch(a.loader.Start(op, label), cmd)
}

func (a *App) setFillers(n int) tea.Cmd {
	a.fillers = api.ClampFillers(n)
	a.helpView.SetFillerCount(a.fillers)
	return a.setFeedback(shared.FeedbackInfo, fmt.Sprintf("Fillers per add: %d", a.fillers))
}

func (a App) View() string {
	if a.showHelp {
		return a.helpView.View()
	}

	contentH := max(a.height-1, 1) // reserve 1 for status bar
	leftW, rightW := a.columnWidths()

	left := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(leftW).Height(boardHeight).MaxHeight(boardHeight).
			Render(board.Render(a.model, leftW)),
		a.feed.View(),
	)
	left = lipgloss.NewStyle().Width(leftW).Height(contentH).MaxHeight(contentH).Render(left)

	out := left
	if rightW > 0 {
		right := shared.PaneBorderStyle.Height(contentH).MaxHeight(contentH).
			Render(sidepane.Render(a.model, rightW-2))
		out = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}
	out += a.renderStatusBar()

	switch {
	case a.feedback != nil && a.feedback.Modal():
		return a.renderFatal()
	case a.showPrompt:
		return a.prompt.ViewOverlay(a.width, a.height)
	}
	return out
}

func (a App) columnWidths() (left, right int) {
	if !a.showSidebar || a.width < sidebarWidth*2 {
		return a.width, 0
	}
	return a.width - sidebarWidth, sidebarWidth
}

func (a *App) layoutSizes() {
	contentH := max(a.height-1, 3)
	leftW, _ := a.columnWidths()
	a.feed.SetSize(leftW, max(contentH-boardHeight, 1))
}

func (a App) renderFatal() string {
	body := shared.ErrorStyle.Bold(true).Render("Error") + "\n\n" +
		shared.Clean(a.feedback.Message, true) + "\n\n" +
		shared.HelpDescStyle.Render("press any key to dismiss")
	overlay := shared.FatalOverlayStyle.Width(min(max(a.width-8, 20), 72)).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (a App) renderStatusBar() string {
	parts := []string{a.cfg.WorkspaceName()}

	if id := a.sched.GameID(); id != "" {
		parts = append(parts, shared.Clean(id))
	} else {
		parts = append(parts, "no game")
	}
	if a.model.Available {
		parts = append(parts, shared.Clean(string(a.model.Status)))
	}
	parts = append(parts, a.sched.State().String(), fmt.Sprintf("fillers %d", a.fillers))
	if !a.lastSync.IsZero() {
		parts = append(parts, "synced "+humanize.RelTime(a.lastSync, a.clock.Now(), "ago", "from now"))
	}
	if a.loader.Active() {
		parts = append(parts, a.loader.View())
	}

	status := strings.Join(parts, " │ ")
	if a.feedback != nil && !a.feedback.Modal() {
		status += " │ " + shared.FeedbackStyle(a.feedback.Level).Render(shared.Clean(a.feedback.Message))
	}
	status += " │ ? for help"

	return "\n" + shared.StatusBarStyle.Width(a.width).MaxHeight(1).Render(status)
}

// --- Commands ---

func copySummaryCmd(m view.Model) tea.Cmd {
	return func() tea.Msg {
		text, err := export.BuildSummary(m)
		if err == nil {
			err = export.CopyToClipboard(text)
		}
		return shared.SummaryCopiedMsg{Err: err}
	}
}
