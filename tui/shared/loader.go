package shared

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoaderOp identifies an in-flight command that shows a spinner.
type LoaderOp string

const (
	OpCreateDemo LoaderOp = "create-demo"
	OpStart      LoaderOp = "start"
	OpAdvance    LoaderOp = "advance"
	OpResolve    LoaderOp = "resolve"
	OpAddFiller  LoaderOp = "add-filler"
	OpTickFiller LoaderOp = "tick-filler"
)

// Loader is the status bar spinner. It only ticks while an op is running.
type Loader struct {
	spinner spinner.Model
	ops     map[LoaderOp]string
}

func NewLoader(kind string) Loader {
	return Loader{
		spinner: spinner.New(
			spinner.WithSpinner(ResolveSpinnerType(kind)),
			spinner.WithStyle(SpinnerStyle),
		),
		ops: make(map[LoaderOp]string),
	}
}

// Start marks op as running. The returned command starts the animation when
// nothing else was running.
func (l *Loader) Start(op LoaderOp, label string) tea.Cmd {
	idle := len(l.ops) == 0
	l.ops[op] = label
	if idle {
		return l.spinner.Tick
	}
	return nil
}

func (l *Loader) Stop(op LoaderOp) {
	delete(l.ops, op)
}

func (l Loader) Active() bool {
	return len(l.ops) > 0
}

func (l Loader) Update(msg spinner.TickMsg) (Loader, tea.Cmd) {
	if !l.Active() {
		return l, nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

func (l Loader) View() string {
	if !l.Active() {
		return ""
	}
	labels := make([]string, 0, len(l.ops))
	for _, label := range l.ops {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return l.spinner.View() + " " + strings.Join(labels, ", ")
}
