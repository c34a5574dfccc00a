package gameprompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(key(string(r)))
	}
	return m
}

func TestEnterLoadsTrimmedID(t *testing.T) {
	m := New()
	m.Open("")
	m = typeText(m, " game-7 ")

	res, handled := m.HandleKey(key("enter"))
	require.True(t, handled)
	assert.Equal(t, ActionLoad, res.Action)
	assert.Equal(t, "game-7", res.GameID)
}

func TestEmptyEnterDoesNothing(t *testing.T) {
	m := New()
	m.Open("")
	res, handled := m.HandleKey(key("enter"))
	assert.True(t, handled)
	assert.Equal(t, ActionNone, res.Action)
}

func TestEscCloses(t *testing.T) {
	m := New()
	m.Open("game-1")
	res, _ := m.HandleKey(key("esc"))
	assert.Equal(t, ActionClose, res.Action)
}

func TestTypingIsNotHandled(t *testing.T) {
	m := New()
	m.Open("")
	_, handled := m.HandleKey(key("x"))
	assert.False(t, handled)
}

func TestRecentCycling(t *testing.T) {
	m := New()
	for _, id := range []string{"a", "b", "c", "b"} {
		m.Remember(id)
	}
	assert.Equal(t, []string{"b", "c", "a"}, m.Recent())

	m.Open("")
	m.HandleKey(key("up"))
	m.HandleKey(key("up"))
	res, _ := m.HandleKey(key("enter"))
	assert.Equal(t, "c", res.GameID)

	m.Open("")
	m.HandleKey(key("up"))
	m.HandleKey(key("up"))
	m.HandleKey(key("down"))
	res, _ = m.HandleKey(key("enter"))
	assert.Equal(t, "b", res.GameID)
}

func TestRecentIsBounded(t *testing.T) {
	m := New()
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		m.Remember(id)
	}
	assert.Equal(t, []string{"7", "6", "5", "4", "3"}, m.Recent())
}
