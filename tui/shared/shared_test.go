package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsEscapes(t *testing.T) {
	assert.Equal(t, "red name", Clean("\x1b[31mred\x1b[0m name"))
	assert.Equal(t, "title", Clean("\x1b]0;pwned\x07title"))
	assert.Equal(t, "ab", Clean("a\x00\rb"))
	assert.Equal(t, "a b", Clean("a\tb"))
	assert.Equal(t, "ab", Clean("a\nb"))
	assert.Equal(t, "a\nb", Clean("a\nb", true))
	assert.Equal(t, "Zoë", Clean("Zoë"))
}

func TestLoaderLifecycle(t *testing.T) {
	l := NewLoader("dot")
	assert.False(t, l.Active())
	assert.Empty(t, l.View())

	assert.NotNil(t, l.Start(OpStart, "starting"))
	assert.Nil(t, l.Start(OpAdvance, "advancing"), "already ticking")
	assert.Contains(t, l.View(), "advancing, starting")

	l.Stop(OpStart)
	l.Stop(OpAdvance)
	assert.False(t, l.Active())
}

func TestExpireFeedback(t *testing.T) {
	assert.Nil(t, ExpireFeedback(Feedback{Level: FeedbackFatal, Timestamp: time.Now()}))
	assert.NotNil(t, ExpireFeedback(Feedback{Level: FeedbackInfo, Timestamp: time.Now()}))
	assert.True(t, Feedback{Level: FeedbackFatal}.Modal())
}
