package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dylan/trolleydash/view"
)

func TestFallbackAndNerdIcons(t *testing.T) {
	t.Cleanup(func() { SetNerdFonts(false) })

	SetNerdFonts(false)
	assert.Equal(t, "✓", ForStep(view.StepDone))
	assert.Equal(t, "▲", ForRole(view.RoleMajority))
	assert.Equal(t, "·", ForRole(view.Role(42)))

	SetNerdFonts(true)
	assert.Equal(t, "\uf058", ForStep(view.StepDone))
	assert.NotEqual(t, "▣", Trolley())
}
