package icons

import "github.com/dylan/trolleydash/view"

var useNerdFonts bool

// SetNerdFonts enables or disables Nerd Font icons.
func SetNerdFonts(enabled bool) { useNerdFonts = enabled }

// --- Unicode fallback icons ---

var roleIcons = map[view.Role]string{
	view.RoleOperator: "◆",
	view.RoleMajority: "▲",
	view.RoleMinority: "▼",
}

var stepIcons = map[view.StepState]string{
	view.StepPending: "○",
	view.StepActive:  "●",
	view.StepDone:    "✓",
}

// --- Nerd Font v3 icons ---

var nerdRoleIcons = map[view.Role]string{
	view.RoleOperator: "\uf0e3", // gavel
	view.RoleMajority: "\uf0c0", // users
	view.RoleMinority: "\uf007", // user
}

var nerdStepIcons = map[view.StepState]string{
	view.StepPending: "\uf10c", // circle-o
	view.StepActive:  "\uf192", // dot-circle-o
	view.StepDone:    "\uf058", // check-circle
}

// ForRole returns the glyph shown next to a role label.
func ForRole(r view.Role) string {
	if useNerdFonts {
		if icon, ok := nerdRoleIcons[r]; ok {
			return icon
		}
	}
	if icon, ok := roleIcons[r]; ok {
		return icon
	}
	return "·"
}

// ForStep returns the glyph for a phase stepper marker.
func ForStep(s view.StepState) string {
	if useNerdFonts {
		return nerdStepIcons[s]
	}
	return stepIcons[s]
}

// Trolley is drawn at the switch between the two tracks.
func Trolley() string {
	if useNerdFonts {
		return "\uf238" // train
	}
	return "▣"
}

// Argued marks a token whose agent has argued this phase.
func Argued() string {
	if useNerdFonts {
		return "\uf075" // comment
	}
	return "•"
}
