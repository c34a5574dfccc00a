package shared

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Clean makes a server-supplied string safe to print: escape sequences are
// stripped and control characters dropped. Newlines survive only when
// keepNewlines is set.
func Clean(s string, keepNewlines ...bool) string {
	keep := len(keepNewlines) > 0 && keepNewlines[0]
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' && keep:
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r), r == '\u200b', r == '\ufeff':
			return -1
		}
		return r
	}, s)
}
