package curl

import (
	"strings"
	"unicode"
)

// Tokenize splits a raw command string into argument tokens. Single and
// double quotes delimit regions (a quote only closes the region it
// opened; the other quote character is literal inside it), and a
// backslash escapes the following character unconditionally, even inside
// quotes. Runs of whitespace never produce empty tokens and a trailing
// partial token is flushed at end of input.
//
// Shell operators, variable expansion and globbing are not interpreted;
// the caller is expected to hand over a single isolated curl invocation.
func Tokenize(command string) []string {
	var tokens []string
	var current strings.Builder
	var quote rune
	escaped := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, ch := range command {
		switch {
		case escaped:
			current.WriteRune(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				current.WriteRune(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case unicode.IsSpace(ch):
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()

	return tokens
}
