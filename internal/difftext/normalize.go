package difftext

import "strings"

// Normalize rewrites line endings in text to the target convention.
//
// Exactly one rewrite branch runs, checked in priority order: "\r\n" first,
// then bare "\r", then bare "\n". Mixed-ending input resolves to whichever
// marker is found first rather than being handled per line. The operation
// is idempotent.
func Normalize(text, target string) string {
	switch {
	case strings.Contains(text, "\r\n"):
		return strings.ReplaceAll(text, "\r\n", target)
	case strings.Contains(text, "\r"):
		return strings.ReplaceAll(text, "\r", target)
	default:
		return strings.ReplaceAll(text, "\n", target)
	}
}
