package difftext

import "strings"

// Format identifies how the lines of a displayed buffer are marked.
// It is derived per call by inspecting the buffer; the buffer can change
// between calls, so the result is never cached.
type Format int

const (
	// FormatPlain is a buffer with no diff markers (a plain file view).
	FormatPlain Format = iota
	// FormatUnified is a unified diff with single-column line prefixes.
	FormatUnified
	// FormatCombined is a multi-parent (merge) diff with two prefix columns.
	FormatCombined
)

// String returns the string representation of a Format.
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatUnified:
		return "unified"
	case FormatCombined:
		return "combined"
	default:
		return "unknown"
	}
}

// Role classifies a single line of a displayed diff.
type Role int

const (
	// RoleOther is any line that carries no recognized change marker:
	// file headers, hunk headers, combined-diff metadata, malformed input.
	RoleOther Role = iota
	// RoleContext is an unchanged line shown for context.
	RoleContext
	// RoleAdded is a line added by the change.
	RoleAdded
	// RoleRemoved is a line removed by the change.
	RoleRemoved
)

// String returns the string representation of a Role.
func (r Role) String() string {
	switch r {
	case RoleContext:
		return "context"
	case RoleAdded:
		return "added"
	case RoleRemoved:
		return "removed"
	default:
		return "other"
	}
}

// unifiedPrefixes and combinedPrefixes are the marker columns stripped from
// copied text. Prefixes within one set are mutually exclusive by first
// character pair, so membership order does not matter.
var (
	unifiedPrefixes  = []string{" ", "-", "+"}
	combinedPrefixes = []string{"  ", "++", "+ ", " +", "--", "- ", " -"}
)

// PrefixSet returns the marker prefixes recognized for the given format.
// Plain buffers have none.
func PrefixSet(format Format) []string {
	switch format {
	case FormatUnified:
		return unifiedPrefixes
	case FormatCombined:
		return combinedPrefixes
	default:
		return nil
	}
}

// IsCombinedDiff reports whether any line of text carries multi-parent
// merge markers: a combined hunk header ("@@@") or a two-column +/- prefix
// pair. The "--- "/"+++ " file header lines of an ordinary unified diff do
// not count.
func IsCombinedDiff(text string) bool {
	for line := range strings.Lines(text) {
		if isCombinedMarker(line) {
			return true
		}
	}
	return false
}

func isCombinedMarker(line string) bool {
	if strings.HasPrefix(line, "@@@") {
		return true
	}
	if len(line) < 2 {
		return false
	}
	if !isMergeSymbol(line[0]) || !isMergeSymbol(line[1]) {
		return false
	}
	return !strings.HasPrefix(line, "+++") && !strings.HasPrefix(line, "---")
}

func isMergeSymbol(c byte) bool {
	return c == '+' || c == '-'
}

// DetectFormat derives the buffer's format from its content.
func DetectFormat(text string) Format {
	if IsCombinedDiff(text) {
		return FormatCombined
	}
	if strings.HasPrefix(text, "@@") || strings.Contains(text, "\n@@") {
		return FormatUnified
	}
	return FormatPlain
}

// ClassifyLine determines the role of a single line under the given format.
//
// In a unified diff the "--- " and "+++ " file-header lines share their
// first column with real changes but carry no change, so they classify as
// RoleOther. In a combined diff the doubled markers "++" and "--" denote
// per-parent metadata rather than a real change, so they classify as
// RoleOther; only the mixed pairs mark added or removed lines.
func ClassifyLine(format Format, line string) Role {
	switch format {
	case FormatUnified:
		if line == "" {
			return RoleOther
		}
		if strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
			return RoleOther
		}
		switch line[0] {
		case ' ':
			return RoleContext
		case '+':
			return RoleAdded
		case '-':
			return RoleRemoved
		}
		return RoleOther

	case FormatCombined:
		if len(line) < 2 {
			return RoleOther
		}
		switch line[:2] {
		case "  ":
			return RoleContext
		case "+ ", " +":
			return RoleAdded
		case "- ", " -":
			return RoleRemoved
		}
		return RoleOther

	default:
		return RoleOther
	}
}

// IsChange reports whether a role marks an added or removed line.
func IsChange(r Role) bool {
	return r == RoleAdded || r == RoleRemoved
}
