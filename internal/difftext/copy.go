package difftext

import (
	"strings"

	"github.com/dshills/diffscope/internal/diffbuf"
)

// hunkMarker starts the first real hunk of a displayed diff. Everything
// before it is the diff header (file names, mode lines) and is always
// copied verbatim.
const hunkMarker = "\n@@"

// StripPrefixes extracts the selected text, or the entire buffer when the
// selection is empty, with one leading diff marker column removed per line.
//
// Header lines keep their text: stripping only applies when the selection
// starts at or after the first hunk. A selection starting mid-line gets a
// single space prepended so that the partial first line still consumes one
// marker column.
func StripPrefixes(buf *diffbuf.Snapshot, sel diffbuf.Selection) string {
	text := buf.Text()

	pos := 0
	extracted := text
	if !sel.IsEmpty() {
		sel = sel.Clamp(len(text))
		pos = sel.Start
		extracted = buf.Slice(sel.Start, sel.End())
	}

	if pos > 0 && text[pos-1] != '\n' {
		extracted = " " + extracted
	}

	headerBoundary := strings.Index(text, hunkMarker)
	if headerBoundary > pos {
		// Selection starts inside the diff header; copy verbatim.
		return extracted
	}

	prefixes := PrefixSet(DetectFormat(text))
	if len(prefixes) == 0 {
		return extracted
	}

	lines := strings.Split(extracted, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, p := range prefixes {
			if strings.HasPrefix(line, p) {
				lines[i] = line[len(p):]
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// ExcludeLines extracts the selected text, or the entire buffer when the
// selection is empty, dropping every line whose first character equals
// startChar. A doubled marker of the same character ("++" or "--") denotes
// a combined-diff unchanged line, not a real change, and is kept.
//
// This is a whole-line filter used to produce an "only additions" or "only
// deletions" rendition; it never strips prefixes.
func ExcludeLines(buf *diffbuf.Snapshot, sel diffbuf.Selection, startChar byte) string {
	extracted := buf.Text()
	if !sel.IsEmpty() {
		sel = sel.Clamp(buf.Len())
		extracted = buf.Slice(sel.Start, sel.End())
	}

	lines := strings.Split(extracted, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if len(line) > 0 && line[0] == startChar {
			doubled := len(line) > 1 && line[1] == startChar
			if !doubled {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
