package diffbuf

import (
	"sort"
	"strings"
)

// Snapshot provides a read-only view of a displayed buffer at a specific
// point in time. It will not change even if the widget's buffer is edited;
// callers take a fresh snapshot per user action.
type Snapshot struct {
	text string

	// lineStarts holds the byte offset of the first character of each line.
	// lineStarts[0] is always 0; an entry follows every '\n' in text.
	lineStarts []int
}

// NewSnapshot creates a snapshot of the given text.
func NewSnapshot(text string) *Snapshot {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	starts[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' && i+1 < len(text) {
			starts = append(starts, i+1)
		}
	}
	return &Snapshot{text: text, lineStarts: starts}
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.text
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() int {
	return len(s.text)
}

// LineCount returns the number of lines. The empty snapshot has one line.
func (s *Snapshot) LineCount() int {
	return len(s.lineStarts)
}

// LineStart returns the byte offset of the first character of the given
// line. Out-of-range lines clamp to the nearest valid line.
func (s *Snapshot) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(s.lineStarts) {
		return s.lineStarts[len(s.lineStarts)-1]
	}
	return s.lineStarts[line]
}

// LineEnd returns the byte offset one past the last content character of
// the given line, excluding the trailing newline.
func (s *Snapshot) LineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line+1 < len(s.lineStarts) {
		// Next line start minus the newline separating them.
		return s.lineStarts[line+1] - 1
	}
	end := len(s.text)
	if end > s.LineStart(line) && s.text[end-1] == '\n' {
		end--
	}
	return end
}

// Line returns the text of a specific line without its trailing newline.
func (s *Snapshot) Line(line int) string {
	if line < 0 || line >= len(s.lineStarts) {
		return ""
	}
	return s.text[s.LineStart(line):s.LineEnd(line)]
}

// LineAt returns the index of the line containing the given byte offset.
// Offsets outside the snapshot clamp to the first or last line.
func (s *Snapshot) LineAt(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(s.text) {
		return len(s.lineStarts) - 1
	}
	// First line start strictly greater than offset, minus one.
	i := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	return i - 1
}

// Slice returns the text in [start, end). Bounds are clamped.
func (s *Snapshot) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// Selection is a byte range into a Snapshot, reported by the hosting
// widget. Length zero means no selection.
type Selection struct {
	// Start is the byte offset of the first selected character.
	Start int

	// Length is the number of selected bytes.
	Length int
}

// End returns the exclusive end offset of the selection.
func (sel Selection) End() int {
	return sel.Start + sel.Length
}

// IsEmpty returns true when nothing is selected.
func (sel Selection) IsEmpty() bool {
	return sel.Length <= 0
}

// Clamp returns a selection constrained to a snapshot of the given length.
func (sel Selection) Clamp(n int) Selection {
	if sel.Start < 0 {
		sel.Start = 0
	}
	if sel.Start > n {
		sel.Start = n
	}
	if sel.Length < 0 {
		sel.Length = 0
	}
	if sel.Start+sel.Length > n {
		sel.Length = n - sel.Start
	}
	return sel
}

// LineSpan returns the first and last line touched by the selection.
// The selection is treated as the half-open byte range [Start, End()); a
// selection ending exactly at a line start does not include that line.
func (s *Snapshot) LineSpan(sel Selection) (first, last int) {
	sel = sel.Clamp(len(s.text))
	first = s.LineAt(sel.Start)
	if sel.IsEmpty() {
		return first, first
	}
	last = s.LineAt(sel.End() - 1)
	return first, last
}
