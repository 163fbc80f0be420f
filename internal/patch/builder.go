package patch

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/dshills/diffscope/internal/diffbuf"
	"github.com/dshills/diffscope/internal/difftext"
)

// BuildOptions configures patch construction from a selection.
type BuildOptions struct {
	// KeepHeader emits each touched file's complete diff header instead
	// of the minimal "--- / +++" pair.
	KeepHeader bool

	// ReverseLines builds the patch for reverse application: unselected
	// additions become context and unselected removals are dropped, so
	// the new side of every hunk matches the current worktree exactly.
	ReverseLines bool

	// Encoding converts the patch text before returning bytes. Nil means
	// UTF-8 passthrough.
	Encoding encoding.Encoding
}

// BuildFromSelection converts a byte selection inside a displayed unified
// diff into patch bytes covering only the selected added and removed lines.
// The selection expands to whole lines; unselected changes inside touched
// hunks are neutralized and hunk headers are recomputed. The result is
// empty when no change line is selected. Combined diffs are not patchable
// line-wise and always produce an empty result.
func BuildFromSelection(buf *diffbuf.Snapshot, sel diffbuf.Selection, opts BuildOptions) ([]byte, error) {
	if sel.IsEmpty() {
		return nil, nil
	}
	if difftext.DetectFormat(buf.Text()) != difftext.FormatUnified {
		return nil, nil
	}

	firstLine, lastLine := buf.LineSpan(sel)

	var out strings.Builder
	emitted := false
	for _, file := range scanFileSections(buf) {
		if body, ok := buildFileSelection(buf, file, firstLine, lastLine, opts); ok {
			out.WriteString(body)
			emitted = true
		}
	}
	if !emitted {
		return nil, nil
	}
	return EncodeText(out.String(), opts.Encoding)
}

// BuildResetWorktreeLines builds a patch that, applied with the apply
// step's reverse flag, removes the selected additions from the worktree
// and restores the selected removals. The full file header is retained so
// the patch stands alone.
func BuildResetWorktreeLines(buf *diffbuf.Snapshot, sel diffbuf.Selection, enc encoding.Encoding) ([]byte, error) {
	return BuildFromSelection(buf, sel, BuildOptions{
		KeepHeader:   true,
		ReverseLines: true,
		Encoding:     enc,
	})
}

// fileSection is one file's region of a (possibly multi-file) diff buffer.
type fileSection struct {
	headerStart int // first header line
	headerEnd   int // one past the last header line; first hunk line if any
	hunks       []hunkSection
}

// hunkSection is one hunk's line range.
type hunkSection struct {
	headerLine int
	bodyStart  int
	bodyEnd    int // exclusive
}

// scanFileSections splits the buffer into file sections and their hunks.
// Buffers that begin directly with "--- / +++" or a bare hunk form a single
// section with an implicit header.
func scanFileSections(buf *diffbuf.Snapshot) []fileSection {
	var files []fileSection
	current := fileSection{}
	inFile := false

	closeHunk := func(end int) {
		if n := len(current.hunks); n > 0 && current.hunks[n-1].bodyEnd < 0 {
			current.hunks[n-1].bodyEnd = end
		}
	}

	for i := 0; i < buf.LineCount(); i++ {
		line := buf.Line(i)
		switch {
		case strings.HasPrefix(line, "diff --git "):
			closeHunk(i)
			if inFile {
				files = append(files, current)
			}
			current = fileSection{headerStart: i, headerEnd: i + 1}
			inFile = true
		case strings.HasPrefix(line, "@@"):
			closeHunk(i)
			if !inFile {
				current = fileSection{headerStart: 0, headerEnd: i}
				inFile = true
			}
			current.hunks = append(current.hunks, hunkSection{
				headerLine: i,
				bodyStart:  i + 1,
				bodyEnd:    -1,
			})
		default:
			if inFile && len(current.hunks) == 0 {
				current.headerEnd = i + 1
			}
		}
	}
	closeHunk(buf.LineCount())
	if inFile {
		files = append(files, current)
	}
	return files
}

// buildFileSelection emits one file's contribution to the patch, or false
// when no hunk of the file keeps a selected change.
func buildFileSelection(buf *diffbuf.Snapshot, file fileSection, firstLine, lastLine int, opts BuildOptions) (string, bool) {
	toContext, toDrop := byte('-'), byte('+')
	if opts.ReverseLines {
		toContext, toDrop = '+', '-'
	}

	var hunksOut strings.Builder
	emitted := false
	delta := 0

	for _, h := range file.hunks {
		hdr, ok := parseHunkHeader(buf.Line(h.headerLine))
		if !ok {
			continue
		}

		var body strings.Builder
		oldCount, newCount := 0, 0
		hasSelected := false
		prevKept := false

		for i := h.bodyStart; i < h.bodyEnd; i++ {
			line := buf.Line(i)
			selected := i >= firstLine && i <= lastLine

			var c byte
			if line != "" {
				c = line[0]
			}
			switch c {
			case '\\':
				// "No newline at end of file" travels with the line
				// above it.
				if prevKept {
					body.WriteString(line)
					body.WriteByte('\n')
				}
				continue
			case toDrop:
				if !selected {
					prevKept = false
					continue
				}
				body.WriteString(line)
				body.WriteByte('\n')
				countChange(c, &oldCount, &newCount)
				hasSelected = true
			case toContext:
				if selected {
					body.WriteString(line)
					body.WriteByte('\n')
					countChange(c, &oldCount, &newCount)
					hasSelected = true
				} else {
					body.WriteByte(' ')
					body.WriteString(line[1:])
					body.WriteByte('\n')
					oldCount++
					newCount++
				}
			default:
				// Context, including bare empty lines some hosts
				// produce for trailing whitespace.
				body.WriteString(line)
				body.WriteByte('\n')
				oldCount++
				newCount++
			}
			prevKept = true
		}

		if !hasSelected {
			continue
		}

		oldStart, newStart := hdr.oldStart, hdr.newStart
		if opts.ReverseLines {
			// Both sides keep their original positions: the new side
			// matches the worktree exactly and drives reverse apply.
		} else {
			newStart = oldStart + delta
			delta += newCount - oldCount
		}

		fmt.Fprintf(&hunksOut, "@@ -%d,%d +%d,%d @@%s\n", oldStart, oldCount, newStart, newCount, hdr.tail)
		hunksOut.WriteString(body.String())
		emitted = true
	}

	if !emitted {
		return "", false
	}

	var out strings.Builder
	out.WriteString(fileHeader(buf, file, opts.KeepHeader))
	out.WriteString(hunksOut.String())
	return out.String(), true
}

// countChange attributes one emitted change line to the hunk counts.
func countChange(c byte, oldCount, newCount *int) {
	switch c {
	case '-':
		*oldCount++
	case '+':
		*newCount++
	}
}

// fileHeader returns the header text to emit for a touched file: the
// complete original header, or just the "--- / +++" name pair.
func fileHeader(buf *diffbuf.Snapshot, file fileSection, keepAll bool) string {
	var out strings.Builder
	var minimal strings.Builder

	for i := file.headerStart; i < file.headerEnd; i++ {
		line := buf.Line(i)
		out.WriteString(line)
		out.WriteByte('\n')
		if strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
			minimal.WriteString(line)
			minimal.WriteByte('\n')
		}
	}

	if keepAll || minimal.Len() == 0 {
		return out.String()
	}
	return minimal.String()
}

// hunkHeader is a parsed "@@ -old,n +new,m @@" line.
type hunkHeader struct {
	oldStart int
	oldCount int
	newStart int
	newCount int
	tail     string // section heading after the closing "@@"
}

// parseHunkHeader parses a hunk header line. A missing count defaults to 1.
func parseHunkHeader(line string) (hunkHeader, bool) {
	parts := strings.SplitN(line, "@@", 3)
	if len(parts) < 3 {
		return hunkHeader{}, false
	}

	var h hunkHeader
	h.tail = parts[2]

	for _, r := range strings.Fields(strings.TrimSpace(parts[1])) {
		switch {
		case strings.HasPrefix(r, "-"):
			h.oldStart, h.oldCount = parseRange(strings.TrimPrefix(r, "-"))
		case strings.HasPrefix(r, "+"):
			h.newStart, h.newCount = parseRange(strings.TrimPrefix(r, "+"))
		}
	}
	if h.oldStart == 0 && h.newStart == 0 && h.oldCount == 0 && h.newCount == 0 {
		return hunkHeader{}, false
	}
	return h, true
}

func parseRange(r string) (start, count int) {
	count = 1
	nums := strings.Split(r, ",")
	if len(nums) >= 1 {
		start, _ = strconv.Atoi(nums[0])
	}
	if len(nums) >= 2 {
		count, _ = strconv.Atoi(nums[1])
	}
	return start, count
}
