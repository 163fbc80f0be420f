package difftext

import "github.com/dshills/diffscope/internal/diffbuf"

// pseudoHeaderLines is the number of leading buffer lines (file names, mode
// lines) that forward navigation always skips.
const pseudoHeaderLines = 4

// ScrollHint tells the hosting widget where to land after a jump: the first
// visible viewport line and the caret line.
type ScrollHint struct {
	// TopLine is the line to place at the top of the viewport.
	TopLine int

	// CaretLine is the line to move the caret to.
	CaretLine int
}

// NextChangeBlock scans forward from the caret for the first line of the
// next change block. Each call is a fresh linear scan over the snapshot; no
// cursor persists between calls.
//
// The scan begins at max(currentLine+1, 4) and requires at least one
// non-change line before a change line qualifies, so the caret lands on the
// first line of the next block rather than on the remainder of the block it
// is already in. There is no wrap-around: past the last block, no movement
// is reported.
func NextChangeBlock(buf *diffbuf.Snapshot, currentLine int) (ScrollHint, bool) {
	format := DetectFormat(buf.Text())

	start := currentLine + 1
	if start < pseudoHeaderLines {
		start = pseudoHeaderLines
	}

	sawGap := false
	for i := start; i < buf.LineCount(); i++ {
		if !IsChange(ClassifyLine(format, buf.Line(i))) {
			sawGap = true
			continue
		}
		if sawGap {
			top := i - pseudoHeaderLines
			if top < 0 {
				top = 0
			}
			return ScrollHint{TopLine: top, CaretLine: i}, true
		}
	}
	return ScrollHint{}, false
}

// PreviousChangeBlock scans backward from the caret for the first line of
// the previous change block.
//
// The scan first walks out of the block the caret is inside, then keeps
// walking upward until it crosses a complete block: once a non-change line
// appears after at least one change line, the line below it is the block's
// first line. A change block that starts at line 0 is reported at line 0.
// No qualifying block reports no movement.
//
// Both phases use the single-column +/- rule regardless of the buffer's
// format, doubled markers ("++", "--") excluded in the second phase.
func PreviousChangeBlock(buf *diffbuf.Snapshot, currentLine int) (ScrollHint, bool) {
	line := currentLine
	if line >= buf.LineCount() {
		line = buf.LineCount() - 1
	}

	// Walk to the top of the block the caret is inside.
	for line >= 0 && isPlainChange(buf.Line(line)) {
		line--
	}

	sawChange := false
	for ; line >= 0; line-- {
		text := buf.Line(line)
		if isPlainChange(text) && !isDoubledMarker(text) {
			sawChange = true
			continue
		}
		if sawChange {
			return hintAbove(line + 1), true
		}
	}

	if sawChange {
		return hintAbove(0), true
	}
	return ScrollHint{}, false
}

func hintAbove(target int) ScrollHint {
	top := target - pseudoHeaderLines
	if top < 0 {
		top = 0
	}
	return ScrollHint{TopLine: top, CaretLine: target}
}

// isPlainChange applies the two-symbol rule: the line starts with a single
// '+' or '-' column.
func isPlainChange(line string) bool {
	return len(line) > 0 && (line[0] == '+' || line[0] == '-')
}

// isDoubledMarker reports a "++" or "--" prefix, which marks combined-diff
// metadata rather than a change.
func isDoubledMarker(line string) bool {
	return len(line) > 1 && line[0] == line[1] && (line[0] == '+' || line[0] == '-')
}
