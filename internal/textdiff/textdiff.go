package textdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines kept around each change
// when no explicit context is requested.
const DefaultContext = 3

const noNewlineMarker = "\\ No newline at end of file\n"

type lineKind int

const (
	kindEqual lineKind = iota
	kindDelete
	kindInsert
)

// lineOp is one line of the computed diff. The text keeps its trailing
// newline when the source line had one.
type lineOp struct {
	kind lineKind
	text string
}

// Unified computes a unified diff from oldText to newText. The names label
// the --- and +++ header lines. Context is the number of unchanged lines
// kept around each change; a negative value selects DefaultContext.
// Identical inputs yield an empty string.
func Unified(oldName, newName, oldText, newText string, context int) string {
	if oldText == newText {
		return ""
	}
	if context < 0 {
		context = DefaultContext
	}

	ops := diffLines(oldText, newText)
	hunks := foldHunks(ops, context)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", oldName, newName)
	for _, h := range hunks {
		writeHunk(&sb, ops, h)
	}
	return sb.String()
}

// diffLines runs a line-granularity diff. Lines are mapped to runes so the
// diff engine compares whole lines, then decoded back through the line
// table.
func diffLines(oldText, newText string) []lineOp {
	dmp := diffmatchpatch.New()
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(rOld, rNew, false))

	var ops []lineOp
	for _, d := range diffs {
		var kind lineKind
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = kindDelete
		case diffmatchpatch.DiffInsert:
			kind = kindInsert
		default:
			kind = kindEqual
		}
		for _, r := range d.Text {
			idx := int(r)
			if idx < 0 || idx >= len(lineArray) {
				continue
			}
			ops = append(ops, lineOp{kind: kind, text: lineArray[idx]})
		}
	}
	return ops
}

// hunkRange is a half-open op index range forming one hunk.
type hunkRange struct {
	start, end int
}

// foldHunks finds the change runs in ops, extends each by the context
// amount, and merges runs whose extended ranges touch.
func foldHunks(ops []lineOp, context int) []hunkRange {
	var hunks []hunkRange
	for i := 0; i < len(ops); {
		if ops[i].kind == kindEqual {
			i++
			continue
		}
		j := i
		for j < len(ops) && ops[j].kind != kindEqual {
			j++
		}
		start := i - context
		if start < 0 {
			start = 0
		}
		end := j + context
		if end > len(ops) {
			end = len(ops)
		}
		if len(hunks) > 0 && start <= hunks[len(hunks)-1].end {
			hunks[len(hunks)-1].end = end
		} else {
			hunks = append(hunks, hunkRange{start: start, end: end})
		}
		i = j
	}
	return hunks
}

func writeHunk(sb *strings.Builder, ops []lineOp, h hunkRange) {
	oldStart, newStart := 1, 1
	for _, op := range ops[:h.start] {
		if op.kind != kindInsert {
			oldStart++
		}
		if op.kind != kindDelete {
			newStart++
		}
	}

	var oldCount, newCount int
	for _, op := range ops[h.start:h.end] {
		if op.kind != kindInsert {
			oldCount++
		}
		if op.kind != kindDelete {
			newCount++
		}
	}
	// A zero-count side anchors on the line before the hunk.
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}

	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, op := range ops[h.start:h.end] {
		switch op.kind {
		case kindDelete:
			sb.WriteByte('-')
		case kindInsert:
			sb.WriteByte('+')
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(op.text)
		if !strings.HasSuffix(op.text, "\n") {
			sb.WriteByte('\n')
			sb.WriteString(noNewlineMarker)
		}
	}
}
