package patch

import (
	"golang.org/x/text/encoding"

	"github.com/dshills/diffscope/internal/diffbuf"
)

// ExtractPatch converts a user text selection inside a displayed diff into
// bytes suitable for a patch-apply operation.
//
// With reverse false the patch applies the selected portion of the shown
// change. With reverse true the result undoes it: apply the returned bytes
// with the apply step's reverse flag to drop the selected additions and
// restore the selected removals in the worktree.
//
// An empty selection, a selection confined to the header, or a buffer that
// is not a unified diff all yield an empty result. Callers treat empty as
// a no-op, never a failure; rejection by the external apply step is the
// only failure mode, reported there.
func ExtractPatch(buf *diffbuf.Snapshot, sel diffbuf.Selection, reverse bool, enc encoding.Encoding) []byte {
	if sel.IsEmpty() {
		return nil
	}

	var data []byte
	var err error
	if reverse {
		data, err = BuildResetWorktreeLines(buf, sel, enc)
	} else {
		data, err = BuildFromSelection(buf, sel, BuildOptions{Encoding: enc})
	}
	if err != nil {
		// Encoding failures degrade to a no-op result.
		return nil
	}
	return data
}
