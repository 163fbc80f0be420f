// Package patch turns a text selection inside a displayed unified diff
// into bytes that are valid input to a patch-apply operation.
//
// The builder reslices the diff the user is looking at rather than
// recomputing one: selected added and removed lines stay changes, while
// unselected lines inside touched hunks are neutralized so the result
// still applies cleanly. Hunk headers are recomputed to match. Selections
// that keep no change line produce an empty result, which callers must
// treat as a no-op, not a failure.
package patch
