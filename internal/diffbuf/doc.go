// Package diffbuf models the text shown by a diff viewer as an immutable
// snapshot with line addressing.
//
// The hosting widget owns the live buffer; every operation in this module
// borrows a Snapshot taken at call time together with an explicit Selection.
// Nothing here retains state across calls, so repeated invocations over the
// same snapshot are idempotent.
package diffbuf
