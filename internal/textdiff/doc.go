// Package textdiff synthesizes unified diffs for plain file pairs. It is
// used when the viewer is handed two texts directly rather than output
// from an external diff producer.
package textdiff
