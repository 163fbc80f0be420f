// Package difftext implements the diff-aware text logic behind the viewer:
// line role classification, prefix stripping for plain-text copy, change
// block navigation, and line ending normalization.
//
// All functions are pure transformations over a borrowed snapshot. Malformed
// input never produces an error; unrecognized lines classify as RoleOther
// and operations degrade to a no-op.
package difftext
