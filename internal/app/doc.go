// Package app coordinates the viewer: it owns the displayed buffer, the
// user's selection, and the wiring between the selection engine, the git
// collaborator, and the clipboard. The TUI layer calls into this package
// and renders whatever state it exposes.
package app
