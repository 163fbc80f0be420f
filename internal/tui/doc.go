// Package tui hosts the viewer in a terminal using tcell. It owns the
// screen and event loop, renders the diff buffer with role-based colors,
// and translates key presses into viewer operations.
package tui
