// Package clipboard copies text to the system clipboard through whichever
// OS utility is present. Callers treat failures as best effort; a missing
// utility surfaces as ErrUnavailable rather than aborting the operation
// that produced the text.
package clipboard
