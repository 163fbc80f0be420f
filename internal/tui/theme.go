package tui

import "github.com/gdamore/tcell/v2"

// Theme maps line roles and chrome to terminal styles.
type Theme struct {
	// Context styles unchanged diff lines.
	Context tcell.Style

	// Added styles addition lines.
	Added tcell.Style

	// Removed styles removal lines.
	Removed tcell.Style

	// Other styles headers and metadata.
	Other tcell.Style

	// Caret styles the caret line background.
	Caret tcell.Style

	// Status styles the status bar.
	Status tcell.Style
}

// LoadTheme resolves a theme by name. Unknown names fall back to the
// default theme.
func LoadTheme(name string) Theme {
	switch name {
	case "mono":
		base := tcell.StyleDefault
		return Theme{
			Context: base,
			Added:   base.Bold(true),
			Removed: base.Dim(true),
			Other:   base.Italic(true),
			Caret:   base.Reverse(true),
			Status:  base.Reverse(true),
		}
	default:
		base := tcell.StyleDefault
		return Theme{
			Context: base,
			Added:   base.Foreground(tcell.ColorGreen),
			Removed: base.Foreground(tcell.ColorRed),
			Other:   base.Foreground(tcell.ColorTeal),
			Caret:   base.Background(tcell.ColorDarkSlateGray),
			Status:  base.Reverse(true),
		}
	}
}
