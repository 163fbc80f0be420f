package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/diffscope/internal/difftext"
)

func (u *UI) render() {
	u.screen.Clear()

	w, h := u.screen.Size()
	if h < 2 {
		u.screen.Show()
		return
	}

	if u.viewer.HexPreviewEnabled() {
		u.renderHex(w, h-1)
	} else {
		u.renderDiff(w, h-1)
	}
	u.renderStatus(w, h-1)

	u.screen.Show()
}

func (u *UI) renderDiff(width, height int) {
	buf := u.viewer.Buffer()
	caret := u.viewer.CaretLine()
	selFirst, selLast := u.selectedLines()

	for row := 0; row < height; row++ {
		line := u.top + row
		if line >= buf.LineCount() {
			break
		}

		style := u.roleStyle(u.viewer.LineRole(line))
		selected := selFirst >= 0 && line >= selFirst && line <= selLast
		switch {
		case selected:
			style = style.Reverse(true)
		case line == caret:
			style = u.theme.Caret
		}

		u.drawText(0, row, width, buf.Line(line), style)
	}
}

func (u *UI) renderHex(width, height int) {
	dump, err := u.viewer.HexDump(u.hexPath, false)
	if err != nil {
		u.drawText(0, 0, width, fmt.Sprintf("hex preview: %v", err), u.theme.Other)
		return
	}

	rows := strings.Split(dump, "\n")
	for row := 0; row < height && u.top+row < len(rows); row++ {
		u.drawText(0, row, width, rows[u.top+row], u.theme.Context)
	}
}

func (u *UI) renderStatus(width, row int) {
	buf := u.viewer.Buffer()

	parts := []string{u.viewer.Format().String()}
	if branch := u.viewer.Branch(); branch != "" {
		parts = append(parts, branch)
	}
	if files, add, del := u.viewer.DiffStats(); files > 0 {
		noun := "files"
		if files == 1 {
			noun = "file"
		}
		parts = append(parts, fmt.Sprintf("%d %s +%d -%d", files, noun, add, del))
	}
	parts = append(parts, fmt.Sprintf("%d/%d", u.viewer.CaretLine()+1, buf.LineCount()))
	if u.status != "" {
		parts = append(parts, u.status)
	}

	line := " " + strings.Join(parts, "  ")
	if len(line) < width {
		line += strings.Repeat(" ", width-len(line))
	}
	u.drawText(0, row, width, line, u.theme.Status)
}

// selectedLines returns the inclusive selected line range, or -1,-1 when
// nothing is selected.
func (u *UI) selectedLines() (int, int) {
	sel := u.viewer.Selection()
	if sel.IsEmpty() {
		return -1, -1
	}
	first, last := u.viewer.Buffer().LineSpan(sel)
	return first, last
}

func (u *UI) roleStyle(role difftext.Role) tcell.Style {
	switch role {
	case difftext.RoleAdded:
		return u.theme.Added
	case difftext.RoleRemoved:
		return u.theme.Removed
	case difftext.RoleContext:
		return u.theme.Context
	default:
		return u.theme.Other
	}
}

func (u *UI) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		if r == '\t' {
			r = ' '
		}
		u.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
