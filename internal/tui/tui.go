package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/diffscope/internal/app"
	"github.com/dshills/diffscope/internal/diffbuf"
	"github.com/dshills/diffscope/internal/difftext"
	"github.com/dshills/diffscope/internal/session"
)

// Config configures the terminal host.
type Config struct {
	// Viewer is the coordinated viewer instance.
	Viewer *app.Viewer

	// Logger receives operational logging. Nil means no logging.
	Logger *app.Logger

	// ThemeName selects the color theme.
	ThemeName string

	// HexPath is the repository-relative file shown in the hex panel.
	HexPath string

	// Session persists layout toggles across runs. May be nil.
	Session *session.Store

	// Screen overrides the tcell screen, used by tests.
	Screen tcell.Screen
}

// UI is the terminal host. It is single-goroutine: the event loop owns
// all state mutation.
type UI struct {
	screen tcell.Screen
	viewer *app.Viewer
	logger *app.Logger
	theme  Theme
	store  *session.Store

	top     int
	anchor  int
	status  string
	hexPath string
	quit    bool
}

// New creates the host. When no screen is injected a real terminal screen
// is allocated; Run initializes and releases it.
func New(cfg Config) (*UI, error) {
	screen := cfg.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("allocate screen: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = app.NullLogger
	}

	return &UI{
		screen:  screen,
		viewer:  cfg.Viewer,
		logger:  logger,
		theme:   LoadTheme(cfg.ThemeName),
		store:   cfg.Session,
		anchor:  -1,
		hexPath: cfg.HexPath,
	}, nil
}

// Run initializes the screen and processes events until quit.
func (u *UI) Run() error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer u.screen.Fini()

	u.screen.EnableMouse()

	for !u.quit {
		u.render()
		u.handleEvent(u.screen.PollEvent())
	}

	u.saveSession()
	return nil
}

func (u *UI) saveSession() {
	if u.store == nil {
		return
	}
	st := u.store.Load()
	st.HexPreview = u.viewer.HexPreviewEnabled()
	if err := u.store.Save(st); err != nil {
		u.logger.Warn("save session: %v", err)
	}
}

func (u *UI) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		u.handleKey(ev)
	}
}

func (u *UI) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		u.quit = true
		return
	case tcell.KeyEscape:
		u.anchor = -1
		u.viewer.ClearSelection()
		u.status = ""
		return
	case tcell.KeyUp:
		u.moveCaret(-1)
		return
	case tcell.KeyDown:
		u.moveCaret(1)
		return
	case tcell.KeyPgUp:
		_, h := u.screen.Size()
		u.moveCaret(-pageStep(h))
		return
	case tcell.KeyPgDn:
		_, h := u.screen.Size()
		u.moveCaret(pageStep(h))
		return
	}

	switch ev.Rune() {
	case 'q':
		u.quit = true
	case 'j':
		u.moveCaret(1)
	case 'k':
		u.moveCaret(-1)
	case 'g':
		u.viewer.SetCaretLine(0)
		u.top = 0
		u.updateSelection()
	case 'G':
		u.viewer.SetCaretLine(u.viewer.Buffer().LineCount() - 1)
		u.scrollToCaret()
		u.updateSelection()
	case 'n':
		u.jump(u.viewer.NextChange())
	case 'p':
		u.jump(u.viewer.PreviousChange())
	case 'v':
		u.anchor = u.viewer.CaretLine()
		u.updateSelection()
	case 'c':
		u.copy(u.viewer.CopySelection, "copied")
	case 'a':
		u.copy(u.viewer.CopyWithoutAdditions, "copied without additions")
	case 'd':
		u.copy(u.viewer.CopyWithoutRemovals, "copied without removals")
	case 's':
		u.apply(u.viewer.StageSelection, "staged selection")
	case 'r':
		u.apply(u.viewer.RevertSelection, "reverted selection")
	case 'x':
		u.toggleHex()
	}
}

// pageStep is one screen of lines minus the status bar and one overlap line.
func pageStep(height int) int {
	if height <= 2 {
		return 1
	}
	return height - 2
}

func (u *UI) moveCaret(delta int) {
	u.viewer.SetCaretLine(u.viewer.CaretLine() + delta)
	u.scrollToCaret()
	u.updateSelection()
}

func (u *UI) jump(hint difftext.ScrollHint, ok bool) {
	if !ok {
		u.status = "no more changes"
		return
	}
	u.top = hint.TopLine
	u.status = ""
	u.updateSelection()
}

// updateSelection keeps the line selection pinned between the anchor and
// the caret.
func (u *UI) updateSelection() {
	if u.anchor < 0 {
		return
	}
	buf := u.viewer.Buffer()
	first, last := u.anchor, u.viewer.CaretLine()
	if first > last {
		first, last = last, first
	}
	start := buf.LineStart(first)
	u.viewer.Select(diffbuf.Selection{Start: start, Length: buf.LineEnd(last) - start})
}

func (u *UI) copy(op func() (string, error), done string) {
	if _, err := op(); err != nil {
		u.status = fmt.Sprintf("clipboard: %v", err)
		return
	}
	u.status = done
}

func (u *UI) apply(op func() (string, error), done string) {
	conflicts, err := op()
	if err != nil {
		u.status = err.Error()
		return
	}
	if conflicts != "" {
		// The text comes from git verbatim; show the first line.
		u.status = firstLine(conflicts)
		return
	}
	u.anchor = -1
	u.viewer.ClearSelection()
	u.status = done
}

func (u *UI) toggleHex() {
	if u.hexPath == "" {
		u.status = "no file for hex preview"
		return
	}
	if !u.viewer.HexPreviewEnabled() {
		bin, err := u.viewer.IsBinaryFile(u.hexPath)
		if err != nil {
			u.status = err.Error()
			return
		}
		if !bin {
			u.status = u.hexPath + " is not binary"
			return
		}
	}
	if u.viewer.ToggleHexPreview() {
		u.status = "hex preview on"
	} else {
		u.status = "hex preview off"
	}
}

func (u *UI) scrollToCaret() {
	_, h := u.screen.Size()
	visible := h - 1
	if visible < 1 {
		visible = 1
	}
	caret := u.viewer.CaretLine()
	if caret < u.top {
		u.top = caret
	}
	if caret >= u.top+visible {
		u.top = caret - visible + 1
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
