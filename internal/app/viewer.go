package app

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/text/encoding"

	"github.com/dshills/diffscope/internal/clipboard"
	"github.com/dshills/diffscope/internal/config"
	"github.com/dshills/diffscope/internal/diffbuf"
	"github.com/dshills/diffscope/internal/difftext"
	"github.com/dshills/diffscope/internal/git"
	"github.com/dshills/diffscope/internal/hexdump"
	"github.com/dshills/diffscope/internal/patch"
	"github.com/dshills/diffscope/internal/textdiff"
)

// ViewerConfig configures a Viewer.
type ViewerConfig struct {
	// Settings are the resolved viewer settings.
	Settings config.Settings

	// Repo is the repository behind the displayed diff. Nil when the
	// viewer shows a plain file pair.
	Repo *git.Repository

	// Logger receives operational logging. Nil means no logging.
	Logger *Logger
}

// Viewer owns the displayed diff buffer and the user's selection, and
// mediates every operation the host can trigger on them.
type Viewer struct {
	mu sync.RWMutex

	logger   *Logger
	settings config.Settings
	enc      encoding.Encoding
	eol      string
	repo     *git.Repository

	buf     *diffbuf.Snapshot
	format  difftext.Format
	summary *git.Diff
	sel     diffbuf.Selection
	caret   int

	hexPreview bool
}

// NewViewer creates a viewer. The configured encoding name is resolved
// once here; an unknown charset is a startup error.
func NewViewer(cfg ViewerConfig) (*Viewer, error) {
	enc, err := patch.LookupEncoding(cfg.Settings.Encoding)
	if err != nil {
		return nil, err
	}

	eol, ok := config.LineEndingValue(cfg.Settings.LineEnding)
	if !ok {
		eol = "\n"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = NullLogger
	}

	return &Viewer{
		logger:   logger,
		settings: cfg.Settings,
		enc:      enc,
		eol:      eol,
		repo:     cfg.Repo,
		buf:      diffbuf.NewSnapshot(""),
	}, nil
}

// SetBuffer replaces the displayed text. The diff format is detected from
// the content; selection and caret reset.
func (v *Viewer) SetBuffer(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf = diffbuf.NewSnapshot(text)
	v.format = difftext.DetectFormat(text)
	v.summary = git.ParseDiff(text)
	v.sel = diffbuf.Selection{}
	v.caret = 0

	v.logger.Debug("buffer set: %d bytes, format %s", v.buf.Len(), v.format)
}

// Buffer returns the current snapshot.
func (v *Viewer) Buffer() *diffbuf.Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.buf
}

// Format returns the detected diff format of the current buffer.
func (v *Viewer) Format() difftext.Format {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.format
}

// DiffStats summarizes the displayed diff: the number of touched files
// and the added and removed line counts. All zero for plain buffers.
func (v *Viewer) DiffStats() (files, additions, deletions int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.summary == nil {
		return 0, 0, 0
	}
	return len(v.summary.Files), v.summary.Stats.Additions, v.summary.Stats.Deletions
}

// Branch names the checked-out branch of a repository-backed viewer, with
// a "*" suffix when the working tree has uncommitted changes. Detached
// heads report "detached". Empty without a repository or when git fails.
func (v *Viewer) Branch() string {
	v.mu.RLock()
	repo := v.repo
	v.mu.RUnlock()

	if repo == nil {
		return ""
	}
	st, err := repo.Status()
	if err != nil {
		v.logger.Warn("status failed: %v", err)
		return ""
	}

	name := st.Branch
	if st.IsDetached {
		name = "detached"
	}
	if st.HasChanges() {
		name += "*"
	}
	return name
}

// Select sets the selection, clamped to the buffer.
func (v *Viewer) Select(sel diffbuf.Selection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sel = sel.Clamp(v.buf.Len())
}

// ClearSelection drops the selection.
func (v *Viewer) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sel = diffbuf.Selection{}
}

// Selection returns the current selection.
func (v *Viewer) Selection() diffbuf.Selection {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sel
}

// CaretLine returns the line the caret is on.
func (v *Viewer) CaretLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.caret
}

// SetCaretLine moves the caret, clamped to the buffer's lines.
func (v *Viewer) SetCaretLine(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.caret = clampLine(v.buf, line)
}

func clampLine(buf *diffbuf.Snapshot, line int) int {
	if line < 0 {
		return 0
	}
	if max := buf.LineCount() - 1; line > max {
		if max < 0 {
			return 0
		}
		return max
	}
	return line
}

// LineRole classifies a buffer line for rendering.
func (v *Viewer) LineRole(line int) difftext.Role {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if line < 0 || line >= v.buf.LineCount() {
		return difftext.RoleOther
	}
	return difftext.ClassifyLine(v.format, v.buf.Line(line))
}

// LoadGitDiff fills the buffer from git diff output.
func (v *Viewer) LoadGitDiff(opts git.DiffOptions) error {
	v.mu.RLock()
	repo := v.repo
	v.mu.RUnlock()

	if repo == nil {
		return ErrNoRepository
	}

	raw, err := repo.DiffRaw(opts)
	if err != nil {
		return err
	}
	v.SetBuffer(raw)
	return nil
}

// LoadFilePair fills the buffer with a synthesized diff of two files.
// With autocrlf enabled both sides are normalized to LF first so ending
// churn does not show up as changes.
func (v *Viewer) LoadFilePair(oldPath, newPath string) error {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", oldPath, err)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", newPath, err)
	}

	oldText, newText := string(oldData), string(newData)
	if v.settings.AutoCRLF != config.AutoCRLFFalse {
		oldText = difftext.Normalize(oldText, "\n")
		newText = difftext.Normalize(newText, "\n")
	}

	v.SetBuffer(textdiff.Unified(oldPath, newPath, oldText, newText, v.settings.ContextLines))
	return nil
}

// CopySelection copies the selection to the clipboard with diff markers
// stripped. Line endings are rewritten to the configured target only when
// the autocrlf policy is "true". The text is returned regardless; a
// clipboard error is reported but treated as best effort by hosts.
func (v *Viewer) CopySelection() (string, error) {
	return v.copyFiltered(func(buf *diffbuf.Snapshot, sel diffbuf.Selection) string {
		return difftext.StripPrefixes(buf, sel)
	})
}

// CopyWithoutAdditions copies the selection with added lines dropped.
func (v *Viewer) CopyWithoutAdditions() (string, error) {
	return v.copyFiltered(func(buf *diffbuf.Snapshot, sel diffbuf.Selection) string {
		return difftext.ExcludeLines(buf, sel, '+')
	})
}

// CopyWithoutRemovals copies the selection with removed lines dropped.
func (v *Viewer) CopyWithoutRemovals() (string, error) {
	return v.copyFiltered(func(buf *diffbuf.Snapshot, sel diffbuf.Selection) string {
		return difftext.ExcludeLines(buf, sel, '-')
	})
}

func (v *Viewer) copyFiltered(filter func(*diffbuf.Snapshot, diffbuf.Selection) string) (string, error) {
	v.mu.RLock()
	buf, sel, eol := v.buf, v.sel, v.eol
	normalize := v.settings.AutoCRLF == config.AutoCRLFTrue
	v.mu.RUnlock()

	text := filter(buf, sel)
	if normalize {
		text = difftext.Normalize(text, eol)
	}
	if err := clipboard.Write(text); err != nil {
		v.logger.Warn("clipboard write failed: %v", err)
		return text, err
	}
	v.logger.Debug("copied %d bytes", len(text))
	return text, nil
}

// StageSelection builds a patch from the selected lines and applies it to
// the index. The returned string is git's diagnostic text when the patch
// does not apply cleanly; empty means success. An empty selection is a
// no-op.
func (v *Viewer) StageSelection() (string, error) {
	return v.applySelection(false, git.ApplyOptions{Cached: true, WhitespaceNowarn: true})
}

// RevertSelection builds a reverse patch from the selected lines and
// applies it to the working tree, restoring the pre-change text.
func (v *Viewer) RevertSelection() (string, error) {
	return v.applySelection(true, git.ApplyOptions{Reverse: true, WhitespaceNowarn: true})
}

func (v *Viewer) applySelection(reverse bool, opts git.ApplyOptions) (string, error) {
	v.mu.RLock()
	buf, sel, enc, repo := v.buf, v.sel, v.enc, v.repo
	v.mu.RUnlock()

	if repo == nil {
		return "", ErrNoRepository
	}

	data := patch.ExtractPatch(buf, sel, reverse, enc)
	if len(data) == 0 {
		v.logger.Debug("apply skipped: empty patch")
		return "", nil
	}

	conflicts, err := repo.Apply(data, opts)
	if err != nil {
		return "", err
	}
	if conflicts != "" {
		v.logger.Warn("apply reported: %s", conflicts)
	}
	return conflicts, nil
}

// NextChange moves the caret to the next change block below it and
// returns the scroll hint. Reports false at the last block.
func (v *Viewer) NextChange() (difftext.ScrollHint, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	hint, ok := difftext.NextChangeBlock(v.buf, v.caret)
	if ok {
		v.caret = hint.CaretLine
	}
	return hint, ok
}

// PreviousChange moves the caret to the closest change block above it.
func (v *Viewer) PreviousChange() (difftext.ScrollHint, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	hint, ok := difftext.PreviousChangeBlock(v.buf, v.caret)
	if ok {
		v.caret = hint.CaretLine
	}
	return hint, ok
}

// HexPreviewEnabled reports whether the hex panel is open.
func (v *Viewer) HexPreviewEnabled() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.hexPreview
}

// ToggleHexPreview flips the hex panel and returns the new state.
func (v *Viewer) ToggleHexPreview() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hexPreview = !v.hexPreview
	return v.hexPreview
}

// IsBinaryFile reports whether the file backing the hex panel looks
// binary, using the same NUL-sniff git applies. With a repository, path
// is repository-relative; otherwise it is read from disk directly.
func (v *Viewer) IsBinaryFile(path string) (bool, error) {
	v.mu.RLock()
	repo := v.repo
	v.mu.RUnlock()

	if repo != nil {
		return repo.IsBinaryPath(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return git.IsBinary(data), nil
}

// HexDump renders file bytes for the hex panel. With a repository, path
// is repository-relative and fromHead selects the committed version over
// the working tree. Without one, path is read from disk directly.
func (v *Viewer) HexDump(path string, fromHead bool) (string, error) {
	v.mu.RLock()
	repo, width, cols := v.repo, v.settings.HexColumnWidth, v.settings.HexColumnCount
	v.mu.RUnlock()

	var data []byte
	var err error
	switch {
	case repo != nil && fromHead:
		data, err = repo.ShowBlob("HEAD", path)
	case repo != nil:
		data, err = repo.ReadWorktreeFile(path)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}

	return hexdump.FormatColumns(data, width, cols), nil
}
