package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/diffscope/internal/config"
	"github.com/dshills/diffscope/internal/diffbuf"
	"github.com/dshills/diffscope/internal/difftext"
	"github.com/dshills/diffscope/internal/git"
)

const viewerDiff = "diff --git a/notes.txt b/notes.txt\n" +
	"index 83db48f..bf269f4 100644\n" +
	"--- a/notes.txt\n" +
	"+++ b/notes.txt\n" +
	"@@ -1,3 +1,3 @@\n" +
	" alpha\n" +
	"-beta\n" +
	"+BETA\n" +
	" gamma\n" +
	"@@ -10,2 +10,3 @@\n" +
	" delta\n" +
	"+epsilon\n" +
	" zeta\n"

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	v, err := NewViewer(ViewerConfig{Settings: config.Default()})
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}
	return v
}

func TestNewViewerBadEncoding(t *testing.T) {
	cfg := config.Default()
	cfg.Encoding = "no-such-charset"

	if _, err := NewViewer(ViewerConfig{Settings: cfg}); err == nil {
		t.Fatal("expected an error for an unknown charset")
	}
}

func TestSetBufferDetectsFormat(t *testing.T) {
	v := newTestViewer(t)

	v.SetBuffer(viewerDiff)
	if v.Format() != difftext.FormatUnified {
		t.Errorf("format: %s", v.Format())
	}

	v.SetBuffer("no markers here\n")
	if v.Format() != difftext.FormatPlain {
		t.Errorf("format: %s", v.Format())
	}
}

func TestSetBufferResetsState(t *testing.T) {
	v := newTestViewer(t)
	v.SetBuffer(viewerDiff)
	v.Select(diffbuf.Selection{Start: 10, Length: 5})
	v.SetCaretLine(6)

	v.SetBuffer("fresh\n")

	if !v.Selection().IsEmpty() {
		t.Error("selection should reset")
	}
	if v.CaretLine() != 0 {
		t.Error("caret should reset")
	}
}

func TestSelectClamps(t *testing.T) {
	v := newTestViewer(t)
	v.SetBuffer("short\n")

	v.Select(diffbuf.Selection{Start: 2, Length: 1000})
	sel := v.Selection()
	if sel.End() != v.Buffer().Len() {
		t.Errorf("selection not clamped: %+v", sel)
	}
}

func TestSetCaretLineClamps(t *testing.T) {
	v := newTestViewer(t)
	v.SetBuffer("a\nb\nc\n")

	v.SetCaretLine(100)
	if v.CaretLine() != 2 {
		t.Errorf("caret: %d", v.CaretLine())
	}
	v.SetCaretLine(-5)
	if v.CaretLine() != 0 {
		t.Errorf("caret: %d", v.CaretLine())
	}
}

func TestLineRole(t *testing.T) {
	v := newTestViewer(t)
	v.SetBuffer(viewerDiff)

	tests := []struct {
		line int
		want difftext.Role
	}{
		{0, difftext.RoleOther},
		{2, difftext.RoleOther},
		{3, difftext.RoleOther},
		{5, difftext.RoleContext},
		{6, difftext.RoleRemoved},
		{7, difftext.RoleAdded},
		{99, difftext.RoleOther},
	}
	for _, tt := range tests {
		if got := v.LineRole(tt.line); got != tt.want {
			t.Errorf("line %d: got %s, want %s", tt.line, got, tt.want)
		}
	}
}

func TestNavigationMovesCaret(t *testing.T) {
	v := newTestViewer(t)
	v.SetBuffer(viewerDiff)

	hint, ok := v.NextChange()
	if !ok {
		t.Fatal("expected a block")
	}
	if hint.CaretLine != 6 || v.CaretLine() != 6 {
		t.Errorf("first jump: hint %+v, caret %d", hint, v.CaretLine())
	}

	hint, ok = v.NextChange()
	if !ok || hint.CaretLine != 11 {
		t.Errorf("second jump: ok=%v hint %+v", ok, hint)
	}

	if _, ok = v.NextChange(); ok {
		t.Error("expected no block past the last one")
	}

	hint, ok = v.PreviousChange()
	if !ok || hint.CaretLine != 6 {
		t.Errorf("back jump: ok=%v hint %+v", ok, hint)
	}
}

func TestCopySelectionStripsAndNormalizes(t *testing.T) {
	cfg := config.Default()
	cfg.LineEnding = "crlf"
	cfg.AutoCRLF = config.AutoCRLFTrue
	v, err := NewViewer(ViewerConfig{Settings: cfg})
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}
	v.SetBuffer(viewerDiff)

	buf := v.Buffer()
	start := buf.LineStart(5)
	v.Select(diffbuf.Selection{Start: start, Length: buf.LineEnd(7) - start})

	// Clipboard availability varies by machine; only the text matters.
	text, _ := v.CopySelection()
	if text != "alpha\r\nbeta\r\nBETA\r\n" {
		t.Errorf("copied text: %q", text)
	}
}

func TestCopySelectionKeepsEndingsWhenAutoCRLFOff(t *testing.T) {
	v := newTestViewer(t)
	v.SetBuffer("@@ -1,1 +1,1 @@\r\n-foo\r\n+bar\r\n")

	v.Select(diffbuf.Selection{Start: 0, Length: v.Buffer().Len()})

	text, _ := v.CopySelection()
	if text != "@@ -1,1 +1,1 @@\r\nfoo\r\nbar\r\n" {
		t.Errorf("copied text: %q", text)
	}
}

func TestCopyWithoutAdditions(t *testing.T) {
	v := newTestViewer(t)
	v.SetBuffer(viewerDiff)

	buf := v.Buffer()
	start := buf.LineStart(5)
	v.Select(diffbuf.Selection{Start: start, Length: buf.LineEnd(8) - start})

	text, _ := v.CopyWithoutAdditions()
	if strings.Contains(text, "+BETA") {
		t.Errorf("addition kept: %q", text)
	}
	if !strings.Contains(text, "-beta") {
		t.Errorf("removal dropped: %q", text)
	}
}

func TestStageWithoutRepository(t *testing.T) {
	v := newTestViewer(t)
	v.SetBuffer(viewerDiff)

	if _, err := v.StageSelection(); !errors.Is(err, ErrNoRepository) {
		t.Fatalf("expected ErrNoRepository, got %v", err)
	}
	if _, err := v.RevertSelection(); !errors.Is(err, ErrNoRepository) {
		t.Fatalf("expected ErrNoRepository, got %v", err)
	}
	if err := v.LoadGitDiff(git.DiffOptions{}); !errors.Is(err, ErrNoRepository) {
		t.Fatalf("expected ErrNoRepository, got %v", err)
	}
}

func TestLoadFilePair(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	writeTestFile(t, oldPath, "one\ntwo\n")
	writeTestFile(t, newPath, "one\nTWO\n")

	v := newTestViewer(t)
	if err := v.LoadFilePair(oldPath, newPath); err != nil {
		t.Fatalf("load: %v", err)
	}

	text := v.Buffer().Text()
	if !strings.Contains(text, "-two\n") || !strings.Contains(text, "+TWO\n") {
		t.Errorf("expected synthesized diff, got:\n%s", text)
	}
	if v.Format() != difftext.FormatUnified {
		t.Errorf("format: %s", v.Format())
	}
}

func TestLoadFilePairAutoCRLF(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	writeTestFile(t, oldPath, "one\r\ntwo\r\n")
	writeTestFile(t, newPath, "one\ntwo\n")

	cfg := config.Default()
	cfg.AutoCRLF = config.AutoCRLFInput
	v, err := NewViewer(ViewerConfig{Settings: cfg})
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}

	if err := v.LoadFilePair(oldPath, newPath); err != nil {
		t.Fatalf("load: %v", err)
	}
	if text := v.Buffer().Text(); text != "" {
		t.Errorf("ending-only churn should vanish, got:\n%s", text)
	}
}

func TestToggleHexPreview(t *testing.T) {
	v := newTestViewer(t)

	if v.HexPreviewEnabled() {
		t.Error("hex preview should start closed")
	}
	if !v.ToggleHexPreview() || !v.HexPreviewEnabled() {
		t.Error("toggle on failed")
	}
	if v.ToggleHexPreview() {
		t.Error("toggle off failed")
	}
}

func TestHexDumpPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	writeTestFile(t, path, "ABCDEFGH")

	v := newTestViewer(t)
	out, err := v.HexDump(path, false)
	if err != nil {
		t.Fatalf("hexdump: %v", err)
	}
	if !strings.HasPrefix(out, "0000    41 42 43 44") {
		t.Errorf("unexpected dump: %q", out)
	}
	if !strings.Contains(out, "ABCDEFGH") {
		t.Errorf("ASCII column missing: %q", out)
	}
}

func TestDiffStats(t *testing.T) {
	v := newTestViewer(t)

	if files, add, del := v.DiffStats(); files != 0 || add != 0 || del != 0 {
		t.Errorf("empty viewer stats: %d files +%d -%d", files, add, del)
	}

	v.SetBuffer(viewerDiff)
	if files, add, del := v.DiffStats(); files != 1 || add != 2 || del != 1 {
		t.Errorf("diff stats: %d files +%d -%d", files, add, del)
	}

	v.SetBuffer("no markers here\n")
	if files, add, del := v.DiffStats(); files != 0 || add != 0 || del != 0 {
		t.Errorf("plain buffer stats: %d files +%d -%d", files, add, del)
	}
}

func TestBranchWithoutRepository(t *testing.T) {
	v := newTestViewer(t)
	if got := v.Branch(); got != "" {
		t.Errorf("branch: %q", got)
	}
}

func TestIsBinaryFile(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "plain.txt")
	writeTestFile(t, text, "just text\n")
	bin := filepath.Join(dir, "data.bin")
	writeTestFile(t, bin, "PNG\x00\x01\x02")

	v := newTestViewer(t)
	if got, err := v.IsBinaryFile(text); err != nil || got {
		t.Errorf("text file: %v, %v", got, err)
	}
	if got, err := v.IsBinaryFile(bin); err != nil || !got {
		t.Errorf("binary file: %v, %v", got, err)
	}
	if _, err := v.IsBinaryFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
