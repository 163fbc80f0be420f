package difftext

import (
	"strings"
	"testing"

	"github.com/dshills/diffscope/internal/diffbuf"
)

func TestStripPrefixesWholeBuffer(t *testing.T) {
	buf := diffbuf.NewSnapshot("@@ -1,1 +1,1 @@\n-foo\n+bar\n")

	got := StripPrefixes(buf, diffbuf.Selection{})
	want := "@@ -1,1 +1,1 @@\nfoo\nbar\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStripPrefixesHeaderVerbatim(t *testing.T) {
	text := "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1,2 +1,2 @@\n context\n-old\n+new\n"
	buf := diffbuf.NewSnapshot(text)

	// Selection confined to the header: no stripping at all.
	sel := diffbuf.Selection{Start: 0, Length: len("diff --git a/f b/f\n--- a/f\n")}
	got := StripPrefixes(buf, sel)
	if got != "diff --git a/f b/f\n--- a/f\n" {
		t.Errorf("header must be untouched, got %q", got)
	}

	// Selection starting at the first hunk strips markers.
	hunk := strings.Index(text, "@@")
	sel = diffbuf.Selection{Start: hunk, Length: len(text) - hunk}
	got = StripPrefixes(buf, sel)
	want := "@@ -1,2 +1,2 @@\ncontext\nold\nnew\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStripPrefixesMidLineSelection(t *testing.T) {
	text := "@@ -1,2 +1,2 @@\n-alpha\n+omega\n"
	buf := diffbuf.NewSnapshot(text)

	// Selection starts in the middle of "-alpha": a space is prepended so
	// the partial first line still loses one marker column.
	start := strings.Index(text, "alpha")
	sel := diffbuf.Selection{Start: start, Length: len(text) - start}
	got := StripPrefixes(buf, sel)
	want := "alpha\nomega\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStripPrefixesCombined(t *testing.T) {
	text := "@@@ -1,2 -1,2 +1,3 @@@\n  both\n+ first\n -second\n++meta\n"
	buf := diffbuf.NewSnapshot(text)

	got := StripPrefixes(buf, diffbuf.Selection{})
	want := "@@@ -1,2 -1,2 +1,3 @@@\nboth\nfirst\nsecond\nmeta\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStripPrefixesWhitespaceOnlyLineKept(t *testing.T) {
	text := "@@ -1,2 +1,2 @@\n \n+x\n"
	buf := diffbuf.NewSnapshot(text)

	got := StripPrefixes(buf, diffbuf.Selection{})
	want := "@@ -1,2 +1,2 @@\n \nx\n"
	if got != want {
		t.Errorf("whitespace-only line must be left unchanged, got %q", got)
	}
}

func TestStripPrefixesPlainBuffer(t *testing.T) {
	text := "plain text\n with a leading space\n"
	buf := diffbuf.NewSnapshot(text)

	if got := StripPrefixes(buf, diffbuf.Selection{}); got != text {
		t.Errorf("plain buffer must be copied verbatim, got %q", got)
	}
}

func TestExcludeLines(t *testing.T) {
	text := "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1,2 +1,2 @@\n context\n-old\n+new\n"
	buf := diffbuf.NewSnapshot(text)

	// Excluding '-' drops the removal but keeps the "---" header line.
	got := ExcludeLines(buf, diffbuf.Selection{}, '-')
	want := "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1,2 +1,2 @@\n context\n+new\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Excluding '+' drops the addition but keeps the "+++" header line.
	got = ExcludeLines(buf, diffbuf.Selection{}, '+')
	want = "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1,2 +1,2 @@\n context\n-old\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExcludeLinesSelection(t *testing.T) {
	text := "-a\n+b\n-c\n"
	buf := diffbuf.NewSnapshot(text)

	// Only the selected range is filtered.
	sel := diffbuf.Selection{Start: 0, Length: len("-a\n+b\n")}
	got := ExcludeLines(buf, sel, '-')
	if got != "+b\n" {
		t.Errorf("expected %q, got %q", "+b\n", got)
	}
}
