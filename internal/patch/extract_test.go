package patch

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/dshills/diffscope/internal/diffbuf"
)

func TestExtractPatchEmptySelection(t *testing.T) {
	buf := diffbuf.NewSnapshot(sampleDiff)
	sel := diffbuf.Selection{Start: 40, Length: 0}

	if got := ExtractPatch(buf, sel, false, nil); len(got) != 0 {
		t.Errorf("forward: expected empty result, got %q", got)
	}
	if got := ExtractPatch(buf, sel, true, nil); len(got) != 0 {
		t.Errorf("reverse: expected empty result, got %q", got)
	}
}

func TestExtractPatchHeaderSelection(t *testing.T) {
	buf := diffbuf.NewSnapshot(sampleDiff)
	sel := diffbuf.Selection{Start: 0, Length: buf.LineEnd(3)}

	if got := ExtractPatch(buf, sel, false, nil); len(got) != 0 {
		t.Errorf("expected no-op for header selection, got %q", got)
	}
}

func TestExtractPatchForward(t *testing.T) {
	buf := diffbuf.NewSnapshot(sampleDiff)
	sel := lineSel(t, buf, 6, 7)

	got := ExtractPatch(buf, sel, false, nil)
	if !bytes.Contains(got, []byte("-beta\n+BETA\n")) {
		t.Errorf("expected selected change pair, got:\n%s", got)
	}
	if bytes.Contains(got, []byte("diff --git")) {
		t.Errorf("forward patch should carry the minimal header, got:\n%s", got)
	}
}

func TestExtractPatchReverse(t *testing.T) {
	buf := diffbuf.NewSnapshot(sampleDiff)
	sel := lineSel(t, buf, 6, 7)

	got := ExtractPatch(buf, sel, true, nil)
	if !bytes.Contains(got, []byte("-beta\n+BETA\n")) {
		t.Errorf("expected selected change pair, got:\n%s", got)
	}
	if !bytes.HasPrefix(got, []byte("diff --git")) {
		t.Errorf("reverse patch keeps the full header, got:\n%s", got)
	}
}

func TestExtractPatchPlainBuffer(t *testing.T) {
	buf := diffbuf.NewSnapshot("just some text\nno diff here\n")
	sel := diffbuf.Selection{Start: 0, Length: buf.Len()}

	if got := ExtractPatch(buf, sel, false, nil); len(got) != 0 {
		t.Errorf("expected empty result for plain buffer, got %q", got)
	}
}

func TestExtractPatchEncoded(t *testing.T) {
	text := "--- a/f\n+++ b/f\n@@ -1,1 +1,1 @@\n-café\n+cafè\n"
	buf := diffbuf.NewSnapshot(text)
	sel := diffbuf.Selection{Start: 0, Length: buf.Len()}

	got := ExtractPatch(buf, sel, false, charmap.ISO8859_1)
	if len(got) == 0 {
		t.Fatal("expected a patch")
	}
	// U+00E9 encodes to a single 0xe9 byte in Latin-1.
	if !bytes.Contains(got, []byte{'c', 'a', 'f', 0xe9}) {
		t.Errorf("expected Latin-1 bytes, got %q", got)
	}
	if bytes.Contains(got, []byte("café")) {
		t.Errorf("UTF-8 sequence leaked into encoded patch: %q", got)
	}
}

func TestLookupEncoding(t *testing.T) {
	enc, err := LookupEncoding("")
	if err != nil || enc != nil {
		t.Errorf("empty name: expected passthrough, got %v, %v", enc, err)
	}

	enc, err = LookupEncoding("UTF-8")
	if err != nil || enc != nil {
		t.Errorf("utf-8: expected passthrough, got %v, %v", enc, err)
	}

	enc, err = LookupEncoding("ISO-8859-1")
	if err != nil {
		t.Fatalf("iso-8859-1: %v", err)
	}
	if enc == nil {
		t.Fatal("expected an encoding for ISO-8859-1")
	}

	if _, err = LookupEncoding("no-such-charset"); err == nil {
		t.Error("expected an error for an unknown charset")
	}
}

func TestEncodeTextPassthrough(t *testing.T) {
	data, err := EncodeText("héllo", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != "héllo" {
		t.Errorf("expected passthrough, got %q", data)
	}
}

func TestExtractPatchSelectionClamped(t *testing.T) {
	buf := diffbuf.NewSnapshot(sampleDiff)

	// An oversized selection clamps to the buffer instead of failing.
	sel := diffbuf.Selection{Start: 0, Length: buf.Len() * 2}
	got := ExtractPatch(buf, sel, false, nil)
	if !strings.Contains(string(got), "-beta") {
		t.Errorf("expected clamped full-buffer patch, got:\n%s", got)
	}
}
