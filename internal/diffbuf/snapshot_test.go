package diffbuf

import "testing"

func TestSnapshotLines(t *testing.T) {
	s := NewSnapshot("one\ntwo\nthree\n")

	if s.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", s.LineCount())
	}

	if got := s.Line(0); got != "one" {
		t.Errorf("line 0: expected %q, got %q", "one", got)
	}
	if got := s.Line(1); got != "two" {
		t.Errorf("line 1: expected %q, got %q", "two", got)
	}
	if got := s.Line(2); got != "three" {
		t.Errorf("line 2: expected %q, got %q", "three", got)
	}
}

func TestSnapshotNoTrailingNewline(t *testing.T) {
	s := NewSnapshot("one\ntwo")

	if s.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", s.LineCount())
	}
	if got := s.Line(1); got != "two" {
		t.Errorf("line 1: expected %q, got %q", "two", got)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	s := NewSnapshot("")

	if s.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", s.LineCount())
	}
	if got := s.Line(0); got != "" {
		t.Errorf("expected empty line, got %q", got)
	}
}

func TestLineAt(t *testing.T) {
	s := NewSnapshot("ab\ncd\nef\n")

	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{2, 0},  // the newline belongs to line 0
		{3, 1},  // first char of "cd"
		{5, 1},
		{6, 2},
		{100, 2}, // clamp
		{-5, 0},  // clamp
	}

	for _, tt := range tests {
		if got := s.LineAt(tt.offset); got != tt.want {
			t.Errorf("LineAt(%d): expected %d, got %d", tt.offset, tt.want, got)
		}
	}
}

func TestLineSpan(t *testing.T) {
	s := NewSnapshot("ab\ncd\nef\n")

	// Selection covering "b\nc" spans lines 0-1.
	first, last := s.LineSpan(Selection{Start: 1, Length: 3})
	if first != 0 || last != 1 {
		t.Errorf("expected span 0-1, got %d-%d", first, last)
	}

	// Selection ending exactly at a line start excludes that line.
	first, last = s.LineSpan(Selection{Start: 0, Length: 3})
	if first != 0 || last != 0 {
		t.Errorf("expected span 0-0, got %d-%d", first, last)
	}

	// Empty selection stays on its own line.
	first, last = s.LineSpan(Selection{Start: 4, Length: 0})
	if first != 1 || last != 1 {
		t.Errorf("expected span 1-1, got %d-%d", first, last)
	}
}

func TestSelectionClamp(t *testing.T) {
	sel := Selection{Start: 5, Length: 100}.Clamp(10)
	if sel.Start != 5 || sel.Length != 5 {
		t.Errorf("expected {5 5}, got %+v", sel)
	}

	sel = Selection{Start: -3, Length: 4}.Clamp(10)
	if sel.Start != 0 {
		t.Errorf("expected start 0, got %d", sel.Start)
	}

	sel = Selection{Start: 20, Length: 1}.Clamp(10)
	if sel.Start != 10 || sel.Length != 0 {
		t.Errorf("expected {10 0}, got %+v", sel)
	}
}
