package hexdump

import (
	"strconv"
	"strings"
	"testing"
)

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := Format([]byte{}); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestFormatSingleRow(t *testing.T) {
	data := []byte("ABCDEFGHabcdefgh")

	got := Format(data)
	want := "0000    41 42 43 44 45 46 47 48  61 62 63 64 65 66 67 68    ABCDEFGH  abcdefgh"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatControlCharacters(t *testing.T) {
	data := []byte{'A', 0x00, 0x1f, 'B', 0x7f, '\n', '\t', 'C'}

	got := FormatColumns(data, 8, 1)
	want := "0000    41 00 1f 42 7f 0a 09 43    A..B...C"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatPartialRowPadding(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe}

	got := FormatColumns(data, 4, 2)
	want := "0000    " +
		"de ad be " + "  " + // group 0: three bytes, one padded slot
		"  " + // group separator
		strings.Repeat(" ", 11) + // group 1: all slots padded
		"    " +
		"... " + "  " + "    " // ASCII region with padded slots
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Every row of a multi-row dump has identical width.
	full := FormatColumns([]byte("0123456789abcdef012"), 4, 2)
	rows := strings.Split(full, "\n")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			t.Errorf("row %d width %d differs from row 0 width %d", i, len(row), len(rows[0]))
		}
	}
}

func TestFormatRowCount(t *testing.T) {
	for _, n := range []int{1, 15, 16, 17, 32, 33, 100} {
		data := make([]byte, n)
		rows := strings.Split(Format(data), "\n")
		want := (n + 15) / 16
		if len(rows) != want {
			t.Errorf("n=%d: expected %d rows, got %d", n, want, len(rows))
		}
	}
}

func TestFormatOffsets(t *testing.T) {
	data := make([]byte, 40)
	rows := strings.Split(Format(data), "\n")

	wantOffsets := []string{"0000", "0010", "0020"}
	for i, row := range rows {
		if !strings.HasPrefix(row, wantOffsets[i]+"    ") {
			t.Errorf("row %d: expected offset prefix %q, got %q", i, wantOffsets[i], row[:8])
		}
	}
}

// TestFormatHexRoundTrip re-reads the hex columns and reverses the mapping
// back to the original bytes.
func TestFormatHexRoundTrip(t *testing.T) {
	data := make([]byte, 67)
	for i := range data {
		data[i] = byte(i * 7)
	}

	var decoded []byte
	for _, row := range strings.Split(Format(data), "\n") {
		// Offset and 4 spaces, then the hex region: two groups of
		// 8 bytes (23 chars each) and a 2-char group separator.
		hexRegion := row[8 : 8+48]
		for _, field := range strings.Fields(hexRegion) {
			v, err := strconv.ParseUint(field, 16, 8)
			if err != nil {
				t.Fatalf("bad hex field %q in row %q: %v", field, row, err)
			}
			decoded = append(decoded, byte(v))
		}
	}

	if len(decoded) != len(data) {
		t.Fatalf("expected %d bytes, got %d", len(data), len(decoded))
	}
	for i := range data {
		if decoded[i] != data[i] {
			t.Fatalf("byte %d: expected %02x, got %02x", i, data[i], decoded[i])
		}
	}
}
