// Package hexdump renders binary content as a fixed-width hex and ASCII
// dump for display. The output is plain text and is never parsed back.
package hexdump

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultColumnWidth is the number of bytes per column group.
	DefaultColumnWidth = 8

	// DefaultColumnCount is the number of column groups per row.
	DefaultColumnCount = 2
)

// Format renders data with the default 8x2 layout.
func Format(data []byte) string {
	return FormatColumns(data, DefaultColumnWidth, DefaultColumnCount)
}

// FormatColumns renders data as newline-joined rows of columnWidth times
// columnCount bytes each. A row is the zero-padded four-digit hex offset,
// four spaces, the hex byte values (space-separated within a group, two
// spaces between groups), four spaces, then the same bytes as ASCII with
// control characters replaced by '.'. A partial final row pads missing
// byte slots with spaces so every row has the same width. Empty input
// yields an empty string.
func FormatColumns(data []byte, columnWidth, columnCount int) string {
	if len(data) == 0 {
		return ""
	}
	if columnWidth < 1 {
		columnWidth = DefaultColumnWidth
	}
	if columnCount < 1 {
		columnCount = DefaultColumnCount
	}

	rowBytes := columnWidth * columnCount
	var b strings.Builder

	for offset := 0; offset < len(data); offset += rowBytes {
		if offset > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%04x    ", offset)

		for group := 0; group < columnCount; group++ {
			if group > 0 {
				b.WriteString("  ")
			}
			for i := 0; i < columnWidth; i++ {
				if i > 0 {
					b.WriteByte(' ')
				}
				idx := offset + group*columnWidth + i
				if idx < len(data) {
					fmt.Fprintf(&b, "%02x", data[idx])
				} else {
					b.WriteString("  ")
				}
			}
		}

		b.WriteString("    ")

		for group := 0; group < columnCount; group++ {
			if group > 0 {
				b.WriteString("  ")
			}
			for i := 0; i < columnWidth; i++ {
				idx := offset + group*columnWidth + i
				if idx >= len(data) {
					b.WriteByte(' ')
					continue
				}
				b.WriteByte(printable(data[idx]))
			}
		}
	}

	return b.String()
}

// printable substitutes '.' for control characters. Bytes outside ASCII
// cannot render as a single cell in a byte-oriented dump and are dotted
// as well.
func printable(c byte) byte {
	if c >= utf8.RuneSelf || unicode.IsControl(rune(c)) {
		return '.'
	}
	return c
}
