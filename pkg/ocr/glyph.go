// Package ocr recognizes account numbers printed as 3x3 ASCII glyphs,
// validates them against the mod-11 checksum and searches for single-digit
// corrections when an entry is illegible or fails the checksum.
//
// Every function in this package works on in-memory text. Reading scan
// files, batching and printing belong to the callers.
package ocr

import (
	"strings"
)

const (
	// Positions is the number of glyph cells in one entry.
	Positions = 9
	// GlyphSize is the width and height of one glyph cell.
	GlyphSize = 3
	// RowWidth is the minimum width of a content row.
	RowWidth = Positions * GlyphSize
)

// Glyph is one 3x3 cell of a scanned entry, row-major.
type Glyph [GlyphSize][GlyphSize]rune

// Glyphs holds the nine cells of an entry, left to right.
type Glyphs [Positions]Glyph

// ParseGlyph builds a Glyph from three rows of exactly three characters.
func ParseGlyph(top, middle, bottom string) (Glyph, error) {
	var g Glyph
	for r, row := range [GlyphSize]string{top, middle, bottom} {
		cells := []rune(row)
		if len(cells) != GlyphSize {
			return Glyph{}, &FormatError{Row: r, Width: len(cells), Reason: "glyph row must be 3 characters wide"}
		}
		copy(g[r][:], cells)
	}
	return g, nil
}

// Rows returns the three rows of the glyph as strings.
func (g Glyph) Rows() [GlyphSize]string {
	var rows [GlyphSize]string
	for r := range g {
		rows[r] = string(g[r][:])
	}
	return rows
}

func (g Glyph) String() string {
	rows := g.Rows()
	return strings.Join(rows[:], "\n")
}

// Distance counts the cells in which two glyphs differ.
func (g Glyph) Distance(other Glyph) int {
	var n int
	for r := range g {
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				n++
			}
		}
	}
	return n
}

// Segment splits a raw entry into its nine glyph cells. Only the first three
// rows are read; a blank trailer row, or anything after it, is ignored.
// Rows may end in "\r\n".
func Segment(raw string) (Glyphs, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) < GlyphSize {
		return Glyphs{}, &FormatError{Row: len(lines), Reason: "entry needs 3 content rows"}
	}

	var rows [GlyphSize][]rune
	for r := range rows {
		row := []rune(strings.TrimSuffix(lines[r], "\r"))
		if len(row) < RowWidth {
			return Glyphs{}, &FormatError{Row: r, Width: len(row), Reason: "row shorter than 27 characters"}
		}
		rows[r] = row
	}

	var glyphs Glyphs
	for i := range glyphs {
		for r := range rows {
			copy(glyphs[i][r][:], rows[r][i*GlyphSize:(i+1)*GlyphSize])
		}
	}
	return glyphs, nil
}
