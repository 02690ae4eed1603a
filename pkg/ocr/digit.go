package ocr

import "fmt"

// Digit is a recognized digit value 0-9, or Unknown.
type Digit int8

// Unknown marks a glyph that matched no canonical digit.
const Unknown Digit = -1

// Rune returns '0'-'9', or '?' for Unknown.
func (d Digit) Rune() rune {
	if d < 0 || d > 9 {
		return '?'
	}
	return '0' + rune(d)
}

func (d Digit) String() string { return string(d.Rune()) }

// Known reports whether d is a recognized digit.
func (d Digit) Known() bool { return d >= 0 && d <= 9 }

// canonical pairs a reference glyph with the digit it prints.
type canonical struct {
	glyph Glyph
	digit Digit
}

// digitTable lists the ten canonical glyphs in digit order. Never mutated.
var digitTable = [10]canonical{
	{mustGlyph(" _ ", "| |", "|_|"), 0},
	{mustGlyph("   ", "  |", "  |"), 1},
	{mustGlyph(" _ ", " _|", "|_ "), 2},
	{mustGlyph(" _ ", " _|", " _|"), 3},
	{mustGlyph("   ", "|_|", "  |"), 4},
	{mustGlyph(" _ ", "|_ ", " _|"), 5},
	{mustGlyph(" _ ", "|_ ", "|_|"), 6},
	{mustGlyph(" _ ", "  |", "  |"), 7},
	{mustGlyph(" _ ", "|_|", "|_|"), 8},
	{mustGlyph(" _ ", "|_|", " _|"), 9},
}

// blankGlyph is the all-space cell used when rendering Unknown.
var blankGlyph = mustGlyph("   ", "   ", "   ")

func mustGlyph(top, middle, bottom string) Glyph {
	g, err := ParseGlyph(top, middle, bottom)
	if err != nil {
		panic(fmt.Sprintf("ocr: bad canonical glyph: %v", err))
	}
	return g
}

// CanonicalGlyph returns the reference glyph for d. ok is false for Unknown.
func CanonicalGlyph(d Digit) (Glyph, bool) {
	if !d.Known() {
		return Glyph{}, false
	}
	return digitTable[d].glyph, true
}

// Recognize returns the digit whose canonical glyph equals g exactly, or
// Unknown. It never guesses; near misses are left to Candidates.
func Recognize(g Glyph) Digit {
	for _, c := range digitTable {
		if c.glyph == g {
			return c.digit
		}
	}
	return Unknown
}

// RecognizeAll recognizes each cell of an entry.
func RecognizeAll(glyphs Glyphs) AccountNumber {
	var a AccountNumber
	for i, g := range glyphs {
		a[i] = Recognize(g)
	}
	return a
}

// Candidates returns every digit whose canonical glyph is at most one cell
// away from g, in ascending order. An exact match is included.
func Candidates(g Glyph) []Digit {
	var out []Digit
	for _, c := range digitTable {
		if c.glyph.Distance(g) <= 1 {
			out = append(out, c.digit)
		}
	}
	return out
}
