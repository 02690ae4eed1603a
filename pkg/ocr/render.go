package ocr

import "strings"

// Render draws an account number the way a scanner prints it: three content
// rows of 27 characters and a blank trailer row, newline-terminated.
// Unknown positions are drawn as blank cells.
func Render(a AccountNumber) string {
	var glyphs Glyphs
	for i, d := range a {
		g, ok := CanonicalGlyph(d)
		if !ok {
			g = blankGlyph
		}
		glyphs[i] = g
	}
	return RenderGlyphs(glyphs)
}

// RenderGlyphs lays out nine cells side by side.
func RenderGlyphs(glyphs Glyphs) string {
	var b strings.Builder
	b.Grow((RowWidth + 1) * (GlyphSize + 1))
	for r := 0; r < GlyphSize; r++ {
		for _, g := range glyphs {
			for _, c := range g[r] {
				b.WriteRune(c)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", RowWidth))
	b.WriteByte('\n')
	return b.String()
}
