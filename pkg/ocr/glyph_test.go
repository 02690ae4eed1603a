package ocr

import (
	"errors"
	"strings"
	"testing"
)

const scan123456789 = "    _  _     _  _  _  _  _ \n" +
	"  | _| _||_||_ |_   ||_||_|\n" +
	"  ||_  _|  | _||_|  ||_| _|\n" +
	"                           "

// entry renders a 9-character account string as raw scan text.
func entry(t *testing.T, s string) string {
	t.Helper()
	a, err := ParseAccountNumber(s)
	if err != nil {
		t.Fatalf("ParseAccountNumber(%q): %v", s, err)
	}
	return Render(a)
}

// withGlyph replaces the cell at pos in a raw entry.
func withGlyph(t *testing.T, raw string, pos int, g Glyph) string {
	t.Helper()
	glyphs, err := Segment(raw)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	glyphs[pos] = g
	return RenderGlyphs(glyphs)
}

func TestSegment(t *testing.T) {
	glyphs, err := Segment(scan123456789)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	for i, g := range glyphs {
		want := digitTable[i+1].glyph
		if g != want {
			t.Errorf("glyph %d = %q, want %q", i, g.String(), want.String())
		}
	}
}

func TestSegment_TrailerOptional(t *testing.T) {
	noTrailer := strings.Join(strings.Split(scan123456789, "\n")[:3], "\n")
	a, err := Segment(noTrailer)
	if err != nil {
		t.Fatalf("Segment without trailer: %v", err)
	}
	b, _ := Segment(scan123456789)
	if a != b {
		t.Error("trailer row changed the segmented glyphs")
	}
}

func TestSegment_CRLF(t *testing.T) {
	crlf := strings.ReplaceAll(scan123456789, "\n", "\r\n")
	glyphs, err := Segment(crlf)
	if err != nil {
		t.Fatalf("Segment CRLF: %v", err)
	}
	if got := RecognizeAll(glyphs).String(); got != "123456789" {
		t.Errorf("recognized %q, want 123456789", got)
	}
}

func TestSegment_WideRows(t *testing.T) {
	rows := strings.Split(scan123456789, "\n")
	for i := range rows {
		rows[i] += "   "
	}
	glyphs, err := Segment(strings.Join(rows, "\n"))
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if got := RecognizeAll(glyphs).String(); got != "123456789" {
		t.Errorf("recognized %q, want 123456789", got)
	}
}

func TestSegment_ShortRow(t *testing.T) {
	rows := strings.Split(scan123456789, "\n")
	rows[1] = rows[1][:26]
	_, err := Segment(strings.Join(rows, "\n"))
	if err == nil {
		t.Fatal("expected error for 26-character row")
	}
	if !errors.Is(err, ErrFormat) {
		t.Errorf("error %v does not wrap ErrFormat", err)
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error %T is not *FormatError", err)
	}
	if fe.Row != 1 || fe.Width != 26 {
		t.Errorf("FormatError row=%d width=%d, want row=1 width=26", fe.Row, fe.Width)
	}
}

func TestSegment_TooFewRows(t *testing.T) {
	for _, raw := range []string{"", "                           ", "a\nb"} {
		if _, err := Segment(raw); !errors.Is(err, ErrFormat) {
			t.Errorf("Segment(%q) error = %v, want ErrFormat", raw, err)
		}
	}
}

func TestParseGlyph_BadWidth(t *testing.T) {
	if _, err := ParseGlyph(" _ ", "| |", "|_"); !errors.Is(err, ErrFormat) {
		t.Errorf("ParseGlyph short row: err = %v, want ErrFormat", err)
	}
}

func TestGlyphDistance(t *testing.T) {
	zero, _ := CanonicalGlyph(0)
	eight, _ := CanonicalGlyph(8)
	one, _ := CanonicalGlyph(1)

	tests := []struct {
		a, b Glyph
		want int
	}{
		{zero, zero, 0},
		{zero, eight, 1},
		{eight, zero, 1},
		{one, eight, 5},
		{blankGlyph, eight, 7},
	}
	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a.String(), tt.b.String(), got, tt.want)
		}
	}
}

func TestRender_RoundTrip(t *testing.T) {
	raw := entry(t, "123456789")
	if raw != scan123456789+"\n" {
		t.Errorf("Render(123456789) =\n%s\nwant\n%s", raw, scan123456789)
	}
	for _, s := range []string{"000000000", "490867715", "86110??36"} {
		glyphs, err := Segment(entry(t, s))
		if err != nil {
			t.Fatalf("Segment(Render(%s)): %v", s, err)
		}
		if got := RecognizeAll(glyphs).String(); got != s {
			t.Errorf("RecognizeAll(Render(%s)) = %s", s, got)
		}
	}
}
