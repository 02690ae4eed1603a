// Package ingest splits scan files into raw entries for the recognizer.
//
// A scan file is a sequence of 4-line blocks: three content rows followed by
// a blank separator row. The separator of the last block may be missing.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// ErrSeparator is returned when the row after an entry is not blank.
var ErrSeparator = errors.New("entry separator row is not blank")

// Block is one raw entry and the 1-based line it starts on.
type Block struct {
	Line int
	Text string
}

// Options controls how a scan file is decoded.
type Options struct {
	// Encoding names the file's character set (any WHATWG label, e.g.
	// "windows-1252", "shift_jis"). Empty or UTF-8 means no transcoding.
	Encoding string
}

// Reader yields entry blocks from a scan file.
type Reader struct {
	scanner *bufio.Scanner
	line    int // last line handed out
	read    int // last line scanned
	pending []numberedLine
	done    bool
}

type numberedLine struct {
	n    int
	text string
}

// NewReader wraps r, transcoding to UTF-8 when opts names another encoding.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	if enc := opts.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}
	return &Reader{scanner: bufio.NewScanner(r)}, nil
}

// Next returns the next entry, or io.EOF when the file is exhausted.
// Trailing blank lines at the end of the file are ignored.
func (r *Reader) Next() (Block, error) {
	if r.done {
		return Block{}, io.EOF
	}

	start := r.line + 1
	var rows []string
	for len(rows) < 3 {
		row, ok, err := r.readLine()
		if err != nil {
			return Block{}, err
		}
		if !ok {
			r.done = true
			if allBlank(rows) {
				return Block{}, io.EOF
			}
			return Block{}, fmt.Errorf("line %d: entry has %d of 3 rows", start, len(rows))
		}
		rows = append(rows, row)
	}
	if allBlank(rows) {
		blank, err := r.restIsBlank()
		if err != nil {
			return Block{}, err
		}
		if blank {
			r.done = true
			return Block{}, io.EOF
		}
	}

	sep, ok, err := r.readLine()
	if err != nil {
		return Block{}, err
	}
	if !ok {
		r.done = true
	} else if strings.TrimSpace(sep) != "" {
		return Block{}, fmt.Errorf("line %d: %w", r.line, ErrSeparator)
	}

	return Block{Line: start, Text: strings.Join(rows, "\n")}, nil
}

// All reads every remaining block.
func (r *Reader) All() ([]Block, error) {
	var blocks []Block
	for {
		b, err := r.Next()
		if errors.Is(err, io.EOF) {
			return blocks, nil
		}
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, b)
	}
}

func (r *Reader) readLine() (string, bool, error) {
	if len(r.pending) > 0 {
		l := r.pending[0]
		r.pending = r.pending[1:]
		r.line = l.n
		return l.text, true, nil
	}
	l, ok, err := r.scan()
	if !ok {
		return "", false, err
	}
	r.line = l.n
	return l.text, true, nil
}

func (r *Reader) scan() (numberedLine, bool, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return numberedLine{}, false, fmt.Errorf("read scan file: %w", err)
		}
		return numberedLine{}, false, nil
	}
	r.read++
	return numberedLine{n: r.read, text: Normalize(r.scanner.Text())}, true, nil
}

// restIsBlank reports whether every line left in the file is blank. Lines
// read ahead are buffered for readLine.
func (r *Reader) restIsBlank() (bool, error) {
	for _, l := range r.pending {
		if strings.TrimSpace(l.text) != "" {
			return false, nil
		}
	}
	for {
		l, ok, err := r.scan()
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		r.pending = append(r.pending, l)
		if strings.TrimSpace(l.text) != "" {
			return false, nil
		}
	}
}

// Normalize folds full-width bars, underscores and ideographic spaces to
// their ASCII forms and drops a trailing carriage return.
func Normalize(row string) string {
	return width.Narrow.String(strings.TrimSuffix(row, "\r"))
}

func allBlank(rows []string) bool {
	for _, row := range rows {
		if strings.TrimSpace(row) != "" {
			return false
		}
	}
	return true
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
