package ocr

import (
	"errors"
	"fmt"
)

var (
	ErrFormat       = errors.New("malformed scan")
	ErrPrecondition = errors.New("checksum requires a fully recognized account number")
)

// FormatError reports a raw entry or account string that cannot be read.
// Row is the offending row (or character position for account strings),
// Width its observed length when that is what went wrong.
type FormatError struct {
	Row    int
	Width  int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Width > 0 {
		return fmt.Sprintf("%v: row %d (width %d): %s", ErrFormat, e.Row, e.Width, e.Reason)
	}
	return fmt.Sprintf("%v: row %d: %s", ErrFormat, e.Row, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// PreconditionError is returned when the checksum is asked for an account
// number that still has Unknown positions.
type PreconditionError struct {
	Account AccountNumber
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrPrecondition, e.Account)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }
