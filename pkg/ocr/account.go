package ocr

import (
	"fmt"
	"strings"
)

// AccountNumber is nine digits, most significant first.
type AccountNumber [Positions]Digit

// ParseAccountNumber reads a 9-character string of digits and '?'.
func ParseAccountNumber(s string) (AccountNumber, error) {
	var a AccountNumber
	chars := []rune(s)
	if len(chars) != Positions {
		return a, &FormatError{Row: 0, Width: len(chars), Reason: "account number must be 9 characters"}
	}
	for i, c := range chars {
		switch {
		case c >= '0' && c <= '9':
			a[i] = Digit(c - '0')
		case c == '?':
			a[i] = Unknown
		default:
			return AccountNumber{}, &FormatError{Row: i, Reason: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	return a, nil
}

func (a AccountNumber) String() string {
	var b strings.Builder
	b.Grow(Positions)
	for _, d := range a {
		b.WriteRune(d.Rune())
	}
	return b.String()
}

func (a AccountNumber) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Legible reports whether every position was recognized.
func (a AccountNumber) Legible() bool {
	for _, d := range a {
		if !d.Known() {
			return false
		}
	}
	return true
}

// UnknownCount returns the number of Unknown positions.
func (a AccountNumber) UnknownCount() int {
	var n int
	for _, d := range a {
		if !d.Known() {
			n++
		}
	}
	return n
}

// ValidChecksum reports whether sum(d[i] * (9-i)) is divisible by 11.
// Weights run from 9 on the leftmost digit down to 1 on the rightmost.
// A number with Unknown positions yields a *PreconditionError.
func ValidChecksum(a AccountNumber) (bool, error) {
	if !a.Legible() {
		return false, &PreconditionError{Account: a}
	}
	var sum int
	for i, d := range a {
		sum += int(d) * (Positions - i)
	}
	return sum%11 == 0, nil
}

// Status is the classification of one recognized entry.
type Status int

const (
	Valid Status = iota
	Illegible
	ChecksumError
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Illegible:
		return "illegible"
	case ChecksumError:
		return "checksum_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Suffix is the report marker printed after the account number.
func (s Status) Suffix() string {
	switch s {
	case Illegible:
		return " ILL"
	case ChecksumError:
		return " ERR"
	default:
		return ""
	}
}

// Classify returns Illegible if any position is Unknown, ChecksumError if
// the checksum fails, Valid otherwise.
func Classify(a AccountNumber) Status {
	if !a.Legible() {
		return Illegible
	}
	if ok, _ := ValidChecksum(a); !ok {
		return ChecksumError
	}
	return Valid
}

// Report formats an account number with its status suffix,
// e.g. "664371495 ERR" or "86110??36 ILL".
func Report(a AccountNumber) string {
	return a.String() + Classify(a).Suffix()
}
