package ocr

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Candidate is a checksum-valid account number obtained by replacing the
// digit at Position with a near-miss reading of its glyph.
type Candidate struct {
	Account  AccountNumber `json:"account"`
	Position int           `json:"position"`
}

// Resolution is the outcome of a correction search.
type Resolution int

const (
	Resolved Resolution = iota
	Unresolvable
	Ambiguous
)

func (r Resolution) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case Unresolvable:
		return "unresolvable"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

func (r Resolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Correction is the result of searching one entry for single-digit fixes.
// Account is set only when Resolution is Resolved. Alternatives lists the
// distinct competing numbers of an Ambiguous search, sorted; callers report
// them but must not pick one.
type Correction struct {
	Resolution   Resolution      `json:"resolution"`
	Account      *AccountNumber  `json:"account,omitempty"`
	Alternatives []AccountNumber `json:"alternatives,omitempty"`
	Candidates   []Candidate     `json:"candidates,omitempty"`
}

// Corrected returns the unique corrected number, if there is one.
func (c Correction) Corrected() (AccountNumber, bool) {
	if c.Resolution != Resolved || c.Account == nil {
		return AccountNumber{}, false
	}
	return *c.Account, true
}

// Corrector searches the nine positions of an entry for single-glyph
// corrections. With parallelism above 1 the positions are searched
// concurrently; the outcome does not depend on it.
type Corrector struct {
	parallelism int
}

// NewCorrector returns a Corrector searching up to parallelism positions at
// once. Values below 2 search sequentially.
func NewCorrector(parallelism int) *Corrector {
	if parallelism > Positions {
		parallelism = Positions
	}
	return &Corrector{parallelism: parallelism}
}

// Correct runs a sequential search. See Corrector.Correct.
func Correct(glyphs Glyphs) Correction {
	return NewCorrector(1).Correct(glyphs)
}

// Correct looks for checksum-valid numbers reachable by re-reading exactly
// one glyph as a digit at most one cell away. Every position is tried,
// including those that matched a canonical glyph exactly.
//
// It is meant for entries that did not classify as Valid: on a valid entry
// the entry itself is among the results.
func (c *Corrector) Correct(glyphs Glyphs) Correction {
	recognized := RecognizeAll(glyphs)
	if recognized.UnknownCount() > 1 {
		return Correction{Resolution: Unresolvable}
	}

	var slots [Positions][]Candidate
	if c.parallelism > 1 {
		var g errgroup.Group
		g.SetLimit(c.parallelism)
		for i := range glyphs {
			g.Go(func() error {
				slots[i] = searchPosition(recognized, glyphs[i], i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range glyphs {
			slots[i] = searchPosition(recognized, glyphs[i], i)
		}
	}
	return resolve(slots)
}

// searchPosition tries every near-miss digit of g at pos, keeping the
// trials that pass the checksum.
func searchPosition(recognized AccountNumber, g Glyph, pos int) []Candidate {
	var found []Candidate
	for _, d := range Candidates(g) {
		trial := recognized
		trial[pos] = d
		ok, err := ValidChecksum(trial)
		if err != nil || !ok {
			continue
		}
		found = append(found, Candidate{Account: trial, Position: pos})
	}
	return found
}

// resolve folds the per-position results into distinct numbers.
func resolve(slots [Positions][]Candidate) Correction {
	var all []Candidate
	seen := make(map[AccountNumber]struct{})
	var distinct []AccountNumber
	for _, found := range slots {
		for _, cand := range found {
			all = append(all, cand)
			if _, dup := seen[cand.Account]; dup {
				continue
			}
			seen[cand.Account] = struct{}{}
			distinct = append(distinct, cand.Account)
		}
	}

	switch len(distinct) {
	case 0:
		return Correction{Resolution: Unresolvable}
	case 1:
		account := distinct[0]
		return Correction{Resolution: Resolved, Account: &account, Candidates: all}
	}

	sort.Slice(distinct, func(i, j int) bool { return distinct[i].String() < distinct[j].String() })
	return Correction{Resolution: Ambiguous, Alternatives: distinct, Candidates: all}
}
