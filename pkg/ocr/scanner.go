package ocr

// Result is the outcome of scanning one entry.
type Result struct {
	Account    AccountNumber `json:"account"`
	Status     Status        `json:"status"`
	Report     string        `json:"report"`
	Correction *Correction   `json:"correction,omitempty"`
}

// Scanner runs the full pipeline on raw entries: segment, recognize,
// classify, and correct entries that are not Valid. A Scanner holds no
// mutable state and may be shared across goroutines.
type Scanner struct {
	correct   bool
	corrector *Corrector
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithCorrection toggles the correction search. Enabled by default.
func WithCorrection(enabled bool) Option {
	return func(s *Scanner) { s.correct = enabled }
}

// WithParallelism sets how many positions the correction search may
// evaluate at once.
func WithParallelism(n int) Option {
	return func(s *Scanner) { s.corrector = NewCorrector(n) }
}

// NewScanner creates a Scanner with correction enabled and a sequential
// search.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{correct: true, corrector: NewCorrector(1)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan processes one raw entry. Only a malformed entry returns an error;
// illegible entries, checksum failures and failed corrections are reported
// in the Result.
func (s *Scanner) Scan(raw string) (*Result, error) {
	glyphs, err := Segment(raw)
	if err != nil {
		return nil, err
	}

	account := RecognizeAll(glyphs)
	status := Classify(account)
	res := &Result{
		Account: account,
		Status:  status,
		Report:  Report(account),
	}
	if s.correct && status != Valid {
		c := s.corrector.Correct(glyphs)
		res.Correction = &c
	}
	return res, nil
}
