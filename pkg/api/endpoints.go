package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/touchstone-ocr/pkg/kit"
	"github.com/hazyhaar/touchstone-ocr/pkg/ocr"
	"golang.org/x/sync/errgroup"
)

// Shared request/response types used by both HTTP and MCP transports.

type scanReq struct {
	Entry string `json:"entry" validate:"required"`
}

type scanBatchReq struct {
	Entries []string `json:"entries" validate:"required,min=1,dive,required"`
}

type validateReq struct {
	Account string `json:"account" validate:"required,len=9"`
}

type batchItem struct {
	Index int `json:"index"`
	*ocr.Result
	Error string `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

type validateResponse struct {
	Account ocr.AccountNumber `json:"account"`
	Status  ocr.Status        `json:"status"`
	Report  string            `json:"report"`
}

type digitInfo struct {
	Digit int       `json:"digit"`
	Rows  [3]string `json:"rows"`
}

type digitsResponse struct {
	Digits []digitInfo `json:"digits"`
}

// Config tunes the service.
type Config struct {
	MaxBatch int // entries per batch call, default 100
	Workers  int // entries scanned concurrently in a batch, default 4
	Logger   *slog.Logger
}

// Service exposes the recognizer as kit.Endpoints.
type Service struct {
	scanner  *ocr.Scanner
	maxBatch int
	workers  int
	logger   *slog.Logger

	scan            kit.Endpoint
	scanBatch       kit.Endpoint
	validateAccount kit.Endpoint
	digits          kit.Endpoint
}

// NewService wires the endpoints around scanner.
func NewService(scanner *ocr.Scanner, cfg Config) *Service {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &Service{
		scanner:  scanner,
		maxBatch: cfg.MaxBatch,
		workers:  cfg.Workers,
		logger:   cfg.Logger,
	}
	s.scan = kit.Logging(s.logger, "scan")(s.scanEndpoint)
	s.scanBatch = kit.Logging(s.logger, "scan_batch")(s.scanBatchEndpoint)
	s.validateAccount = kit.Logging(s.logger, "validate")(validateEndpoint)
	s.digits = kit.Logging(s.logger, "digits")(digitsEndpoint)
	return s
}

func (s *Service) scanEndpoint(_ context.Context, request any) (any, error) {
	req := request.(*scanReq)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	res, err := s.scanner.Scan(req.Entry)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// scanBatchEndpoint scans every entry; a malformed entry only fails its own item.
func (s *Service) scanBatchEndpoint(ctx context.Context, request any) (any, error) {
	req := request.(*scanBatchReq)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if len(req.Entries) > s.maxBatch {
		return nil, &ValidationError{Fields: []string{fmt.Sprintf("too many entries (max %d, got %d)", s.maxBatch, len(req.Entries))}}
	}

	items := make([]batchItem, len(req.Entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, raw := range req.Entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items[i] = batchItem{Index: i}
			res, err := s.scanner.Scan(raw)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	return batchResponse{Results: items}, nil
}

func validateEndpoint(_ context.Context, request any) (any, error) {
	req := request.(*validateReq)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	account, err := ocr.ParseAccountNumber(req.Account)
	if err != nil {
		return nil, err
	}
	status := ocr.Classify(account)
	return validateResponse{
		Account: account,
		Status:  status,
		Report:  ocr.Report(account),
	}, nil
}

func digitsEndpoint(_ context.Context, _ any) (any, error) {
	resp := digitsResponse{Digits: make([]digitInfo, 0, 10)}
	for d := ocr.Digit(0); d <= 9; d++ {
		g, _ := ocr.CanonicalGlyph(d)
		resp.Digits = append(resp.Digits, digitInfo{Digit: int(d), Rows: g.Rows()})
	}
	return resp, nil
}
