package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hazyhaar/touchstone-ocr/pkg/kit"
	"github.com/hazyhaar/touchstone-ocr/pkg/ocr"
)

const maxBodyBytes = 64 * 1024

// NewRouter returns an http.Handler with all API routes.
func NewRouter(svc *Service) http.Handler {
	mux := http.NewServeMux()
	h := &handler{svc: svc}

	mux.HandleFunc("POST /v1/scan", h.handleScan)
	mux.HandleFunc("POST /v1/scan/batch", h.handleScanBatch)
	mux.HandleFunc("GET /v1/validate/{account}", h.handleValidate)
	mux.HandleFunc("GET /v1/digits", h.handleDigits)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestID(mux))
}

type handler struct {
	svc *Service
}

// --- scan one entry ---

func (h *handler) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanReq
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.svc.scan(r.Context(), &req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- scan batch ---

func (h *handler) handleScanBatch(w http.ResponseWriter, r *http.Request) {
	var req scanBatchReq
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.svc.scanBatch(r.Context(), &req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- validate a digit string ---

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.validateAccount(r.Context(), &validateReq{Account: r.PathValue("account")})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- canonical digits ---

func (h *handler) handleDigits(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.digits(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status string `json:"status"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// --- helpers ---

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// statusFor maps endpoint errors to HTTP status codes.
func statusFor(err error) int {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ocr.ErrFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestID tags the request context with the caller's X-Request-ID, or a
// fresh one, and echoes it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = kit.NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := kit.WithRequestID(kit.WithTransport(r.Context(), "http"), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
