// Package server exposes the estimator over HTTP together with the embedded
// web page.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/inflation-estimator/internal/estimate"
	"github.com/iwvelando/inflation-estimator/pkg/constants"
	"github.com/iwvelando/inflation-estimator/pkg/format"
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Options tunes the handler. Zero values select the defaults.
type Options struct {
	MaxBodySize int64
	Version     string
	// Limiter, when set, throttles POST /api/estimate per client address.
	Limiter *RateLimiter
}

type handler struct {
	logger      *zap.Logger
	service     *estimate.Service
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and estimate API.
func NewHandler(logger *zap.Logger, service *estimate.Service, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if service == nil {
		service = estimate.NewService(logger, nil, format.DefaultLocale(), nil)
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, service: service, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	var estimateHandler http.Handler = http.HandlerFunc(h.handleEstimate)
	if opts.Limiter != nil {
		estimateHandler = rateLimitMiddleware(logger, opts.Limiter, estimateHandler)
	}
	mux.Handle("/api/estimate", estimateHandler)

	mux.HandleFunc("/api/rates", h.handleRates)
	mux.HandleFunc("/api/years", h.handleYears)
	mux.HandleFunc("/api/years/", h.handleYear)
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return requestIDMiddleware(logger, mux)
}

type estimateRequest struct {
	Amount    flexibleString `json:"amount"`
	StartDate flexibleString `json:"startDate"`
	EndDate   flexibleString `json:"endDate"`
}

// flexibleString accepts a JSON string, number or null.
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*f = ""
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexibleString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", trimmed)
		}
		*f = flexibleString(n.String())
		return nil
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

type estimateResponse struct {
	estimate.Report
	Duration string `json:"duration"`
}

type ratesResponse struct {
	Tiers       []inflation.RateTier `json:"tiers"`
	DefaultRate float64              `json:"defaultRate"`
}

type yearResponse struct {
	Year        string `json:"year"`
	Description string `json:"description"`
}

func (h *handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEstimate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				errorResponse{Error: fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize)}, op)
			return
		}
		h.respondError(w, r, http.StatusBadRequest,
			errorResponse{Error: fmt.Sprintf("failed to decode request: %v", err)}, op)
		return
	}

	report, err := h.service.Estimate(r.Context(), estimate.Request{
		Amount:    string(payload.Amount),
		StartDate: string(payload.StartDate),
		EndDate:   string(payload.EndDate),
	})
	if err != nil {
		var verr *inflation.ValidationError
		if errors.As(err, &verr) {
			h.respondError(w, r, http.StatusBadRequest, errorResponse{
				Error:   verr.Error(),
				Kind:    verr.Kind.String(),
				Field:   verr.Field,
				Message: verr.Message(),
			}, op)
			return
		}
		h.respondError(w, r, http.StatusInternalServerError,
			errorResponse{Error: fmt.Sprintf("failed to compute estimate: %v", err)}, op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("estimate computed",
		zap.String("op", op),
		zap.String("requestId", requestIDFrom(r.Context())),
		zap.Int("periodMonths", report.Result.PeriodMonths),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, estimateResponse{Report: report, Duration: elapsed.String()})
}

func (h *handler) handleRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	table := h.service.Table()
	h.writeJSON(w, http.StatusOK, ratesResponse{Tiers: table.Tiers(), DefaultRate: table.Default()})
}

func (h *handler) handleYears(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	years := inflation.DescribedYears()
	response := make([]yearResponse, 0, len(years))
	for _, year := range years {
		response = append(response, yearResponse{Year: year, Description: inflation.Describe(year)})
	}
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleYear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	year := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/years/"))
	if year == "" || strings.Contains(year, "/") {
		h.respondError(w, r, http.StatusNotFound, errorResponse{Error: "year not found"}, "server.handleYear")
		return
	}

	h.writeJSON(w, http.StatusOK, yearResponse{Year: year, Description: inflation.Describe(year)})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, resp errorResponse, op string) {
	h.logger.Warn("estimate request failed",
		zap.String("op", op),
		zap.String("requestId", requestIDFrom(r.Context())),
		zap.Int("status", status),
		zap.String("error", resp.Error),
	)

	h.writeJSON(w, status, resp)
}

// writeJSON encodes payload before committing status, so an unencodable
// payload becomes a 500 with a JSON error body instead of an empty 200.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
