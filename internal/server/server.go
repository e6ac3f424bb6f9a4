// Package server exposes the analyzer over HTTP and WebSocket.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"tokenbrain/internal/analyzer"
	"tokenbrain/internal/domain"
	"tokenbrain/internal/observability"
	"tokenbrain/internal/tokendata"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Server handles HTTP and WebSocket requests.
type Server struct {
	service      *analyzer.Service
	logger       *log.Logger
	started      time.Time
	pingInterval time.Duration
}

// New creates a new Server around an analyzer service.
func New(service *analyzer.Service) *Server {
	return &Server{
		service:      service,
		logger:       log.New(os.Stdout, "[server] ", log.LstdFlags),
		started:      time.Now(),
		pingInterval: wsPingInterval,
	}
}

// Handler returns the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/recent", s.handleRecent)
	mux.HandleFunc("GET /ws", s.handleWS)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /metrics", observability.Handler())

	return mux
}

// AnalyzeRequest is the JSON body for POST /api/analyze.
type AnalyzeRequest struct {
	Address string `json:"address"`
}

// errorResponse is the JSON body for all error status codes.
type errorResponse struct {
	Error string `json:"error"`
}

// handleAnalyze runs one analysis and returns the full report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	report, err := s.service.Analyze(r.Context(), req.Address)
	if err != nil {
		s.writeAnalyzeError(w, req.Address, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeAnalyzeError(w http.ResponseWriter, address string, err error) {
	switch {
	case errors.Is(err, analyzer.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, "invalid token address")
	case errors.Is(err, tokendata.ErrNotFound):
		writeError(w, http.StatusNotFound, "token not found")
	case errors.Is(err, tokendata.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "token data source unavailable")
	default:
		s.logger.Printf("analyze %s failed: %v", address, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// handleHistory returns past analyses for one address, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "address query parameter is required")
		return
	}

	records, err := s.service.History(r.Context(), address, parseLimit(r))
	if err != nil {
		if errors.Is(err, analyzer.ErrInvalidAddress) {
			writeError(w, http.StatusBadRequest, "invalid token address")
			return
		}
		s.logger.Printf("history %s failed: %v", address, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, recordsPayload(records))
}

// handleRecent returns the most recent analyses across all addresses.
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Recent(r.Context(), parseLimit(r))
	if err != nil {
		s.logger.Printf("recent failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, recordsPayload(records))
}

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status      string           `json:"status"`
	Uptime      string           `json:"uptime"`
	StartedAt   time.Time        `json:"started_at"`
	LevelCounts map[string]int64 `json:"level_counts"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := s.service.LevelCounts(r.Context())
	if err != nil {
		s.logger.Printf("level counts failed: %v", err)
		counts = map[domain.RiskLevel]int64{}
	}

	levelCounts := make(map[string]int64, len(counts))
	for level, n := range counts {
		levelCounts[string(level)] = n
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Status:      "running",
		Uptime:      time.Since(s.started).String(),
		StartedAt:   s.started,
		LevelCounts: levelCounts,
	})
}

// RecordResponse is one history entry in API responses.
type RecordResponse struct {
	Address             string   `json:"address"`
	Symbol              *string  `json:"symbol,omitempty"`
	Level               string   `json:"level"`
	Recommendation      string   `json:"recommendation"`
	SafetyCompleteness  float64  `json:"safety_completeness"`
	ContextCompleteness float64  `json:"context_completeness"`
	Factors             []string `json:"factors"`
	Summary             string   `json:"summary"`
	CreatedAt           int64    `json:"created_at"`
}

func recordsPayload(records []*domain.AnalysisRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, RecordResponse{
			Address:             r.Address,
			Symbol:              r.Symbol,
			Level:               string(r.Level),
			Recommendation:      string(r.Recommendation),
			SafetyCompleteness:  r.SafetyCompleteness,
			ContextCompleteness: r.ContextCompleteness,
			Factors:             r.Factors,
			Summary:             r.Summary,
			CreatedAt:           r.CreatedAt,
		})
	}
	return out
}

func parseLimit(r *http.Request) int {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
