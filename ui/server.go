// Package ui exposes the check orchestrator over HTTP for automation that
// prefers an API call to running the CLI.
package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"investigator/app"
	"investigator/domain/check"
	"investigator/domain/core"
	"investigator/internal"
	"investigator/internal/report"
)

// Server is the HTTP API application
type Server struct {
	router *chi.Mux
	checks *app.CheckService
	log    *internal.Logger
}

// NewServer creates the API server around a check service
func NewServer(checks *app.CheckService, logger *internal.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		checks: checks,
		log:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/v1/strategies", s.handleStrategies)
	s.router.Post("/api/v1/check", s.handleCheck)
	s.router.Post("/api/v1/check/report", s.handleCheckReport)
}

// Handler returns the root http.Handler for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server on the given port
func (s *Server) ListenAndServe(port string) error {
	s.log.Info("API server listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

type checkRequest struct {
	Description string    `json:"description"`
	History     []float64 `json:"history"`
	Value       *float64  `json:"value"`
	Strategies  []string  `json:"strategies,omitempty"`
}

type checkResult struct {
	Method string                 `json:"method"`
	Result string                 `json:"result"`
	Error  string                 `json:"error,omitempty"`
	Record check.DiagnosticRecord `json:"record"`
}

type checkResponse struct {
	RunID   string        `json:"run_id"`
	Results []checkResult `json:"results"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	}
	var entries []entry
	for _, id := range s.checks.Registry().IDs() {
		strategy, err := s.checks.Registry().Get(id)
		if err != nil {
			continue
		}
		entries = append(entries, entry{ID: string(id), Description: strategy.Description()})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"strategies": entries})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	_, results, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	resp := checkResponse{RunID: uuid.New().String()}
	for _, res := range results {
		cr := checkResult{
			Method: string(res.Strategy),
			Result: res.Verdict.String(),
			Record: res.Record,
		}
		if res.Err != nil {
			cr.Result = "ERROR"
			cr.Error = res.Err.Error()
		}
		resp.Results = append(resp.Results, cr)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleCheckReport runs the same evaluation but answers with an HTML page
func (s *Server) handleCheckReport(w http.ResponseWriter, r *http.Request) {
	req, results, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	md := report.BuildMarkdown(uuid.New().String(), []report.VariableOutcome{{
		Variable: req.Description,
		Value:    *req.Value,
		Results:  results,
	}})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.RenderHTML(md))
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) (*checkRequest, []app.Result, bool) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, nil, false
	}

	ids := make([]check.StrategyID, 0, len(req.Strategies))
	for _, id := range req.Strategies {
		ids = append(ids, check.StrategyID(id))
	}

	results, err := s.checks.Evaluate(req.History, req.Value, req.Description, ids)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsContractViolation(err) || core.IsConfigurationError(err) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err.Error())
		return nil, nil, false
	}
	return &req, results, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
