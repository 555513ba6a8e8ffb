// Package api exposes the analysis pipeline over HTTP: submit a level
// config, get back the classified-path report; fetch persisted reports
// by id later.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/stagewalk/stagewalk/pkg/errors"
	"github.com/stagewalk/stagewalk/pkg/level"
	"github.com/stagewalk/stagewalk/pkg/pipeline"
	"github.com/stagewalk/stagewalk/pkg/store"
)

// maxConfigBytes bounds the accepted config document size.
const maxConfigBytes = 1 << 20

// Server wires the pipeline and report store into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server around a runner and a report store.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Handler returns the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/reports/{id}", s.handleGetReport)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze runs the pipeline on the posted config document.
// The dialect follows the Content-Type: yaml media types decode as
// YAML, everything else as TOML.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxConfigBytes+1))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "read body", err)
		return
	}
	if len(data) > maxConfigBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "config too large", nil)
		return
	}

	opts := pipeline.Options{
		ConfigData: data,
		Dialect:    dialectFor(r.Header.Get("Content-Type")),
		Refresh:    r.URL.Query().Get("refresh") == "true",
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, statusFor(err), "analyze", err)
		return
	}

	if err := s.store.Save(r.Context(), result.Report); err != nil {
		s.writeError(w, http.StatusInternalServerError, "persist report", err)
		return
	}

	writeJSON(w, http.StatusOK, result.Report)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rep, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "report "+id, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "load report", err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// dialectFor maps a Content-Type to a config dialect.
func dialectFor(contentType string) string {
	if strings.Contains(contentType, "yaml") {
		return pipeline.DialectYAML
	}
	return pipeline.DialectTOML
}

// statusFor maps pipeline failures onto HTTP statuses: every document
// fault is the caller's, everything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, level.ErrUnsupportedVersion),
		errors.Is(err, level.ErrNoStages),
		errors.Is(err, level.ErrMissingStageID),
		errors.Is(err, level.ErrDuplicateStageID),
		errors.Is(err, level.ErrUnknownDestination),
		errors.Is(err, level.ErrNoEndStage),
		errors.Is(err, level.ErrBadStageDefinition):
		return http.StatusBadRequest
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeUnsupportedVersion,
		apperrors.ErrCodeMissingSection,
		apperrors.ErrCodeBadFieldType,
		apperrors.ErrCodeBadStage:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, context string, err error) {
	msg := context
	code := ""
	if err != nil {
		msg = context + ": " + apperrors.UserMessage(err)
		code = string(apperrors.GetCode(err))
		s.logger.Warn("request failed", "context", context, "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
