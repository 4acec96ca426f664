package feed

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gridkit/infinigrid/pkg/errors"
)

// NewServer builds the HTTP API over gen.
//
// Routes:
//
//	GET /cards?after=page-N          page following page-N ("" for the start)
//	GET /cards?before=page-N         page preceding page-N
//	GET /healthz                     liveness probe
//
// Responses are JSON. Errors carry the error code and a user-facing message:
//
//	{"code": "NOT_FOUND", "error": "no page before page-0"}
func NewServer(gen *Generator, logger *log.Logger) http.Handler {
	s := &server{gen: gen, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/cards", s.handleCards)
	r.Get("/healthz", s.handleHealth)
	return r
}

type server struct {
	gen    *Generator
	logger *log.Logger
}

func (s *server) handleCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	after := q.Get("after")
	before := q.Get("before")

	if after != "" && before != "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "after and before are mutually exclusive"))
		return
	}

	var (
		page Page
		err  error
	)
	if before != "" {
		page, err = s.gen.Before(before)
	} else {
		page, err = s.gen.After(after)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	if n := q.Get("count"); n != "" {
		limit, convErr := strconv.Atoi(n)
		if convErr != nil || limit < 1 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "count must be a positive integer"))
			return
		}
		if limit < len(page.Cards) {
			page.Cards = page.Cards[:limit]
		}
	}

	s.writeJSON(w, http.StatusOK, page)
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}

// requestLogger logs one line per request with latency and status.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
