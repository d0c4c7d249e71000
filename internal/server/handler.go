package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"primer/internal/history"
	"primer/internal/lesson"
	"primer/internal/progress"
	"primer/internal/report"
)

// AttemptLister reads recorded attempts for a module.
type AttemptLister interface {
	List(ctx context.Context, moduleID string, limit int) ([]history.Attempt, error)
}

// Dependencies are the read-only collaborators behind the routes.
type Dependencies struct {
	Catalog *lesson.Catalog
	Tracker *progress.Tracker
	// History is optional; without it the history route returns an empty list.
	History AttemptLister
	Logger  logrus.FieldLogger
}

const defaultHistoryLimit = 20

// NewHandler builds the router for the overview page and JSON API.
func NewHandler(deps Dependencies) (http.Handler, error) {
	if deps.Catalog == nil {
		return nil, errors.New("server: catalog is required")
	}
	if deps.Tracker == nil {
		return nil, errors.New("server: tracker is required")
	}
	if deps.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		deps.Logger = logger
	}
	h := &handler{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/", h.overviewPage)
	r.Route("/api", func(r chi.Router) {
		r.Get("/modules", h.listModules)
		r.Get("/modules/{id}", h.getModule)
		r.Get("/history/{id}", h.listHistory)
	})
	return r, nil
}

type handler struct {
	deps Dependencies
}

// overviewPage renders the HTML progress overview.
func (h *handler) overviewPage(w http.ResponseWriter, r *http.Request) {
	overview, err := report.BuildOverview(r.Context(), h.deps.Catalog.Modules(), h.deps.Tracker)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.OverviewPage(overview).Render(r.Context(), w); err != nil {
		h.deps.Logger.WithError(err).Warn("render overview failed")
	}
}

// listModules returns every module with its lock and progress state.
func (h *handler) listModules(w http.ResponseWriter, r *http.Request) {
	overview, err := report.BuildOverview(r.Context(), h.deps.Catalog.Modules(), h.deps.Tracker)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// getModule returns a module with the quiz answers stripped.
func (h *handler) getModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.deps.Catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, publicModuleFrom(module))
}

// listHistory returns recent attempts for a module, newest first.
func (h *handler) listHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.deps.Catalog.Get(id); err != nil {
		h.fail(w, r, err)
		return
	}
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	attempts := []history.Attempt{}
	if h.deps.History != nil {
		listed, err := h.deps.History.List(r.Context(), id, limit)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		attempts = append(attempts, listed...)
	}
	respondJSON(w, http.StatusOK, attempts)
}

type errorBody struct {
	Error string `json:"error"`
}

// fail maps an error to a JSON error response.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, lesson.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}
	h.deps.Logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

// logRequests logs each request at debug level.
func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.deps.Logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("http request")
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
