package server

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/apperr"
	"github.com/leadscout/leadscout/internal/model"
)

const maxResultsCap = 100

type searchResponse struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Data    []model.Lead `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSearch runs the discovery pipeline. Validation failures return 400;
// pipeline failures degrade to an empty result list so the endpoint stays
// available to its UI consumers.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sector := q.Get("sector")
	location := q.Get("location")
	if sector == "" || location == "" {
		writeError(w, http.StatusBadRequest, "sector and location are required")
		return
	}

	maxResults := maxResultsCap
	if raw := q.Get("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "maxResults must be a positive integer")
			return
		}
		maxResults = min(n, maxResultsCap)
	}
	forceRefresh := q.Get("forceRefresh") == "true"

	leads, err := s.searcher.Search(r.Context(), sector, location, maxResults, forceRefresh)
	if err != nil {
		zap.L().Warn("search pipeline failed, returning empty result",
			zap.String("sector", sector),
			zap.String("location", location),
			zap.Error(err),
		)
		writeJSON(w, http.StatusOK, searchResponse{Success: true, Count: 0, Data: []model.Lead{}})
		return
	}

	s.persist(r, sector, location, leads)

	writeJSON(w, http.StatusOK, searchResponse{Success: true, Count: len(leads), Data: leads})
}

// persist records the search run and its leads. Persistence failures are
// logged and do not affect the response.
func (s *Server) persist(r *http.Request, sector, location string, leads []model.Lead) {
	if s.store == nil || len(leads) == 0 {
		return
	}
	run, err := s.store.CreateSearch(r.Context(), sector, location, len(leads))
	if err != nil {
		zap.L().Warn("failed to record search run", zap.Error(err))
		return
	}
	if err := s.store.SaveLeads(r.Context(), run.ID, leads); err != nil {
		zap.L().Warn("failed to save leads", zap.String("searchId", run.ID), zap.Error(err))
	}
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "lead storage is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	lead, err := s.store.GetLead(r.Context(), id)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			zap.L().Error("lead lookup failed", zap.String("id", id), zap.Error(err))
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": lead})
}

// authProxy forwards /api/auth/* to the configured identity provider
// unchanged. Session handling lives entirely in the provider.
func (s *Server) authProxy() http.Handler {
	if s.auth.ProviderURL == "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "auth provider is not configured")
		})
	}

	target, err := url.Parse(s.auth.ProviderURL)
	if err != nil {
		zap.L().Error("invalid auth provider url", zap.String("url", s.auth.ProviderURL), zap.Error(err))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusInternalServerError, "auth provider misconfigured")
		})
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			zap.L().Warn("auth proxy error", zap.Error(err))
			writeError(w, http.StatusBadGateway, "auth provider unreachable")
		},
	}
	return proxy
}
