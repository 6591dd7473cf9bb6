// Package handler exposes the crisis news HTTP endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"crisiswatch/internal/news"
	"crisiswatch/internal/news/models"
	dErrors "crisiswatch/pkg/domain-errors"
	"crisiswatch/pkg/platform/httputil"
)

// NewsService is what the handler needs from the news feature.
type NewsService interface {
	CountryNews(ctx context.Context, country, crisisType string, pageSize int) models.Response
	Latest(ctx context.Context, crisisType string, pageSize int) models.Response
}

type Handler struct {
	service NewsService
	logger  *slog.Logger
}

func New(service NewsService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/news", h.countryNews)
	r.Get("/api/news/latest", h.latest)
}

func (h *Handler) countryNews(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "country query parameter is required"))
		return
	}

	crisisType := r.URL.Query().Get("type")
	if crisisType == "" {
		crisisType = news.TypeEconomic
	}
	if !news.ValidCrisisType(crisisType) {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "unsupported crisis type %q", crisisType))
		return
	}

	pageSize := pageSizeParam(r, news.DefaultCountryPageSize)
	httputil.WriteJSON(w, http.StatusOK, h.service.CountryNews(r.Context(), country, crisisType, pageSize))
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	crisisType := r.URL.Query().Get("type")
	if crisisType != "" && !news.ValidCrisisType(crisisType) {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "unsupported crisis type %q", crisisType))
		return
	}

	pageSize := pageSizeParam(r, news.DefaultLatestPageSize)
	httputil.WriteJSON(w, http.StatusOK, h.service.Latest(r.Context(), crisisType, pageSize))
}

// pageSizeParam parses ?pageSize=, falling back to the endpoint default for
// absent, malformed or non-positive values.
func pageSizeParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("pageSize")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
