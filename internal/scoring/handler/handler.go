// Package handler exposes the risk analysis HTTP endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crisiswatch/internal/scoring/models"
	"crisiswatch/pkg/platform/httputil"
	"crisiswatch/pkg/requestcontext"
)

// ScoringService is what the handler needs from the scoring engine.
type ScoringService interface {
	ScoreEconomicV2(ctx context.Context, req models.EconomicRequestV2) models.ScoringResult
	ScoreFoodV2(ctx context.Context, req models.FoodRequestV2) models.ScoringResult
}

type Handler struct {
	service ScoringService
	logger  *slog.Logger
}

func New(service ScoringService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/analyze/economic", h.analyzeEconomic)
	r.Post("/api/analyze/food", h.analyzeFood)
}

// missingFieldsResponse is the validation error contract dashboards already
// parse: the fields absent from this request plus the full required list.
type missingFieldsResponse struct {
	Error    string   `json:"error"`
	Missing  []string `json:"missing"`
	Required []string `json:"required"`
}

type invalidInputResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) analyzeEconomic(w http.ResponseWriter, r *http.Request) {
	var req economicAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.invalidInput(w, r, err)
		return
	}
	if missing := req.missing(); len(missing) > 0 {
		h.missingFields(w, r, missing, economicRequiredFields)
		return
	}

	result := h.service.ScoreEconomicV2(r.Context(), req.toDomain())
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) analyzeFood(w http.ResponseWriter, r *http.Request) {
	var req foodAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.invalidInput(w, r, err)
		return
	}
	if missing := req.missing(); len(missing) > 0 {
		h.missingFields(w, r, missing, foodRequiredFields)
		return
	}

	result := h.service.ScoreFoodV2(r.Context(), req.toDomain())
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) invalidInput(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "analyze request rejected",
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err,
	)
	httputil.WriteJSON(w, http.StatusBadRequest, invalidInputResponse{
		Error:   "Invalid input values",
		Message: err.Error(),
	})
}

func (h *Handler) missingFields(w http.ResponseWriter, r *http.Request, missing, required []string) {
	h.logger.WarnContext(r.Context(), "analyze request missing fields",
		"request_id", requestcontext.RequestID(r.Context()),
		"missing", missing,
	)
	httputil.WriteJSON(w, http.StatusBadRequest, missingFieldsResponse{
		Error:    "Missing required fields",
		Missing:  missing,
		Required: required,
	})
}
