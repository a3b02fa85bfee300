package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"tle_zone_assist/internal/api/middleware"
	"tle_zone_assist/internal/app/service"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// maxAIBodyBytes bounds request bodies; editors can post whole files.
const maxAIBodyBytes = 256 << 10

type AIHandler struct {
	aiService *service.AIService
}

func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

func (h *AIHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/completions", h.completions) // POST /api/v1/ai/completions
	r.Post("/review", h.review)           // POST /api/v1/ai/review
}

func (h *AIHandler) completions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithFailure(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req model.AssistanceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAIBodyBytes)).Decode(&req); err != nil {
		common.RespondWithFailure(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.aiService.Complete(r.Context(), userID, req)
	if err != nil {
		respondAIError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AIHandler) review(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithFailure(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req model.ReviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAIBodyBytes)).Decode(&req); err != nil {
		common.RespondWithFailure(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.aiService.Review(r.Context(), userID, req)
	if err != nil {
		respondAIError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// respondAIError writes a {success:false, message} body. Entitlement denials
// use the fixed message clients match on; upstream failures hide details.
func respondAIError(w http.ResponseWriter, err error) {
	status := common.HTTPStatusFromError(err)
	switch {
	case errors.Is(err, common.ErrNotEntitled):
		common.RespondWithFailure(w, status, model.NotEntitledMessage)
	case errors.Is(err, common.ErrReviewInProgress):
		common.RespondWithFailure(w, status, "A review is already in progress")
	case status >= http.StatusInternalServerError:
		log.Printf("ERROR: AI request failed: %v", err)
		common.RespondWithFailure(w, status, "AI assistant is unavailable, please try again later")
	default:
		common.RespondWithFailure(w, status, err.Error())
	}
}
