package careers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/llm"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/careers/recommendations", h.recommend)
}

type recommendRequest struct {
	ConsiderTechnologies *bool `json:"considerTechnologies"`
}

func (h *Handler) recommend(c *gin.Context) {
	c.Set(middleware.FeatureKey, "careers")
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	consider := true
	if req.ConsiderTechnologies != nil {
		consider = *req.ConsiderTechnologies
	}

	res, err := h.Svc.Recommend(c.Request.Context(), middleware.UserIDFromContext(c), consider)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileIncomplete):
			respond.Error(c, http.StatusUnprocessableEntity, "profile_incomplete",
				"Please complete your profile with skills, experience, and interests before finding career matches.", nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "ai_unavailable", "AI provider is not configured", nil)
		case errors.Is(err, ErrProvider), errors.Is(err, ErrInvalidOutput):
			respond.Error(c, http.StatusBadGateway, "ai_error", "There was an error getting career recommendations. Please try again.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to get recommendations", nil)
		}
		return
	}
	respond.OK(c, res)
}
