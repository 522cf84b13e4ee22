package interview

import (
	"errors"
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
	rg.POST("/interview/start", h.start)
	rg.POST("/interview/turn", h.turn)
}

type startRequest struct {
	JobRole         string `json:"jobRole"`
	ExperienceLevel string `json:"experienceLevel"`
}

func (h *Handler) start(c *gin.Context) {
	c.Set(middleware.FeatureKey, "interview")
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	out, err := h.Svc.Start(c.Request.Context(), req.JobRole, req.ExperienceLevel)
	if err != nil {
		writeError(c, err, "Could not connect to the AI interviewer. Please try again.")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) turn(c *gin.Context) {
	c.Set(middleware.FeatureKey, "interview")
	var req TurnInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	if req.UserResponse == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "userResponse is required", nil)
		return
	}
	out, err := h.Svc.Turn(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "An error occurred while getting the next question.")
		return
	}
	respond.OK(c, out)
}

func writeError(c *gin.Context, err error, providerMessage string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "ai_unavailable", "AI provider is not configured", nil)
	case errors.Is(err, ErrProvider):
		respond.Error(c, http.StatusBadGateway, "ai_error", providerMessage, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}
