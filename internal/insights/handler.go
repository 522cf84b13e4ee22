package insights

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/profiles"
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
	rg.GET("/dashboard", h.dashboard)
	rg.GET("/insights/trends", h.trends)
	rg.GET("/progress", h.progress)
	rg.GET("/roadmap", h.roadmap)
}

func (h *Handler) dashboard(c *gin.Context) {
	c.Set(middleware.FeatureKey, "dashboard")
	d, err := h.Svc.Dashboard(c.Request.Context(), profiles.IdentityFrom(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}
	respond.OK(c, d)
}

func (h *Handler) trends(c *gin.Context) {
	c.Set(middleware.FeatureKey, "insights")
	respond.OK(c, h.Svc.Trends())
}

func (h *Handler) progress(c *gin.Context) {
	c.Set(middleware.FeatureKey, "insights")
	respond.OK(c, h.Svc.Progress())
}

func (h *Handler) roadmap(c *gin.Context) {
	c.Set(middleware.FeatureKey, "insights")
	respond.OK(c, h.Svc.Roadmap())
}
