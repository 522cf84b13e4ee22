package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.save)
	rg.PUT("/profile/notifications", h.notifications)
}

// IdentityFrom maps the authenticated request identity.
func IdentityFrom(c *gin.Context) Identity {
	id := middleware.IdentityFromContext(c)
	return Identity{UserID: id.UserID, Name: id.Name, Email: id.Email}
}

func (h *Handler) get(c *gin.Context) {
	c.Set(middleware.FeatureKey, "profile")
	view, err := h.Svc.Get(c.Request.Context(), IdentityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) save(c *gin.Context) {
	c.Set(middleware.FeatureKey, "profile")
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	p, err := h.Svc.Save(c.Request.Context(), IdentityFrom(c), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, View{Profile: p, Exists: true})
}

func (h *Handler) notifications(c *gin.Context) {
	c.Set(middleware.FeatureKey, "profile")
	var patch NotificationsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	p, err := h.Svc.UpdateNotifications(c.Request.Context(), IdentityFrom(c), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"notifications": p.Notifications})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
	}
}
