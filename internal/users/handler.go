package users

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
	rg.GET("/me", h.me)
}

// me returns the stored account, falling back to token claims for identities without a row.
func (h *Handler) me(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity.UserID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	user, err := h.Svc.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
			return
		}
		user = User{ID: identity.UserID, Email: identity.Email, FullName: identity.Name, PictureURL: identity.Picture}
	}

	respond.OK(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"fullName":   user.FullName,
		"pictureUrl": user.PictureURL,
		"provider":   user.Provider,
	})
}
