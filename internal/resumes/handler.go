package resumes

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
	rg.POST("/resumes/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Set(middleware.FeatureKey, "resume")
	id := middleware.IdentityFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file must be 10MB or smaller", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_request", "file is required", nil)
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file must be 10MB or smaller", nil)
		return
	}

	action, err := ParseAction(c.PostForm("action"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "action must be update or score", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "unable to read file", nil)
		return
	}
	defer file.Close()

	res, err := h.Svc.Analyze(c.Request.Context(), AnalyzeInput{
		UserID:   id.UserID,
		Name:     id.Name,
		Email:    id.Email,
		FileName: fileHeader.Filename,
		Action:   action,
		Body:     file,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, res)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, ErrUnsupported):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_file", "Please upload a PDF, DOCX or TXT resume.", nil)
	case errors.Is(err, ErrUnreadable):
		respond.Error(c, http.StatusUnprocessableEntity, "unreadable_file", "We could not read any text from this resume.", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "ai_unavailable", "AI provider is not configured", nil)
	case errors.Is(err, ErrProvider), errors.Is(err, ErrInvalidOutput):
		respond.Error(c, http.StatusBadGateway, "ai_error", "Failed to analyze resume. Please try again.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
	}
}
