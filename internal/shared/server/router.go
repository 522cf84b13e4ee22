package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/account"
	"career-backend/internal/auth"
	"career-backend/internal/careers"
	"career-backend/internal/insights"
	"career-backend/internal/interview"
	"career-backend/internal/profiles"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/users"
)

// RouterDeps carries the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config           config.Config
	UserHandler      *users.Handler
	AuthHandler      *auth.Handler
	GoogleAuth       *auth.GoogleService
	ProfileHandler   *profiles.Handler
	ResumeHandler    *resumes.Handler
	CareerHandler    *careers.Handler
	InterviewHandler *interview.Handler
	InsightsHandler  *insights.Handler
	AccountHandler   *account.Handler
	RateLimiter      *middleware.RateLimiter
	Health           *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.InsightsHandler != nil {
		deps.InsightsHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}

	ai := api.Group("", middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.GroupAI: {Rate: deps.Config.AIRatePerSec, Burst: deps.Config.AIRateBurst},
		},
		DefaultGroup: middleware.GroupAI,
		Limiter:      deps.RateLimiter,
	}))
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(ai)
	}
	if deps.CareerHandler != nil {
		deps.CareerHandler.RegisterRoutes(ai)
	}
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.RegisterRoutes(ai)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
