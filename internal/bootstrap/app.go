package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/account"
	"career-backend/internal/auth"
	"career-backend/internal/careers"
	"career-backend/internal/insights"
	"career-backend/internal/interview"
	"career-backend/internal/llm"
	"career-backend/internal/llm/gemini"
	"career-backend/internal/llm/openai"
	"career-backend/internal/profiles"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/cache"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/storage/object"
	localstore "career-backend/internal/shared/storage/object/local"
	s3store "career-backend/internal/shared/storage/object/s3"
	"career-backend/internal/users"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Cache  *cache.Redis
	LLM    llm.Client

	UsersRepo    users.Repo
	ProfilesRepo profiles.Repo

	UsersService     *users.Service
	ProfilesService  *profiles.Service
	AuthService      *auth.Service
	ResumesService   *resumes.Service
	CareersService   *careers.Service
	InterviewService *interview.Service
	InsightsService  *insights.Service
	AccountService   *account.Service
}

// Build prepares every dependency and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client, err := BuildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Cache:  cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL),
		LLM:    client,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		UserHandler:      users.NewHandler(app.UsersService),
		AuthHandler:      auth.NewHandler(app.AuthService),
		GoogleAuth:       auth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, app.AuthService),
		ProfileHandler:   profiles.NewHandler(app.ProfilesService),
		ResumeHandler:    resumes.NewHandler(app.ResumesService),
		CareerHandler:    careers.NewHandler(app.CareersService),
		InterviewHandler: interview.NewHandler(app.InterviewService),
		InsightsHandler:  insights.NewHandler(app.InsightsService),
		AccountHandler:   account.NewHandler(app.AccountService),
		RateLimiter:      middleware.NewRateLimiter(nil),
		Health:           health.NewService(app.DB),
	})
	return app, nil
}

// Close releases the database and cache connections.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
	_ = a.Cache.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if config.IsDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// BuildLLM picks the configured provider. Missing credentials yield a client that
// fails every call with llm.ErrNotConfigured so the rest of the API still serves.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			log.Printf("bootstrap: OPENAI_API_KEY empty; AI features disabled")
			return llm.Observe(llm.PlaceholderClient{}, "none"), nil
		}
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return llm.Observe(client, "openai"), nil
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			log.Printf("bootstrap: GEMINI_API_KEY empty; AI features disabled")
			return llm.Observe(llm.PlaceholderClient{}, "none"), nil
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return llm.Observe(client, "gemini"), nil
	default:
		return llm.Observe(llm.PlaceholderClient{}, "none"), nil
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ProfilesRepo = profiles.NewMemoryRepo()
	}

	dataset, err := insights.Default()
	if err != nil {
		return err
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.ProfilesService = profiles.NewService(app.ProfilesRepo)
	app.AuthService = auth.NewService(app.UsersService, app.ProfilesService)
	app.ResumesService = resumes.NewService(app.Store, app.LLM, app.ProfilesService)
	app.CareersService = careers.NewService(app.LLM, app.ProfilesService, app.Cache, app.Config.CacheTTL)
	app.InterviewService = interview.NewService(app.LLM)
	app.InsightsService = insights.NewService(dataset, app.ProfilesService)
	app.AccountService = account.NewService(app.UsersRepo, app.ProfilesRepo, app.Store)
	return nil
}
