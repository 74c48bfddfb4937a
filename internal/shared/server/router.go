package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/analysis"
	googleauth "jobfit-backend/internal/auth"
	"jobfit-backend/internal/llm"
	openai "jobfit-backend/internal/llm/openai"
	"jobfit-backend/internal/plan"
	"jobfit-backend/internal/profiles"
	"jobfit-backend/internal/shared/config"
	"jobfit-backend/internal/shared/metrics"
	"jobfit-backend/internal/shared/server/middleware"
	"jobfit-backend/internal/shared/server/respond"
	"jobfit-backend/internal/shared/storage/db"
	"jobfit-backend/internal/shared/storage/object"
	localstore "jobfit-backend/internal/shared/storage/object/local"
	s3store "jobfit-backend/internal/shared/storage/object/s3"
	"jobfit-backend/internal/usage"
	"jobfit-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware, dependencies, and
// routes registered. With no reachable database the repos and ledger fall back
// to in-memory implementations, which is enough for local extension work.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
	)

	sqlDB := connectDB(cfg)
	store := buildStore(cfg)

	var (
		profileRepo profiles.Repo
		userRepo    users.Repo
		ledger      usage.Ledger
	)
	if sqlDB != nil {
		profileRepo = &profiles.PGRepo{DB: sqlDB}
		userRepo = &users.PGRepo{DB: sqlDB}
		ledger = &usage.PGLedger{DB: sqlDB}
	} else {
		profileRepo = profiles.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
		ledger = usage.NewMemoryLedger()
	}

	plans := plan.NewResolver(cfg.FreeDailyLimit)

	llmClient := llm.Client(llm.PlaceholderClient{})
	if cfg.LLMProvider == "openai" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			log.Printf("openai client not configured: %v", err)
		} else {
			llmClient = client
		}
	}

	analysisSvc := analysis.NewService(profileRepo, ledger, plans, llmClient)
	analysisHandler := analysis.NewHandler(analysisSvc)
	usageHandler := usage.NewHandler(ledger, plans)
	profileHandler := profiles.NewHandler(profileRepo, store)
	googleAuthSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userRepo,
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	googleAuthSvc.RegisterRoutes(api)
	registerMeRoutes(api, plans)
	profileHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)
	usageHandler.RegisterRoutes(api)
	if cfg.Env == "dev" {
		dev := api.Group("/dev")
		usageHandler.RegisterDevRoutes(dev)
	}

	return r
}

func connectDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil
	}
	return conn
}

func buildStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("s3 store unavailable, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
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
