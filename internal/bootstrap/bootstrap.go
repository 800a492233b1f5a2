package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/villageedu/api/internal/app/controllers"
	appMigrations "github.com/villageedu/api/internal/app/migrations"
	appRepos "github.com/villageedu/api/internal/app/repositories"
	appRoutes "github.com/villageedu/api/internal/app/routes"
	appServices "github.com/villageedu/api/internal/app/services"
	"github.com/villageedu/api/internal/config"
	"github.com/villageedu/api/internal/db"
	appMiddleware "github.com/villageedu/api/internal/middleware"
	pkgAuth "github.com/villageedu/api/internal/pkg/auth"
	"github.com/villageedu/api/internal/pkg/cache"
	"github.com/villageedu/api/internal/pkg/helpers"
	"github.com/villageedu/api/internal/pkg/logger"
	"github.com/villageedu/api/internal/pkg/validation"
	"github.com/villageedu/api/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	JWTService           *pkgAuth.JWTService
	AuthMiddleware       *appMiddleware.AuthMiddleware
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	ContactController    *appControllers.ContactController
	AnalyticsController  *appControllers.AnalyticsController
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies migrations and seeds the default admin.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("dir", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	def := seed.DefaultAdmin{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		FullName: cfg.Seed.AdminName,
	}
	if err := seed.CreateDefaultAdmin(ctx, appRepos.NewAdminRepository(dbPool), def, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupCache connects to Redis when a URL is configured. A nil cache disables caching;
// a connection failure is logged and also disables it.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *cache.RedisCache {
	if cfg.Redis.URL == "" {
		lgr.Info().Msg("Redis not configured, analytics cache disabled")
		return nil
	}

	rc, err := cache.NewRedisCache(ctx, cfg.Redis.URL)
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, analytics cache disabled")
		return nil
	}

	lgr.Info().Msg("Redis analytics cache enabled")
	return rc
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redisCache *cache.RedisCache, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 168*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	opts := appServices.Options{
		JWTService:   deps.JWTService,
		AnalyticsTTL: helpers.ParseDuration(cfg.Redis.AnalyticsTTL, time.Minute),
		Logger:       lgr,
	}
	// keep the interface nil rather than holding a typed nil pointer
	if redisCache != nil {
		opts.Cache = redisCache
	}
	deps.Services = appServices.NewServices(deps.Repos, opts)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Services.AuthService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.Services.EnrollmentService)
	deps.ContactController = appControllers.NewContactController(deps.Services.ContactService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.Services.AnalyticsService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Timeout(helpers.ParseDuration(cfg.Server.RequestTimeout, 15*time.Second)),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.ContactController,
		deps.AnalyticsController,
		deps.AuthMiddleware,
	)

	var pinger appRoutes.Pinger
	if dbPool != nil {
		pinger = dbPool
	}
	appRoutes.SetupHealth(router, pinger)

	return router, nil
}
