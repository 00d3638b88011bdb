package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/lms/internal/app/auth"
	appControllers "github.com/yigit/lms/internal/app/controllers"
	appRepos "github.com/yigit/lms/internal/app/repositories"
	appRoutes "github.com/yigit/lms/internal/app/routes"
	appServices "github.com/yigit/lms/internal/app/services"
	"github.com/yigit/lms/internal/config"
	"github.com/yigit/lms/internal/db"
	appMiddleware "github.com/yigit/lms/internal/middleware"
	pkgAuth "github.com/yigit/lms/internal/pkg/auth"
	"github.com/yigit/lms/internal/pkg/cache"
	"github.com/yigit/lms/internal/pkg/events"
	"github.com/yigit/lms/internal/pkg/helpers"
	"github.com/yigit/lms/internal/pkg/logger"
	"github.com/yigit/lms/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	CourseService     appServices.CourseService
	EnrollmentService appServices.EnrollmentService
	AssignmentService appServices.AssignmentService
	SubmissionService appServices.SubmissionService

	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	AssignmentController *appControllers.AssignmentController
	AuthMiddleware       *appMiddleware.AuthMiddleware

	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	PasswordHasher *pkgAuth.PasswordHasher
	AuthzService   *appAuth.AuthorizationService
	Cache          cache.Cache
	Publisher      events.Publisher
	Logger         zerolog.Logger
}

// Close releases the cache and event publisher connections.
func (d *Dependencies) Close() error {
	var errs []string
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			errs = append(errs, "cache: "+err.Error())
		}
	}
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			errs = append(errs, "publisher: "+err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing dependencies: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.RunMigrations {
		lgr.Info().Msg("Running database migrations...")
		if err := db.Migrate(cfg.GetPostgresConnectionString(), lgr); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
	}

	return database.Pool, nil
}

// SetupCache connects to Redis when enabled. An unreachable Redis is logged
// and replaced by the no-op cache so the API keeps serving from Postgres.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) cache.Cache {
	if !cfg.Redis.Enabled {
		return cache.Noop{}
	}

	redisCache, err := cache.Connect(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, course list caching disabled")
		return cache.Noop{}
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache connected")
	return redisCache
}

// SetupPublisher returns the Kafka event publisher when enabled.
func SetupPublisher(cfg *config.Config, lgr zerolog.Logger) events.Publisher {
	if !cfg.Kafka.Enabled {
		return events.Noop{}
	}
	lgr.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka event publisher enabled")
	return events.NewKafkaPublisher(events.KafkaConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Cache = SetupCache(ctx, cfg, lgr)
	deps.Publisher = SetupPublisher(cfg, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 7*24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.PasswordHasher = pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.CourseRepository,
		deps.Repos.AssignmentRepository,
		deps.Repos.SubmissionRepository,
	)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		deps.PasswordHasher,
		logger.WithComponent("auth"),
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Cache,
		helpers.ParseDuration(cfg.Redis.CourseListTTL, 5*time.Minute),
		logger.WithComponent("courses"),
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		deps.Publisher,
		logger.WithComponent("enrollments"),
	)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.AssignmentRepository,
		deps.Repos.SubmissionRepository,
		deps.AuthzService,
		logger.WithComponent("assignments"),
	)
	deps.SubmissionService = appServices.NewSubmissionService(
		deps.Repos.SubmissionRepository,
		deps.Repos.AssignmentRepository,
		deps.AuthzService,
		deps.Publisher,
		logger.WithComponent("submissions"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.EnrollmentService, lgr)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService, deps.SubmissionService, lgr)

	return deps, nil
}

// SeedDefaultData creates the demo accounts and course when seeding is on.
// Failures are logged and never stop startup.
func SeedDefaultData(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if !cfg.Seed.Enabled {
		return
	}
	seeder := &seed.Seeder{
		Users:       deps.Repos.UserRepository,
		Courses:     deps.Repos.CourseRepository,
		Enrollments: deps.Repos.EnrollmentRepository,
		Assignments: deps.Repos.AssignmentRepository,
		Hasher:      deps.PasswordHasher,
		Logger:      logger.WithComponent("seed"),
	}
	if err := seeder.CreateDefaultData(ctx); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.WithComponent("http")))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.AssignmentController,
		deps.AuthMiddleware,
	)

	return router
}
