package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/okanv/uniregistry/internal/app/controllers"
	appMigrations "github.com/okanv/uniregistry/internal/app/migrations"
	appRepos "github.com/okanv/uniregistry/internal/app/repositories"
	appRoutes "github.com/okanv/uniregistry/internal/app/routes"
	appServices "github.com/okanv/uniregistry/internal/app/services"
	"github.com/okanv/uniregistry/internal/config"
	"github.com/okanv/uniregistry/internal/db"
	appMiddleware "github.com/okanv/uniregistry/internal/middleware"
	pkgAuth "github.com/okanv/uniregistry/internal/pkg/auth"
	"github.com/okanv/uniregistry/internal/pkg/helpers"
	"github.com/okanv/uniregistry/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService       *appServices.StudentService
	CourseService        *appServices.CourseService
	EnrollmentService    *appServices.EnrollmentService
	ReportService        *appServices.ReportService
	AuthService          *appServices.AuthService
	StudentController    *appControllers.StudentController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	ReportController     *appControllers.ReportController
	AuthController       *appControllers.AuthController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
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

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database)

	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(deps.Repos.ReportRepository)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.EnrollmentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.EnrollmentService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, dbPool *pgxpool.Pool, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.ReportController,
		deps.AuthController,
		deps.AuthMiddleware,
		dbPool,
	)

	return router
}
