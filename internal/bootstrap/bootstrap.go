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
	"github.com/rs/zerolog/log"

	appControllers "github.com/zhangjiang/campuswall/internal/app/controllers"
	appMigrations "github.com/zhangjiang/campuswall/internal/app/migrations"
	appRepos "github.com/zhangjiang/campuswall/internal/app/repositories"
	appRoutes "github.com/zhangjiang/campuswall/internal/app/routes"
	appServices "github.com/zhangjiang/campuswall/internal/app/services"
	"github.com/zhangjiang/campuswall/internal/config"
	"github.com/zhangjiang/campuswall/internal/db"
	appMiddleware "github.com/zhangjiang/campuswall/internal/middleware"
	pkgAuth "github.com/zhangjiang/campuswall/internal/pkg/auth"
	"github.com/zhangjiang/campuswall/internal/pkg/email"
	"github.com/zhangjiang/campuswall/internal/pkg/filestorage"
	"github.com/zhangjiang/campuswall/internal/pkg/helpers"
	"github.com/zhangjiang/campuswall/internal/pkg/logger"
	"github.com/zhangjiang/campuswall/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	PostService       *appServices.PostService
	CommentService    *appServices.CommentService
	LikeService       *appServices.LikeService
	ReportService     *appServices.ReportService
	AdminService      *appServices.AdminService
	FileService       *appServices.FileService
	AuthController    *appControllers.AuthController
	PostController    *appControllers.PostController
	CommentController *appControllers.CommentController
	LikeController    *appControllers.LikeController
	ReportController  *appControllers.ReportController
	AdminController   *appControllers.AdminController
	FileController    *appControllers.FileController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	EmailService      email.EmailService
	FileStorage       *filestorage.LocalStorage
	Logger            zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.ApplyDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultAdmin(context.Background(), dbPool, cfg, lgr); err != nil {
		// The server is usable without the seed account.
		lgr.Error().Err(err).Msg("Failed to seed default admin account, proceeding anyway...")
	}

	// Expired verification tokens accumulate between restarts; sweep them now.
	if err := appRepos.NewVerificationTokenRepository(dbPool).DeleteExpired(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to sweep expired verification tokens")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The storage base URL must match the static file serving path.
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.BaseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.VerificationTokenRepository,
		deps.EmailService,
		deps.JWTService,
		lgr,
	)
	deps.PostService = appServices.NewPostService(deps.Repos.PostRepository, deps.Repos.UserRepository, lgr)
	deps.CommentService = appServices.NewCommentService(deps.Repos.CommentRepository, deps.Repos.PostRepository, deps.Repos.UserRepository, lgr)
	deps.LikeService = appServices.NewLikeService(deps.Repos.LikeRepository, deps.Repos.PostRepository, lgr)
	deps.ReportService = appServices.NewReportService(deps.Repos.ReportRepository, deps.Repos.PostRepository, deps.Repos.CommentRepository, lgr)
	deps.AdminService = appServices.NewAdminService(deps.Repos.VerificationRequestRepository, deps.Repos.UserRepository, lgr)
	deps.FileService = appServices.NewFileService(deps.Repos.FileRepository, deps.FileStorage, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService, lgr)
	deps.CommentController = appControllers.NewCommentController(deps.CommentService, lgr)
	deps.LikeController = appControllers.NewLikeController(deps.LikeService, lgr)
	deps.ReportController = appControllers.NewReportController(deps.ReportService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)
	deps.FileController = appControllers.NewFileController(deps.FileService, lgr)

	return deps, nil
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
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.PostController,
		deps.CommentController,
		deps.LikeController,
		deps.ReportController,
		deps.AdminController,
		deps.FileController,
		deps.AuthMiddleware,
		cfg.Server.StoragePath,
	)

	return router
}
