// fightclub/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fightclub/auth"
	"fightclub/config"
	"fightclub/database"
	"fightclub/handlers"
	"fightclub/models"
	"fightclub/utils"
)

type Application struct {
	db          *database.DatabaseService
	tokens      *auth.TokenService
	denylist    *models.TokenDenylist
	rateLimiter *models.RateLimiter
	logger      *slog.Logger
	storage     models.StorageService
	environment string
}

// Methods to satisfy the handlers.App interface
func (a *Application) DB() *database.DatabaseService    { return a.db }
func (a *Application) Tokens() *auth.TokenService       { return a.tokens }
func (a *Application) Denylist() *models.TokenDenylist  { return a.denylist }
func (a *Application) RateLimiter() *models.RateLimiter { return a.rateLimiter }
func (a *Application) Logger() *slog.Logger             { return a.logger }
func (a *Application) Storage() models.StorageService   { return a.storage }
func (a *Application) Environment() string              { return a.environment }

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	conf, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if conf.Auth.JWTSecret == "your-secret-key-here" && conf.HTTP.Environment != "development" {
		logger.Error("FATAL: FORUM_JWT_SECRET must be set outside development")
		os.Exit(1)
	}

	dbService, err := database.InitDB(conf.DB.Path, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbService.DB.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	adminHash, err := auth.HashPassword(conf.Auth.AdminPassword)
	if err != nil {
		logger.Error("Failed to hash admin password", "error", err)
		os.Exit(1)
	}
	if err := dbService.Seed(adminHash); err != nil {
		logger.Error("Failed to seed default data", "error", err)
		os.Exit(1)
	}

	// --- Storage Service Init ---
	var storageService models.StorageService
	if conf.S3.Enabled {
		storageService, err = utils.NewS3Storage(
			conf.S3.Endpoint, conf.S3.AccessKey, conf.S3.SecretKey,
			conf.S3.Bucket, conf.S3.Region, conf.S3.PublicURL, conf.S3.UseSSL,
		)
		if err != nil {
			logger.Error("Failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		logger.Info("S3 Storage initialized", "endpoint", conf.S3.Endpoint, "bucket", conf.S3.Bucket)
	} else {
		if err := os.MkdirAll(conf.S3.UploadDir, 0755); err != nil {
			logger.Error("FATAL: Could not create uploads directory", "error", err)
			os.Exit(1)
		}
		storageService = &utils.LocalStorage{UploadDir: conf.S3.UploadDir}
		logger.Info("Local Storage initialized", "dir", conf.S3.UploadDir)
	}

	app := &Application{
		db:          dbService,
		tokens:      auth.NewTokenService(conf.Auth.JWTSecret),
		denylist:    models.NewTokenDenylist(),
		rateLimiter: models.NewRateLimiter(conf.RateLimit.Every, conf.RateLimit.Burst, conf.RateLimit.Prune, conf.RateLimit.Expire),
		logger:      logger,
		storage:     storageService,
		environment: conf.HTTP.Environment,
	}

	mux := handlers.SetupRouter(app, conf.S3.UploadDir)

	// --- Graceful Shutdown ---
	server := &http.Server{Addr: ":" + conf.HTTP.Port, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("fightclub community server started",
		"version", config.AppVersion,
		"address", "http://localhost:"+conf.HTTP.Port,
		"environment", conf.HTTP.Environment,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), conf.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("Server exiting")
}
