// fightclub/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	AppVersion = "1.0.0"

	// Auth
	BcryptCost       = 12
	SessionTokenTTL  = 7 * 24 * time.Hour
	RememberTokenTTL = 30 * 24 * time.Hour

	// Content Limits
	MaxUsernameLen = 32
	MaxTitleLen    = 200
	MaxContentLen  = 50000
	MaxCommentLen  = 8000
	MaxTagCount    = 10

	// Listing
	DefaultPageSize = 30
	MaxPageSize     = 100

	// File Upload Limits
	MaxFileSize     = 10 * 1024 * 1024 // 10MB
	ThumbnailWidth  = 250
	ThumbnailHeight = 250

	// Stats
	OnlineWindow = 5 * time.Minute
)

// Config holds all runtime configuration, populated from the environment.
type Config struct {
	HTTP      HTTPServer
	DB        Database
	Auth      Auth
	S3        S3
	RateLimit RateLimit
}

type HTTPServer struct {
	Port            string        `env:"FORUM_PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"FORUM_SHUTDOWN_TIMEOUT" env-default:"5s"`
	Environment     string        `env:"FORUM_ENV" env-default:"development"`
}

type Database struct {
	Path string `env:"FORUM_DB_PATH" env-default:"./fightclub.db?_journal_mode=WAL&_foreign_keys=on"`
}

type Auth struct {
	JWTSecret     string `env:"FORUM_JWT_SECRET" env-default:"your-secret-key-here"`
	AdminPassword string `env:"FORUM_ADMIN_PASSWORD" env-default:"admin123"`
}

type S3 struct {
	Enabled   bool   `env:"FORUM_S3_ENABLED" env-default:"false"`
	Endpoint  string `env:"FORUM_S3_ENDPOINT"`
	AccessKey string `env:"FORUM_S3_ACCESS_KEY"`
	SecretKey string `env:"FORUM_S3_SECRET_KEY"`
	Bucket    string `env:"FORUM_S3_BUCKET"`
	Region    string `env:"FORUM_S3_REGION" env-default:"us-east-1"`
	PublicURL string `env:"FORUM_S3_PUBLIC_URL"`
	UseSSL    bool   `env:"FORUM_S3_USE_SSL" env-default:"true"`
	UploadDir string `env:"FORUM_UPLOAD_DIR" env-default:"./uploads"`
}

type RateLimit struct {
	Every  time.Duration `env:"FORUM_RATE_EVERY" env-default:"9s"`
	Burst  int           `env:"FORUM_RATE_BURST" env-default:"100"`
	Prune  time.Duration `env:"FORUM_RATE_PRUNE" env-default:"1h"`
	Expire time.Duration `env:"FORUM_RATE_EXPIRE" env-default:"24h"`
}

// Load reads an optional .env file, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	conf := &Config{}
	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}
	return conf, nil
}
