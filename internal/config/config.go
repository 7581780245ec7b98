package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
)

// Config holds application configuration values shared by the admin client
// and the sandbox API server.
type Config struct {
	APIBaseURL    string        `default:"http://localhost:8080"`
	AdminEmail    string        `default:"admin@loja.local"`
	AdminPassword string        `default:"admin"`
	PollInterval  time.Duration `default:"4s"`
	NotifyTTL     time.Duration `default:"3s"`
	MaxUploadKB   int           `default:"500"`
	HTTPTimeout   time.Duration `default:"15s"`

	AppPort      string        `default:"8080"`
	DatabaseURL  string        `default:"file:backoffice.db"`
	TokenExpires time.Duration `default:"24h"`
	UploadDir    string        `default:"./uploads"`

	APIToken          string
	JWTSecret         string
	TelegramBotToken  string
	TelegramAdminChat string
}

// Load reads environment variables (and an optional .env file) and returns a
// populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		log.Fatalf("config defaults: %v", err)
	}

	cfg.APIBaseURL = strings.TrimRight(getEnv("API_BASE_URL", cfg.APIBaseURL), "/")
	cfg.APIToken = getEnv("API_TOKEN", cfg.APIToken)
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.PollInterval = getEnvMillis("POLL_INTERVAL_MS", cfg.PollInterval)
	cfg.NotifyTTL = getEnvMillis("NOTIFY_TTL_MS", cfg.NotifyTTL)
	cfg.MaxUploadKB = getEnvInt("MAX_UPLOAD_KB", cfg.MaxUploadKB)
	cfg.HTTPTimeout = time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", int(cfg.HTTPTimeout/time.Second))) * time.Second
	cfg.TelegramBotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	cfg.TelegramAdminChat = getEnv("TELEGRAM_ADMIN_CHAT_ID", cfg.TelegramAdminChat)

	cfg.AppPort = getEnv("APP_PORT", cfg.AppPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenExpires = time.Duration(getEnvInt("JWT_TTL_HOURS", int(cfg.TokenExpires/time.Hour))) * time.Hour
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)

	if cfg.PollInterval <= 0 {
		log.Fatal("POLL_INTERVAL_MS must be positive")
	}

	return cfg
}

// LoadServer is Load for the sandbox API, which refuses to start without a
// signing secret.
func LoadServer() *Config {
	cfg := Load()
	if err := cfg.ServerError(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// ServerError reports the first setting the sandbox API cannot run without.
func (c *Config) ServerError() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}

// MaxUploadBytes converts the configured upload limit to bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadKB) * 1024
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("config: ignoring invalid %s=%q", key, value)
	}
	return fallback
}

func getEnvMillis(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed) * time.Millisecond
		}
		log.Printf("config: ignoring invalid %s=%q", key, value)
	}
	return fallback
}
