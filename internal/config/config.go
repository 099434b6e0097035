package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	AppPort    string `validate:"required,numeric"`
	AppVersion string

	StoreDriver     string `validate:"required,oneof=mongo postgres memory"`
	MongoURI        string `validate:"required_if=StoreDriver mongo"`
	MongoDatabase   string `validate:"required_if=StoreDriver mongo"`
	MongoCollection string `validate:"required_if=StoreDriver mongo"`
	DatabaseURL     string `validate:"required_if=StoreDriver postgres"`

	// Rate limiting. Empty RedisAddr switches to the in-process limiter.
	RedisAddr     string
	RedisPassword string
	RedisDB       int           `validate:"gte=0"`
	APIRateLimit  int           `validate:"gt=0"`
	APIRateWindow time.Duration `validate:"gt=0"`

	LogLevel string `validate:"oneof=debug info warn error"`
	LogJSON  bool

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration `validate:"gt=0"`
}

// Load reads configuration from the environment (and .env when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		AppVersion: getEnv("APP_VERSION", "dev"),

		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "todo"),
		MongoCollection: getEnv("MONGO_COLLECTION", "tasks"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		APIRateLimit:  getEnvInt("API_RATE_LIMIT", 100),
		APIRateWindow: time.Duration(getEnvInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		ShutdownTimeout:    time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt falls back to def when the variable is unset or not an integer.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
