package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at boot.
type Config struct {
	Port         string
	DatabaseURL  string
	StripeAPIKey string
	S3Bucket     string
	S3GetExpiry  time.Duration
	LogLevel     string
	Env          string
}

// Load reads .env (if present) plus the environment. DATABASE_URL is
// required; everything else has a default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	cfg := Config{
		Port:         getEnv("PORT", "4000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StripeAPIKey: os.Getenv("STRIPE_API_KEY"),
		S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
		S3GetExpiry:  time.Duration(getEnvInt("AWS_S3_GET_EXP", 900)) * time.Second,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Env:          getEnv("APP_ENV", "development"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("[FATAL] %s must be an integer, got %q", key, v)
	}
	return n
}
