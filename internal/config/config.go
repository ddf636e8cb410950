// Package config loads service configuration from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the full service configuration.
type Config struct {
	HTTPAddr     string   // address the API server listens on
	DatabaseURL  string   // PostgreSQL connection string; empty selects the in-memory store
	KafkaBrokers []string // empty disables event publishing
	KafkaTopic   string
	KeywordsFile string // optional YAML override for the inference word tables
	LogLevel     string
}

// Load reads the environment, after loading .env if present. Missing keys
// fall back to development defaults.
func Load() Config {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "ledger.entry_posted"),
		KeywordsFile: os.Getenv("INFER_KEYWORDS_FILE"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
