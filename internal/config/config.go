package config

import (
	"os"
	"strconv"
)

// Config holds process-level settings for the api and worker binaries.
// Pipeline and database settings live in their own properties files.
type Config struct {
	APIPort  string
	LogLevel string

	DBConfigPath         string
	ClassifierConfigPath string

	NATSURL     string
	NATSSubject string

	StoragePath string

	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxInFlight    int
	APIMaxConnections int

	ExternalCallTimeoutSeconds int
	RetryMaxAttempts           int
	BreakerEnabled             bool

	ExportMaxRows int

	WorkerMetricsPort string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("PORT", "5000"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		DBConfigPath:         mustEnv("DB_CONFIG_PATH", DefaultDatabaseConfigPath),
		ClassifierConfigPath: mustEnv("CLASSIFIER_CONFIG_PATH", DefaultClassifierConfigPath),

		NATSURL:     mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: mustEnv("NATS_SUBJECT", "documents.classify"),

		StoragePath: mustEnv("STORAGE_PATH", "./data/storage"),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 10),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 64),
		APIMaxConnections: mustEnvInt("API_MAX_CONNECTIONS", 256),

		ExternalCallTimeoutSeconds: mustEnvInt("EXTERNAL_CALL_TIMEOUT_SECONDS", 60),
		RetryMaxAttempts:           mustEnvInt("RETRY_MAX_ATTEMPTS", 3),
		BreakerEnabled:             mustEnvBool("BREAKER_ENABLED", true),

		ExportMaxRows: mustEnvInt("EXPORT_MAX_ROWS", 500),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
