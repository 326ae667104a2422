package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load builds the configuration from defaults, .env files and the process
// environment, then validates it.
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.Scrape.Enabled = getEnvBool("SCRAPE_ENABLED", cfg.Scrape.Enabled)
	cfg.Scrape.ListingURL = getEnv("LISTING_URL", cfg.Scrape.ListingURL)
	cfg.Scrape.CachePath = getEnv("LISTING_CACHE_PATH", cfg.Scrape.CachePath)
	cfg.Scrape.RenderTimeout = getEnvDuration("RENDER_TIMEOUT", cfg.Scrape.RenderTimeout)

	cfg.Storage.Adapter = getEnv("STORAGE_ADAPTER", cfg.Storage.Adapter)
	cfg.Storage.RootOrBucket = getEnv("STORAGE_ROOT", cfg.Storage.RootOrBucket)
	cfg.Storage.Extension = getEnv("TARGET_EXTENSION", cfg.Storage.Extension)
	cfg.Storage.S3.Region = getEnv("S3_REGION", cfg.Storage.S3.Region)
	cfg.Storage.S3.AccessKeyID = getEnv("S3_ACCESS_KEY_ID", cfg.Storage.S3.AccessKeyID)
	cfg.Storage.S3.SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", cfg.Storage.S3.SecretAccessKey)
	cfg.Storage.S3.Endpoint = getEnv("S3_ENDPOINT", cfg.Storage.S3.Endpoint)

	cfg.Pipeline.MaxWorkers = getEnvInt("MAX_WORKERS", cfg.Pipeline.MaxWorkers)

	cfg.HTTP.Timeout = getEnvDuration("HTTP_TIMEOUT", cfg.HTTP.Timeout)
	cfg.HTTP.UserAgent = getEnv("HTTP_USER_AGENT", cfg.HTTP.UserAgent)

	cfg.Metrics.Enabled = getEnvBool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.Addr = getEnv("METRICS_ADDR", cfg.Metrics.Addr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence: .env first, then
// .env.<environment>, then .env.local overriding everything. All optional.
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env != "" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Overload(envFile); err != nil {
				return fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			return fmt.Errorf("failed to load .env.local: %w", err)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
