// Package config holds all application configuration, loaded from the
// environment with optional .env file layering.
package config

import (
	"time"
)

// Config holds the full configuration for one harvester run.
type Config struct {
	// Core settings
	Environment string
	ServiceName string
	LogLevel    string

	Scrape   ScrapeConfig
	Storage  StorageConfig
	Pipeline PipelineConfig
	HTTP     HTTPConfig
	Metrics  MetricsConfig
}

// ScrapeConfig controls the listing-scrape phase of the pipeline.
type ScrapeConfig struct {
	// Enabled turns the fetch/extract/download phase on. When false the run
	// only validates and normalizes what is already on disk.
	Enabled bool

	// ListingURL is the remote page referencing the documents.
	ListingURL string

	// CachePath is an optional file holding the raw rendered markup. A
	// successful fetch refreshes it; a failed fetch falls back to it.
	CachePath string

	// RenderTimeout bounds the headless render of the listing page.
	RenderTimeout time.Duration
}

// StorageConfig selects and parameterizes the document store.
type StorageConfig struct {
	// Adapter is one of "filesystem", "s3", "memory".
	Adapter string

	// RootOrBucket is the filesystem root directory or the S3 bucket name.
	RootOrBucket string

	// Extension is the target document extension, matched case-insensitively.
	Extension string

	// S3 holds S3-specific settings; ignored by other adapters.
	S3 S3Config
}

// S3Config holds S3-specific configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // for MinIO or other S3-compatible services
}

// PipelineConfig bounds the concurrent portions of the run.
type PipelineConfig struct {
	// MaxWorkers is the validation worker-pool size.
	MaxWorkers int
}

// HTTPConfig configures the document download client.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}
