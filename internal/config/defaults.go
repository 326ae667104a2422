package config

import "time"

// DefaultConfig returns a complete configuration with sensible defaults.
// Environment variables override individual fields during Load.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		ServiceName: "chemtel_harvester",
		LogLevel:    "info",

		Scrape: ScrapeConfig{
			Enabled:       true,
			ListingURL:    "",
			CachePath:     "listing.html",
			RenderTimeout: 60 * time.Second,
		},

		Storage: StorageConfig{
			Adapter:      "filesystem",
			RootOrBucket: "./PDFs",
			Extension:    ".pdf",
		},

		Pipeline: PipelineConfig{
			MaxWorkers: 100,
		},

		HTTP: HTTPConfig{
			Timeout:   120 * time.Second,
			UserAgent: "chemtel-doc-harvester/1.0",
		},

		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}
