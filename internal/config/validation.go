package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for contradictions that would make a
// run impossible. A missing listing URL is not an error here: the pipeline
// treats it as "nothing to scrape".
func (c *Config) Validate() error {
	switch c.Storage.Adapter {
	case "filesystem", "s3", "memory":
	default:
		return fmt.Errorf("unsupported storage adapter: %q", c.Storage.Adapter)
	}

	if c.Storage.RootOrBucket == "" {
		return fmt.Errorf("storage root/bucket must not be empty")
	}

	if c.Storage.Adapter == "s3" && c.Storage.S3.Region == "" {
		return fmt.Errorf("s3 storage requires S3_REGION")
	}

	if !strings.HasPrefix(c.Storage.Extension, ".") {
		return fmt.Errorf("target extension must start with a dot, got %q", c.Storage.Extension)
	}

	if c.Pipeline.MaxWorkers < 1 {
		return fmt.Errorf("max workers must be at least 1, got %d", c.Pipeline.MaxWorkers)
	}

	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}

	return nil
}
