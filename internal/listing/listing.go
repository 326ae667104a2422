// Package listing obtains the rendered markup of the remote listing page.
//
// The page builds its catalog client-side, so a plain GET returns an empty
// shell; rendering happens through the Fetcher port. A local cache file
// keeps the last good render so a network outage degrades to a stale
// catalog instead of an empty run.
package listing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
)

// ErrNoListing is returned when the live fetch fails and no cached copy
// exists to fall back on.
var ErrNoListing = errors.New("listing unavailable and no cached copy exists")

// Fetcher is the page-render port. Render returns the full markup of the
// page after client-side content has settled.
type Fetcher interface {
	Render(ctx context.Context, url string) (string, error)
}

// Source resolves the listing markup: live render first, cache fallback
// second.
type Source struct {
	fetcher   Fetcher
	cachePath string
	logger    observability.Logger
	metrics   observability.Metrics
}

func NewSource(fetcher Fetcher, cachePath string, logger observability.Logger, metrics observability.Metrics) *Source {
	return &Source{fetcher: fetcher, cachePath: cachePath, logger: logger, metrics: metrics}
}

// Markup renders the listing page at url. On success the cache file is
// refreshed with the new markup; on failure the cached copy is served
// instead. Only when both paths fail does the call error.
func (s *Source) Markup(ctx context.Context, url string) (string, error) {
	s.metrics.StartOperation("listing")
	defer s.metrics.EndOperation("listing")

	markup, err := s.fetcher.Render(ctx, url)
	if err == nil {
		s.metrics.RecordSuccess("listing")
		s.logger.Info(ctx, "Fetched listing page", observability.Fields{
			"url":   url,
			"bytes": len(markup),
		})
		s.refreshCache(ctx, markup)
		return markup, nil
	}

	s.metrics.RecordError("listing", "fetch_failed")
	s.logger.Warn(ctx, "Listing fetch failed, trying cache", observability.Fields{
		"url":   url,
		"error": err.Error(),
	})

	cached, cacheErr := s.readCache()
	if cacheErr != nil {
		s.metrics.RecordError("listing", "no_fallback")
		return "", fmt.Errorf("%w: %v", ErrNoListing, err)
	}

	s.logger.Info(ctx, "Serving cached listing", observability.Fields{
		"cache": s.cachePath,
		"bytes": len(cached),
	})
	return cached, nil
}

func (s *Source) refreshCache(ctx context.Context, markup string) {
	if s.cachePath == "" {
		return
	}
	if dir := filepath.Dir(s.cachePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Warn(ctx, "Cannot create listing cache directory", observability.Fields{
				"cache": s.cachePath,
				"error": err.Error(),
			})
			return
		}
	}
	if err := os.WriteFile(s.cachePath, []byte(markup), 0o644); err != nil {
		// Cache refresh is best effort; the live markup is already in hand.
		s.logger.Warn(ctx, "Cannot refresh listing cache", observability.Fields{
			"cache": s.cachePath,
			"error": err.Error(),
		})
	}
}

func (s *Source) readCache() (string, error) {
	if s.cachePath == "" {
		return "", os.ErrNotExist
	}
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
