// Package download acquires remote documents into the store exactly once.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/naming"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
)

// Status classifies the outcome of one acquisition.
type Status string

const (
	// StatusDownloaded means the document was fetched and stored.
	StatusDownloaded Status = "downloaded"
	// StatusSkipped means the canonical filename already existed; no
	// network call was made.
	StatusSkipped Status = "skipped"
	// StatusFailed means the item failed; the run continues without it.
	StatusFailed Status = "failed"
)

// Outcome reports what happened to one URL.
type Outcome struct {
	URL      string
	Filename string
	Status   Status
	Reason   string
}

// HTTPClient is the transport port. Fetch performs a single GET attempt
// and fails on any non-2xx status; there is no retry.
type HTTPClient interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// Acquirer ensures a document exists in the store under its canonical
// filename, fetching it when absent. Store existence is the only dedup
// ledger, so a second URL deriving an already-present name is skipped,
// never overwritten.
type Acquirer struct {
	client  HTTPClient
	store   storage.Store
	logger  observability.Logger
	metrics observability.Metrics
}

func NewAcquirer(client HTTPClient, store storage.Store, logger observability.Logger, metrics observability.Metrics) *Acquirer {
	return &Acquirer{client: client, store: store, logger: logger, metrics: metrics}
}

// Acquire downloads rawURL into the store. Failures are reported in the
// outcome, never returned as errors: every item is isolated.
func (a *Acquirer) Acquire(ctx context.Context, rawURL string) Outcome {
	a.metrics.StartOperation("download")
	defer a.metrics.EndOperation("download")
	start := time.Now()
	defer func() {
		a.metrics.RecordDuration("download", time.Since(start).Seconds())
	}()

	filename, err := naming.Derive(rawURL)
	if err != nil {
		a.metrics.RecordError("download", "bad_url")
		a.logger.Error(ctx, "Cannot derive filename", err, observability.Fields{"url": rawURL})
		return Outcome{URL: rawURL, Status: StatusFailed, Reason: err.Error()}
	}

	if err := validateURL(rawURL); err != nil {
		a.metrics.RecordError("download", "bad_url")
		a.logger.Error(ctx, "Rejecting URL", err, observability.Fields{"url": rawURL})
		return Outcome{URL: rawURL, Filename: filename, Status: StatusFailed, Reason: err.Error()}
	}

	exists, err := a.store.Exists(ctx, filename)
	if err != nil {
		a.metrics.RecordError("download", "storage")
		a.logger.Error(ctx, "Existence check failed", err, observability.Fields{
			"url":      rawURL,
			"filename": filename,
		})
		return Outcome{URL: rawURL, Filename: filename, Status: StatusFailed, Reason: err.Error()}
	}
	if exists {
		a.logger.Info(ctx, "Already downloaded, skipping", observability.Fields{
			"url":      rawURL,
			"filename": filename,
		})
		a.metrics.RecordSuccess("download_skipped")
		return Outcome{URL: rawURL, Filename: filename, Status: StatusSkipped}
	}

	body, err := a.client.Fetch(ctx, rawURL)
	if err != nil {
		errorType := categorizeError(err)
		a.metrics.RecordError("download", errorType)
		a.logger.Error(ctx, "Download failed", err, observability.Fields{
			"url":        rawURL,
			"filename":   filename,
			"error_type": errorType,
		})
		return Outcome{URL: rawURL, Filename: filename, Status: StatusFailed, Reason: err.Error()}
	}
	defer body.Close()

	if err := a.store.Put(ctx, filename, body); err != nil {
		a.metrics.RecordError("download", "storage")
		a.logger.Error(ctx, "Failed to store document", err, observability.Fields{
			"url":      rawURL,
			"filename": filename,
		})
		return Outcome{URL: rawURL, Filename: filename, Status: StatusFailed, Reason: err.Error()}
	}

	if info, err := a.store.Stat(ctx, filename); err == nil {
		a.metrics.RecordFileSize("pdf", info.Size)
	}

	a.metrics.RecordSuccess("download")
	a.logger.Info(ctx, "Document downloaded", observability.Fields{
		"url":      rawURL,
		"filename": filename,
	})
	return Outcome{URL: rawURL, Filename: filename, Status: StatusDownloaded}
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	return nil
}

// categorizeError buckets transport errors for metrics. Typed checks run
// first; the text fallback catches status-code errors from the client.
func categorizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "connection"
	}

	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "deadline exceeded"):
		return "timeout"
	case strings.Contains(errStr, "connection"):
		return "connection"
	case strings.Contains(errStr, "404"), strings.Contains(errStr, "not found"):
		return "not_found"
	case strings.Contains(errStr, "403"), strings.Contains(errStr, "forbidden"):
		return "forbidden"
	case strings.Contains(errStr, "500"), strings.Contains(errStr, "server"):
		return "server_error"
	default:
		return "transport"
	}
}
