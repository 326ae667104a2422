// Package validate judges the structural validity of stored documents.
//
// Validation is destructive by contract: an invalid or unreadable document
// is deleted from the store immediately, so a later run re-downloads it
// instead of tripping over a corrupt artifact forever.
package validate

import (
	"context"
	"io"
	"time"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
)

// Status is the verdict for one document.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Verdict pairs a key with its judgment. Reason is set for invalid
// verdicts only.
type Verdict struct {
	Key     string
	Status  Status
	Reason  string
	Deleted bool
}

// Document is an opened document handle.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int
}

// Opener is the binary-parser port. Open must return an error for
// malformed or unreadable content, never panic.
type Opener interface {
	Open(data []byte) (Document, error)
}

// Checker validates documents and removes the ones that fail.
type Checker struct {
	store   storage.Store
	opener  Opener
	logger  observability.Logger
	metrics observability.Metrics
}

func NewChecker(store storage.Store, opener Opener, logger observability.Logger, metrics observability.Metrics) *Checker {
	return &Checker{store: store, opener: opener, logger: logger, metrics: metrics}
}

// Check opens the document at key and judges it: open failure or a zero
// page count is invalid, anything else is valid. On an invalid verdict
// the object is deleted before returning. Safe to call concurrently
// across distinct keys.
func (c *Checker) Check(ctx context.Context, key string) Verdict {
	c.metrics.StartOperation("validate")
	defer c.metrics.EndOperation("validate")
	start := time.Now()
	defer func() {
		c.metrics.RecordDuration("validate", time.Since(start).Seconds())
	}()

	rc, err := c.store.Get(ctx, key)
	if err != nil {
		c.metrics.RecordError("validate", "unreadable")
		c.logger.Error(ctx, "Cannot read document", err, observability.Fields{"key": key})
		return c.condemn(ctx, key, err.Error())
	}

	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		c.metrics.RecordError("validate", "unreadable")
		c.logger.Error(ctx, "Cannot read document", err, observability.Fields{"key": key})
		return c.condemn(ctx, key, err.Error())
	}

	doc, err := c.opener.Open(data)
	if err != nil {
		c.metrics.RecordError("validate", "invalid_document")
		c.logger.Warn(ctx, "Document is corrupt or invalid", observability.Fields{
			"key":    key,
			"reason": err.Error(),
		})
		return c.condemn(ctx, key, err.Error())
	}

	if doc.PageCount() == 0 {
		c.metrics.RecordError("validate", "invalid_document")
		c.logger.Warn(ctx, "Document is corrupt or invalid", observability.Fields{
			"key":    key,
			"reason": "no pages",
		})
		return c.condemn(ctx, key, "no pages")
	}

	c.metrics.RecordSuccess("validate")
	c.logger.Debug(ctx, "Document is valid", observability.Fields{
		"key":   key,
		"pages": doc.PageCount(),
	})
	return Verdict{Key: key, Status: StatusValid}
}

// condemn deletes the failed document and reports the invalid verdict.
func (c *Checker) condemn(ctx context.Context, key, reason string) Verdict {
	v := Verdict{Key: key, Status: StatusInvalid, Reason: reason}

	err := c.store.Delete(ctx, key)
	switch {
	case err == nil:
		v.Deleted = true
	case err == storage.ErrNotFound:
		// Already gone; the verdict stands.
		v.Deleted = true
	default:
		c.logger.Error(ctx, "Failed to delete invalid document", err, observability.Fields{"key": key})
	}
	return v
}
