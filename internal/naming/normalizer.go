package naming

import (
	"context"
	"errors"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
)

// NormalizeStatus classifies the outcome of one normalization attempt.
type NormalizeStatus string

const (
	// StatusRenamed means the object now lives under its lowercased key.
	StatusRenamed NormalizeStatus = "renamed"
	// StatusUnchanged means the key was already fully lowercase.
	StatusUnchanged NormalizeStatus = "unchanged"
	// StatusConflict means the lowercased key is occupied by a different
	// object; nothing was touched.
	StatusConflict NormalizeStatus = "conflict"
	// StatusFailed means the rename itself failed.
	StatusFailed NormalizeStatus = "failed"
)

// NormalizeResult reports what happened to one key.
type NormalizeResult struct {
	Key    string
	NewKey string
	Status NormalizeStatus
	Reason string
}

// Normalizer renames stored objects whose basename contains uppercase
// characters to the lowercased form, refusing to overwrite.
type Normalizer struct {
	store   storage.Store
	logger  observability.Logger
	metrics observability.Metrics
}

func NewNormalizer(store storage.Store, logger observability.Logger, metrics observability.Metrics) *Normalizer {
	return &Normalizer{store: store, logger: logger, metrics: metrics}
}

// Normalize lowercases the basename of key in place. When the lowered key
// already exists and differs from key, the collision is reported as a
// conflict and neither object is modified.
func (n *Normalizer) Normalize(ctx context.Context, key string) NormalizeResult {
	if !HasUpper(key) {
		return NormalizeResult{Key: key, NewKey: key, Status: StatusUnchanged}
	}

	target := Lowered(key)

	err := n.store.Rename(ctx, key, target)
	switch {
	case err == nil:
		n.metrics.RecordSuccess("normalize")
		n.logger.Info(ctx, "Renamed to canonical lowercase form", observability.Fields{
			"from": key,
			"to":   target,
		})
		return NormalizeResult{Key: key, NewKey: target, Status: StatusRenamed}

	case errors.Is(err, storage.ErrTargetExists):
		n.metrics.RecordError("normalize", "name_conflict")
		n.logger.Warn(ctx, "Lowercase target already exists, refusing to overwrite", observability.Fields{
			"from": key,
			"to":   target,
		})
		return NormalizeResult{
			Key:    key,
			NewKey: key,
			Status: StatusConflict,
			Reason: "lowercase target already exists",
		}

	default:
		n.metrics.RecordError("normalize", "rename_error")
		n.logger.Error(ctx, "Rename failed", err, observability.Fields{"key": key})
		return NormalizeResult{Key: key, NewKey: key, Status: StatusFailed, Reason: err.Error()}
	}
}
