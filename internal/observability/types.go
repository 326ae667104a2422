// Package observability provides structured logging and metrics collection
// for the document harvesting pipeline.
//
// Core code depends on the Logger and Metrics interfaces, never on a
// concrete backend, so tests can substitute mocks and the binary can pick
// its adapters from configuration.
package observability

import (
	"context"
	"io"
)

// Fields represents structured logging fields as key-value pairs.
// Values must be JSON-serializable.
type Fields map[string]interface{}

// Logger defines the contract for structured logging. Implementations emit
// JSON-formatted entries suitable for log aggregation. All methods are
// context-aware to support correlation of entries belonging to one run.
type Logger interface {
	// Info logs general operational information.
	Info(ctx context.Context, msg string, fields Fields)

	// Error logs a failure together with the causing error.
	Error(ctx context.Context, msg string, err error, fields Fields)

	// Warn logs a potentially harmful situation that does not stop the run.
	Warn(ctx context.Context, msg string, fields Fields)

	// Debug logs detail useful during troubleshooting; filtered out unless
	// the configured level allows it.
	Debug(ctx context.Context, msg string, fields Fields)

	// WithFields returns a Logger that includes the given fields in every
	// subsequent entry. Used to pin run IDs and component names.
	WithFields(fields Fields) Logger
}

// Metrics defines the contract for metrics collection. Implementations
// should follow Prometheus naming conventions.
type Metrics interface {
	// RecordSuccess increments the success counter for an operation type.
	RecordSuccess(operationType string)

	// RecordError increments the error counter for an operation and error
	// category (e.g. "transport", "invalid_document", "name_conflict").
	RecordError(operationType string, errorType string)

	// RecordDuration records an operation duration in seconds.
	RecordDuration(operation string, duration float64)

	// RecordFileSize records the size of a processed file in bytes.
	RecordFileSize(fileType string, bytes int64)

	// StartOperation increments the in-progress gauge for an operation.
	// Pair with EndOperation, usually via defer.
	StartOperation(operation string)

	// EndOperation decrements the in-progress gauge for an operation.
	EndOperation(operation string)
}

// Config holds observability configuration for the provider.
type Config struct {
	// ServiceName identifies the service in logs and metric names.
	ServiceName string

	// Environment is the deployment environment ("development", "production").
	Environment string

	// LogLevel is the minimum level to emit: "debug", "info", "warn", "error".
	LogLevel string

	// LogOutput is where log entries are written; defaults to os.Stdout.
	LogOutput io.Writer

	// AdditionalFields are included in every log entry from this provider.
	AdditionalFields Fields
}

// Provider manages Logger and Metrics instances per component. Repeated
// calls with the same component name return the same instance.
type Provider interface {
	Logger(component string) Logger
	Metrics(component string) Metrics
	Close() error
}
