// Package logger provides the stdout JSON implementation of the
// observability.Logger interface.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func parseLevel(s string) level {
	switch strings.ToLower(s) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// StdoutLogger writes one JSON object per log entry.
type StdoutLogger struct {
	out      io.Writer
	minLevel level
	fields   observability.Fields
	mu       *sync.Mutex
}

// New creates a stdout JSON logger. A nil output defaults to os.Stdout.
func New(out io.Writer, minLevel string) *StdoutLogger {
	if out == nil {
		out = os.Stdout
	}
	return &StdoutLogger{
		out:      out,
		minLevel: parseLevel(minLevel),
		fields:   observability.Fields{},
		mu:       &sync.Mutex{},
	}
}

func (l *StdoutLogger) Info(ctx context.Context, msg string, fields observability.Fields) {
	l.log(levelInfo, "INFO", msg, nil, fields)
}

func (l *StdoutLogger) Error(ctx context.Context, msg string, err error, fields observability.Fields) {
	l.log(levelError, "ERROR", msg, err, fields)
}

func (l *StdoutLogger) Warn(ctx context.Context, msg string, fields observability.Fields) {
	l.log(levelWarn, "WARN", msg, nil, fields)
}

func (l *StdoutLogger) Debug(ctx context.Context, msg string, fields observability.Fields) {
	l.log(levelDebug, "DEBUG", msg, nil, fields)
}

// WithFields returns a logger whose entries always carry the given fields.
// The underlying writer and mutex are shared so entries never interleave.
func (l *StdoutLogger) WithFields(fields observability.Fields) observability.Logger {
	merged := make(observability.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &StdoutLogger{
		out:      l.out,
		minLevel: l.minLevel,
		fields:   merged,
		mu:       l.mu,
	}
}

func (l *StdoutLogger) log(lvl level, name, msg string, err error, fields observability.Fields) {
	if lvl < l.minLevel {
		return
	}

	entry := make(map[string]interface{}, len(l.fields)+len(fields)+4)
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = name
	entry["message"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}
	for k, v := range l.fields {
		entry[k] = v
	}
	for k, v := range fields {
		if e, ok := v.(error); ok {
			entry[k] = e.Error()
			continue
		}
		entry[k] = v
	}

	data, merr := json.Marshal(entry)
	if merr != nil {
		// Fall back to a plain line rather than dropping the entry.
		data = []byte(fmt.Sprintf(`{"level":%q,"message":%q,"marshal_error":%q}`, name, msg, merr.Error()))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(data, '\n'))
}
