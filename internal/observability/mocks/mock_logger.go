// Package mocks provides testify doubles for the observability interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
)

// MockLogger is a testify mock for observability.Logger.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Info(ctx context.Context, msg string, fields observability.Fields) {
	m.Called(ctx, msg, fields)
}

func (m *MockLogger) Error(ctx context.Context, msg string, err error, fields observability.Fields) {
	m.Called(ctx, msg, err, fields)
}

func (m *MockLogger) Warn(ctx context.Context, msg string, fields observability.Fields) {
	m.Called(ctx, msg, fields)
}

func (m *MockLogger) Debug(ctx context.Context, msg string, fields observability.Fields) {
	m.Called(ctx, msg, fields)
}

func (m *MockLogger) WithFields(fields observability.Fields) observability.Logger {
	args := m.Called(fields)
	if l, ok := args.Get(0).(observability.Logger); ok {
		return l
	}
	return m
}

// NoopLogger discards everything. Most tests use this instead of asserting
// on log calls; MockLogger is for tests that verify logging behavior itself.
type NoopLogger struct{}

func (NoopLogger) Info(context.Context, string, observability.Fields)         {}
func (NoopLogger) Error(context.Context, string, error, observability.Fields) {}
func (NoopLogger) Warn(context.Context, string, observability.Fields)         {}
func (NoopLogger) Debug(context.Context, string, observability.Fields)        {}
func (n NoopLogger) WithFields(observability.Fields) observability.Logger     { return n }
