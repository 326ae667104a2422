package mocks

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockMetrics is a testify mock for observability.Metrics.
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordSuccess(operationType string) {
	m.Called(operationType)
}

func (m *MockMetrics) RecordError(operationType string, errorType string) {
	m.Called(operationType, errorType)
}

func (m *MockMetrics) RecordDuration(operation string, duration float64) {
	m.Called(operation, duration)
}

func (m *MockMetrics) RecordFileSize(fileType string, bytes int64) {
	m.Called(fileType, bytes)
}

func (m *MockMetrics) StartOperation(operation string) {
	m.Called(operation)
}

func (m *MockMetrics) EndOperation(operation string) {
	m.Called(operation)
}

// CountingMetrics records counters in memory without expectations. Useful
// when a test only needs to assert totals after the fact.
type CountingMetrics struct {
	mu        sync.Mutex
	Successes map[string]int
	Errors    map[string]int
}

func NewCountingMetrics() *CountingMetrics {
	return &CountingMetrics{
		Successes: make(map[string]int),
		Errors:    make(map[string]int),
	}
}

func (c *CountingMetrics) RecordSuccess(operationType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Successes[operationType]++
}

func (c *CountingMetrics) RecordError(operationType string, errorType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Errors[operationType+"/"+errorType]++
}

func (c *CountingMetrics) RecordDuration(string, float64) {}
func (c *CountingMetrics) RecordFileSize(string, int64)   {}
func (c *CountingMetrics) StartOperation(string)          {}
func (c *CountingMetrics) EndOperation(string)            {}
