package observability

import (
	"os"
	"sync"
)

// DefaultProvider implements Provider. Logger and Metrics instances are
// created lazily per component and cached; every logger carries the service
// name, environment and component as persistent fields.
type DefaultProvider struct {
	config  *Config
	loggers map[string]Logger
	metrics map[string]Metrics

	newLogger  func(cfg *Config) Logger
	newMetrics func(serviceName, component string) Metrics

	mu sync.RWMutex
}

// NewProvider creates a provider backed by the given constructors. The
// constructors decide the concrete adapters (stdout JSON logger, Prometheus
// metrics, mocks in tests); the provider only handles caching and field
// propagation.
func NewProvider(cfg *Config, newLogger func(cfg *Config) Logger, newMetrics func(serviceName, component string) Metrics) *DefaultProvider {
	if cfg.LogOutput == nil {
		cfg.LogOutput = os.Stdout
	}
	return &DefaultProvider{
		config:     cfg,
		loggers:    make(map[string]Logger),
		metrics:    make(map[string]Metrics),
		newLogger:  newLogger,
		newMetrics: newMetrics,
	}
}

func (p *DefaultProvider) Logger(component string) Logger {
	p.mu.RLock()
	if l, ok := p.loggers[component]; ok {
		p.mu.RUnlock()
		return l
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.loggers[component]; ok {
		return l
	}

	fields := Fields{
		"service":     p.config.ServiceName,
		"environment": p.config.Environment,
		"component":   component,
	}
	for k, v := range p.config.AdditionalFields {
		fields[k] = v
	}

	l := p.newLogger(p.config).WithFields(fields)
	p.loggers[component] = l
	return l
}

func (p *DefaultProvider) Metrics(component string) Metrics {
	p.mu.RLock()
	if m, ok := p.metrics[component]; ok {
		p.mu.RUnlock()
		return m
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.metrics[component]; ok {
		return m
	}

	m := p.newMetrics(p.config.ServiceName, component)
	p.metrics[component] = m
	return m
}

func (p *DefaultProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loggers = make(map[string]Logger)
	p.metrics = make(map[string]Metrics)
	return nil
}
