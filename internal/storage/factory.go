package storage

import (
	"fmt"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
)

// FactoryFunc builds a Store from adapter-specific settings. The concrete
// constructors live in the adapter subpackages; cmd wires them into a
// registry keyed by adapter name so config decides which one runs.
type FactoryFunc func(logger observability.Logger) (Store, error)

// Registry maps adapter names to constructors.
type Registry map[string]FactoryFunc

// Create builds the store named by adapter.
func (r Registry) Create(adapter string, logger observability.Logger) (Store, error) {
	factory, ok := r[adapter]
	if !ok {
		return nil, fmt.Errorf("unsupported storage adapter: %q", adapter)
	}
	return factory(logger)
}
