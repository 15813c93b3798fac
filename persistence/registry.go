package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskdeck/taskdeck/domain"
)

// Factory opens a storage backend for the given DSN.
type Factory func(ctx context.Context, dsn string) (domain.Storage, error)

var (
	registryMu sync.RWMutex
	providers  = make(map[string]Factory)
)

// Register adds a new storage provider to the registry.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providers[name] = factory
}

// NewStorage creates a storage implementation by registered name.
func NewStorage(ctx context.Context, name string, dsn string) (domain.Storage, error) {
	registryMu.RLock()
	factory, ok := providers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("persistence: unknown storage provider %q", name)
	}

	return factory(ctx, dsn)
}
