package testutil

import (
	"context"
	"sync"

	"github.com/minimall/minimall/internal/types"
)

// InMemorySettingsStore implements settings.Repository. Get returns the
// defaults until an Update has been stored, matching the postgres behavior.
type InMemorySettingsStore struct {
	mu      sync.RWMutex
	current *types.SystemSettings
}

// NewInMemorySettingsStore creates a new in-memory settings store
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{}
}

func (s *InMemorySettingsStore) Get(ctx context.Context) (types.SystemSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return types.GetDefaultSystemSettings(), nil
	}
	return *s.current, nil
}

func (s *InMemorySettingsStore) Update(ctx context.Context, settings types.SystemSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &settings
	return nil
}

// Clear resets the store back to defaults
func (s *InMemorySettingsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
