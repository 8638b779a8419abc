package testutil

import (
	"context"
	"sync"

	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
)

type InMemoryPricingConfigStore struct {
	mu       sync.RWMutex
	versions map[int]*pricing.PricingConfig
	current  int
}

func NewInMemoryPricingConfigStore() *InMemoryPricingConfigStore {
	return &InMemoryPricingConfigStore{
		versions: make(map[int]*pricing.PricingConfig),
	}
}

func (s *InMemoryPricingConfigStore) GetCurrent(ctx context.Context) (*pricing.PricingConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, exists := s.versions[s.current]
	if !exists {
		return nil, ierr.NewError("no pricing config installed").
			WithHint("No pricing config version exists yet").
			Mark(ierr.ErrNotFound)
	}
	return cfg.Clone(), nil
}

func (s *InMemoryPricingConfigStore) GetVersion(ctx context.Context, version int) (*pricing.PricingConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, exists := s.versions[version]
	if !exists {
		return nil, ierr.NewError("pricing config version not found").
			WithHintf("Pricing config version %d does not exist", version).
			Mark(ierr.ErrNotFound)
	}
	return cfg.Clone(), nil
}

func (s *InMemoryPricingConfigStore) ListHistory(ctx context.Context) ([]*pricing.PricingConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := make([]*pricing.PricingConfig, 0, len(s.versions))
	for v := s.current; v >= 1; v-- {
		if cfg, exists := s.versions[v]; exists {
			configs = append(configs, cfg.Clone())
		}
	}
	return configs, nil
}

func (s *InMemoryPricingConfigStore) CreateVersion(ctx context.Context, cfg *pricing.PricingConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.versions[cfg.Version]; exists {
		return ierr.NewError("version already installed").
			WithHintf("Version %d was installed by a concurrent proposal", cfg.Version).
			Mark(ierr.ErrVersionConflict)
	}
	if cfg.Version != s.current+1 {
		return ierr.NewError("version gap").
			WithHintf("Expected version %d, got %d", s.current+1, cfg.Version).
			Mark(ierr.ErrVersionConflict)
	}

	s.versions[cfg.Version] = cfg.Clone()
	s.current = cfg.Version
	return nil
}
