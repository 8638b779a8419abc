package service

import (
	"context"
	"encoding/json"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patabima/patabima/internal/api/dto"
	"github.com/patabima/patabima/internal/cache"
	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/types"
)

// PricingConfigService manages the versioned rating configuration.
// Versions are immutable once installed; edits go through Propose with
// optimistic concurrency on the base version.
type PricingConfigService interface {
	GetCurrent(ctx context.Context) (*dto.PricingConfigResponse, error)
	GetVersion(ctx context.Context, version int) (*pricing.PricingConfig, error)
	GetHistory(ctx context.Context) (*dto.ListPricingConfigsResponse, error)
	Propose(ctx context.Context, req dto.ProposeConfigRequest) (*dto.PricingConfigResponse, error)
	Export(ctx context.Context) (json.RawMessage, error)
	Import(payload json.RawMessage) (*pricing.PricingConfig, error)
}

type pricingConfigService struct {
	ServiceParams
}

func NewPricingConfigService(params ServiceParams) PricingConfigService {
	return &pricingConfigService{
		ServiceParams: params,
	}
}

func (s *pricingConfigService) GetCurrent(ctx context.Context) (*dto.PricingConfigResponse, error) {
	cfg, err := s.PricingConfigRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PricingConfigResponse{PricingConfig: cfg}, nil
}

// GetVersion reads one installed version. Versions are immutable so
// cache entries never need invalidation.
func (s *pricingConfigService) GetVersion(ctx context.Context, version int) (*pricing.PricingConfig, error) {
	if version < 1 {
		return nil, ierr.NewError("invalid config version").
			WithHintf("Version must be at least 1, got %d", version).
			Mark(ierr.ErrValidation)
	}

	key := cache.Key(cache.PrefixPricingConfig, version)
	if cached, found := s.Cache.Get(ctx, key); found {
		if cfg, ok := cached.(*pricing.PricingConfig); ok {
			return cfg, nil
		}
	}

	cfg, err := s.PricingConfigRepo.GetVersion(ctx, version)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, cfg, cache.DefaultExpiration)
	return cfg, nil
}

func (s *pricingConfigService) GetHistory(ctx context.Context) (*dto.ListPricingConfigsResponse, error) {
	configs, err := s.PricingConfigRepo.ListHistory(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PricingConfigResponse, len(configs))
	for i, cfg := range configs {
		items[i] = &dto.PricingConfigResponse{PricingConfig: cfg}
	}

	return &dto.ListPricingConfigsResponse{
		Items: items,
		Total: len(items),
	}, nil
}

// Propose validates the replacement rules and installs them as the
// next version. The proposal is rejected when BaseVersion no longer
// matches the current version, so concurrent editors cannot silently
// overwrite each other.
func (s *pricingConfigService) Propose(ctx context.Context, req dto.ProposeConfigRequest) (*dto.PricingConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.PricingConfigRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	if req.BaseVersion != current.Version {
		return nil, ierr.NewError("config version is stale").
			WithHintf("Proposal is based on version %d but the current version is %d", req.BaseVersion, current.Version).
			WithReportableDetails(map[string]any{
				"base_version":    req.BaseVersion,
				"current_version": current.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	next := &pricing.PricingConfig{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICING_CONFIG),
		Version:      current.Version + 1,
		ProductRules: req.ProductRules,
		UpdatedBy:    req.Author,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.PricingConfigRepo.CreateVersion(ctx, next); err != nil {
		return nil, err
	}

	s.Logger.Infow("installed pricing config version",
		"version", next.Version,
		"author", req.Author)

	return &dto.PricingConfigResponse{PricingConfig: next}, nil
}

// Export serializes the current config so it can be inspected or
// re-imported elsewhere
func (s *pricingConfigService) Export(ctx context.Context) (json.RawMessage, error) {
	cfg, err := s.PricingConfigRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	data, err := jsoniter.Marshal(cfg)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize pricing config").
			Mark(ierr.ErrSystem)
	}
	return data, nil
}

// Import decodes and validates an exported snapshot. It does not
// install the config; installation goes through Propose.
func (s *pricingConfigService) Import(payload json.RawMessage) (*pricing.PricingConfig, error) {
	var cfg pricing.PricingConfig
	if err := jsoniter.Unmarshal(payload, &cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Config payload is not valid JSON").
			Mark(ierr.ErrValidation)
	}

	if err := pricing.ValidateRules(cfg.ProductRules); err != nil {
		return nil, err
	}
	return &cfg, nil
}
