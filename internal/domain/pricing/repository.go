package pricing

import (
	"context"
)

// Repository owns the version chain. Implementations must make
// CreateVersion atomic: the new version is either fully installed as
// current (with the old current preserved in history) or nothing
// changes at all. A version collision surfaces as ErrVersionConflict.
type Repository interface {
	// GetCurrent returns the latest published config
	GetCurrent(ctx context.Context) (*PricingConfig, error)

	// GetVersion returns a specific version, current or historical
	GetVersion(ctx context.Context, version int) (*PricingConfig, error)

	// ListHistory returns every published version, newest first
	ListHistory(ctx context.Context) ([]*PricingConfig, error)

	// CreateVersion installs config as the new current version.
	// config.Version must be exactly current version + 1.
	CreateVersion(ctx context.Context, config *PricingConfig) error
}
