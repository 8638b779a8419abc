package dto

import (
	"time"

	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/types"
	"github.com/patabima/patabima/internal/validator"
)

// ProposeConfigRequest carries a full replacement rule mapping against
// the version the editor loaded. BaseVersion must equal the current
// version or the proposal is rejected as stale.
type ProposeConfigRequest struct {
	BaseVersion  int                                           `json:"base_version" validate:"required,min=1"`
	ProductRules map[types.ProductType]*pricing.ProductRuleSet `json:"product_rules" validate:"required"`
	Author       string                                        `json:"author" validate:"required"`
}

func (r *ProposeConfigRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return pricing.ValidateRules(r.ProductRules)
}

// PricingConfigResponse wraps one config version
type PricingConfigResponse struct {
	*pricing.PricingConfig
}

// ListPricingConfigsResponse lists versions newest first
type ListPricingConfigsResponse struct {
	Items []*PricingConfigResponse `json:"items"`
	Total int                      `json:"total"`
}

// ImportConfigRequest carries an exported config snapshot
type ImportConfigRequest struct {
	Config []byte `json:"config" validate:"required"`
}

func (r *ImportConfigRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ConfigInfoResponse is the lightweight version descriptor quotation
// screens poll for
type ConfigInfoResponse struct {
	Version   int       `json:"version"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}
