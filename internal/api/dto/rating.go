package dto

import (
	"encoding/json"

	"github.com/patabima/patabima/internal/domain/rating"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/types"
)

// ComputePremiumRequest carries the raw application payload for one
// product line. The payload is decoded into the product's application
// struct by the rating service so the wire shape stays per product.
type ComputePremiumRequest struct {
	ProductType types.ProductType `json:"product_type" validate:"required"`
	Application json.RawMessage   `json:"application" validate:"required"`
}

func (r *ComputePremiumRequest) Validate() error {
	if err := r.ProductType.Validate(); err != nil {
		return err
	}
	if len(r.Application) == 0 {
		return ierr.NewError("application payload is required").
			WithHint("Application data is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ComputePremiumResponse returns the full breakdown along with the
// config version it was priced against
type ComputePremiumResponse struct {
	ConfigVersion int                      `json:"config_version"`
	Breakdown     *rating.PremiumBreakdown `json:"breakdown"`
}
