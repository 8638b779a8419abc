package dto

import (
	"encoding/json"

	"github.com/patabima/patabima/internal/domain/quote"
	"github.com/patabima/patabima/internal/domain/rating"
	"github.com/patabima/patabima/internal/types"
	"github.com/patabima/patabima/internal/validator"
)

// CreateQuoteRequest prices an application and stores the result as a
// draft quote in one step
type CreateQuoteRequest struct {
	ProductType types.ProductType `json:"product_type" validate:"required"`
	Application json.RawMessage   `json:"application" validate:"required"`
}

func (r *CreateQuoteRequest) Validate() error {
	if err := r.ProductType.Validate(); err != nil {
		return err
	}
	return validator.ValidateRequest(r)
}

// TransitionQuoteRequest moves a quote to a new lifecycle status
type TransitionQuoteRequest struct {
	Status types.QuoteStatus `json:"status" validate:"required"`
}

func (r *TransitionQuoteRequest) Validate() error {
	return r.Status.Validate()
}

// QuoteResponse wraps a stored quote
type QuoteResponse struct {
	*quote.Quote
}

// ListQuotesResponse lists quotes matching a filter
type ListQuotesResponse struct {
	Items []*QuoteResponse `json:"items"`
	Total int              `json:"total"`
}

// QuoteAuditResponse reports whether replaying the stored application
// against the stored config version reproduces the stored breakdown
type QuoteAuditResponse struct {
	QuoteID       string                   `json:"quote_id"`
	ConfigVersion int                      `json:"config_version"`
	Matches       bool                     `json:"matches"`
	Recomputed    *rating.PremiumBreakdown `json:"recomputed"`
}

// ExpireDraftsResponse reports how many stale drafts were expired
type ExpireDraftsResponse struct {
	Expired int `json:"expired"`
}
