package quote

import (
	"context"
	"encoding/json"

	"github.com/patabima/patabima/internal/domain/rating"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/types"
)

// Quote ties a computed premium to a persisted, status-tracked record.
// ApplicationData, ConfigVersion and Breakdown are frozen at creation:
// they are what guarantees the premium can be reproduced against the
// config version in force at quote time. Status is the only mutable
// field; correcting a quote means creating a new one.
type Quote struct {
	ID          string `db:"id" json:"id"`
	QuoteNumber string `db:"quote_number" json:"quote_number"`

	ProductType     types.ProductType        `db:"product_type" json:"product_type"`
	ApplicationData json.RawMessage          `db:"application_data,jsonb" json:"application_data"`
	ConfigVersion   int                      `db:"config_version" json:"config_version"`
	Breakdown       *rating.PremiumBreakdown `db:"breakdown,jsonb" json:"breakdown"`

	Status types.QuoteStatus `db:"status" json:"status"`

	types.BaseModel
}

// NewQuote creates a draft quote freezing the application facts, the
// breakdown and the config version used to compute it
func NewQuote(ctx context.Context, product types.ProductType, applicationData json.RawMessage, breakdown *rating.PremiumBreakdown, configVersion int) *Quote {
	return &Quote{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		QuoteNumber:     types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_QUOTE),
		ProductType:     product,
		ApplicationData: applicationData,
		ConfigVersion:   configVersion,
		Breakdown:       breakdown,
		Status:          types.QuoteStatusDraft,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

// TransitionTo moves the quote to the next status, enforcing the
// forward-only state machine
func (q *Quote) TransitionTo(next types.QuoteStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !q.Status.CanTransitionTo(next) {
		return ierr.NewError("invalid status transition").
			WithHintf("A %s quote cannot move to %s", q.Status, next).
			WithReportableDetails(map[string]any{
				"from": q.Status.String(),
				"to":   next.String(),
			}).
			Mark(ierr.ErrInvalidTransition)
	}
	q.Status = next
	return nil
}
