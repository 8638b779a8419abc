package types

import (
	"slices"

	ierr "github.com/patabima/patabima/internal/errors"
)

// QuoteStatus tracks a quote through its lifecycle. Transitions are
// forward-only; a quote is never edited back to an earlier state.
type QuoteStatus string

const (
	QuoteStatusDraft          QuoteStatus = "draft"
	QuoteStatusApplied        QuoteStatus = "applied"
	QuoteStatusPaymentPending QuoteStatus = "payment_pending"
	QuoteStatusPaid           QuoteStatus = "paid"
	QuoteStatusActive         QuoteStatus = "active"
	QuoteStatusExpired        QuoteStatus = "expired"
)

// quoteStatusTransitions holds the allowed forward transitions.
// Correcting a quote means creating a new one, never walking back.
var quoteStatusTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:          {QuoteStatusApplied, QuoteStatusExpired},
	QuoteStatusApplied:        {QuoteStatusPaymentPending, QuoteStatusExpired},
	QuoteStatusPaymentPending: {QuoteStatusPaid},
	QuoteStatusPaid:           {QuoteStatusActive},
	QuoteStatusActive:         {},
	QuoteStatusExpired:        {},
}

func (s QuoteStatus) String() string {
	return string(s)
}

func (s QuoteStatus) Validate() error {
	allowedValues := []QuoteStatus{
		QuoteStatusDraft,
		QuoteStatusApplied,
		QuoteStatusPaymentPending,
		QuoteStatusPaid,
		QuoteStatusActive,
		QuoteStatusExpired,
	}
	if !slices.Contains(allowedValues, s) {
		return ierr.NewError("invalid quote status").
			WithHintf("Quote status must be one of %v", allowedValues).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanTransitionTo reports whether the status change is a legal forward move
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	return slices.Contains(quoteStatusTransitions[s], next)
}

// IsTerminal reports whether no further transitions are possible
func (s QuoteStatus) IsTerminal() bool {
	return len(quoteStatusTransitions[s]) == 0
}
