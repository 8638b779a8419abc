package rating

import (
	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/types"
)

// The engines in this package are pure functions over an application
// and a config snapshot: no I/O, no clock reads, no shared state. The
// same inputs always produce bit-identical breakdowns, which is what
// makes quotes reproducible against historical config versions.

// Step names recorded in breakdowns
const (
	StepAgeFactor        = "age_factor"
	StepGender           = "gender"
	StepSmoking          = "smoking"
	StepAlcohol          = "alcohol"
	StepChronic          = "chronic_conditions"
	StepPreExisting      = "pre_existing"
	StepCoverageLevel    = "coverage_level"
	StepIndustry         = "industry_risk"
	StepExperience       = "experience_rating"
	StepOccupation       = "occupation_risk"
	StepUsage            = "usage"
	StepTripType         = "trip_type"
	StepHighRisk         = "high_risk_activities"
	StepHealthConditions = "health_conditions"
	StepHazardous        = "hazardous_activities"
	StepDiscountItems    = "discount_items"
	StepVolumeDiscount   = "volume_discount"
	StepPaymentFrequency = "payment_frequency"
	StepMinimumPremium   = "minimum_premium"
)

func ruleSetFor(config *pricing.PricingConfig, product types.ProductType) (*pricing.ProductRuleSet, error) {
	rs := config.RuleSetFor(product)
	if rs == nil {
		return nil, ierr.NewError("no rule set for product").
			WithHintf("The active configuration carries no rules for %s", product).
			Mark(ierr.ErrSystem)
	}
	return rs, nil
}

func missingField(name string) error {
	return ierr.NewError("required field missing").
		WithHintf("Field %s is required", name).
		WithReportableDetails(map[string]any{"field": name}).
		Mark(ierr.ErrMissingField)
}

func unknownTier(kind, key string) error {
	return ierr.NewError("unknown pricing tier").
		WithHintf("%s %q is not present in the active configuration", kind, key).
		WithReportableDetails(map[string]any{"tier": key}).
		Mark(ierr.ErrUnknownTier)
}

func outOfRange(field, reason string) error {
	return ierr.NewError("value out of range").
		WithHintf("Field %s is out of range: %s", field, reason).
		WithReportableDetails(map[string]any{"field": field, "reason": reason}).
		Mark(ierr.ErrOutOfRange)
}
