package rating

import (
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/types"
)

// ComputePersonalAccident rates a personal accident application.
// The coverage tier keys the annual base; then age, occupation risk
// and health/activity loadings apply.
func ComputePersonalAccident(app PersonalAccidentApplication, config *pricing.PricingConfig) (*PremiumBreakdown, error) {
	rs, err := ruleSetFor(config, types.ProductTypePersonalAccident)
	if err != nil {
		return nil, err
	}
	if app.AsOf.IsZero() {
		return nil, missingField("as_of")
	}
	if app.DateOfBirth.IsZero() {
		return nil, missingField("date_of_birth")
	}
	if app.CoverageTier == "" {
		return nil, missingField("coverage_tier")
	}
	if app.DateOfBirth.After(app.AsOf) {
		return nil, outOfRange("date_of_birth", "must not be in the future")
	}

	tier, ok := rs.BasePremiums[app.CoverageTier]
	if !ok {
		return nil, unknownTier("coverage tier", app.CoverageTier)
	}
	base, ok := tier.Rates["annual"]
	if !ok {
		return nil, unknownTier("coverage tier rate", app.CoverageTier)
	}

	calc := newCalculation(base)

	age := CalculateAge(app.DateOfBirth, app.AsOf)
	calc.multiply(StepAgeFactor, AgeFactor(age, rs.AgeFactors))

	if app.Occupation != "" {
		if factor, ok := rs.Factor(pricing.FactorOccupation, app.Occupation); ok {
			calc.multiply(StepOccupation, factor)
		}
	}
	if app.HealthConditions {
		if factor, ok := rs.Factor(pricing.FactorLifestyle, "health_conditions"); ok {
			calc.multiply(StepHealthConditions, factor)
		}
	}
	if app.HazardousActivities {
		if factor, ok := rs.Factor(pricing.FactorLifestyle, "hazardous_activities"); ok {
			calc.multiply(StepHazardous, factor)
		}
	}

	breakdown := calc.finish(types.ProductTypePersonalAccident)
	breakdown.CoverageAmount = tier.CoverageAmount
	return breakdown, nil
}
