package rating

import (
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/types"
	"github.com/shopspring/decimal"
)

// ComputeTravel rates a travel application. The base premium is the
// destination band's daily rate for the chosen plan times trip days;
// then the trip type multiplier and health/activity loadings apply.
func ComputeTravel(app TravelApplication, config *pricing.PricingConfig) (*PremiumBreakdown, error) {
	rs, err := ruleSetFor(config, types.ProductTypeTravel)
	if err != nil {
		return nil, err
	}
	if app.AsOf.IsZero() {
		return nil, missingField("as_of")
	}
	if app.Destination == "" {
		return nil, missingField("destination")
	}
	if app.PlanType == "" {
		return nil, missingField("plan_type")
	}
	if app.TripDays <= 0 {
		return nil, outOfRange("trip_days", "must be positive")
	}

	tier, ok := rs.BasePremiums[app.Destination]
	if !ok {
		return nil, unknownTier("destination", app.Destination)
	}
	dailyRate, ok := tier.Rates[app.PlanType]
	if !ok {
		return nil, unknownTier("plan type", app.PlanType)
	}

	base := dailyRate.Mul(decimal.NewFromInt(int64(app.TripDays)))
	calc := newCalculation(base)

	if app.TripType != "" {
		if factor, ok := rs.Factor(pricing.FactorTripType, app.TripType); ok {
			calc.multiply(StepTripType, factor)
		}
	}
	if app.HighRiskActivities {
		if factor, ok := rs.Factor(pricing.FactorLifestyle, "high_risk_activities"); ok {
			calc.multiply(StepHighRisk, factor)
		}
	}
	if app.PreExisting {
		if factor, ok := rs.Factor(pricing.FactorLifestyle, "pre_existing"); ok {
			calc.multiply(StepPreExisting, factor)
		}
	}

	breakdown := calc.finish(types.ProductTypeTravel)
	breakdown.Derived = map[string]decimal.Decimal{
		"daily_rate": dailyRate,
		"trip_days":  decimal.NewFromInt(int64(app.TripDays)),
	}
	return breakdown, nil
}
