package rating

import (
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/types"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// ComputeWIBA rates a workplace injury benefits application. The base
// premium is the sum over employee categories of monthly rate x head
// count x 12; then industry risk, coverage type, experience rating,
// capped safety discounts and the volume discount apply in that order.
func ComputeWIBA(app WIBAApplication, config *pricing.PricingConfig) (*PremiumBreakdown, error) {
	rs, err := ruleSetFor(config, types.ProductTypeWIBA)
	if err != nil {
		return nil, err
	}
	if app.AsOf.IsZero() {
		return nil, missingField("as_of")
	}
	if len(app.EmployeeCategories) == 0 {
		return nil, missingField("employee_categories")
	}
	if app.Industry == "" {
		return nil, missingField("industry")
	}

	base := decimal.Zero
	totalEmployees := 0
	for _, ec := range app.EmployeeCategories {
		if ec.Count < 0 {
			return nil, outOfRange("employee_categories.count", "must not be negative")
		}
		tier, ok := rs.BasePremiums[ec.Category]
		if !ok {
			return nil, unknownTier("employee category", ec.Category)
		}
		monthly, ok := tier.Rates["monthly"]
		if !ok {
			return nil, unknownTier("employee category rate", ec.Category)
		}
		base = base.Add(monthly.Mul(decimal.NewFromInt(int64(ec.Count))).Mul(monthsPerYear))
		totalEmployees += ec.Count
	}
	if totalEmployees == 0 {
		return nil, outOfRange("employee_categories", "total head count must be positive")
	}

	calc := newCalculation(base)

	if factor, ok := rs.Factor(pricing.FactorIndustry, app.Industry); ok {
		calc.multiply(StepIndustry, factor)
	}
	if factor, ok := rs.Factor(pricing.FactorCoverageLevel, app.CoverageType); ok {
		calc.multiply(StepCoverageLevel, factor)
	}
	if factor, ok := rs.Factor(pricing.FactorExperience, app.ExperienceRating); ok {
		calc.multiply(StepExperience, factor)
	}

	if len(app.SafetyMeasures) > 0 {
		sum := cappedDiscountSum(app.SafetyMeasures, rs.DiscountItems[pricing.DiscountSafetyMeasures], rs.CapOrDefault())
		if sum.IsPositive() {
			calc.discount(StepDiscountItems, sum)
		}
	}

	if volume := volumeDiscountFor(totalEmployees, rs.VolumeDiscountTiers); volume.IsPositive() {
		calc.discount(StepVolumeDiscount, volume)
	}

	breakdown := calc.finish(types.ProductTypeWIBA)
	breakdown.Derived = map[string]decimal.Decimal{
		"total_employees":   decimal.NewFromInt(int64(totalEmployees)),
		"cost_per_employee": breakdown.TotalPremium.Div(decimal.NewFromInt(int64(totalEmployees))).Round(2),
	}
	return breakdown, nil
}
