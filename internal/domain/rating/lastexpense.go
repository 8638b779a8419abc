package rating

import (
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/types"
)

// ComputeLastExpense rates a last expense application. The plan keys
// the annual base; then the age factor and payment frequency multiplier
// apply, and flat add-on benefits are added after every multiplicative
// step, before final rounding.
func ComputeLastExpense(app LastExpenseApplication, config *pricing.PricingConfig) (*PremiumBreakdown, error) {
	rs, err := ruleSetFor(config, types.ProductTypeLastExpense)
	if err != nil {
		return nil, err
	}
	if app.AsOf.IsZero() {
		return nil, missingField("as_of")
	}
	if app.DateOfBirth.IsZero() {
		return nil, missingField("date_of_birth")
	}
	if app.PlanType == "" {
		return nil, missingField("plan_type")
	}
	if app.DateOfBirth.After(app.AsOf) {
		return nil, outOfRange("date_of_birth", "must not be in the future")
	}

	tier, ok := rs.BasePremiums[app.PlanType]
	if !ok {
		return nil, unknownTier("plan type", app.PlanType)
	}
	base, ok := tier.Rates["annual"]
	if !ok {
		return nil, unknownTier("plan type rate", app.PlanType)
	}

	calc := newCalculation(base)

	age := CalculateAge(app.DateOfBirth, app.AsOf)
	calc.multiply(StepAgeFactor, AgeFactor(age, rs.AgeFactors))

	if app.PaymentFrequency != "" {
		if factor, ok := rs.PaymentFrequencyFactors[app.PaymentFrequency]; ok {
			calc.multiply(StepPaymentFrequency, factor)
		}
	}

	for _, key := range sortedAddOnKeys(app.AdditionalBenefits, rs.AddOns) {
		calc.add(key, rs.AddOns[key])
	}

	breakdown := calc.finish(types.ProductTypeLastExpense)
	breakdown.CoverageAmount = tier.CoverageAmount
	return breakdown, nil
}
