package rating

import (
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/types"
)

// ComputeMedical rates a medical application against a config
// snapshot. Factor order: base premium, age, gender, lifestyle
// (smoking, alcohol, chronic, pre-existing), coverage level.
func ComputeMedical(app MedicalApplication, config *pricing.PricingConfig) (*PremiumBreakdown, error) {
	rs, err := ruleSetFor(config, types.ProductTypeMedical)
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
	if app.MemberType == "" {
		return nil, missingField("member_type")
	}
	if app.DateOfBirth.After(app.AsOf) {
		return nil, outOfRange("date_of_birth", "must not be in the future")
	}

	tier, ok := rs.BasePremiums[app.PlanType]
	if !ok {
		return nil, unknownTier("plan type", app.PlanType)
	}
	base, ok := tier.Rates[app.MemberType]
	if !ok {
		return nil, unknownTier("member type", app.MemberType)
	}

	calc := newCalculation(base)

	age := CalculateAge(app.DateOfBirth, app.AsOf)
	calc.multiply(StepAgeFactor, AgeFactor(age, rs.AgeFactors))

	if factor, ok := rs.Factor(pricing.FactorGender, app.Gender); ok {
		calc.multiply(StepGender, factor)
	}

	lifestyle := []struct {
		step     string
		key      string
		selected bool
	}{
		{StepSmoking, "smoking", app.Smoker},
		{StepAlcohol, "alcohol", app.AlcoholUse},
		{StepChronic, "chronic_conditions", app.Chronic},
		{StepPreExisting, "pre_existing", app.PreExisting},
	}
	for _, f := range lifestyle {
		if !f.selected {
			continue
		}
		if factor, ok := rs.Factor(pricing.FactorLifestyle, f.key); ok {
			calc.multiply(f.step, factor)
		}
	}

	if app.CoverageLevel != "" {
		if factor, ok := rs.Factor(pricing.FactorCoverageLevel, app.CoverageLevel); ok {
			calc.multiply(StepCoverageLevel, factor)
		}
	}

	breakdown := calc.finish(types.ProductTypeMedical)
	breakdown.CoverageAmount = tier.CoverageAmount
	return breakdown, nil
}
