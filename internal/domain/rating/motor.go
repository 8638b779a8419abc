package rating

import (
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/types"
)

// ComputeMotor rates motor and special equipment applications.
// Value-rated categories (private, commercial, psv, truck) charge a
// fraction of vehicle value, floored at the minimum premium; special
// equipment categories carry a flat annual base. Then the vehicle age
// factor, usage factor and capped security-feature discounts apply.
func ComputeMotor(app MotorApplication, config *pricing.PricingConfig) (*PremiumBreakdown, error) {
	rs, err := ruleSetFor(config, types.ProductTypeMotor)
	if err != nil {
		return nil, err
	}
	if app.AsOf.IsZero() {
		return nil, missingField("as_of")
	}
	if app.VehicleCategory == "" {
		return nil, missingField("vehicle_category")
	}

	tier, ok := rs.BasePremiums[app.VehicleCategory]
	if !ok {
		return nil, unknownTier("vehicle category", app.VehicleCategory)
	}

	base, flatRated := tier.Rates["flat"]
	if !flatRated {
		rate, ok := tier.Rates["rate"]
		if !ok {
			return nil, unknownTier("vehicle category rate", app.VehicleCategory)
		}
		if app.VehicleValue.IsZero() {
			return nil, missingField("vehicle_value")
		}
		if app.VehicleValue.IsNegative() {
			return nil, outOfRange("vehicle_value", "must be positive")
		}
		base = app.VehicleValue.Mul(rate)
		if base.LessThan(rs.MinimumPremium) {
			base = rs.MinimumPremium
		}
	}

	calc := newCalculation(base)

	if app.YearOfManufacture > 0 {
		vehicleAge := app.AsOf.Year() - app.YearOfManufacture
		if vehicleAge < 0 {
			return nil, outOfRange("year_of_manufacture", "must not be in the future")
		}
		calc.multiply(StepAgeFactor, AgeFactor(vehicleAge, rs.AgeFactors))
	}

	if app.Usage != "" {
		if factor, ok := rs.Factor(pricing.FactorUsage, app.Usage); ok {
			calc.multiply(StepUsage, factor)
		}
	}

	if len(app.SecurityFeatures) > 0 {
		sum := cappedDiscountSum(app.SecurityFeatures, rs.DiscountItems[pricing.DiscountSecurityFeatures], rs.CapOrDefault())
		if sum.IsPositive() {
			calc.discount(StepDiscountItems, sum)
		}
	}

	return calc.finish(types.ProductTypeMotor), nil
}
