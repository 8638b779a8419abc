package pricing

import (
	"fmt"

	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/types"
	"github.com/shopspring/decimal"
)

// ValidateRules checks a full proposed rule mapping against the config
// schema. Every violation is collected and reported together so an
// administrator can fix the whole submission in one pass.
func ValidateRules(rules map[types.ProductType]*ProductRuleSet) error {
	violations := make(map[string]any)

	for _, product := range types.ProductTypes {
		rs, ok := rules[product]
		if !ok || rs == nil {
			violations[product.String()] = "product rule set is missing"
			continue
		}
		validateRuleSet(product, rs, violations)
	}

	for product := range rules {
		if err := product.Validate(); err != nil {
			violations[product.String()] = "unknown product type"
		}
	}

	if len(violations) > 0 {
		return ierr.NewError("proposed configuration is invalid").
			WithHint("One or more rule tables failed validation").
			WithReportableDetails(violations).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func validateRuleSet(product types.ProductType, rs *ProductRuleSet, violations map[string]any) {
	field := func(name string) string {
		return fmt.Sprintf("%s.%s", product, name)
	}

	if len(rs.BasePremiums) == 0 {
		violations[field("base_premiums")] = "at least one tier is required"
	}
	for tier, bp := range rs.BasePremiums {
		if len(bp.Rates) == 0 {
			violations[field("base_premiums."+tier+".rates")] = "at least one rate is required"
		}
		for key, rate := range bp.Rates {
			if rate.IsNegative() {
				violations[field("base_premiums."+tier+".rates."+key)] = "rate must not be negative"
			}
		}
		if bp.CoverageAmount.IsNegative() {
			violations[field("base_premiums."+tier+".coverage_amount")] = "coverage amount must not be negative"
		}
	}

	validateAgeBrackets(field("age_factors"), rs.AgeFactors, violations)

	for name, table := range rs.Factors {
		for key, factor := range table {
			if factor.IsNegative() {
				violations[field("factors."+name+"."+key)] = "multiplier must not be negative"
			}
		}
	}

	for name, table := range rs.DiscountItems {
		for key, fraction := range table {
			if fraction.IsNegative() || fraction.GreaterThanOrEqual(decimal.NewFromInt(1)) {
				violations[field("discount_items."+name+"."+key)] = "discount fraction must be in [0, 1)"
			}
		}
	}

	if rs.DiscountCap.IsNegative() || rs.DiscountCap.GreaterThan(decimal.NewFromInt(1)) {
		violations[field("discount_cap")] = "discount cap must be in [0, 1]"
	}

	validateVolumeTiers(field("volume_discount_tiers"), rs.VolumeDiscountTiers, violations)

	for freq, factor := range rs.PaymentFrequencyFactors {
		if !factor.IsPositive() {
			violations[field("payment_frequency_factors."+freq)] = "frequency multiplier must be positive"
		}
	}

	for name, amount := range rs.AddOns {
		if amount.IsNegative() {
			violations[field("add_ons."+name)] = "add-on amount must not be negative"
		}
	}

	if rs.MinimumPremium.IsNegative() {
		violations[field("minimum_premium")] = "minimum premium must not be negative"
	}
}

// validateAgeBrackets enforces ordering and non-overlap. Gaps are
// legal: an unmatched age resolves to multiplier 1.0 at rating time,
// never to an error.
func validateAgeBrackets(field string, brackets []AgeBracket, violations map[string]any) {
	for i, b := range brackets {
		if b.MinAge < 0 {
			violations[fmt.Sprintf("%s[%d].min_age", field, i)] = "min age must not be negative"
		}
		if b.MaxAge >= 0 && b.MaxAge < b.MinAge {
			violations[fmt.Sprintf("%s[%d].max_age", field, i)] = "max age must not precede min age"
		}
		if b.Multiplier.IsNegative() {
			violations[fmt.Sprintf("%s[%d].multiplier", field, i)] = "multiplier must not be negative"
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if prev.MaxAge < 0 {
			violations[fmt.Sprintf("%s[%d]", field, i-1)] = "open-ended bracket must be last"
		} else if b.MinAge <= prev.MaxAge {
			violations[fmt.Sprintf("%s[%d]", field, i)] = "brackets must not overlap"
		}
	}
}

func validateVolumeTiers(field string, tiers []VolumeTier, violations map[string]any) {
	for i, t := range tiers {
		if t.MinCount < 0 {
			violations[fmt.Sprintf("%s[%d].min_count", field, i)] = "min count must not be negative"
		}
		if t.Discount.IsNegative() || t.Discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			violations[fmt.Sprintf("%s[%d].discount", field, i)] = "discount must be in [0, 1)"
		}
		if i > 0 && t.MinCount <= tiers[i-1].MinCount {
			violations[fmt.Sprintf("%s[%d].min_count", field, i)] = "tiers must be strictly ascending by min count"
		}
	}
}
