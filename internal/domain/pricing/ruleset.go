package pricing

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Factor table names shared across product rule sets. A product simply
// omits the tables that do not apply to it; the engine skips the
// corresponding step.
const (
	FactorGender        = "gender"
	FactorLifestyle     = "lifestyle"
	FactorCoverageLevel = "coverage_level"
	FactorIndustry      = "industry"
	FactorExperience    = "experience"
	FactorOccupation    = "occupation"
	FactorUsage         = "usage"
	FactorTripType      = "trip_type"
	FactorVehicleAge    = "vehicle_age"
)

// Discount table names
const (
	DiscountSafetyMeasures   = "safety_measures"
	DiscountSecurityFeatures = "security_features"
)

// DefaultDiscountCap applies when a rule set does not set its own cap
var DefaultDiscountCap = decimal.RequireFromString("0.20")

// BasePremium is one tier entry: the rate(s) charged and the coverage
// amount the tier buys. Rate keys are product-specific, e.g. medical
// uses "individual"/"family", WIBA uses "monthly" (per employee), motor
// uses "rate" (fraction of vehicle value) or "flat".
type BasePremium struct {
	Rates          map[string]decimal.Decimal `json:"rates"`
	CoverageAmount decimal.Decimal            `json:"coverage_amount"`
}

// AgeBracket maps an inclusive age range to a multiplier. MaxAge < 0
// means open-ended. Unmatched ages always resolve to multiplier 1.0.
type AgeBracket struct {
	MinAge     int             `json:"min_age"`
	MaxAge     int             `json:"max_age"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Contains reports whether age falls inside the bracket
func (b AgeBracket) Contains(age int) bool {
	if age < b.MinAge {
		return false
	}
	return b.MaxAge < 0 || age <= b.MaxAge
}

// FactorTable maps a key (gender, industry, occupation...) to a
// premium multiplier
type FactorTable map[string]decimal.Decimal

// DiscountTable maps a discount item key to its additive discount
// fraction. Selected fractions are summed and capped before being
// applied as a single (1 - cappedSum) multiplier.
type DiscountTable map[string]decimal.Decimal

// VolumeTier unlocks a discount at a head/unit count threshold.
// Tiers are ordered strictly ascending by MinCount; the highest tier
// with MinCount <= count wins.
type VolumeTier struct {
	MinCount int             `json:"min_count"`
	Discount decimal.Decimal `json:"discount"`
}

// ProductRuleSet holds every table the rating engine may consult for
// one product line. Tables a product has no use for stay empty.
type ProductRuleSet struct {
	BasePremiums            map[string]BasePremium     `json:"base_premiums"`
	AgeFactors              []AgeBracket               `json:"age_factors,omitempty"`
	Factors                 map[string]FactorTable     `json:"factors,omitempty"`
	DiscountItems           map[string]DiscountTable   `json:"discount_items,omitempty"`
	DiscountCap             decimal.Decimal            `json:"discount_cap"`
	VolumeDiscountTiers     []VolumeTier               `json:"volume_discount_tiers,omitempty"`
	PaymentFrequencyFactors map[string]decimal.Decimal `json:"payment_frequency_factors,omitempty"`
	AddOns                  map[string]decimal.Decimal `json:"add_ons,omitempty"`
	MinimumPremium          decimal.Decimal            `json:"minimum_premium"`
}

// Factor returns the multiplier for a key in a named table and whether
// the table carries it
func (rs *ProductRuleSet) Factor(table, key string) (decimal.Decimal, bool) {
	t, ok := rs.Factors[table]
	if !ok {
		return decimal.Decimal{}, false
	}
	f, ok := t[key]
	return f, ok
}

// CapOrDefault returns the configured discount cap, falling back to
// the product default of 20%
func (rs *ProductRuleSet) CapOrDefault() decimal.Decimal {
	if rs.DiscountCap.IsPositive() {
		return rs.DiscountCap
	}
	return DefaultDiscountCap
}

// Clone returns a deep copy of the rule set
func (rs *ProductRuleSet) Clone() *ProductRuleSet {
	if rs == nil {
		return nil
	}
	cp := &ProductRuleSet{
		DiscountCap:    rs.DiscountCap,
		MinimumPremium: rs.MinimumPremium,
	}
	if rs.BasePremiums != nil {
		cp.BasePremiums = make(map[string]BasePremium, len(rs.BasePremiums))
		for tier, bp := range rs.BasePremiums {
			cp.BasePremiums[tier] = BasePremium{
				Rates:          lo.Assign(map[string]decimal.Decimal{}, bp.Rates),
				CoverageAmount: bp.CoverageAmount,
			}
		}
	}
	cp.AgeFactors = append([]AgeBracket(nil), rs.AgeFactors...)
	if rs.Factors != nil {
		cp.Factors = make(map[string]FactorTable, len(rs.Factors))
		for name, table := range rs.Factors {
			cp.Factors[name] = lo.Assign(FactorTable{}, table)
		}
	}
	if rs.DiscountItems != nil {
		cp.DiscountItems = make(map[string]DiscountTable, len(rs.DiscountItems))
		for name, table := range rs.DiscountItems {
			cp.DiscountItems[name] = lo.Assign(DiscountTable{}, table)
		}
	}
	cp.VolumeDiscountTiers = append([]VolumeTier(nil), rs.VolumeDiscountTiers...)
	if rs.PaymentFrequencyFactors != nil {
		cp.PaymentFrequencyFactors = lo.Assign(map[string]decimal.Decimal{}, rs.PaymentFrequencyFactors)
	}
	if rs.AddOns != nil {
		cp.AddOns = lo.Assign(map[string]decimal.Decimal{}, rs.AddOns)
	}
	return cp
}
