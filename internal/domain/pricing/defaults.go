package pricing

import (
	"time"

	"github.com/patabima/patabima/internal/types"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultConfig returns version 1 of the pricing configuration, seeded
// with the underwriter rate tables in force at launch. Administrators
// evolve these through Propose; the seed is only installed on an empty
// store.
func DefaultConfig() *PricingConfig {
	return &PricingConfig{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICING_CONFIG),
		Version:      1,
		ProductRules: DefaultRules(),
		UpdatedBy:    "system",
		UpdatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// DefaultRules builds the full seed rule mapping, one rule set per
// product line.
func DefaultRules() map[types.ProductType]*ProductRuleSet {
	return map[types.ProductType]*ProductRuleSet{
		types.ProductTypeMedical:          defaultMedicalRules(),
		types.ProductTypeWIBA:             defaultWIBARules(),
		types.ProductTypeMotor:            defaultMotorRules(),
		types.ProductTypeTravel:           defaultTravelRules(),
		types.ProductTypePersonalAccident: defaultPersonalAccidentRules(),
		types.ProductTypeLastExpense:      defaultLastExpenseRules(),
	}
}

func defaultMedicalRules() *ProductRuleSet {
	return &ProductRuleSet{
		BasePremiums: map[string]BasePremium{
			"basic": {
				Rates:          map[string]decimal.Decimal{"individual": d("18000"), "family": d("45000")},
				CoverageAmount: d("500000"),
			},
			"standard": {
				Rates:          map[string]decimal.Decimal{"individual": d("35000"), "family": d("85000")},
				CoverageAmount: d("1000000"),
			},
			"premium": {
				Rates:          map[string]decimal.Decimal{"individual": d("65000"), "family": d("150000")},
				CoverageAmount: d("2000000"),
			},
		},
		AgeFactors: []AgeBracket{
			{MinAge: 18, MaxAge: 25, Multiplier: d("0.8")},
			{MinAge: 26, MaxAge: 35, Multiplier: d("1.0")},
			{MinAge: 36, MaxAge: 45, Multiplier: d("1.3")},
			{MinAge: 46, MaxAge: 55, Multiplier: d("1.6")},
			{MinAge: 56, MaxAge: 65, Multiplier: d("2.1")},
			{MinAge: 66, MaxAge: -1, Multiplier: d("2.8")},
		},
		Factors: map[string]FactorTable{
			FactorGender: {
				"male":   d("1.0"),
				"female": d("1.15"),
			},
			FactorLifestyle: {
				"smoking":            d("1.4"),
				"alcohol":            d("1.2"),
				"chronic_conditions": d("1.5"),
				"pre_existing":       d("1.8"),
			},
			FactorCoverageLevel: {
				"basic":         d("1.0"),
				"standard":      d("1.2"),
				"comprehensive": d("1.5"),
			},
		},
		DiscountCap: d("0.20"),
	}
}

func defaultWIBARules() *ProductRuleSet {
	return &ProductRuleSet{
		// Monthly rate per employee by category, annualized at rating time
		BasePremiums: map[string]BasePremium{
			"clerical":  {Rates: map[string]decimal.Decimal{"monthly": d("150")}},
			"skilled":   {Rates: map[string]decimal.Decimal{"monthly": d("280")}},
			"manual":    {Rates: map[string]decimal.Decimal{"monthly": d("450")}},
			"hazardous": {Rates: map[string]decimal.Decimal{"monthly": d("750")}},
		},
		Factors: map[string]FactorTable{
			FactorIndustry: {
				"finance":       d("0.8"),
				"education":     d("0.9"),
				"office":        d("1.0"),
				"retail":        d("1.1"),
				"healthcare":    d("1.1"),
				"hospitality":   d("1.2"),
				"manufacturing": d("1.3"),
				"agriculture":   d("1.4"),
				"transport":     d("1.5"),
				"construction":  d("1.8"),
				"mining":        d("2.2"),
			},
			FactorCoverageLevel: {
				"basic":         d("1.0"),
				"enhanced":      d("1.3"),
				"comprehensive": d("1.6"),
			},
			FactorExperience: {
				"excellent": d("0.8"),
				"good":      d("0.9"),
				"average":   d("1.0"),
				"poor":      d("1.3"),
				"very_poor": d("1.6"),
			},
		},
		DiscountItems: map[string]DiscountTable{
			DiscountSafetyMeasures: {
				"safety_training":      d("0.05"),
				"safety_equipment":     d("0.03"),
				"safety_officer":       d("0.08"),
				"emergency_procedures": d("0.03"),
				"health_programs":      d("0.05"),
				"safety_audits":        d("0.04"),
			},
		},
		DiscountCap: d("0.20"),
		VolumeDiscountTiers: []VolumeTier{
			{MinCount: 11, Discount: d("0.05")},
			{MinCount: 51, Discount: d("0.10")},
			{MinCount: 201, Discount: d("0.15")},
		},
	}
}

func defaultMotorRules() *ProductRuleSet {
	return &ProductRuleSet{
		// Value-rated categories carry a "rate" fraction of vehicle
		// value; special equipment types carry a "flat" annual base.
		BasePremiums: map[string]BasePremium{
			"private":      {Rates: map[string]decimal.Decimal{"rate": d("0.035")}},
			"commercial":   {Rates: map[string]decimal.Decimal{"rate": d("0.055")}},
			"psv":          {Rates: map[string]decimal.Decimal{"rate": d("0.08")}},
			"truck":        {Rates: map[string]decimal.Decimal{"rate": d("0.065")}},
			"mobile_crane": {Rates: map[string]decimal.Decimal{"flat": d("60000")}},
			"earth_mover":  {Rates: map[string]decimal.Decimal{"flat": d("45000")}},
			"fork_lift":    {Rates: map[string]decimal.Decimal{"flat": d("30000")}},
			"agricultural": {Rates: map[string]decimal.Decimal{"flat": d("25000")}},
			"construction": {Rates: map[string]decimal.Decimal{"flat": d("35000")}},
		},
		// Vehicle age, not driver age
		AgeFactors: []AgeBracket{
			{MinAge: 0, MaxAge: 3, Multiplier: d("1.0")},
			{MinAge: 4, MaxAge: 8, Multiplier: d("1.2")},
			{MinAge: 9, MaxAge: 15, Multiplier: d("1.5")},
			{MinAge: 16, MaxAge: -1, Multiplier: d("2.0")},
		},
		Factors: map[string]FactorTable{
			FactorUsage: {
				"urban":         d("1.0"),
				"long_distance": d("1.3"),
			},
		},
		DiscountItems: map[string]DiscountTable{
			DiscountSecurityFeatures: {
				"tracking_device": d("0.05"),
				"alarm_system":    d("0.03"),
				"etched_windows":  d("0.02"),
			},
		},
		DiscountCap:    d("0.20"),
		MinimumPremium: d("15000"),
	}
}

func defaultTravelRules() *ProductRuleSet {
	return &ProductRuleSet{
		// Daily rate by destination band; plan selects the rate key
		BasePremiums: map[string]BasePremium{
			"domestic": {
				Rates: map[string]decimal.Decimal{"basic": d("25"), "standard": d("45"), "premium": d("75")},
			},
			"regional": {
				Rates: map[string]decimal.Decimal{"basic": d("65"), "standard": d("120"), "premium": d("200")},
			},
			"worldwide": {
				Rates: map[string]decimal.Decimal{"basic": d("100"), "standard": d("180"), "premium": d("300")},
			},
		},
		Factors: map[string]FactorTable{
			FactorTripType: {
				"single_trip":       d("1.0"),
				"multi_trip_annual": d("1.8"),
			},
			FactorLifestyle: {
				"high_risk_activities": d("1.5"),
				"pre_existing":         d("1.3"),
			},
		},
		DiscountCap: d("0.20"),
	}
}

func defaultPersonalAccidentRules() *ProductRuleSet {
	return &ProductRuleSet{
		BasePremiums: map[string]BasePremium{
			"500000":  {Rates: map[string]decimal.Decimal{"annual": d("2500")}, CoverageAmount: d("500000")},
			"1000000": {Rates: map[string]decimal.Decimal{"annual": d("4200")}, CoverageAmount: d("1000000")},
			"2000000": {Rates: map[string]decimal.Decimal{"annual": d("7500")}, CoverageAmount: d("2000000")},
			"5000000": {Rates: map[string]decimal.Decimal{"annual": d("15000")}, CoverageAmount: d("5000000")},
		},
		AgeFactors: []AgeBracket{
			{MinAge: 0, MaxAge: 30, Multiplier: d("1.0")},
			{MinAge: 31, MaxAge: 45, Multiplier: d("1.1")},
			{MinAge: 46, MaxAge: 60, Multiplier: d("1.4")},
			{MinAge: 61, MaxAge: -1, Multiplier: d("1.8")},
		},
		Factors: map[string]FactorTable{
			FactorOccupation: {
				"office":       d("1.0"),
				"field":        d("1.2"),
				"driver":       d("1.4"),
				"mechanic":     d("1.4"),
				"construction": d("2.0"),
				"security":     d("2.0"),
			},
			FactorLifestyle: {
				"health_conditions":    d("1.3"),
				"hazardous_activities": d("1.5"),
			},
		},
		DiscountCap: d("0.20"),
	}
}

func defaultLastExpenseRules() *ProductRuleSet {
	return &ProductRuleSet{
		BasePremiums: map[string]BasePremium{
			"basic":         {Rates: map[string]decimal.Decimal{"annual": d("600")}, CoverageAmount: d("50000")},
			"standard":      {Rates: map[string]decimal.Decimal{"annual": d("1100")}, CoverageAmount: d("100000")},
			"premium":       {Rates: map[string]decimal.Decimal{"annual": d("2000")}, CoverageAmount: d("200000")},
			"comprehensive": {Rates: map[string]decimal.Decimal{"annual": d("2800")}, CoverageAmount: d("300000")},
		},
		AgeFactors: []AgeBracket{
			{MinAge: 18, MaxAge: 30, Multiplier: d("0.7")},
			{MinAge: 31, MaxAge: 40, Multiplier: d("1.0")},
			{MinAge: 41, MaxAge: 50, Multiplier: d("1.4")},
			{MinAge: 51, MaxAge: 60, Multiplier: d("2.0")},
			{MinAge: 61, MaxAge: 70, Multiplier: d("3.2")},
			{MinAge: 71, MaxAge: -1, Multiplier: d("4.5")},
		},
		PaymentFrequencyFactors: map[string]decimal.Decimal{
			"monthly":     d("1.0"),
			"quarterly":   d("0.97"),
			"semi_annual": d("0.94"),
			"annual":      d("0.90"),
		},
		AddOns: map[string]decimal.Decimal{
			"memorial_service": d("300"),
			"tombstone":        d("500"),
			"repatriation":     d("800"),
		},
		DiscountCap: d("0.20"),
	}
}
