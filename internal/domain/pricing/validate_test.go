package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/types"
)

func TestValidateRules(t *testing.T) {
	t.Run("seed rules are valid", func(t *testing.T) {
		assert.NoError(t, ValidateRules(DefaultRules()))
	})

	t.Run("missing product", func(t *testing.T) {
		rules := DefaultRules()
		delete(rules, types.ProductTypeTravel)

		err := ValidateRules(rules)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("negative rate", func(t *testing.T) {
		rules := DefaultRules()
		rules[types.ProductTypeMedical].BasePremiums["basic"].Rates["individual"] = decimal.NewFromInt(-1)

		err := ValidateRules(rules)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("overlapping age brackets", func(t *testing.T) {
		rules := DefaultRules()
		rules[types.ProductTypeMedical].AgeFactors = []AgeBracket{
			{MinAge: 18, MaxAge: 30, Multiplier: decimal.NewFromInt(1)},
			{MinAge: 25, MaxAge: 40, Multiplier: decimal.NewFromInt(1)},
		}

		err := ValidateRules(rules)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("open ended bracket must be last", func(t *testing.T) {
		rules := DefaultRules()
		rules[types.ProductTypeMedical].AgeFactors = []AgeBracket{
			{MinAge: 18, MaxAge: -1, Multiplier: decimal.NewFromInt(1)},
			{MinAge: 60, MaxAge: 70, Multiplier: decimal.NewFromInt(1)},
		}

		err := ValidateRules(rules)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("gaps between brackets are allowed", func(t *testing.T) {
		rules := DefaultRules()
		rules[types.ProductTypeMedical].AgeFactors = []AgeBracket{
			{MinAge: 18, MaxAge: 30, Multiplier: decimal.NewFromInt(1)},
			{MinAge: 40, MaxAge: -1, Multiplier: decimal.NewFromInt(2)},
		}

		assert.NoError(t, ValidateRules(rules))
	})

	t.Run("discount fraction of one or more", func(t *testing.T) {
		rules := DefaultRules()
		rules[types.ProductTypeWIBA].DiscountItems[DiscountSafetyMeasures]["free_cover"] = decimal.NewFromInt(1)

		err := ValidateRules(rules)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("volume tiers must ascend", func(t *testing.T) {
		rules := DefaultRules()
		rules[types.ProductTypeWIBA].VolumeDiscountTiers = []VolumeTier{
			{MinCount: 51, Discount: decimal.RequireFromString("0.10")},
			{MinCount: 11, Discount: decimal.RequireFromString("0.05")},
		}

		err := ValidateRules(rules)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("unknown product key", func(t *testing.T) {
		rules := DefaultRules()
		rules[types.ProductType("pet")] = rules[types.ProductTypeMedical].Clone()

		err := ValidateRules(rules)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("all violations reported together", func(t *testing.T) {
		rules := DefaultRules()
		delete(rules, types.ProductTypeMotor)
		rules[types.ProductTypeMedical].BasePremiums["basic"].Rates["individual"] = decimal.NewFromInt(-1)

		// Both problems produce a single validation error
		err := ValidateRules(rules)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestProductRuleSetClone(t *testing.T) {
	original := defaultMedicalRules()
	cloned := original.Clone()

	cloned.BasePremiums["basic"].Rates["individual"] = decimal.NewFromInt(999)
	cloned.Factors[FactorGender]["male"] = decimal.NewFromInt(9)

	assert.True(t, original.BasePremiums["basic"].Rates["individual"].Equal(decimal.NewFromInt(18000)))
	assert.True(t, original.Factors[FactorGender]["male"].Equal(decimal.NewFromInt(1)))
}
