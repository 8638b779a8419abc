package rating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
)

var asOf = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func dobForAge(age int) time.Time {
	return asOf.AddDate(-age, 0, -1)
}

func TestComputeMedical(t *testing.T) {
	cfg := pricing.DefaultConfig()

	t.Run("baseline individual", func(t *testing.T) {
		app := MedicalApplication{
			AsOf:        asOf,
			DateOfBirth: dobForAge(30),
			Gender:      "male",
			PlanType:    "standard",
			MemberType:  "individual",
		}

		b, err := ComputeMedical(app, cfg)
		require.NoError(t, err)

		// 35000 base, age 26-35 factor 1.0, male 1.0
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(35000)), "got %s", b.TotalPremium)
		assert.True(t, b.MonthlyPremium.Equal(decimal.NewFromInt(2917)))
		assert.True(t, b.CoverageAmount.Equal(decimal.NewFromInt(1000000)))
	})

	t.Run("loadings stack multiplicatively", func(t *testing.T) {
		app := MedicalApplication{
			AsOf:        asOf,
			DateOfBirth: dobForAge(40),
			Gender:      "female",
			PlanType:    "standard",
			MemberType:  "individual",
			Smoker:      true,
		}

		b, err := ComputeMedical(app, cfg)
		require.NoError(t, err)

		// 35000 x 1.3 (36-45) x 1.15 (female) x 1.4 (smoking) = 73255
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(73255)), "got %s", b.TotalPremium)
		require.Len(t, b.Steps, 3)
		assert.Equal(t, StepAgeFactor, b.Steps[0].FactorName)
		assert.Equal(t, StepGender, b.Steps[1].FactorName)
		assert.Equal(t, StepSmoking, b.Steps[2].FactorName)
	})

	t.Run("coverage level applies last", func(t *testing.T) {
		app := MedicalApplication{
			AsOf:          asOf,
			DateOfBirth:   dobForAge(30),
			Gender:        "male",
			PlanType:      "basic",
			MemberType:    "family",
			CoverageLevel: "comprehensive",
		}

		b, err := ComputeMedical(app, cfg)
		require.NoError(t, err)

		// 45000 x 1.0 x 1.0 x 1.5 = 67500
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(67500)), "got %s", b.TotalPremium)
		assert.Equal(t, StepCoverageLevel, b.Steps[len(b.Steps)-1].FactorName)
	})

	t.Run("unknown plan type", func(t *testing.T) {
		app := MedicalApplication{
			AsOf:        asOf,
			DateOfBirth: dobForAge(30),
			PlanType:    "platinum",
			MemberType:  "individual",
		}

		_, err := ComputeMedical(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrUnknownTier))
	})

	t.Run("unknown member type", func(t *testing.T) {
		app := MedicalApplication{
			AsOf:        asOf,
			DateOfBirth: dobForAge(30),
			PlanType:    "standard",
			MemberType:  "group",
		}

		_, err := ComputeMedical(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrUnknownTier))
	})

	t.Run("missing date of birth", func(t *testing.T) {
		app := MedicalApplication{
			AsOf:       asOf,
			PlanType:   "standard",
			MemberType: "individual",
		}

		_, err := ComputeMedical(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrMissingField))
	})

	t.Run("future date of birth", func(t *testing.T) {
		app := MedicalApplication{
			AsOf:        asOf,
			DateOfBirth: asOf.AddDate(1, 0, 0),
			PlanType:    "standard",
			MemberType:  "individual",
		}

		_, err := ComputeMedical(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrOutOfRange))
	})

	t.Run("every age has a defined premium", func(t *testing.T) {
		for age := 0; age <= 120; age++ {
			app := MedicalApplication{
				AsOf:        asOf,
				DateOfBirth: dobForAge(age),
				Gender:      "male",
				PlanType:    "basic",
				MemberType:  "individual",
			}

			b, err := ComputeMedical(app, cfg)
			require.NoError(t, err, "age %d", age)
			assert.True(t, b.TotalPremium.IsPositive(), "age %d", age)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		app := MedicalApplication{
			AsOf:          asOf,
			DateOfBirth:   dobForAge(52),
			Gender:        "female",
			PlanType:      "premium",
			MemberType:    "family",
			CoverageLevel: "standard",
			Smoker:        true,
			AlcoholUse:    true,
			Chronic:       true,
			PreExisting:   true,
		}

		first, err := ComputeMedical(app, cfg)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			next, err := ComputeMedical(app, cfg)
			require.NoError(t, err)
			assert.Equal(t, first, next)
		}
	})
}
