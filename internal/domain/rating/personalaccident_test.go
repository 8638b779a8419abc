package rating

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
)

func TestComputePersonalAccident(t *testing.T) {
	cfg := pricing.DefaultConfig()

	t.Run("age and occupation loadings", func(t *testing.T) {
		app := PersonalAccidentApplication{
			AsOf:         asOf,
			DateOfBirth:  dobForAge(50),
			CoverageTier: "1000000",
			Occupation:   "driver",
		}

		b, err := ComputePersonalAccident(app, cfg)
		require.NoError(t, err)

		// 4200 x 1.4 (46-60) x 1.4 (driver) = 8232
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(8232)), "got %s", b.TotalPremium)
		assert.True(t, b.CoverageAmount.Equal(decimal.NewFromInt(1000000)))
	})

	t.Run("health and activity loadings", func(t *testing.T) {
		app := PersonalAccidentApplication{
			AsOf:                asOf,
			DateOfBirth:         dobForAge(25),
			CoverageTier:        "500000",
			Occupation:          "office",
			HealthConditions:    true,
			HazardousActivities: true,
		}

		b, err := ComputePersonalAccident(app, cfg)
		require.NoError(t, err)

		// 2500 x 1.0 x 1.0 x 1.3 x 1.5 = 4875
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(4875)), "got %s", b.TotalPremium)
	})

	t.Run("unknown coverage tier", func(t *testing.T) {
		app := PersonalAccidentApplication{
			AsOf:         asOf,
			DateOfBirth:  dobForAge(30),
			CoverageTier: "750000",
		}

		_, err := ComputePersonalAccident(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrUnknownTier))
	})
}
