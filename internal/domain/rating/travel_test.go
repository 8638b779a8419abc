package rating

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
)

func TestComputeTravel(t *testing.T) {
	cfg := pricing.DefaultConfig()

	t.Run("per day accrual", func(t *testing.T) {
		app := TravelApplication{
			AsOf:        asOf,
			Destination: "regional",
			PlanType:    "standard",
			TripDays:    7,
			TripType:    "single_trip",
		}

		b, err := ComputeTravel(app, cfg)
		require.NoError(t, err)

		// 120/day x 7 days = 840, single trip 1.0
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(840)), "got %s", b.TotalPremium)
		assert.True(t, b.Derived["daily_rate"].Equal(decimal.NewFromInt(120)))
		assert.True(t, b.Derived["trip_days"].Equal(decimal.NewFromInt(7)))
	})

	t.Run("loadings apply", func(t *testing.T) {
		app := TravelApplication{
			AsOf:               asOf,
			Destination:        "worldwide",
			PlanType:           "basic",
			TripDays:           10,
			TripType:           "multi_trip_annual",
			HighRiskActivities: true,
		}

		b, err := ComputeTravel(app, cfg)
		require.NoError(t, err)

		// 100 x 10 = 1000, x 1.8 trip type, x 1.5 high risk = 2700
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(2700)), "got %s", b.TotalPremium)
	})

	t.Run("non positive trip days", func(t *testing.T) {
		app := TravelApplication{
			AsOf:        asOf,
			Destination: "domestic",
			PlanType:    "basic",
			TripDays:    0,
		}

		_, err := ComputeTravel(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrOutOfRange))
	})

	t.Run("unknown destination", func(t *testing.T) {
		app := TravelApplication{
			AsOf:        asOf,
			Destination: "lunar",
			PlanType:    "basic",
			TripDays:    3,
		}

		_, err := ComputeTravel(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrUnknownTier))
	})
}
