package rating

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
)

func TestComputeMotor(t *testing.T) {
	cfg := pricing.DefaultConfig()

	t.Run("value rated category", func(t *testing.T) {
		app := MotorApplication{
			AsOf:              asOf,
			VehicleCategory:   "private",
			VehicleValue:      decimal.NewFromInt(2000000),
			YearOfManufacture: asOf.Year() - 5,
			Usage:             "urban",
		}

		b, err := ComputeMotor(app, cfg)
		require.NoError(t, err)

		// 2000000 x 0.035 = 70000; vehicle age 5 factor 1.2; urban 1.0
		assert.True(t, b.BasePremium.Equal(decimal.NewFromInt(70000)))
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(84000)), "got %s", b.TotalPremium)
	})

	t.Run("minimum premium floor", func(t *testing.T) {
		app := MotorApplication{
			AsOf:            asOf,
			VehicleCategory: "private",
			VehicleValue:    decimal.NewFromInt(100000),
		}

		b, err := ComputeMotor(app, cfg)
		require.NoError(t, err)

		// 100000 x 0.035 = 3500 would undercut the floor
		assert.True(t, b.BasePremium.Equal(decimal.NewFromInt(15000)))
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("flat rated special equipment ignores value", func(t *testing.T) {
		app := MotorApplication{
			AsOf:            asOf,
			VehicleCategory: "fork_lift",
		}

		b, err := ComputeMotor(app, cfg)
		require.NoError(t, err)

		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("security feature discounts", func(t *testing.T) {
		app := MotorApplication{
			AsOf:             asOf,
			VehicleCategory:  "commercial",
			VehicleValue:     decimal.NewFromInt(1000000),
			SecurityFeatures: []string{"tracking_device", "alarm_system"},
		}

		b, err := ComputeMotor(app, cfg)
		require.NoError(t, err)

		// 1000000 x 0.055 = 55000, x 0.92 = 50600
		assert.True(t, b.TotalPremium.Equal(decimal.NewFromInt(50600)), "got %s", b.TotalPremium)
	})

	t.Run("value required for value rated categories", func(t *testing.T) {
		app := MotorApplication{
			AsOf:            asOf,
			VehicleCategory: "psv",
		}

		_, err := ComputeMotor(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrMissingField))
	})

	t.Run("negative vehicle value", func(t *testing.T) {
		app := MotorApplication{
			AsOf:            asOf,
			VehicleCategory: "private",
			VehicleValue:    decimal.NewFromInt(-5),
		}

		_, err := ComputeMotor(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrOutOfRange))
	})

	t.Run("future year of manufacture", func(t *testing.T) {
		app := MotorApplication{
			AsOf:              asOf,
			VehicleCategory:   "private",
			VehicleValue:      decimal.NewFromInt(800000),
			YearOfManufacture: asOf.Year() + 1,
		}

		_, err := ComputeMotor(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrOutOfRange))
	})

	t.Run("unknown vehicle category", func(t *testing.T) {
		app := MotorApplication{
			AsOf:            asOf,
			VehicleCategory: "hovercraft",
			VehicleValue:    decimal.NewFromInt(800000),
		}

		_, err := ComputeMotor(app, cfg)
		assert.True(t, ierr.Is(err, ierr.ErrUnknownTier))
	})
}
