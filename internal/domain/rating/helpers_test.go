package rating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/patabima/patabima/internal/domain/pricing"
)

func TestCalculateAge(t *testing.T) {
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{"day before birthday", time.Date(2020, 6, 14, 0, 0, 0, 0, time.UTC), 29},
		{"on birthday", time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), 30},
		{"day after birthday", time.Date(2020, 6, 16, 0, 0, 0, 0, time.UTC), 30},
		{"earlier month", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 29},
		{"later month", time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateAge(dob, tt.asOf))
		})
	}
}

func TestAgeFactor(t *testing.T) {
	brackets := []pricing.AgeBracket{
		{MinAge: 18, MaxAge: 25, Multiplier: decimal.RequireFromString("0.8")},
		{MinAge: 26, MaxAge: 35, Multiplier: decimal.RequireFromString("1.0")},
		{MinAge: 36, MaxAge: -1, Multiplier: decimal.RequireFromString("1.3")},
	}

	assert.True(t, AgeFactor(18, brackets).Equal(decimal.RequireFromString("0.8")))
	assert.True(t, AgeFactor(25, brackets).Equal(decimal.RequireFromString("0.8")))
	assert.True(t, AgeFactor(26, brackets).Equal(decimal.RequireFromString("1.0")))
	assert.True(t, AgeFactor(100, brackets).Equal(decimal.RequireFromString("1.3")))

	// Ages outside every bracket use the neutral multiplier
	assert.True(t, AgeFactor(10, brackets).Equal(decimal.NewFromInt(1)))
	assert.True(t, AgeFactor(0, nil).Equal(decimal.NewFromInt(1)))
}

func TestCappedDiscountSum(t *testing.T) {
	table := pricing.DiscountTable{
		"a": decimal.RequireFromString("0.05"),
		"b": decimal.RequireFromString("0.08"),
		"c": decimal.RequireFromString("0.10"),
	}
	cap := decimal.RequireFromString("0.20")

	sum := cappedDiscountSum([]string{"a", "b"}, table, cap)
	assert.True(t, sum.Equal(decimal.RequireFromString("0.13")))

	// Sum above the cap clamps to the cap
	sum = cappedDiscountSum([]string{"a", "b", "c"}, table, cap)
	assert.True(t, sum.Equal(cap))

	// Unknown keys are ignored, not errors
	sum = cappedDiscountSum([]string{"a", "nope"}, table, cap)
	assert.True(t, sum.Equal(decimal.RequireFromString("0.05")))

	assert.True(t, cappedDiscountSum(nil, table, cap).IsZero())
}

func TestVolumeDiscountFor(t *testing.T) {
	tiers := []pricing.VolumeTier{
		{MinCount: 11, Discount: decimal.RequireFromString("0.05")},
		{MinCount: 51, Discount: decimal.RequireFromString("0.10")},
		{MinCount: 201, Discount: decimal.RequireFromString("0.15")},
	}

	assert.True(t, volumeDiscountFor(10, tiers).IsZero())
	assert.True(t, volumeDiscountFor(11, tiers).Equal(decimal.RequireFromString("0.05")))
	assert.True(t, volumeDiscountFor(50, tiers).Equal(decimal.RequireFromString("0.05")))
	assert.True(t, volumeDiscountFor(51, tiers).Equal(decimal.RequireFromString("0.10")))
	assert.True(t, volumeDiscountFor(500, tiers).Equal(decimal.RequireFromString("0.15")))

	// Discount never decreases as head count grows
	prev := decimal.Zero
	for count := 1; count <= 300; count++ {
		current := volumeDiscountFor(count, tiers)
		assert.True(t, current.GreaterThanOrEqual(prev), "count %d", count)
		prev = current
	}
}
