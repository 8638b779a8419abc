package rating

import (
	"sort"
	"time"

	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// CalculateAge returns whole years between dateOfBirth and asOf,
// decremented by one when the asOf month/day precedes the birthday in
// the current year.
func CalculateAge(dateOfBirth, asOf time.Time) int {
	age := asOf.Year() - dateOfBirth.Year()
	if asOf.Month() < dateOfBirth.Month() ||
		(asOf.Month() == dateOfBirth.Month() && asOf.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// AgeFactor scans the ordered brackets for the one containing age.
// No match means multiplier 1.0, explicitly, never an error.
func AgeFactor(age int, brackets []pricing.AgeBracket) decimal.Decimal {
	for _, b := range brackets {
		if b.Contains(age) {
			return b.Multiplier
		}
	}
	return one
}

// cappedDiscountSum sums the fractions of every selected discount item
// present in the table and clamps the sum to cap. Unknown item keys
// are ignored; a data-entry typo must not blow up a quote. Selections
// are sorted so the summation order, and therefore the breakdown, is
// deterministic.
func cappedDiscountSum(selected []string, table pricing.DiscountTable, cap decimal.Decimal) decimal.Decimal {
	keys := append([]string(nil), selected...)
	sort.Strings(keys)

	total := decimal.Zero
	for _, key := range keys {
		if fraction, ok := table[key]; ok {
			total = total.Add(fraction)
		}
	}
	if total.GreaterThan(cap) {
		return cap
	}
	return total
}

// volumeDiscountFor returns the discount of the highest tier whose
// MinCount does not exceed count, or zero when no tier matches. Tiers
// are ordered ascending by MinCount.
func volumeDiscountFor(count int, tiers []pricing.VolumeTier) decimal.Decimal {
	discount := decimal.Zero
	for _, t := range tiers {
		if t.MinCount <= count {
			discount = t.Discount
		}
	}
	return discount
}

// sortedAddOnKeys returns the selected add-on keys present in the
// table, in deterministic order
func sortedAddOnKeys(selected []string, table map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(selected))
	for _, key := range selected {
		if _, ok := table[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
