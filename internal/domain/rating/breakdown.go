package rating

import (
	"github.com/patabima/patabima/internal/types"
	"github.com/shopspring/decimal"
)

// StepKind classifies one applied rating step
type StepKind string

const (
	StepKindMultiplier StepKind = "multiplier"
	StepKindDiscount   StepKind = "discount"
	StepKindAddition   StepKind = "addition"
)

// Step records one applied factor in the exact order it was applied.
// SubtotalAfter is kept unrounded for traceability.
type Step struct {
	FactorName    string          `json:"factor_name"`
	Kind          StepKind        `json:"kind"`
	Value         decimal.Decimal `json:"value"`
	SubtotalAfter decimal.Decimal `json:"subtotal_after"`
}

// PremiumBreakdown is the fully itemized trace of one computation.
// Immutable once produced; a persisted quote freezes its breakdown
// forever.
type PremiumBreakdown struct {
	ProductType    types.ProductType          `json:"product_type"`
	BasePremium    decimal.Decimal            `json:"base_premium"`
	Steps          []Step                     `json:"steps"`
	TotalPremium   decimal.Decimal            `json:"total_premium"`
	MonthlyPremium decimal.Decimal            `json:"monthly_premium"`
	CoverageAmount decimal.Decimal            `json:"coverage_amount"`
	Derived        map[string]decimal.Decimal `json:"derived,omitempty"`
}

// calculation accumulates the running subtotal and the step trace.
// Only the final totals are ever rounded.
type calculation struct {
	base     decimal.Decimal
	subtotal decimal.Decimal
	steps    []Step
}

func newCalculation(base decimal.Decimal) *calculation {
	return &calculation{base: base, subtotal: base}
}

func (c *calculation) multiply(name string, factor decimal.Decimal) {
	c.subtotal = c.subtotal.Mul(factor)
	c.steps = append(c.steps, Step{
		FactorName:    name,
		Kind:          StepKindMultiplier,
		Value:         factor,
		SubtotalAfter: c.subtotal,
	})
}

// discount applies (1 - fraction) and records the fraction itself
func (c *calculation) discount(name string, fraction decimal.Decimal) {
	c.subtotal = c.subtotal.Mul(decimal.NewFromInt(1).Sub(fraction))
	c.steps = append(c.steps, Step{
		FactorName:    name,
		Kind:          StepKindDiscount,
		Value:         fraction,
		SubtotalAfter: c.subtotal,
	})
}

func (c *calculation) add(name string, amount decimal.Decimal) {
	c.subtotal = c.subtotal.Add(amount)
	c.steps = append(c.steps, Step{
		FactorName:    name,
		Kind:          StepKindAddition,
		Value:         amount,
		SubtotalAfter: c.subtotal,
	})
}

// finish rounds the annual total to the nearest whole currency unit,
// then derives the monthly figure from the rounded total. Intermediate
// subtotals in the trace stay unrounded.
func (c *calculation) finish(product types.ProductType) *PremiumBreakdown {
	total := c.subtotal.Round(0)
	monthly := total.Div(decimal.NewFromInt(12)).Round(0)
	return &PremiumBreakdown{
		ProductType:    product,
		BasePremium:    c.base,
		Steps:          c.steps,
		TotalPremium:   total,
		MonthlyPremium: monthly,
	}
}
