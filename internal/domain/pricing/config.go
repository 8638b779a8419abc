package pricing

import (
	"time"

	"github.com/patabima/patabima/internal/types"
)

// PricingConfig is one immutable, numbered snapshot of every product's
// rule tables. A new version is only ever installed through
// Propose; superseded versions live on in the history for audit and
// quote reproducibility.
type PricingConfig struct {
	ID           string                                `db:"id" json:"id"`
	Version      int                                   `db:"version" json:"version"`
	ProductRules map[types.ProductType]*ProductRuleSet `db:"product_rules,jsonb" json:"product_rules"`
	UpdatedBy    string                                `db:"updated_by" json:"updated_by"`
	UpdatedAt    time.Time                             `db:"updated_at" json:"updated_at"`
}

// RuleSetFor returns the rule set for a product line, or nil when the
// config does not carry one. A validated config carries all products.
func (c *PricingConfig) RuleSetFor(product types.ProductType) *ProductRuleSet {
	if c == nil || c.ProductRules == nil {
		return nil
	}
	return c.ProductRules[product]
}

// Clone returns a deep copy. Stores hand out clones so callers can
// never mutate a published version in place.
func (c *PricingConfig) Clone() *PricingConfig {
	if c == nil {
		return nil
	}
	cp := &PricingConfig{
		ID:        c.ID,
		Version:   c.Version,
		UpdatedBy: c.UpdatedBy,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ProductRules != nil {
		cp.ProductRules = make(map[types.ProductType]*ProductRuleSet, len(c.ProductRules))
		for product, rules := range c.ProductRules {
			cp.ProductRules[product] = rules.Clone()
		}
	}
	return cp
}
