// Package primitives - Tiered and table-driven pricing
package primitives

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Cost evaluates the schedule for quantity. Non-positive quantities cost nothing.
func (b Breakpoint) Cost(quantity decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}
	threshold := decimal.Max(b.Threshold, decimal.Zero)
	below := decimal.Min(quantity, threshold)
	above := decimal.Max(quantity.Sub(threshold), decimal.Zero)
	return below.Mul(b.Below).Add(above.Mul(b.Above))
}

// CostInt is Cost for whole-unit quantities such as GB.
func (b Breakpoint) CostInt(quantity int64) decimal.Decimal {
	return b.Cost(decimal.NewFromInt(quantity))
}

// BandRate returns the rate of the first band that holds quantity.
func BandRate(quantity decimal.Decimal, tiers []PricingTier) (decimal.Decimal, bool) {
	tier, ok := lo.Find(tiers, func(t PricingTier) bool {
		return t.UpTo == nil || quantity.LessThanOrEqual(*t.UpTo)
	})
	if !ok {
		return decimal.Zero, false
	}
	return tier.UnitRate, true
}

// Lookup returns the entry whose key equals units. There is no interpolation:
// a value missing from the table has no price.
func Lookup[T any](entries []T, key func(T) int64, units int64) (T, bool) {
	return lo.Find(entries, func(e T) bool {
		return key(e) == units
	})
}

// First returns the first entry of a table, used when a selection must be reset.
func First[T any](entries []T) (T, bool) {
	if len(entries) == 0 {
		var zero T
		return zero, false
	}
	return entries[0], true
}
