// Package primitives - Centralized pricing math
// Quote functions declare which rates apply; every calculation flows through these primitives.
package primitives

import "github.com/shopspring/decimal"

// HoursPerMonth caps on-demand usage and converts hourly rates to monthly ones.
const HoursPerMonth = 730

// Breakpoint is a two-rate schedule: Below applies to [0, Threshold], Above to the excess.
// A flat rate is a Breakpoint with zero Threshold.
type Breakpoint struct {
	Threshold decimal.Decimal
	Below     decimal.Decimal
	Above     decimal.Decimal
}

// Flat returns a single-rate schedule
func Flat(rate decimal.Decimal) Breakpoint {
	return Breakpoint{Above: rate}
}

// PricingTier is a volume band. The whole quantity is billed at the rate of the
// first band it fits in.
type PricingTier struct {
	UpTo     *decimal.Decimal // nil = unlimited
	UnitRate decimal.Decimal
}
