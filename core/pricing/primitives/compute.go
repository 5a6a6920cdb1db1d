// Package primitives - Usage clamps and unit conversion
package primitives

import "github.com/shopspring/decimal"

var hoursPerMonth = decimal.NewFromInt(HoursPerMonth)

// EffectiveHours clamps on-demand hours to [0, HoursPerMonth].
func EffectiveHours(hours decimal.Decimal) decimal.Decimal {
	if hours.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(hours, hoursPerMonth)
}

// Monthly converts an hourly amount to a full month.
func Monthly(hourly decimal.Decimal) decimal.Decimal {
	return hourly.Mul(hoursPerMonth)
}

// ClampMin raises v to min. Numeric inputs below their floor are corrected, never rejected.
func ClampMin(v, min int64) int64 {
	if v < min {
		return min
	}
	return v
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(v, lo), hi)
}

// Blocks returns the number of whole blocks of blockSize needed to hold quantity.
func Blocks(quantity, blockSize int64) int64 {
	if quantity <= 0 || blockSize <= 0 {
		return 0
	}
	return (quantity + blockSize - 1) / blockSize
}

// Percentage derives a price as a fraction of a base price.
func Percentage(base, fraction decimal.Decimal) decimal.Decimal {
	return base.Mul(fraction)
}

// Round converts an amount to whole currency units, halves away from zero.
func Round(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}
