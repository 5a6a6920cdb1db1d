package estimate

import (
	"github.com/shopspring/decimal"

	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/types"
)

// VATRate is charged on the undiscounted subtotal
var VATRate = decimal.RequireFromString("0.10")

// BillingCycles are the billing cycles an estimate may be quoted for, in months
var BillingCycles = []int{1, 3, 6, 12, 24, 36}

const (
	// DefaultBillingCycle is a single month
	DefaultBillingCycle = 1

	// MaxDiscountPercent caps the discount a quote may carry
	MaxDiscountPercent = 90
)

// ComputeTotals sums items over a billing cycle. It does not validate the cycle
// or the discount; Ledger does that before calling it.
//
//	subtotal = Σ(unitPrice × quantity) × cycle
//	vat      = subtotal × VATRate
//	discount = subtotal × discountPercent / 100
//	grand    = subtotal + vat - discount
//
// VAT and discount are rounded to whole currency units.
func ComputeTotals(items []types.LineItem, cycleMonths int, discountPercent decimal.Decimal) types.Totals {
	monthly := decimal.Zero
	for _, item := range items {
		monthly = monthly.Add(item.Monthly())
	}

	subtotal := monthly.Mul(decimal.NewFromInt(int64(cycleMonths)))
	vat := decimal.NewFromInt(primitives.Round(subtotal.Mul(VATRate)))
	discount := decimal.NewFromInt(primitives.Round(primitives.Percentage(subtotal, discountPercent.Div(decimal.NewFromInt(100)))))

	return types.Totals{
		CycleMonths:     cycleMonths,
		DiscountPercent: discountPercent,
		Monthly:         monthly,
		Subtotal:        subtotal,
		VAT:             vat,
		DiscountAmount:  discount,
		GrandTotal:      subtotal.Add(vat).Sub(discount),
		Currency:        types.CurrencyVND,
	}
}
