// Package types - Estimate line items and totals
package types

import "github.com/shopspring/decimal"

// LineItem is one priced entry in an estimate. It is never mutated after creation.
type LineItem struct {
	// ID uniquely identifies the item within the estimate
	ID string `json:"id"`

	// Service is the service this item prices
	Service Service `json:"service"`

	// Description is a human readable summary of the configuration
	Description string `json:"description"`

	// UnitPrice is the monthly price of a single unit, in whole currency units
	UnitPrice int64 `json:"unit_price"`

	// Quantity is the number of identical units
	Quantity int64 `json:"quantity"`
}

// Monthly returns UnitPrice × Quantity
func (l LineItem) Monthly() decimal.Decimal {
	return decimal.NewFromInt(l.UnitPrice).Mul(decimal.NewFromInt(l.Quantity))
}

// Totals is the summary of an estimate over a billing cycle
type Totals struct {
	// CycleMonths is the billing cycle the subtotal covers
	CycleMonths int `json:"cycle_months"`

	// DiscountPercent is the discount applied to the subtotal
	DiscountPercent decimal.Decimal `json:"discount_percent"`

	// Monthly is the sum of all line items for one month
	Monthly decimal.Decimal `json:"monthly"`

	// Subtotal is Monthly × CycleMonths
	Subtotal decimal.Decimal `json:"subtotal"`

	// VAT is charged on the undiscounted subtotal
	VAT decimal.Decimal `json:"vat"`

	// DiscountAmount is Subtotal × DiscountPercent / 100
	DiscountAmount decimal.Decimal `json:"discount_amount"`

	// GrandTotal is Subtotal + VAT - DiscountAmount
	GrandTotal decimal.Decimal `json:"grand_total"`

	// Currency is the currency of every amount
	Currency Currency `json:"currency"`
}
