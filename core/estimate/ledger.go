// Package estimate holds the running list of priced line items and the billing
// terms they are totalled under.
package estimate

import (
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/quote"
	"cloud-quote/core/types"
	"cloud-quote/internal/errors"
	"cloud-quote/internal/logging"
)

// Ledger is an ordered list of line items with billing terms.
// A Ledger is owned by a single caller and is not safe for concurrent use.
type Ledger struct {
	items           []types.LineItem
	cycleMonths     int
	discountPercent decimal.Decimal
}

// NewLedger creates an empty ledger billed monthly with no discount
func NewLedger() *Ledger {
	return &Ledger{
		cycleMonths:     DefaultBillingCycle,
		discountPercent: decimal.Zero,
	}
}

// Add appends an item and returns it with its assigned ID. Identical items are
// kept as separate entries.
func (l *Ledger) Add(item types.LineItem) types.LineItem {
	item.ID = newID()
	item.Quantity = primitives.ClampMin(item.Quantity, 1)
	l.items = append(l.items, item)

	logging.Debug("line item added",
		logging.Item(item.ID),
		logging.Service(item.Service.String()),
		logging.Money("unit_price", item.UnitPrice),
		zap.Int64("quantity", item.Quantity),
	)
	return item
}

// AddAll appends each item independently, in order
func (l *Ledger) AddAll(items []types.LineItem) []types.LineItem {
	added := make([]types.LineItem, 0, len(items))
	for _, item := range items {
		added = append(added, l.Add(item))
	}
	return added
}

// AddQuote appends a priced quote. Quotes without a price are rejected.
func (l *Ledger) AddQuote(q quote.Quote) (types.LineItem, error) {
	if !q.Addable() {
		reason := q.Unavailable
		if reason == "" {
			reason = "quote has no price"
		}
		return types.LineItem{}, errors.Input(reason).WithContext("service", q.Service.String())
	}
	return l.Add(q.LineItem()), nil
}

// Remove deletes the item with the given ID. Unknown IDs are ignored.
func (l *Ledger) Remove(id string) bool {
	idx := slices.IndexFunc(l.items, func(item types.LineItem) bool {
		return item.ID == id
	})
	if idx < 0 {
		return false
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	logging.Debug("line item removed", logging.Item(id))
	return true
}

// Clear removes every item. Billing terms are kept.
func (l *Ledger) Clear() {
	l.items = nil
	logging.Debug("ledger cleared")
}

// Items returns a copy of the items in insertion order
func (l *Ledger) Items() []types.LineItem {
	return slices.Clone(l.items)
}

// Len returns the number of items
func (l *Ledger) Len() int {
	return len(l.items)
}

// Get returns the item with the given ID
func (l *Ledger) Get(id string) (types.LineItem, bool) {
	return lo.Find(l.items, func(item types.LineItem) bool {
		return item.ID == id
	})
}

// BillingCycle returns the billing cycle in months
func (l *Ledger) BillingCycle() int {
	return l.cycleMonths
}

// DiscountPercent returns the current discount
func (l *Ledger) DiscountPercent() decimal.Decimal {
	return l.discountPercent
}

// SetBillingCycle changes the billing cycle. A monthly cycle carries no
// discount, so choosing it resets the discount to zero.
func (l *Ledger) SetBillingCycle(months int) error {
	if !lo.Contains(BillingCycles, months) {
		return errors.Newf(errors.TypeInput, "unsupported billing cycle: %d months", months).
			WithContext("allowed", BillingCycles)
	}
	l.cycleMonths = months
	if months == 1 {
		l.discountPercent = decimal.Zero
	}
	logging.Debug("billing cycle set", zap.Int("months", months))
	return nil
}

// SetDiscount sets the discount percentage, clamped to [0, MaxDiscountPercent].
// It has no effect on a monthly cycle.
func (l *Ledger) SetDiscount(percent decimal.Decimal) {
	if l.cycleMonths == 1 {
		l.discountPercent = decimal.Zero
		return
	}
	l.discountPercent = primitives.Clamp(percent, decimal.Zero, decimal.NewFromInt(MaxDiscountPercent))
	logging.Debug("discount set", zap.String("percent", l.discountPercent.String()))
}

// Totals computes the totals for the current items and billing terms
func (l *Ledger) Totals() types.Totals {
	return ComputeTotals(l.items, l.cycleMonths, l.discountPercent)
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
