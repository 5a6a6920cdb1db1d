package ui

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported display locales
const (
	LocaleVietnamese = "vi"
	LocaleEnglish    = "en"
)

// Money formats whole currency amounts for a locale: "1.320.000 ₫" in
// Vietnamese, "1,320,000 VND" in English.
type Money struct {
	printer *message.Printer
	symbol  string
}

// NewMoney returns a formatter for locale. Unknown locales fall back to Vietnamese.
func NewMoney(locale string) Money {
	if locale == LocaleEnglish {
		return Money{printer: message.NewPrinter(language.English), symbol: "VND"}
	}
	return Money{printer: message.NewPrinter(language.Vietnamese), symbol: "₫"}
}

// Format renders amount rounded to whole units
func (m Money) Format(amount decimal.Decimal) string {
	return m.printer.Sprintf("%d %s", amount.Round(0).IntPart(), m.symbol)
}

// FormatInt renders an integer amount
func (m Money) FormatInt(amount int64) string {
	return m.printer.Sprintf("%d %s", amount, m.symbol)
}

// Number renders a plain grouped integer
func (m Money) Number(n int64) string {
	return m.printer.Sprintf("%d", n)
}

// Rate renders a unit rate. Fractional rates keep two decimals.
func (m Money) Rate(rate decimal.Decimal) string {
	if rate.IsInteger() {
		return m.Format(rate)
	}
	return m.printer.Sprintf("%.2f %s", rate.InexactFloat64(), m.symbol)
}
