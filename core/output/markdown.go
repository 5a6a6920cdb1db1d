package output

import (
	"fmt"
	"io"
	"strings"

	"cloud-quote/core/ui"
)

// MarkdownFormatter renders a report as a markdown document
type MarkdownFormatter struct {
	opts Options
}

// Format implements Formatter
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render implements Formatter
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	money := ui.NewMoney(f.opts.Locale)
	var b strings.Builder

	b.WriteString("# Cost Estimate\n\n")
	if report.Source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", report.Source)
	}

	if len(report.Items) > 0 {
		b.WriteString("| # | Service | Description | Unit price | Qty | Monthly |\n")
		b.WriteString("|---|---------|-------------|-----------:|----:|--------:|\n")
		for i, item := range report.Items {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %d | %s |\n",
				i+1, item.Service, escapeCell(item.Description),
				money.FormatInt(item.UnitPrice), item.Quantity, money.Format(item.Monthly()))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("_No line items._\n\n")
	}

	if len(report.Skipped) > 0 {
		b.WriteString("## Skipped\n\n")
		for _, s := range report.Skipped {
			fmt.Fprintf(&b, "- `%s.%s`: %s\n", s.Service, s.Name, s.Reason)
		}
		b.WriteString("\n")
	}

	t := report.Totals
	b.WriteString("## Totals\n\n")
	b.WriteString("| | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Monthly | %s |\n", money.Format(t.Monthly))
	fmt.Fprintf(&b, "| Subtotal (%d months) | %s |\n", t.CycleMonths, money.Format(t.Subtotal))
	fmt.Fprintf(&b, "| VAT (10%%) | %s |\n", money.Format(t.VAT))
	if t.DiscountAmount.IsPositive() {
		fmt.Fprintf(&b, "| Discount (%s%%) | -%s |\n", t.DiscountPercent, money.Format(t.DiscountAmount))
	}
	fmt.Fprintf(&b, "| **Grand total** | **%s** |\n", money.Format(t.GrandTotal))

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
