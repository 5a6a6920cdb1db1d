package output

import (
	"fmt"
	"io"

	"cloud-quote/core/ui"
)

// CLIFormatter renders a styled terminal table and summary box
type CLIFormatter struct {
	opts Options
}

// Format implements Formatter
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render implements Formatter
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	money := ui.NewMoney(f.opts.Locale)

	title := "Estimate"
	if report.Source != "" {
		title += ": " + report.Source
	}
	out.Header(title)

	if len(report.Items) == 0 {
		out.Warning("no line items")
	} else {
		headers := []string{"#", "Service", "Description", "Unit price", "Qty", "Monthly"}
		if f.opts.Details {
			headers = append(headers, "ID")
		}
		table := out.NewTable(headers...).AlignRight(0, 3, 4, 5)
		for i, item := range report.Items {
			row := []string{
				fmt.Sprint(i + 1),
				item.Service.String(),
				item.Description,
				money.FormatInt(item.UnitPrice),
				money.Number(item.Quantity),
				money.Format(item.Monthly()),
			}
			if f.opts.Details {
				row = append(row, item.ID)
			}
			table.AddRow(row...)
		}
		table.Render()
	}

	if len(report.Skipped) > 0 {
		out.Println("")
		for _, s := range report.Skipped {
			out.Warning("%s %q skipped: %s", s.Service, s.Name, s.Reason)
		}
	}

	t := report.Totals
	out.Println("")
	lines := []ui.SummaryLine{
		{Label: "Monthly", Amount: money.Format(t.Monthly)},
		{Label: fmt.Sprintf("Subtotal (%d months)", t.CycleMonths), Amount: money.Format(t.Subtotal)},
		{Label: "VAT (10%)", Amount: money.Format(t.VAT)},
	}
	if t.DiscountAmount.IsPositive() {
		lines = append(lines, ui.SummaryLine{
			Label:  fmt.Sprintf("Discount (%s%%)", t.DiscountPercent),
			Amount: "-" + money.Format(t.DiscountAmount),
		})
	}
	lines = append(lines, ui.SummaryLine{Label: "Grand total", Amount: money.Format(t.GrandTotal), Total: true})
	out.Summary("Totals", lines)
	return nil
}
