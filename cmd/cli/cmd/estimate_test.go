package cmd

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-quote/adapters/hcl"
	"cloud-quote/core/catalog"
	"cloud-quote/core/types"
	"cloud-quote/core/ui"
	"cloud-quote/internal/config"
	"cloud-quote/internal/errors"
)

const quoteFile = `
billing {
  cycle_months     = 3
  discount_percent = 10
}

wan_ip "edge" {
  quantity = 2
}

backup_schedule "nightly" {}

kubernetes "free" {}
`

func TestBuildReport(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	file, err := hcl.NewParser().Parse([]byte(quoteFile), "quote.hcl")
	require.NoError(t, err)

	terms := resolveTerms(config.Default().Estimate, file.Billing)
	report, err := buildReport(c, file, terms)
	require.NoError(t, err)

	require.Len(t, report.Items, 2)
	assert.Equal(t, types.ServiceWanIP, report.Items[0].Service)
	assert.Equal(t, int64(2), report.Items[0].Quantity)
	assert.Equal(t, types.ServiceBackupSchedule, report.Items[1].Service)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "free", report.Skipped[0].Name)
	assert.Equal(t, "no price", report.Skipped[0].Reason)

	assert.Equal(t, 3, report.Totals.CycleMonths)
	assert.True(t, decimal.NewFromInt(750000).Equal(report.Totals.Subtotal))
	assert.True(t, decimal.NewFromInt(75000).Equal(report.Totals.VAT))
	assert.True(t, decimal.NewFromInt(75000).Equal(report.Totals.DiscountAmount))
	assert.True(t, decimal.NewFromInt(750000).Equal(report.Totals.GrandTotal))
}

func TestBuildReportInvalidCycle(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	_, err = buildReport(c, &hcl.File{}, billingTerms{cycle: 5})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestResolveTerms(t *testing.T) {
	defaults := config.EstimateConfig{BillingCycle: 6, DiscountPercent: 5}
	cycle, pct := 12, 20.0

	tests := []struct {
		name         string
		billing      *hcl.Billing
		flagCycle    int
		flagDiscount float64
		wantCycle    int
		wantDiscount int64
	}{
		{"config only", nil, 0, -1, 6, 5},
		{"file overrides config", &hcl.Billing{CycleMonths: &cycle, DiscountPercent: &pct}, 0, -1, 12, 20},
		{"flags override file", &hcl.Billing{CycleMonths: &cycle, DiscountPercent: &pct}, 24, 0, 24, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prevCycle, prevDiscount := cycleMonths, discount
			defer func() { cycleMonths, discount = prevCycle, prevDiscount }()
			cycleMonths, discount = tt.flagCycle, tt.flagDiscount

			terms := resolveTerms(defaults, tt.billing)
			assert.Equal(t, tt.wantCycle, terms.cycle)
			assert.True(t, decimal.NewFromInt(tt.wantDiscount).Equal(terms.discount))
		})
	}
}

func TestOptionRows(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	money := ui.NewMoney(ui.LocaleEnglish)

	for _, svc := range c.Services() {
		assert.NotEmpty(t, optionRows(c, svc, money), svc.String())
	}

	rows := optionRows(c, types.ServiceBackupSchedule, money)
	require.Len(t, rows, 1)
	assert.Equal(t, "50,000 VND/month", rows[0][2])
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Empty(t, firstNonEmpty("", ""))
}
