package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		locale string
		amount string
		want   string
	}{
		{LocaleEnglish, "1320000", "1,320,000 VND"},
		{LocaleEnglish, "999.5", "1,000 VND"},
		{LocaleEnglish, "0", "0 VND"},
		{LocaleVietnamese, "1320000", "1.320.000 ₫"},
		{"fr", "2500", "2.500 ₫"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+" "+tt.amount, func(t *testing.T) {
			m := NewMoney(tt.locale)
			assert.Equal(t, tt.want, m.Format(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestMoneyFormatInt(t *testing.T) {
	m := NewMoney(LocaleEnglish)
	assert.Equal(t, "7,500 VND", m.FormatInt(7500))
	assert.Equal(t, "12,000", m.Number(12000))
}

func TestMoneyRate(t *testing.T) {
	m := NewMoney(LocaleEnglish)
	assert.Equal(t, "2.50 VND", m.Rate(decimal.RequireFromString("2.5")))
	assert.Equal(t, "1,000 VND", m.Rate(decimal.NewFromInt(1000)))
}

func TestWriterStatusLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Success("added %d items", 2)
	w.Warning("skipped %s", "cdn")
	w.Error("failed")
	w.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "✓ added 2 items")
	assert.Contains(t, out, "⚠ skipped cdn")
	assert.Contains(t, out, "✗ failed")
	assert.NotContains(t, out, "hidden")

	buf.Reset()
	w.SetVerbosity(0)
	w.Info("quiet")
	assert.Empty(t, buf.String())
}

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	table := w.NewTable("Service", "Total").AlignRight(1)
	table.AddRow("cdn", "100,000 VND")
	table.AddRow("cloud_server", "5 VND")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Service      │ "))
	assert.Equal(t, "cdn          │ 100,000 VND", lines[2])
	assert.Equal(t, "cloud_server │       5 VND", lines[3])
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Summary("Totals", []SummaryLine{
		{Label: "Subtotal", Amount: "7,500 VND"},
		{Label: "Grand total", Amount: "7,500 VND", Total: true},
	})

	out := buf.String()
	assert.Contains(t, out, "Totals")
	assert.Contains(t, out, "Subtotal     7,500 VND")
	assert.Contains(t, out, "Grand total  7,500 VND")
	assert.Contains(t, out, "╭")
}
