package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-quote/core/estimate"
	"cloud-quote/core/quote"
	"cloud-quote/core/types"
	"cloud-quote/internal/errors"
)

func sampleReport() *Report {
	items := []types.LineItem{
		{ID: "a", Service: types.ServiceCloudVPS, Description: "Cloud VPS: 1 vCPU", UnitPrice: 1000, Quantity: 2},
		{ID: "b", Service: types.ServiceWAF, Description: "WAF | edge", UnitPrice: 500, Quantity: 1},
	}
	return &Report{
		Source:      "quote.hcl",
		Items:       items,
		Skipped:     []Skipped{SkippedQuote("cache", quote.Quote{Service: types.ServiceCDN, Unavailable: "catalog has no cdn pricing"})},
		Totals:      estimate.ComputeTotals(items, 3, decimal.NewFromInt(10)),
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	for _, format := range Formats {
		f, err := New(format, Options{})
		require.NoError(t, err)
		assert.Equal(t, format, f.Format())
	}

	f, err := New("", Options{})
	require.NoError(t, err)
	assert.Equal(t, FormatCLI, f.Format())

	_, err = New("html", Options{})
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestCLIFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, _ := New(FormatCLI, Options{Locale: "en", NoColor: true, Details: true})
	require.NoError(t, f.Render(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Estimate: quote.hcl")
	assert.Contains(t, out, "Cloud VPS: 1 vCPU")
	assert.Contains(t, out, "2,000 VND")
	assert.Contains(t, out, `cdn "cache" skipped: catalog has no cdn pricing`)
	assert.Contains(t, out, "Subtotal (3 months)")
	assert.Contains(t, out, "Discount (10%)")
	assert.Contains(t, out, "7,500 VND")
}

func TestCLIFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	f, _ := New(FormatCLI, Options{NoColor: true})
	require.NoError(t, f.Render(&buf, &Report{Totals: estimate.ComputeTotals(nil, 1, decimal.Zero)}))

	out := buf.String()
	assert.Contains(t, out, "no line items")
	assert.NotContains(t, out, "Discount")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, _ := New(FormatJSON, Options{})
	require.NoError(t, f.Render(&buf, sampleReport()))

	var decoded struct {
		Source string           `json:"source"`
		Items  []types.LineItem `json:"items"`
		Totals types.Totals     `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "quote.hcl", decoded.Source)
	assert.Len(t, decoded.Items, 2)
	assert.True(t, decoded.Totals.GrandTotal.Equal(decimal.NewFromInt(7500)))
	assert.Contains(t, buf.String(), `"grand_total": "7500"`)
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, _ := New(FormatMarkdown, Options{Locale: "en"})
	require.NoError(t, f.Render(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "# Cost Estimate")
	assert.Contains(t, out, "| 1 | cloud_vps | Cloud VPS: 1 vCPU | 1,000 VND | 2 | 2,000 VND |")
	assert.Contains(t, out, `WAF \| edge`)
	assert.Contains(t, out, "- `cdn.cache`: catalog has no cdn pricing")
	assert.Contains(t, out, "| **Grand total** | **7,500 VND** |")
}
