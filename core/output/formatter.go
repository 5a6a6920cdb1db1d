// Package output renders an estimate for people and machines.
package output

import (
	"io"
	"time"

	"cloud-quote/core/quote"
	"cloud-quote/core/types"
	"cloud-quote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format
var Formats = []Format{FormatCLI, FormatJSON, FormatMarkdown}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report to w
	Render(w io.Writer, report *Report) error
}

// Report is a rendered estimate
type Report struct {
	// Source names the quote file the estimate came from
	Source string `json:"source,omitempty"`

	// Items are the line items in insertion order
	Items []types.LineItem `json:"items"`

	// Skipped are quotes that could not be added
	Skipped []Skipped `json:"skipped,omitempty"`

	// Totals are computed over Items
	Totals types.Totals `json:"totals"`

	// GeneratedAt is when the report was produced
	GeneratedAt time.Time `json:"generated_at"`
}

// Skipped is a configuration that produced no line item
type Skipped struct {
	Name    string        `json:"name"`
	Service types.Service `json:"service"`
	Reason  string        `json:"reason"`
}

// SkippedQuote records an unaddable quote under the block name it came from
func SkippedQuote(name string, q quote.Quote) Skipped {
	reason := q.Unavailable
	if reason == "" {
		reason = "no price"
	}
	return Skipped{Name: name, Service: q.Service, Reason: reason}
}

// Options control human-readable rendering
type Options struct {
	Locale  string
	NoColor bool

	// Details adds item IDs to tables
	Details bool
}

// New returns the formatter for format
func New(format Format, opts Options) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &CLIFormatter{opts: opts}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{opts: opts}, nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown output format: %s", format).
			WithContext("supported", Formats)
	}
}
