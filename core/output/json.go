package output

import (
	"encoding/json"
	"io"

	"cloud-quote/internal/errors"
)

// JSONFormatter writes the report as JSON. Decimal amounts are encoded as strings.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render implements Formatter
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	if err := enc.Encode(report); err != nil {
		return errors.Internal("failed to encode report", err)
	}
	return nil
}
