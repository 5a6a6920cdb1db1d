// Package ui - Terminal output
// Styled headers, status lines, tables and the estimate summary box.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header    lipgloss.Style
	subHeader lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	err       lipgloss.Style
	info      lipgloss.Style
	dim       lipgloss.Style
	bold      lipgloss.Style
	total     lipgloss.Style
	box       lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			header: plain, subHeader: plain, success: plain, warning: plain, err: plain,
			info: plain, dim: plain, bold: plain, total: plain,
			box: plain.Border(lipgloss.RoundedBorder()).Padding(0, 2),
		}
	}
	return styles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		subHeader: lipgloss.NewStyle().Bold(true),
		success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		err:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		info:      lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		dim:       lipgloss.NewStyle().Faint(true),
		bold:      lipgloss.NewStyle().Bold(true),
		total:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 2),
	}
}

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	styles    styles
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		styles:    newStyles(noColor),
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes formatted text with a newline
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.styles.header.Render("━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.styles.subHeader.Render("▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...any) {
	w.Println("%s%s", w.styles.success.Render("✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...any) {
	w.Println("%s%s", w.styles.warning.Render("⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...any) {
	w.Println("%s%s", w.styles.err.Render("✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...any) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.styles.info.Render("ℹ "), fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...any) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.styles.dim.Render("  "+fmt.Sprintf(format, args...)))
}

// Alignment of a table column
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	align   []Alignment
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		align:   make([]Alignment, len(headers)),
		widths:  widths,
	}
}

// AlignRight right-aligns the given columns
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.align) {
			t.align[c] = AlignRight
		}
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		t.widths[i] = max(t.widths[i], lipgloss.Width(row[i]))
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.styles.bold.Render(t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, width := range t.widths {
		sep[i] = strings.Repeat("─", width)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		pad := strings.Repeat(" ", t.widths[i]-lipgloss.Width(cell))
		if t.align[i] == AlignRight {
			out[i] = pad + cell
		} else {
			out[i] = cell + pad
		}
	}
	return strings.Join(out, " │ ")
}

// SummaryLine is one labelled amount in a summary box
type SummaryLine struct {
	Label  string
	Amount string
	Total  bool
}

// Summary renders labelled amounts in a bordered box
func (w *Writer) Summary(title string, lines []SummaryLine) {
	labelWidth, amountWidth := 0, 0
	for _, l := range lines {
		labelWidth = max(labelWidth, lipgloss.Width(l.Label))
		amountWidth = max(amountWidth, lipgloss.Width(l.Amount))
	}

	rows := []string{w.styles.subHeader.Render(title), ""}
	for _, l := range lines {
		text := fmt.Sprintf("%-*s  %*s", labelWidth, l.Label, amountWidth, l.Amount)
		if l.Total {
			text = w.styles.total.Render(text)
		}
		rows = append(rows, text)
	}
	w.Println("%s", w.styles.box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
