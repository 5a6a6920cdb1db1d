// Package hcl reads quote files: HCL documents with one labelled block per
// configured service and an optional billing block.
package hcl

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/samber/lo"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"go.uber.org/zap"

	"cloud-quote/core/quote"
	"cloud-quote/core/types"
	"cloud-quote/internal/errors"
	"cloud-quote/internal/logging"
)

const billingBlock = "billing"

// File is a decoded quote file
type File struct {
	Filename string

	// Billing holds the billing terms, nil when the file has no billing block
	Billing *Billing

	// Blocks are the configured services in file order
	Blocks []Block
}

// Billing is the billing block of a quote file
type Billing struct {
	CycleMonths     *int     `hcl:"cycle_months,optional"`
	DiscountPercent *float64 `hcl:"discount_percent,optional"`
}

// Block is one configured service
type Block struct {
	Name    string
	Service types.Service
	Request quote.Request
	Line    int
}

// Address returns "<service>.<name>"
func (b Block) Address() string {
	return b.Service.String() + "." + b.Name
}

// Parser decodes quote files
type Parser struct {
	parser *hclparse.Parser
	vars   map[string]cty.Value
}

// NewParser creates a new quote file parser
func NewParser() *Parser {
	return &Parser{
		parser: hclparse.NewParser(),
		vars:   make(map[string]cty.Value),
	}
}

// SetVariable makes value available to expressions as var.<name>
func (p *Parser) SetVariable(name string, value cty.Value) {
	p.vars[name] = value
}

// SetVariables adds string variables, typically from the command line.
// Strings convert to numbers or bools where an attribute needs them.
func (p *Parser) SetVariables(vars map[string]string) {
	for name, value := range vars {
		p.vars[name] = cty.StringVal(value)
	}
}

// ParseVar splits a "name=value" assignment
func ParseVar(assignment string) (string, string, error) {
	name, value, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", errors.Newf(errors.TypeInput, "invalid variable %q, expected name=value", assignment)
	}
	return name, value, nil
}

// ParseFile reads and decodes a quote file from disk
func (p *Parser) ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("quote file", path)
		}
		return nil, errors.Wrapf(errors.TypeInput, err, "failed to read quote file %s", path)
	}
	return p.Parse(src, path)
}

// Parse decodes quote file source. Every error diagnostic is reported, not
// just the first.
func (p *Parser) Parse(src []byte, filename string) (*File, error) {
	hclFile, diags := p.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	content, diags := hclFile.Body.Content(schema())
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	ctx := p.evalContext()
	file := &File{Filename: filename}
	seen := make(map[string]hcl.Range)

	for _, block := range content.Blocks {
		if block.Type == billingBlock {
			if file.Billing != nil {
				diags = diags.Append(&hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate billing block",
					Detail:   "A quote file may contain at most one billing block.",
					Subject:  block.DefRange.Ptr(),
				})
				continue
			}
			billing := &Billing{}
			diags = append(diags, gohcl.DecodeBody(block.Body, ctx, billing)...)
			file.Billing = billing
			continue
		}

		svc := types.Service(block.Type)
		req, ok := quote.New(svc)
		if !ok {
			continue
		}
		name := block.Labels[0]
		addr := svc.String() + "." + name
		if prev, dup := seen[addr]; dup {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate service block",
				Detail:   fmt.Sprintf("%s was already declared at %s.", addr, prev),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		seen[addr] = block.DefRange

		diags = append(diags, gohcl.DecodeBody(block.Body, ctx, req)...)
		file.Blocks = append(file.Blocks, Block{
			Name:    name,
			Service: svc,
			Request: req,
			Line:    block.DefRange.Start.Line,
		})
	}

	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	logging.Debug("quote file parsed",
		zap.String("file", filename),
		zap.Int("blocks", len(file.Blocks)),
		zap.Bool("billing", file.Billing != nil),
	)
	return file, nil
}

func schema() *hcl.BodySchema {
	blocks := []hcl.BlockHeaderSchema{{Type: billingBlock}}
	for _, svc := range types.AllServices {
		blocks = append(blocks, hcl.BlockHeaderSchema{Type: svc.String(), LabelNames: []string{"name"}})
	}
	return &hcl.BodySchema{Blocks: blocks}
}

func (p *Parser) evalContext() *hcl.EvalContext {
	vars := cty.EmptyObjectVal
	if len(p.vars) > 0 {
		vars = cty.ObjectVal(p.vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": vars},
		Functions: map[string]function.Function{
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
			"ceil":  stdlib.CeilFunc,
			"floor": stdlib.FloorFunc,
			"upper": stdlib.UpperFunc,
			"lower": stdlib.LowerFunc,
		},
	}
}

// Diagnostic is a single problem found in a quote file
type Diagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Diagnostics extracts the error diagnostics carried by a parse error
func Diagnostics(err error) []Diagnostic {
	e, ok := errors.As(err)
	if !ok || e.Context == nil {
		return nil
	}
	d, _ := e.Context["diagnostics"].([]Diagnostic)
	return d
}

func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	errs := lo.Filter(diags, func(d *hcl.Diagnostic, _ int) bool {
		return d.Severity == hcl.DiagError
	})
	list := lo.Map(errs, func(d *hcl.Diagnostic, _ int) Diagnostic {
		out := Diagnostic{Message: d.Summary}
		if d.Detail != "" {
			out.Message += ": " + d.Detail
		}
		if d.Subject != nil {
			out.Line = d.Subject.Start.Line
			out.Column = d.Subject.Start.Column
		}
		return out
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].Line < list[j].Line })

	return errors.Parsing(fmt.Sprintf("invalid quote file %s", filename), diags).
		WithContext("file", filename).
		WithContext("diagnostics", list)
}
