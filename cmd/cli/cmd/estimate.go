// Package cmd - estimate command
package cmd

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloud-quote/adapters/hcl"
	"cloud-quote/core/catalog"
	"cloud-quote/core/estimate"
	"cloud-quote/core/output"
	"cloud-quote/internal/config"
	"cloud-quote/internal/errors"
	"cloud-quote/internal/logging"
)

const defaultQuoteFile = "quote.hcl"

var (
	outputFormat string
	outputLocale string
	showDetails  bool
	catalogDir   string
	quoteVars    []string
	cycleMonths  int
	discount     float64
	strict       bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [quote-file]",
	Short: "Price the services in a quote file",
	Long: `Price every service block in an HCL quote file and total the result.

Billing terms come from the flags, then the file's billing block, then the
configuration. Blocks the catalog cannot price are reported and skipped.

Examples:
  cloud-quote estimate
  cloud-quote estimate ./quotes/shop.hcl
  cloud-quote estimate --format json --cycle 12 --discount 10 shop.hcl
  cloud-quote estimate --var cores=8 --var tier=enterprise shop.hcl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	estimateCmd.Flags().StringVar(&outputLocale, "locale", "", "number format locale (vi, en)")
	estimateCmd.Flags().BoolVarP(&showDetails, "details", "d", false, "show line item IDs")
	estimateCmd.Flags().StringVar(&catalogDir, "catalog", "", "directory of catalog JSON files (default is the built-in catalog)")
	estimateCmd.Flags().StringArrayVar(&quoteVars, "var", nil, "set a quote file variable (name=value), repeatable")
	estimateCmd.Flags().IntVar(&cycleMonths, "cycle", 0, "billing cycle in months (1, 3, 6, 12, 24, 36)")
	estimateCmd.Flags().Float64Var(&discount, "discount", -1, "discount percent")
	estimateCmd.Flags().BoolVar(&strict, "strict", false, "fail when any block cannot be priced")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	path := defaultQuoteFile
	if len(args) > 0 {
		path = args[0]
	}

	parser := hcl.NewParser()
	for _, assignment := range quoteVars {
		name, value, err := hcl.ParseVar(assignment)
		if err != nil {
			return err
		}
		parser.SetVariables(map[string]string{name: value})
	}
	file, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	c, err := loadCatalog(firstNonEmpty(catalogDir, cfg.Catalog.Dir))
	if err != nil {
		return err
	}

	terms := resolveTerms(cfg.Estimate, file.Billing)
	report, err := buildReport(c, file, terms)
	if err != nil {
		return err
	}
	if strict && len(report.Skipped) > 0 {
		return errors.Newf(errors.TypeInput, "%d of %d blocks could not be priced", len(report.Skipped), len(file.Blocks))
	}

	format := output.Format(firstNonEmpty(outputFormat, cfg.Output.Format))
	formatter, err := output.New(format, output.Options{
		Locale:  firstNonEmpty(outputLocale, cfg.Output.Locale),
		NoColor: cfg.Output.NoColor,
		Details: showDetails || cfg.Output.Details,
	})
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), report)
}

// billingTerms are the resolved cycle and discount for one run
type billingTerms struct {
	cycle    int
	discount decimal.Decimal
}

func resolveTerms(defaults config.EstimateConfig, billing *hcl.Billing) billingTerms {
	terms := billingTerms{
		cycle:    defaults.BillingCycle,
		discount: decimal.NewFromFloat(defaults.DiscountPercent),
	}
	if billing != nil {
		if billing.CycleMonths != nil {
			terms.cycle = *billing.CycleMonths
		}
		if billing.DiscountPercent != nil {
			terms.discount = decimal.NewFromFloat(*billing.DiscountPercent)
		}
	}
	if cycleMonths > 0 {
		terms.cycle = cycleMonths
	}
	if discount >= 0 {
		terms.discount = decimal.NewFromFloat(discount)
	}
	return terms
}

func buildReport(c *catalog.Catalog, file *hcl.File, terms billingTerms) (*output.Report, error) {
	ledger := estimate.NewLedger()
	if err := ledger.SetBillingCycle(terms.cycle); err != nil {
		return nil, err
	}
	ledger.SetDiscount(terms.discount)

	report := &output.Report{Source: file.Filename, GeneratedAt: time.Now().UTC()}
	for _, block := range file.Blocks {
		q := block.Request.Quote(c)
		if _, err := ledger.AddQuote(q); err != nil {
			logging.Debug("block skipped", logging.Block(block.Address()), zap.Error(err))
			report.Skipped = append(report.Skipped, output.SkippedQuote(block.Name, q))
		}
	}

	report.Items = ledger.Items()
	report.Totals = ledger.Totals()
	return report, nil
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		return catalog.Default()
	}
	return catalog.LoadDir(dir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
