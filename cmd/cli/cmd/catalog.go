// Package cmd - catalog commands
package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"cloud-quote/core/catalog"
	"cloud-quote/core/types"
	"cloud-quote/core/ui"
	"cloud-quote/internal/config"
	"cloud-quote/internal/errors"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [service]",
	Short: "Inspect the pricing catalog",
	Long: `List the services the pricing catalog can price, or the options one
service offers.

Examples:
  cloud-quote catalog
  cloud-quote catalog kubernetes
  cloud-quote catalog --catalog ./pricing database
  cloud-quote catalog export ./pricing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the built-in catalog as JSON files",
	Long: `Write the built-in catalog to a directory, one JSON file per service.
Edit the files and pass the directory with --catalog to price against them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := catalog.ExportDefault(args[0])
		if err != nil {
			return err
		}
		out := ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor)
		out.Success("wrote %d catalog files to %s", len(written), args[0])
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Load and validate a catalog directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.LoadDir(args[0])
		if err != nil {
			return err
		}
		out := ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor)
		out.Success("catalog is valid: %d of %d services priced", len(c.Services()), len(types.AllServices))
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogDir, "catalog", "", "directory of catalog JSON files (default is the built-in catalog)")
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	c, err := loadCatalog(firstNonEmpty(catalogDir, cfg.Catalog.Dir))
	if err != nil {
		return err
	}
	out := ui.NewWriter(cmd.OutOrStdout(), cfg.Output.NoColor)
	money := ui.NewMoney(cfg.Output.Locale)

	if len(args) == 0 {
		out.Header("Services")
		table := out.NewTable("Service", "Priced")
		for _, svc := range types.AllServices {
			table.AddRow(svc.String(), lo.Ternary(c.Has(svc), "yes", "no"))
		}
		table.Render()
		return nil
	}

	svc := types.Service(args[0])
	if !svc.IsValid() {
		return errors.NotFound("service", args[0]).WithContext("services", types.AllServices)
	}
	if !c.Has(svc) {
		out.Warning("the catalog has no %s pricing", svc)
		return nil
	}

	out.Header(svc.String())
	table := out.NewTable("Option", "Details", "Price").AlignRight(2)
	for _, row := range optionRows(c, svc, money) {
		table.AddRow(row[:]...)
	}
	table.Render()
	return nil
}

// optionRows lists what a service offers as option, details, price
func optionRows(c *catalog.Catalog, svc types.Service, money ui.Money) [][3]string {
	var rows [][3]string
	add := func(option, details, price string) {
		rows = append(rows, [3]string{option, details, price})
	}
	perMonth := func(d decimal.Decimal) string { return money.Format(d) + "/month" }

	switch svc {
	case types.ServiceCloudServer:
		for _, chip := range c.CloudServer.Chips {
			add(string(chip.Name), "tiers: "+joinNames(chip.Tiers), lo.Ternary(chip.Subscription.IsLinear(), "per unit", "per table"))
		}
	case types.ServiceBlockStorage:
		for _, tier := range c.BlockStorage.Tiers {
			add(string(tier.Name), "disks: "+joinNames(tier.Subscription.Types()), "")
		}
	case types.ServiceSnapshot:
		pct := c.Snapshot.CostPercentageOfBlockStorage.Mul(decimal.NewFromInt(100))
		add("snapshot", fmt.Sprintf("%s%% of the block storage volume", pct), "")
	case types.ServiceDatabase:
		for _, tier := range c.Database.Tiers {
			add(string(tier.Name), fmt.Sprintf("vCPU %v, RAM GB %v", catalog.Units(tier.CPU), catalog.Units(tier.RAM)), "")
		}
	case types.ServiceSimpleStorage:
		for _, class := range c.SimpleStorage.StorageClasses() {
			for _, row := range c.SimpleStorage.Subscription[class] {
				add(string(class), fmt.Sprintf("%d GB package", row.Units), perMonth(row.Price))
			}
		}
	case types.ServiceLoadBalancer:
		for _, p := range c.LoadBalancer.Packages {
			add(p.Name, fmt.Sprintf("%d connections, %d TB", p.Connections, p.FreeDataTB), perMonth(p.Price))
		}
	case types.ServiceKubernetes:
		for _, plan := range c.Kubernetes.Plans {
			for _, p := range plan.Packages {
				add(p.Name, "plan "+plan.Name, perMonth(p.Price))
			}
		}
	case types.ServiceKafka:
		for _, tier := range c.Kafka.Tiers {
			add(string(tier), "per vCPU / per GB RAM", money.Rate(c.Kafka.CPU[tier])+" / "+money.Rate(c.Kafka.RAM[tier]))
		}
	case types.ServiceCallCenter:
		for _, p := range c.CallCenter.Packages {
			add(p.Name, p.Details, perMonth(p.Price))
		}
	case types.ServiceBusinessEmail:
		for _, p := range c.BusinessEmail.Packages {
			add(fmt.Sprint(p.ID), fmt.Sprintf("%d GB, %d emails/day", p.StorageGB, p.EmailsPerDay), perMonth(p.Price))
		}
	case types.ServiceEmailTransaction:
		add("shared", "per email", money.Rate(c.Email.SharedPricePerEmail))
		for _, p := range c.Email.Dedicated {
			add(p.Name, fmt.Sprintf("%d emails/day", p.EmailsPerDay), perMonth(p.Price))
		}
	case types.ServiceLMS:
		for _, p := range c.LMS.Packages {
			add(p.Name, fmt.Sprintf("%d CCU, %d GB", p.CCU, p.FreeStorageGB), perMonth(p.Price))
		}
		add("storage", fmt.Sprintf("per %d GB block", c.LMS.AdditionalStorage.BlockSizeGB), perMonth(c.LMS.AdditionalStorage.PricePerBlock))
	case types.ServiceWanIP:
		add(string(types.BillingSubscription), "", perMonth(c.WanIP.Subscription))
		add(string(types.BillingOnDemand), "", perMonth(c.WanIP.OnDemand))
	case types.ServiceBackupSchedule:
		add("backup schedule", "", perMonth(c.BackupSchedule.Price))
	case types.ServiceCustomImage:
		add("custom image", "per GB", perMonth(c.CustomImage.PricePerGB))
	case types.ServiceCloudVPS:
		for _, p := range c.CloudVPS.Packages {
			add(fmt.Sprint(p.ID), fmt.Sprintf("%d vCPU, %d GB RAM, %d GB SSD", p.CPU, p.RAM, p.SSD), perMonth(p.Price))
		}
	case types.ServiceVPN:
		for _, p := range c.VPN.Packages {
			add(p.Name, p.Details, perMonth(p.Price))
		}
	case types.ServiceWAF:
		add("subscription", "", perMonth(c.WAF.Subscription))
		add("requests", "per million", money.Rate(c.WAF.RequestsMillion))
		add("transfer", "per GB outbound", money.Rate(c.WAF.DataTransferOutboundGB))
	case types.ServiceCDN:
		for _, tier := range c.CDN.Tiers {
			upTo := "and above"
			if tier.MaxGB != nil {
				upTo = "up to " + tier.MaxGB.String() + " GB"
			}
			add("band", upTo, money.Rate(tier.PricePerGB)+"/GB")
		}
		add("minimum", c.CDN.MinGB.String()+" GB", money.Format(c.CDN.MinPrice))
	case types.ServiceContainerRegistry:
		add("storage", "per GB-hour", money.Rate(c.ContainerRegistry.StoragePricePerGBHour))
		add("transfer", "per GB", money.Rate(c.ContainerRegistry.DataTransferPricePerGB))
	}
	return rows
}

func joinNames[T ~string](names []T) string {
	return strings.Join(lo.Map(names, func(n T, _ int) string { return string(n) }), ", ")
}
