// Package catalog - Catalog validation
// Ensures rate tables are usable before any quote reads them.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// ValidationRule checks one property of a catalog
type ValidationRule func(*Catalog) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateCloudServer,
		validateBlockStorage,
		validateSnapshot,
		validateDatabase,
		validatePackages,
		validateCDN,
	}
}

// Validate runs every rule and combines their errors
func (c *Catalog) Validate(rules []ValidationRule) error {
	var err error
	for _, rule := range rules {
		err = multierr.Append(err, rule(c))
	}
	return err
}

func validateRate(path string, r ResourceRate) error {
	if r.PricePerUnit != nil {
		if r.PricePerUnit.IsNegative() {
			return fmt.Errorf("%s: negative pricePerUnit", path)
		}
		return nil
	}
	var err error
	if r.ThresholdGB.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("%s: negative thresholdGB", path))
	}
	if r.PriceBelow.IsNegative() || r.PriceAbove.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("%s: negative price", path))
	}
	return err
}

func validateDisks(path string, d DiskRates) error {
	var err error
	for t, r := range d {
		err = multierr.Append(err, validateRate(fmt.Sprintf("%s.%s", path, t), r))
	}
	return err
}

func validateTable(path string, table []UnitPrice) error {
	var err error
	seen := make(map[int64]bool, len(table))
	for _, row := range table {
		if row.Units <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s: non-positive units %d", path, row.Units))
		}
		if seen[row.Units] {
			err = multierr.Append(err, fmt.Errorf("%s: duplicate units %d", path, row.Units))
		}
		if row.Price.IsNegative() || row.Stopped.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("%s: negative price for %d units", path, row.Units))
		}
		seen[row.Units] = true
	}
	return err
}

func validateCloudServer(c *Catalog) error {
	if c.CloudServer == nil {
		return nil
	}
	var err error
	for _, chip := range c.CloudServer.Chips {
		if len(chip.Tiers) == 0 {
			err = multierr.Append(err, fmt.Errorf("cloudServer.%s: no tiers", chip.Name))
		}
		for _, billing := range []struct {
			name string
			p    ServerPricing
		}{{"subscription", chip.Subscription}, {"onDemand", chip.OnDemand}} {
			path := fmt.Sprintf("cloudServer.%s.%s", chip.Name, billing.name)
			err = multierr.Append(err, validateDisks(path+".disk", billing.p.Disk))
			for _, tier := range chip.Tiers {
				if billing.p.IsLinear() {
					if _, ok := billing.p.PerUnit[tier]; !ok {
						err = multierr.Append(err, fmt.Errorf("%s: no per-unit rate for tier %s", path, tier))
					}
					continue
				}
				tables, ok := billing.p.Tables[tier]
				if !ok || tables == nil {
					err = multierr.Append(err, fmt.Errorf("%s: no tables for tier %s", path, tier))
					continue
				}
				err = multierr.Append(err, validateTable(fmt.Sprintf("%s.%s.cpu", path, tier), tables.CPU))
				err = multierr.Append(err, validateTable(fmt.Sprintf("%s.%s.ram", path, tier), tables.RAM))
				err = multierr.Append(err, validateDisks(fmt.Sprintf("%s.%s.disk", path, tier), tables.Disk))
				if len(billing.p.DiskFor(tier)) == 0 {
					err = multierr.Append(err, fmt.Errorf("%s: no disk rates for tier %s", path, tier))
				}
			}
		}
	}
	return err
}

func validateBlockStorage(c *Catalog) error {
	if c.BlockStorage == nil {
		return nil
	}
	var err error
	for _, tier := range c.BlockStorage.Tiers {
		err = multierr.Append(err, validateDisks("blockStorage."+string(tier.Name)+".subscription", tier.Subscription))
		err = multierr.Append(err, validateDisks("blockStorage."+string(tier.Name)+".onDemand", tier.OnDemand))
	}
	return err
}

func validateSnapshot(c *Catalog) error {
	if c.Snapshot == nil {
		return nil
	}
	p := c.Snapshot.CostPercentageOfBlockStorage
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("snapshot: costPercentageOfBlockStorage %s outside [0,1]", p)
	}
	return nil
}

func validateDatabase(c *Catalog) error {
	if c.Database == nil {
		return nil
	}
	err := validateRate("database.disk", c.Database.Disk)
	for _, tier := range c.Database.Tiers {
		err = multierr.Append(err, validateTable("database."+string(tier.Name)+".cpu", tier.CPU))
		err = multierr.Append(err, validateTable("database."+string(tier.Name)+".ram", tier.RAM))
	}
	return err
}

// validatePackages requires every package list that drives a selection to be non-empty,
// since a reset selects its first entry.
func validatePackages(c *Catalog) error {
	var err error
	empty := func(name string, n int) {
		if n == 0 {
			err = multierr.Append(err, fmt.Errorf("%s: no packages", name))
		}
	}
	if c.LoadBalancer != nil {
		empty("loadBalancer", len(c.LoadBalancer.Packages))
	}
	if c.Kubernetes != nil {
		empty("kubernetes", len(c.Kubernetes.Plans))
		for _, plan := range c.Kubernetes.Plans {
			empty("kubernetes."+plan.Name, len(plan.Packages))
		}
	}
	if c.CallCenter != nil {
		empty("callCenter", len(c.CallCenter.Packages))
	}
	if c.BusinessEmail != nil {
		empty("businessEmail", len(c.BusinessEmail.Packages))
	}
	if c.LMS != nil {
		empty("lms", len(c.LMS.Packages))
		if c.LMS.AdditionalStorage.BlockSizeGB <= 0 {
			err = multierr.Append(err, fmt.Errorf("lms: additionalStorage.blockSizeGB must be positive"))
		}
	}
	if c.CloudVPS != nil {
		empty("cloudVps", len(c.CloudVPS.Packages))
	}
	if c.VPN != nil {
		empty("vpn", len(c.VPN.Packages))
	}
	if c.SimpleStorage != nil {
		for class, table := range c.SimpleStorage.Subscription {
			empty("simpleStorage."+string(class), len(table))
			err = multierr.Append(err, validateTable("simpleStorage."+string(class), table))
		}
	}
	return err
}

// validateCDN requires bands in ascending order ending in an unbounded band.
func validateCDN(c *Catalog) error {
	if c.CDN == nil {
		return nil
	}
	tiers := c.CDN.Tiers
	if len(tiers) == 0 {
		return fmt.Errorf("cdn: no tiers")
	}
	var err error
	prev := decimal.Zero
	for i, t := range tiers {
		if t.PricePerGB.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("cdn: tier %d has negative price", i))
		}
		if t.MaxGB == nil {
			if i != len(tiers)-1 {
				err = multierr.Append(err, fmt.Errorf("cdn: unbounded tier %d is not last", i))
			}
			continue
		}
		if t.MaxGB.LessThanOrEqual(prev) {
			err = multierr.Append(err, fmt.Errorf("cdn: tier %d maxGB not ascending", i))
		}
		prev = *t.MaxGB
	}
	if tiers[len(tiers)-1].MaxGB != nil {
		err = multierr.Append(err, fmt.Errorf("cdn: last tier must be unbounded"))
	}
	return err
}
