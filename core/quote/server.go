package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cloud-quote/core/catalog"
	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/types"
)

const (
	minDiskSize = 10
	minUnits    = 1
	minHours    = 1
)

// CloudServerConfig configures a cloud server: CPU, RAM, a root disk and any
// number of attached disks, billed per month or per hour.
type CloudServerConfig struct {
	Chip     types.Chip          `hcl:"chip,optional" json:"chip"`
	Billing  types.BillingMethod `hcl:"billing,optional" json:"billing"`
	Tier     types.Tier          `hcl:"tier,optional" json:"tier"`
	CPU      int64               `hcl:"cpu,optional" json:"cpu"`
	RAM      int64               `hcl:"ram,optional" json:"ram"`
	DiskType types.DiskType      `hcl:"disk_type,optional" json:"disk_type"`
	DiskSize int64               `hcl:"disk_size,optional" json:"disk_size"`

	// Hours is the running time billed on demand; nil means a full month.
	Hours *int64 `hcl:"hours,optional" json:"hours,omitempty"`

	// StoppedHours is powered-off time billed at the stopped CPU/RAM rate.
	StoppedHours int64 `hcl:"stopped_hours,optional" json:"stopped_hours,omitempty"`

	Quantity int64          `hcl:"quantity,optional" json:"quantity"`
	Disks    []AttachedDisk `hcl:"disk,block" json:"disks,omitempty"`
}

// AttachedDisk is an extra volume on a cloud server
type AttachedDisk struct {
	Type     types.DiskType `hcl:"type,optional" json:"type"`
	Size     int64          `hcl:"size,optional" json:"size"`
	Quantity int64          `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (s *CloudServerConfig) Service() types.Service { return types.ServiceCloudServer }

// OnChipChange switches CPU family. A tier the family does not offer falls back
// to its first tier, and resources are re-selected for the new tables.
func (s *CloudServerConfig) OnChipChange(c *catalog.Catalog, chip types.Chip) {
	s.Chip = chip
	family, ok := s.family(c)
	if !ok {
		return
	}
	if !family.HasTier(s.Tier) {
		s.Tier = firstOf(family.Tiers)
	}
	s.resetResources(family)
}

// OnTierChange switches tier and re-selects CPU, RAM and disk types.
func (s *CloudServerConfig) OnTierChange(c *catalog.Catalog, tier types.Tier) {
	s.Tier = tier
	if family, ok := s.family(c); ok {
		s.resetResources(family)
	}
}

// OnBillingChange switches billing method. Subscription and on-demand tables
// list different sizes, so resources are re-selected.
func (s *CloudServerConfig) OnBillingChange(c *catalog.Catalog, method types.BillingMethod) {
	s.Billing = method
	if family, ok := s.family(c); ok {
		s.resetResources(family)
	}
}

// AddDisk appends an attached disk with the first disk type of the current tier.
func (s *CloudServerConfig) AddDisk(c *catalog.Catalog) {
	disk := AttachedDisk{Size: minDiskSize, Quantity: 1}
	if family, ok := s.family(c); ok {
		if pricing, ok := family.Billing(billingOrDefault(s.Billing)); ok {
			disk.Type = firstDisk(pricing.DiskFor(s.Tier))
		}
	}
	s.Disks = append(s.Disks, disk)
}

// RemoveDisk drops the attached disk at index i. Out of range is a no-op.
func (s *CloudServerConfig) RemoveDisk(i int) {
	if i < 0 || i >= len(s.Disks) {
		return
	}
	s.Disks = append(s.Disks[:i], s.Disks[i+1:]...)
}

func (s *CloudServerConfig) family(c *catalog.Catalog) (*catalog.ChipPricing, bool) {
	if c == nil || c.CloudServer == nil {
		return nil, false
	}
	return c.CloudServer.Chip(s.Chip)
}

func (s *CloudServerConfig) resetResources(family *catalog.ChipPricing) {
	pricing, ok := family.Billing(billingOrDefault(s.Billing))
	if !ok {
		return
	}
	if tables, ok := pricing.Tables[s.Tier]; ok && tables != nil {
		if first, ok := primitives.First(tables.CPU); ok {
			s.CPU = first.Units
		}
		if first, ok := primitives.First(tables.RAM); ok {
			s.RAM = first.Units
		}
	}
	disks := pricing.DiskFor(s.Tier)
	if _, ok := disks[s.DiskType]; !ok {
		s.DiskType = firstDisk(disks)
	}
	for i := range s.Disks {
		if _, ok := disks[s.Disks[i].Type]; !ok {
			s.Disks[i].Type = firstDisk(disks)
		}
	}
}

// Quote implements Request
func (s *CloudServerConfig) Quote(c *catalog.Catalog) Quote {
	svc := s.Service()
	if c == nil || c.CloudServer == nil {
		return missingSection(svc, s.Quantity)
	}

	chip := s.Chip
	if chip == "" {
		chip = firstOf(c.CloudServer.ChipNames())
	}
	family, ok := c.CloudServer.Chip(chip)
	if !ok {
		return unavailable(svc, s.Quantity, "unknown chip %q", chip)
	}
	tier := s.Tier
	if tier == "" {
		tier = firstOf(family.Tiers)
	}
	if !family.HasTier(tier) {
		return unavailable(svc, s.Quantity, "chip %s has no tier %q", chip, tier)
	}
	billing := billingOrDefault(s.Billing)
	pricing, ok := family.Billing(billing)
	if !ok {
		return unavailable(svc, s.Quantity, "unknown billing method %q", billing)
	}

	r, reason := s.computeRates(pricing, tier)
	if reason != "" {
		return unavailable(svc, s.Quantity, "%s", reason)
	}

	disks := pricing.DiskFor(tier)
	diskType := s.DiskType
	if diskType == "" {
		diskType = firstDisk(disks)
	}
	rootRate, ok := disks[diskType]
	if !ok {
		return unavailable(svc, s.Quantity, "tier %s has no %s disks", tier, diskType)
	}
	diskSize := primitives.ClampMin(s.DiskSize, minDiskSize)
	storage := rootRate.Schedule().CostInt(diskSize)

	for _, d := range s.Disks {
		rate, ok := disks[d.Type]
		if !ok {
			return unavailable(svc, s.Quantity, "tier %s has no %s disks", tier, d.Type)
		}
		size := primitives.ClampMin(d.Size, minDiskSize)
		count := primitives.ClampMin(d.Quantity, 1)
		storage = storage.Add(rate.Schedule().CostInt(size).Mul(num(count)))
	}

	running := hours(s.Hours)
	total := r.cpu.Add(r.ram).Add(storage)
	if billing == types.BillingOnDemand {
		stopped := primitives.Clamp(num(s.StoppedHours), decimal.Zero, decimal.NewFromInt(primitives.HoursPerMonth).Sub(running))
		total = r.cpu.Add(r.ram).Mul(running).
			Add(r.stopped.Mul(stopped)).
			Add(storage.Mul(running.Add(stopped)))
	}

	return priced(svc, s.describe(chip, tier, billing, r, diskType, diskSize, running), total, s.Quantity)
}

// serverRates are the CPU and RAM prices of a server (monthly, or hourly on
// demand) and the hourly rate while stopped.
type serverRates struct {
	cores, mem int64
	cpu, ram   decimal.Decimal
	stopped    decimal.Decimal
}

func (s *CloudServerConfig) computeRates(pricing *catalog.ServerPricing, tier types.Tier) (serverRates, string) {
	var r serverRates
	if pricing.IsLinear() {
		rate, ok := pricing.PerUnit[tier]
		if !ok {
			return r, fmt.Sprintf("no per-unit rate for tier %s", tier)
		}
		r.cores = primitives.ClampMin(s.CPU, minUnits)
		r.mem = primitives.ClampMin(s.RAM, minUnits)
		r.cpu = rate.CPU.Mul(num(r.cores))
		r.ram = rate.RAM.Mul(num(r.mem))
		r.stopped = rate.CPUStopped.Mul(num(r.cores)).Add(rate.RAMStopped.Mul(num(r.mem)))
		return r, ""
	}

	tables, ok := pricing.Tables[tier]
	if !ok || tables == nil {
		return r, fmt.Sprintf("no resource table for tier %s", tier)
	}
	r.cores, r.mem = s.CPU, s.RAM
	if r.cores == 0 {
		r.cores = firstUnits(tables.CPU)
	}
	if r.mem == 0 {
		r.mem = firstUnits(tables.RAM)
	}
	cpuRow, ok := catalog.LookupUnits(tables.CPU, r.cores)
	if !ok {
		return r, fmt.Sprintf("tier %s offers no %d-core option", tier, r.cores)
	}
	ramRow, ok := catalog.LookupUnits(tables.RAM, r.mem)
	if !ok {
		return r, fmt.Sprintf("tier %s offers no %d GB RAM option", tier, r.mem)
	}
	r.cpu, r.ram = cpuRow.Price, ramRow.Price
	r.stopped = cpuRow.Stopped.Add(ramRow.Stopped)
	return r, ""
}

func (s *CloudServerConfig) describe(chip types.Chip, tier types.Tier, billing types.BillingMethod, r serverRates, disk types.DiskType, size int64, running decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cloud Server %s %s: %d vCPU, %d GB RAM, %d GB %s", chip, tier, r.cores, r.mem, size, strings.ToUpper(string(disk)))
	for _, d := range s.Disks {
		fmt.Fprintf(&b, ", +%dx %d GB %s", primitives.ClampMin(d.Quantity, 1), primitives.ClampMin(d.Size, minDiskSize), strings.ToUpper(string(d.Type)))
	}
	fmt.Fprintf(&b, ", %s", billingLabel(billing, running))
	if billing == types.BillingOnDemand && s.StoppedHours > 0 {
		fmt.Fprintf(&b, " + %dh stopped", s.StoppedHours)
	}
	return b.String()
}

func firstDisk(d catalog.DiskRates) types.DiskType {
	t, _ := primitives.First(d.Types())
	return t
}

func firstUnits(table []catalog.UnitPrice) int64 {
	row, _ := primitives.First(table)
	return row.Units
}

func firstOf[T any](items []T) T {
	v, _ := primitives.First(items)
	return v
}
