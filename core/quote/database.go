package quote

import (
	"fmt"

	"cloud-quote/core/catalog"
	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/types"
)

// DatabaseConfig configures a managed database. Every component is priced per
// hour and billed for a full month.
type DatabaseConfig struct {
	Tier     types.Tier `hcl:"tier,optional" json:"tier"`
	CPU      int64      `hcl:"cpu,optional" json:"cpu"`
	RAM      int64      `hcl:"ram,optional" json:"ram"`
	DiskSize int64      `hcl:"disk_size,optional" json:"disk_size"`
	BackupGB int64      `hcl:"backup_gb,optional" json:"backup_gb"`
	Quantity int64      `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (d *DatabaseConfig) Service() types.Service { return types.ServiceDatabase }

// OnTierChange switches tier and resets CPU and RAM to the tier's first options.
func (d *DatabaseConfig) OnTierChange(c *catalog.Catalog, tier types.Tier) {
	d.Tier = tier
	if c == nil || c.Database == nil {
		return
	}
	if t, ok := c.Database.Tier(tier); ok {
		d.CPU = firstUnits(t.CPU)
		d.RAM = firstUnits(t.RAM)
	}
}

// Quote implements Request
func (d *DatabaseConfig) Quote(c *catalog.Catalog) Quote {
	svc := d.Service()
	if c == nil || c.Database == nil {
		return missingSection(svc, d.Quantity)
	}
	db := c.Database

	tierName := d.Tier
	if tierName == "" {
		tierName = firstOf(db.TierNames())
	}
	tier, ok := db.Tier(tierName)
	if !ok {
		return unavailable(svc, d.Quantity, "database has no tier %q", tierName)
	}

	cores, mem := d.CPU, d.RAM
	if cores == 0 {
		cores = firstUnits(tier.CPU)
	}
	if mem == 0 {
		mem = firstUnits(tier.RAM)
	}
	cpu, ok := catalog.LookupUnits(tier.CPU, cores)
	if !ok {
		return unavailable(svc, d.Quantity, "database tier %s offers no %d-core option", tierName, cores)
	}
	ram, ok := catalog.LookupUnits(tier.RAM, mem)
	if !ok {
		return unavailable(svc, d.Quantity, "database tier %s offers no %d GB RAM option", tierName, mem)
	}

	disk := primitives.ClampMin(d.DiskSize, minDiskSize)
	backup := primitives.ClampMin(d.BackupGB, 0)

	hourly := cpu.Price.
		Add(ram.Price).
		Add(db.Disk.Schedule().CostInt(disk)).
		Add(db.BackupPricePerGBHour.Mul(num(backup)))

	desc := fmt.Sprintf("Database %s: %d vCPU, %d GB RAM, %d GB disk", tierName, cores, mem, disk)
	if backup > 0 {
		desc += fmt.Sprintf(", %d GB backup", backup)
	}
	return priced(svc, desc, primitives.Monthly(hourly), d.Quantity)
}

// KafkaConfig configures a managed Kafka cluster
type KafkaConfig struct {
	Tier     types.Tier `hcl:"tier,optional" json:"tier"`
	CPU      int64      `hcl:"cpu,optional" json:"cpu"`
	RAM      int64      `hcl:"ram,optional" json:"ram"`
	DiskSize int64      `hcl:"disk_size,optional" json:"disk_size"`

	// WanIP adds a public IP; nil means included.
	WanIP    *bool `hcl:"wan_ip,optional" json:"wan_ip,omitempty"`
	Quantity int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (k *KafkaConfig) Service() types.Service { return types.ServiceKafka }

// Quote implements Request
func (k *KafkaConfig) Quote(c *catalog.Catalog) Quote {
	svc := k.Service()
	if c == nil || c.Kafka == nil {
		return missingSection(svc, k.Quantity)
	}
	kc := c.Kafka

	tier := k.Tier
	if tier == "" {
		tier = firstOf(kc.Tiers)
	}
	cpuRate, okCPU := kc.CPU[tier]
	ramRate, okRAM := kc.RAM[tier]
	if !okCPU || !okRAM {
		return unavailable(svc, k.Quantity, "kafka has no tier %q", tier)
	}

	cores := primitives.ClampMin(k.CPU, minUnits)
	mem := primitives.ClampMin(k.RAM, minUnits)
	disk := primitives.ClampMin(k.DiskSize, minDiskSize)
	wan := k.WanIP == nil || *k.WanIP

	amount := cpuRate.Mul(num(cores)).
		Add(ramRate.Mul(num(mem))).
		Add(kc.DiskPricePerGB.Mul(num(disk)))
	desc := fmt.Sprintf("Kafka %s: %d vCPU, %d GB RAM, %d GB disk", tier, cores, mem, disk)
	if wan {
		amount = amount.Add(kc.WanIPPrice)
		desc += ", WAN IP"
	}
	return priced(svc, desc, amount, k.Quantity)
}
