package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cloud-quote/core/catalog"
	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/types"
)

// BlockStorageConfig configures a standalone volume
type BlockStorageConfig struct {
	Tier     types.Tier          `hcl:"tier,optional" json:"tier"`
	Billing  types.BillingMethod `hcl:"billing,optional" json:"billing"`
	DiskType types.DiskType      `hcl:"disk_type,optional" json:"disk_type"`
	Size     int64               `hcl:"size,optional" json:"size"`
	Hours    *int64              `hcl:"hours,optional" json:"hours,omitempty"`
	Quantity int64               `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (b *BlockStorageConfig) Service() types.Service { return types.ServiceBlockStorage }

// OnTierChange switches tier, replacing a disk type the tier does not offer.
func (b *BlockStorageConfig) OnTierChange(c *catalog.Catalog, tier types.Tier) {
	b.Tier = tier
	b.fixDiskType(c)
}

// OnBillingChange switches billing method, replacing a disk type it does not offer.
func (b *BlockStorageConfig) OnBillingChange(c *catalog.Catalog, method types.BillingMethod) {
	b.Billing = method
	b.fixDiskType(c)
}

func (b *BlockStorageConfig) fixDiskType(c *catalog.Catalog) {
	if c == nil || c.BlockStorage == nil {
		return
	}
	tier, ok := c.BlockStorage.Tier(b.Tier)
	if !ok {
		return
	}
	rates := tier.Rates(billingOrDefault(b.Billing))
	if _, ok := rates[b.DiskType]; !ok {
		b.DiskType = firstDisk(rates)
	}
}

// Quote implements Request
func (b *BlockStorageConfig) Quote(c *catalog.Catalog) Quote {
	svc := b.Service()
	if c == nil || c.BlockStorage == nil {
		return missingSection(svc, b.Quantity)
	}
	billing := billingOrDefault(b.Billing)
	size := primitives.ClampMin(b.Size, minDiskSize)

	tier, diskType, rate, reason := blockStorageRate(c.BlockStorage, b.Tier, billing, b.DiskType)
	if reason != "" {
		return unavailable(svc, b.Quantity, "%s", reason)
	}

	running := hours(b.Hours)
	amount := rate.Schedule().CostInt(size)
	if billing == types.BillingOnDemand {
		amount = amount.Mul(running)
	}

	desc := fmt.Sprintf("Block Storage %s: %d GB %s, %s", tier, size, strings.ToUpper(string(diskType)), billingLabel(billing, running))
	return priced(svc, desc, amount, b.Quantity)
}

// blockStorageRate resolves tier and disk type, defaulting empty selections to the first offered.
func blockStorageRate(bs *catalog.BlockStorageCatalog, tierName types.Tier, billing types.BillingMethod, diskType types.DiskType) (types.Tier, types.DiskType, catalog.ResourceRate, string) {
	if tierName == "" {
		tierName = firstOf(bs.TierNames())
	}
	tier, ok := bs.Tier(tierName)
	if !ok {
		return tierName, diskType, catalog.ResourceRate{}, fmt.Sprintf("block storage has no tier %q", tierName)
	}
	rates := tier.Rates(billing)
	if diskType == "" {
		diskType = firstDisk(rates)
	}
	rate, ok := rates[diskType]
	if !ok {
		return tierName, diskType, rate, fmt.Sprintf("block storage tier %s has no %s disks", tierName, diskType)
	}
	return tierName, diskType, rate, ""
}

// SnapshotConfig configures a volume snapshot. Its price is a fixed share of the
// subscription price of the same block storage volume.
type SnapshotConfig struct {
	Tier     types.Tier     `hcl:"tier,optional" json:"tier"`
	DiskType types.DiskType `hcl:"disk_type,optional" json:"disk_type"`
	Size     int64          `hcl:"size,optional" json:"size"`
	Quantity int64          `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (s *SnapshotConfig) Service() types.Service { return types.ServiceSnapshot }

// OnTierChange switches tier, replacing a disk type the tier does not offer.
func (s *SnapshotConfig) OnTierChange(c *catalog.Catalog, tier types.Tier) {
	s.Tier = tier
	if c == nil || c.BlockStorage == nil {
		return
	}
	if t, ok := c.BlockStorage.Tier(tier); ok {
		if _, ok := t.Subscription[s.DiskType]; !ok {
			s.DiskType = firstDisk(t.Subscription)
		}
	}
}

// Quote implements Request
func (s *SnapshotConfig) Quote(c *catalog.Catalog) Quote {
	svc := s.Service()
	if c == nil || c.Snapshot == nil || c.BlockStorage == nil {
		return missingSection(svc, s.Quantity)
	}
	size := primitives.ClampMin(s.Size, 1)

	tier, diskType, rate, reason := blockStorageRate(c.BlockStorage, s.Tier, types.BillingSubscription, s.DiskType)
	if reason != "" {
		return unavailable(svc, s.Quantity, "%s", reason)
	}

	volume := rate.Schedule().CostInt(size)
	amount := primitives.Percentage(volume, c.Snapshot.CostPercentageOfBlockStorage)

	desc := fmt.Sprintf("Snapshot of %d GB %s %s volume", size, tier, strings.ToUpper(string(diskType)))
	return priced(svc, desc, amount, s.Quantity)
}

// Simple storage billing models
const (
	SimpleStorageSubscription = "subscription"
	SimpleStoragePayAsYouGo   = "payg"
)

// SimpleStorageConfig configures object storage: a fixed package or pay-as-you-go
// capacity, plus outbound transfer.
type SimpleStorageConfig struct {
	StorageClass types.StorageClass `hcl:"storage_class,optional" json:"storage_class"`
	Model        string             `hcl:"model,optional" json:"model"`

	// Package is the package size in GB for the subscription model
	Package int64 `hcl:"package,optional" json:"package"`

	// StorageGB is the stored capacity for the pay-as-you-go model
	StorageGB  int64 `hcl:"storage_gb,optional" json:"storage_gb"`
	TransferGB int64 `hcl:"transfer_gb,optional" json:"transfer_gb"`
	Quantity   int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (s *SimpleStorageConfig) Service() types.Service { return types.ServiceSimpleStorage }

// OnStorageClassChange switches class and resets the package to the class's first.
func (s *SimpleStorageConfig) OnStorageClassChange(c *catalog.Catalog, class types.StorageClass) {
	s.StorageClass = class
	if c == nil || c.SimpleStorage == nil {
		return
	}
	if first, ok := primitives.First(c.SimpleStorage.Subscription[class]); ok {
		s.Package = first.Units
	}
}

// Quote implements Request
func (s *SimpleStorageConfig) Quote(c *catalog.Catalog) Quote {
	svc := s.Service()
	if c == nil || c.SimpleStorage == nil {
		return missingSection(svc, s.Quantity)
	}
	ss := c.SimpleStorage
	class := s.StorageClass
	if class == "" {
		class = firstOf(ss.StorageClasses())
	}
	transfer := primitives.ClampMin(s.TransferGB, 0)

	var amount decimal.Decimal
	var desc string
	switch s.Model {
	case "", SimpleStorageSubscription:
		table, ok := ss.Subscription[class]
		if !ok {
			return unavailable(svc, s.Quantity, "simple storage has no %s class", class)
		}
		pkg := s.Package
		if pkg == 0 {
			pkg = firstUnits(table)
		}
		row, ok := catalog.LookupUnits(table, pkg)
		if !ok {
			return unavailable(svc, s.Quantity, "simple storage %s has no %d GB package", class, pkg)
		}
		amount = row.Price
		desc = fmt.Sprintf("Simple Storage %s: %d GB package", class, pkg)
	case SimpleStoragePayAsYouGo:
		rate, ok := ss.PayAsYouGo[class]
		if !ok {
			return unavailable(svc, s.Quantity, "simple storage has no pay-as-you-go rate for %s", class)
		}
		stored := primitives.ClampMin(s.StorageGB, 1)
		amount = primitives.Monthly(rate.Mul(num(stored)))
		desc = fmt.Sprintf("Simple Storage %s: %d GB pay-as-you-go", class, stored)
	default:
		return unavailable(svc, s.Quantity, "unknown simple storage model %q", s.Model)
	}

	if transfer > 0 {
		amount = amount.Add(ss.DataTransferPricePerGB.Mul(num(transfer)))
		desc += fmt.Sprintf(", %d GB transfer", transfer)
	}
	return priced(svc, desc, amount, s.Quantity)
}

// CustomImageConfig configures a stored custom image
type CustomImageConfig struct {
	SizeGB   int64 `hcl:"size_gb,optional" json:"size_gb"`
	Quantity int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (i *CustomImageConfig) Service() types.Service { return types.ServiceCustomImage }

// Quote implements Request
func (i *CustomImageConfig) Quote(c *catalog.Catalog) Quote {
	if c == nil || c.CustomImage == nil {
		return missingSection(i.Service(), i.Quantity)
	}
	size := primitives.ClampMin(i.SizeGB, 1)
	amount := c.CustomImage.PricePerGB.Mul(num(size))
	return priced(i.Service(), fmt.Sprintf("Custom Image: %d GB", size), amount, i.Quantity)
}

// BackupScheduleConfig configures scheduled backups
type BackupScheduleConfig struct {
	Quantity int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (b *BackupScheduleConfig) Service() types.Service { return types.ServiceBackupSchedule }

// Quote implements Request
func (b *BackupScheduleConfig) Quote(c *catalog.Catalog) Quote {
	if c == nil || c.BackupSchedule == nil {
		return missingSection(b.Service(), b.Quantity)
	}
	return priced(b.Service(), "Backup Schedule", c.BackupSchedule.Price, b.Quantity)
}

// ContainerRegistryConfig configures image storage and pull transfer
type ContainerRegistryConfig struct {
	StorageGB  int64 `hcl:"storage_gb,optional" json:"storage_gb"`
	TransferGB int64 `hcl:"transfer_gb,optional" json:"transfer_gb"`
	Quantity   int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (r *ContainerRegistryConfig) Service() types.Service { return types.ServiceContainerRegistry }

// Quote implements Request
func (r *ContainerRegistryConfig) Quote(c *catalog.Catalog) Quote {
	if c == nil || c.ContainerRegistry == nil {
		return missingSection(r.Service(), r.Quantity)
	}
	cr := c.ContainerRegistry
	storage := primitives.ClampMin(r.StorageGB, 0)
	transfer := primitives.ClampMin(r.TransferGB, 0)

	amount := primitives.Monthly(cr.StoragePricePerGBHour.Mul(num(storage))).
		Add(cr.DataTransferPricePerGB.Mul(num(transfer)))

	desc := fmt.Sprintf("Container Registry: %d GB storage, %d GB transfer", storage, transfer)
	return priced(r.Service(), desc, amount, r.Quantity)
}
