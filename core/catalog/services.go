// Package catalog - Per-service rate tables
package catalog

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"cloud-quote/core/types"
)

// CloudServerCatalog prices cloud servers per CPU family
type CloudServerCatalog struct {
	Chips []ChipPricing `json:"chips"`
}

// Chip returns the pricing of a CPU family
func (c *CloudServerCatalog) Chip(name types.Chip) (*ChipPricing, bool) {
	for i := range c.Chips {
		if c.Chips[i].Name == name {
			return &c.Chips[i], true
		}
	}
	return nil, false
}

// ChipNames lists the CPU families in offer order
func (c *CloudServerCatalog) ChipNames() []types.Chip {
	return lo.Map(c.Chips, func(p ChipPricing, _ int) types.Chip { return p.Name })
}

// ChipPricing holds the rates of one CPU family
type ChipPricing struct {
	Name         types.Chip    `json:"name"`
	Tiers        []types.Tier  `json:"tiers"`
	Subscription ServerPricing `json:"subscription"`
	OnDemand     ServerPricing `json:"onDemand"`
}

// Billing returns the rates for a billing method
func (c *ChipPricing) Billing(method types.BillingMethod) (*ServerPricing, bool) {
	switch method {
	case types.BillingSubscription:
		return &c.Subscription, true
	case types.BillingOnDemand:
		return &c.OnDemand, true
	default:
		return nil, false
	}
}

// HasTier reports whether the family offers a tier
func (c *ChipPricing) HasTier(tier types.Tier) bool {
	return lo.Contains(c.Tiers, tier)
}

// ServerPricing holds CPU, RAM and disk rates for one billing method. A family
// is priced either linearly (PerUnit) or from per-tier lookup tables (Tables).
type ServerPricing struct {
	PerUnit map[types.Tier]PerUnitRate     `json:"perUnit,omitempty"`
	Tables  map[types.Tier]*ResourceTables `json:"tables,omitempty"`
	Disk    DiskRates                      `json:"disk"`
}

// IsLinear reports whether CPU and RAM are priced per core and per GB
func (s *ServerPricing) IsLinear() bool {
	return len(s.PerUnit) > 0
}

// DiskFor returns the disk rates for a tier; a tier-level table replaces the family table.
func (s *ServerPricing) DiskFor(tier types.Tier) DiskRates {
	if t, ok := s.Tables[tier]; ok && len(t.Disk) > 0 {
		return t.Disk
	}
	return s.Disk
}

// PerUnitRate prices one core and one GB of RAM
type PerUnitRate struct {
	CPU        decimal.Decimal `json:"cpu"`
	RAM        decimal.Decimal `json:"ram"`
	CPUStopped decimal.Decimal `json:"cpuStopped"`
	RAMStopped decimal.Decimal `json:"ramStopped"`
}

// ResourceTables are the discrete CPU and RAM choices of a tier
type ResourceTables struct {
	CPU  []UnitPrice `json:"cpu"`
	RAM  []UnitPrice `json:"ram"`
	Disk DiskRates   `json:"disk,omitempty"`
}

// BlockStorageCatalog prices standalone volumes per tier
type BlockStorageCatalog struct {
	Tiers []BlockStorageTier `json:"tiers"`
}

// BlockStorageTier holds the disk rates of one tier
type BlockStorageTier struct {
	Name         types.Tier `json:"name"`
	Subscription DiskRates  `json:"subscription"`
	OnDemand     DiskRates  `json:"onDemand"`
}

// Tier returns the rates of a tier
func (b *BlockStorageCatalog) Tier(name types.Tier) (*BlockStorageTier, bool) {
	for i := range b.Tiers {
		if b.Tiers[i].Name == name {
			return &b.Tiers[i], true
		}
	}
	return nil, false
}

// TierNames lists tiers in offer order
func (b *BlockStorageCatalog) TierNames() []types.Tier {
	return lo.Map(b.Tiers, func(t BlockStorageTier, _ int) types.Tier { return t.Name })
}

// Rates returns the disk rates for a billing method
func (t *BlockStorageTier) Rates(method types.BillingMethod) DiskRates {
	if method == types.BillingOnDemand {
		return t.OnDemand
	}
	return t.Subscription
}

// SnapshotCatalog derives snapshot prices from block storage
type SnapshotCatalog struct {
	CostPercentageOfBlockStorage decimal.Decimal `json:"costPercentageOfBlockStorage"`
}

// DatabaseCatalog prices managed databases. All rates are hourly.
type DatabaseCatalog struct {
	Tiers                []DatabaseTier  `json:"tiers"`
	Disk                 ResourceRate    `json:"disk"`
	BackupPricePerGBHour decimal.Decimal `json:"backupPricePerGBHour"`
}

// DatabaseTier holds the CPU and RAM choices of a tier
type DatabaseTier struct {
	Name types.Tier  `json:"name"`
	CPU  []UnitPrice `json:"cpu"`
	RAM  []UnitPrice `json:"ram"`
}

// Tier returns the rates of a tier
func (d *DatabaseCatalog) Tier(name types.Tier) (*DatabaseTier, bool) {
	for i := range d.Tiers {
		if d.Tiers[i].Name == name {
			return &d.Tiers[i], true
		}
	}
	return nil, false
}

// TierNames lists tiers in offer order
func (d *DatabaseCatalog) TierNames() []types.Tier {
	return lo.Map(d.Tiers, func(t DatabaseTier, _ int) types.Tier { return t.Name })
}

// SimpleStorageCatalog prices object storage
type SimpleStorageCatalog struct {
	Subscription           map[types.StorageClass][]UnitPrice     `json:"subscription"`
	PayAsYouGo             map[types.StorageClass]decimal.Decimal `json:"payAsYouGoPricePerGBHour"`
	DataTransferPricePerGB decimal.Decimal                        `json:"dataTransferPricePerGB"`
}

// StorageClasses lists the classes offered for subscription, standard first
func (s *SimpleStorageCatalog) StorageClasses() []types.StorageClass {
	return lo.Filter([]types.StorageClass{types.StorageStandard, types.StorageCold}, func(c types.StorageClass, _ int) bool {
		_, ok := s.Subscription[c]
		return ok
	})
}

// LoadBalancerCatalog prices load balancer packages
type LoadBalancerCatalog struct {
	Packages          []LoadBalancerPackage `json:"packages"`
	OveragePricePerGB decimal.Decimal       `json:"dataTransferOveragePricePerGB"`
}

// LoadBalancerPackage is one load balancer size
type LoadBalancerPackage struct {
	Name        string          `json:"name"`
	Connections int64           `json:"connections"`
	FreeDataTB  int64           `json:"freeDataTB"`
	Price       decimal.Decimal `json:"price"`
}

// Package finds a package by name
func (l *LoadBalancerCatalog) Package(name string) (LoadBalancerPackage, bool) {
	return lo.Find(l.Packages, func(p LoadBalancerPackage) bool { return p.Name == name })
}

// KubernetesCatalog prices managed Kubernetes plans
type KubernetesCatalog struct {
	Plans []KubernetesPlan `json:"plans"`
}

// KubernetesPlan is a family of control-plane packages
type KubernetesPlan struct {
	Name     string              `json:"name"`
	Packages []KubernetesPackage `json:"packages"`
}

// KubernetesPackage is one control-plane size
type KubernetesPackage struct {
	Name     string          `json:"name"`
	MaxNodes int64           `json:"maxNodes,omitempty"`
	RAM      int64           `json:"ram,omitempty"`
	Price    decimal.Decimal `json:"price"`
}

// Plan returns a plan by name
func (k *KubernetesCatalog) Plan(name string) (*KubernetesPlan, bool) {
	for i := range k.Plans {
		if k.Plans[i].Name == name {
			return &k.Plans[i], true
		}
	}
	return nil, false
}

// PlanNames lists plans in offer order
func (k *KubernetesCatalog) PlanNames() []string {
	return lo.Map(k.Plans, func(p KubernetesPlan, _ int) string { return p.Name })
}

// Package finds a package within the plan
func (p *KubernetesPlan) Package(name string) (KubernetesPackage, bool) {
	return lo.Find(p.Packages, func(k KubernetesPackage) bool { return k.Name == name })
}

// KafkaCatalog prices managed Kafka clusters per core, per GB and per disk GB
type KafkaCatalog struct {
	Tiers          []types.Tier                   `json:"tiers"`
	CPU            map[types.Tier]decimal.Decimal `json:"cpu"`
	RAM            map[types.Tier]decimal.Decimal `json:"ram"`
	DiskPricePerGB decimal.Decimal                `json:"diskPricePerGB"`
	WanIPPrice     decimal.Decimal                `json:"wanIpPrice"`
}

// CallCenterCatalog prices call center packages
type CallCenterCatalog struct {
	Packages []Package `json:"packages"`
}

// BusinessEmailCatalog prices hosted mailbox packages
type BusinessEmailCatalog struct {
	Packages []BusinessEmailPackage `json:"packages"`
}

// BusinessEmailPackage is one mailbox package
type BusinessEmailPackage struct {
	ID           int64           `json:"id"`
	StorageGB    int64           `json:"storageGB"`
	EmailsPerDay int64           `json:"emailsPerDay"`
	Price        decimal.Decimal `json:"price"`
}

// Package finds a package by id
func (b *BusinessEmailCatalog) Package(id int64) (BusinessEmailPackage, bool) {
	return lo.Find(b.Packages, func(p BusinessEmailPackage) bool { return p.ID == id })
}

// EmailCatalog prices transactional email
type EmailCatalog struct {
	SharedPricePerEmail decimal.Decimal `json:"sharedPricePerEmail"`
	Dedicated           []EmailPackage  `json:"dedicated"`
}

// EmailPackage is one dedicated sending plan
type EmailPackage struct {
	Name         string          `json:"name"`
	EmailsPerDay int64           `json:"emailsPerDay"`
	Price        decimal.Decimal `json:"price"`
}

// Package finds a dedicated plan by name
func (e *EmailCatalog) Package(name string) (EmailPackage, bool) {
	return lo.Find(e.Dedicated, func(p EmailPackage) bool { return p.Name == name })
}

// LMSCatalog prices learning management packages
type LMSCatalog struct {
	Packages          []LMSPackage      `json:"packages"`
	AdditionalStorage AdditionalStorage `json:"additionalStorage"`
}

// LMSPackage is one concurrent-user package
type LMSPackage struct {
	Name          string          `json:"name"`
	CCU           int64           `json:"ccu"`
	FreeStorageGB int64           `json:"freeStorageGB"`
	Price         decimal.Decimal `json:"price"`
}

// AdditionalStorage is sold in whole blocks
type AdditionalStorage struct {
	BlockSizeGB   int64           `json:"blockSizeGB"`
	PricePerBlock decimal.Decimal `json:"pricePerBlock"`
}

// Package finds a package by name
func (l *LMSCatalog) Package(name string) (LMSPackage, bool) {
	return lo.Find(l.Packages, func(p LMSPackage) bool { return p.Name == name })
}

// WanIPCatalog prices public IPv4 addresses per month
type WanIPCatalog struct {
	Subscription decimal.Decimal `json:"subscription"`
	OnDemand     decimal.Decimal `json:"onDemand"`
}

// BackupScheduleCatalog prices scheduled backups
type BackupScheduleCatalog struct {
	Price decimal.Decimal `json:"price"`
}

// CustomImageCatalog prices stored images per GB
type CustomImageCatalog struct {
	PricePerGB decimal.Decimal `json:"pricePerGB"`
}

// CloudVPSCatalog prices fixed VPS bundles
type CloudVPSCatalog struct {
	Packages []VPSPackage `json:"packages"`
}

// VPSPackage is one VPS bundle
type VPSPackage struct {
	ID    int64           `json:"id"`
	CPU   int64           `json:"cpu"`
	RAM   int64           `json:"ram"`
	SSD   int64           `json:"ssd"`
	Price decimal.Decimal `json:"price"`
}

// Package finds a bundle by id
func (c *CloudVPSCatalog) Package(id int64) (VPSPackage, bool) {
	return lo.Find(c.Packages, func(p VPSPackage) bool { return p.ID == id })
}

// VPNCatalog prices site-to-site VPN packages
type VPNCatalog struct {
	Packages               []Package       `json:"packages"`
	DataTransferPricePerGB decimal.Decimal `json:"dataTransferPricePerGB"`
}

// WAFCatalog prices the web application firewall
type WAFCatalog struct {
	Subscription           decimal.Decimal `json:"subscription"`
	RequestsMillion        decimal.Decimal `json:"requestsMillion"`
	DataTransferOutboundGB decimal.Decimal `json:"dataTransferOutboundGB"`
}

// CDNCatalog prices CDN egress in volume bands
type CDNCatalog struct {
	Tiers    []CDNTier       `json:"tiers"`
	MinGB    decimal.Decimal `json:"minGB"`
	MinPrice decimal.Decimal `json:"minPrice"`
}

// CDNTier is one volume band; a nil MaxGB is unbounded
type CDNTier struct {
	MaxGB      *decimal.Decimal `json:"maxGB"`
	PricePerGB decimal.Decimal  `json:"pricePerGB"`
}

// ContainerRegistryCatalog prices image storage and pulls
type ContainerRegistryCatalog struct {
	StoragePricePerGBHour  decimal.Decimal `json:"storagePricePerGBHour"`
	DataTransferPricePerGB decimal.Decimal `json:"dataTransferPricePerGB"`
}
