// Package catalog - Pricing catalog
// Read-only rate tables for every service, loaded once before any quote is computed.
// A nil section means the catalog does not price that service.
package catalog

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/types"
)

// Catalog is the complete pricing catalog
type Catalog struct {
	CloudServer       *CloudServerCatalog       `json:"cloudServer,omitempty"`
	BlockStorage      *BlockStorageCatalog      `json:"blockStorage,omitempty"`
	Snapshot          *SnapshotCatalog          `json:"snapshot,omitempty"`
	Database          *DatabaseCatalog          `json:"database,omitempty"`
	SimpleStorage     *SimpleStorageCatalog     `json:"simpleStorage,omitempty"`
	LoadBalancer      *LoadBalancerCatalog      `json:"loadBalancer,omitempty"`
	Kubernetes        *KubernetesCatalog        `json:"kubernetes,omitempty"`
	Kafka             *KafkaCatalog             `json:"kafka,omitempty"`
	CallCenter        *CallCenterCatalog        `json:"callCenter,omitempty"`
	BusinessEmail     *BusinessEmailCatalog     `json:"businessEmail,omitempty"`
	Email             *EmailCatalog             `json:"email,omitempty"`
	LMS               *LMSCatalog               `json:"lms,omitempty"`
	WanIP             *WanIPCatalog             `json:"wanIp,omitempty"`
	BackupSchedule    *BackupScheduleCatalog    `json:"backupSchedule,omitempty"`
	CustomImage       *CustomImageCatalog       `json:"customImage,omitempty"`
	CloudVPS          *CloudVPSCatalog          `json:"cloudVps,omitempty"`
	VPN               *VPNCatalog               `json:"vpn,omitempty"`
	WAF               *WAFCatalog               `json:"waf,omitempty"`
	CDN               *CDNCatalog               `json:"cdn,omitempty"`
	ContainerRegistry *ContainerRegistryCatalog `json:"containerRegistry,omitempty"`
}

// Has reports whether the catalog carries pricing for a service
func (c *Catalog) Has(service types.Service) bool {
	if c == nil {
		return false
	}
	switch service {
	case types.ServiceCloudServer:
		return c.CloudServer != nil
	case types.ServiceBlockStorage:
		return c.BlockStorage != nil
	case types.ServiceSnapshot:
		// Snapshots are priced off block storage.
		return c.Snapshot != nil && c.BlockStorage != nil
	case types.ServiceDatabase:
		return c.Database != nil
	case types.ServiceSimpleStorage:
		return c.SimpleStorage != nil
	case types.ServiceLoadBalancer:
		return c.LoadBalancer != nil
	case types.ServiceKubernetes:
		return c.Kubernetes != nil
	case types.ServiceKafka:
		return c.Kafka != nil
	case types.ServiceCallCenter:
		return c.CallCenter != nil
	case types.ServiceBusinessEmail:
		return c.BusinessEmail != nil
	case types.ServiceEmailTransaction:
		return c.Email != nil
	case types.ServiceLMS:
		return c.LMS != nil
	case types.ServiceWanIP:
		return c.WanIP != nil
	case types.ServiceBackupSchedule:
		return c.BackupSchedule != nil
	case types.ServiceCustomImage:
		return c.CustomImage != nil
	case types.ServiceCloudVPS:
		return c.CloudVPS != nil
	case types.ServiceVPN:
		return c.VPN != nil
	case types.ServiceWAF:
		return c.WAF != nil
	case types.ServiceCDN:
		return c.CDN != nil
	case types.ServiceContainerRegistry:
		return c.ContainerRegistry != nil
	default:
		return false
	}
}

// Services returns the services this catalog can price, in display order
func (c *Catalog) Services() []types.Service {
	return lo.Filter(types.AllServices, func(s types.Service, _ int) bool {
		return c.Has(s)
	})
}

// ResourceRate is a breakpoint rate: PriceBelow per unit up to ThresholdGB, PriceAbove
// for the excess. When PricePerUnit is set the rate is flat and the other fields are ignored.
type ResourceRate struct {
	ThresholdGB  decimal.Decimal  `json:"thresholdGB"`
	PriceBelow   decimal.Decimal  `json:"priceBelowThreshold"`
	PriceAbove   decimal.Decimal  `json:"priceAboveThreshold"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit,omitempty"`
}

// Schedule converts the rate to an evaluable breakpoint
func (r ResourceRate) Schedule() primitives.Breakpoint {
	if r.PricePerUnit != nil {
		return primitives.Flat(*r.PricePerUnit)
	}
	return primitives.Breakpoint{
		Threshold: r.ThresholdGB,
		Below:     r.PriceBelow,
		Above:     r.PriceAbove,
	}
}

// IsFlat reports whether the rate has a single price
func (r ResourceRate) IsFlat() bool {
	return r.PricePerUnit != nil
}

// DiskRates maps disk types to their rate
type DiskRates map[types.DiskType]ResourceRate

// diskOrder is the order disk types are offered in
var diskOrder = []types.DiskType{types.DiskHDD, types.DiskSSD, types.DiskNVMe}

// Types returns the priced disk types in offer order
func (d DiskRates) Types() []types.DiskType {
	return lo.Filter(diskOrder, func(t types.DiskType, _ int) bool {
		_, ok := d[t]
		return ok
	})
}

// UnitPrice is one row of an exact-match lookup table. Price is monthly for
// subscription tables and hourly while running for on-demand ones; Stopped is
// the hourly price while a server is powered off.
type UnitPrice struct {
	Units   int64           `json:"units"`
	Price   decimal.Decimal `json:"price"`
	Stopped decimal.Decimal `json:"stopped"`
}

func unitsOf(u UnitPrice) int64 { return u.Units }

// LookupUnits finds the row for units
func LookupUnits(table []UnitPrice, units int64) (UnitPrice, bool) {
	return primitives.Lookup(table, unitsOf, units)
}

// Units lists the unit counts of a table in order
func Units(table []UnitPrice) []int64 {
	return lo.Map(table, func(u UnitPrice, _ int) int64 { return u.Units })
}

// Package is a named, flat-priced offering
type Package struct {
	Name    string          `json:"name"`
	Details string          `json:"details,omitempty"`
	Price   decimal.Decimal `json:"price"`
}

// FindPackage looks a package up by name
func FindPackage(packages []Package, name string) (Package, bool) {
	return lo.Find(packages, func(p Package) bool { return p.Name == name })
}

// PackageNames lists package names in order
func PackageNames(packages []Package) []string {
	return lo.Map(packages, func(p Package, _ int) string { return p.Name })
}
