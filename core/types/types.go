// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// Service identifies a priceable service type
type Service string

const (
	ServiceCloudServer       Service = "cloud_server"
	ServiceBlockStorage      Service = "block_storage"
	ServiceSnapshot          Service = "snapshot"
	ServiceDatabase          Service = "database"
	ServiceSimpleStorage     Service = "simple_storage"
	ServiceLoadBalancer      Service = "load_balancer"
	ServiceKubernetes        Service = "kubernetes"
	ServiceKafka             Service = "kafka"
	ServiceCallCenter        Service = "call_center"
	ServiceBusinessEmail     Service = "business_email"
	ServiceEmailTransaction  Service = "email_transaction"
	ServiceLMS               Service = "lms"
	ServiceWanIP             Service = "wan_ip"
	ServiceBackupSchedule    Service = "backup_schedule"
	ServiceCustomImage       Service = "custom_image"
	ServiceCloudVPS          Service = "cloud_vps"
	ServiceVPN               Service = "vpn"
	ServiceWAF               Service = "waf"
	ServiceCDN               Service = "cdn"
	ServiceContainerRegistry Service = "container_registry"
)

// AllServices lists every service in display order
var AllServices = []Service{
	ServiceCloudServer,
	ServiceBlockStorage,
	ServiceSnapshot,
	ServiceDatabase,
	ServiceSimpleStorage,
	ServiceLoadBalancer,
	ServiceKubernetes,
	ServiceKafka,
	ServiceCallCenter,
	ServiceBusinessEmail,
	ServiceEmailTransaction,
	ServiceLMS,
	ServiceWanIP,
	ServiceBackupSchedule,
	ServiceCustomImage,
	ServiceCloudVPS,
	ServiceVPN,
	ServiceWAF,
	ServiceCDN,
	ServiceContainerRegistry,
}

// String returns the string representation
func (s Service) String() string {
	return string(s)
}

// IsValid checks if the service is known
func (s Service) IsValid() bool {
	for _, known := range AllServices {
		if s == known {
			return true
		}
	}
	return false
}

// Tier is a named service level. It only selects rows in the pricing catalog.
type Tier string

const (
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
	TierDedicated  Tier = "dedicated"
)

// String returns the string representation
func (t Tier) String() string {
	return string(t)
}

// BillingMethod selects between a monthly rate and an hourly rate
type BillingMethod string

const (
	// BillingSubscription charges a fixed monthly rate
	BillingSubscription BillingMethod = "subscription"

	// BillingOnDemand charges an hourly rate for the hours actually used
	BillingOnDemand BillingMethod = "onDemand"
)

// String returns the string representation
func (b BillingMethod) String() string {
	return string(b)
}

// IsValid checks if the billing method is known
func (b BillingMethod) IsValid() bool {
	return b == BillingSubscription || b == BillingOnDemand
}

// Chip is a cloud server CPU family
type Chip string

const (
	ChipAMDGen4   Chip = "amdGen4"
	ChipIntelGen2 Chip = "intelGen2"
)

// DiskType is a storage medium
type DiskType string

const (
	DiskHDD  DiskType = "hdd"
	DiskSSD  DiskType = "ssd"
	DiskNVMe DiskType = "nvme"
)

// StorageClass is a simple storage class
type StorageClass string

const (
	StorageStandard StorageClass = "standard"
	StorageCold     StorageClass = "cold"
)

// Currency represents a currency code
type Currency string

// CurrencyVND is the only currency the catalog is priced in
const CurrencyVND Currency = "VND"

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}
