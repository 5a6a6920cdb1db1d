// Package quote prices a single service configuration against a catalog.
//
// Every quote function is pure: the catalog is passed in, nothing is cached, and
// a configuration the catalog cannot price yields a zero-price Quote carrying the
// reason instead of an error.
package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cloud-quote/core/catalog"
	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/types"
	"cloud-quote/internal/logging"
)

// Request is a configured service that can be priced
type Request interface {
	// Service identifies the service being configured
	Service() types.Service

	// Quote prices the configuration
	Quote(c *catalog.Catalog) Quote
}

// Quote is the priced result of one configuration
type Quote struct {
	Service     types.Service `json:"service"`
	Description string        `json:"description"`
	UnitPrice   int64         `json:"unit_price"`
	Quantity    int64         `json:"quantity"`

	// Unavailable explains why the configuration has no price. Empty when priced.
	Unavailable string `json:"unavailable,omitempty"`
}

// Addable reports whether the quote may become a line item
func (q Quote) Addable() bool {
	return q.Unavailable == "" && q.UnitPrice > 0
}

// Total returns UnitPrice × Quantity
func (q Quote) Total() int64 {
	return q.UnitPrice * q.Quantity
}

// LineItem converts the quote to an estimate line item. The ledger assigns the ID.
func (q Quote) LineItem() types.LineItem {
	return types.LineItem{
		Service:     q.Service,
		Description: q.Description,
		UnitPrice:   q.UnitPrice,
		Quantity:    q.Quantity,
	}
}

func priced(service types.Service, description string, amount decimal.Decimal, quantity int64) Quote {
	return Quote{
		Service:     service,
		Description: description,
		UnitPrice:   primitives.Round(amount),
		Quantity:    primitives.ClampMin(quantity, 1),
	}
}

func unavailable(service types.Service, quantity int64, format string, args ...any) Quote {
	reason := fmt.Sprintf(format, args...)
	logging.Warn("no price available",
		logging.Service(service.String()),
		zap.String("reason", reason),
	)
	return Quote{
		Service:     service,
		Quantity:    primitives.ClampMin(quantity, 1),
		Unavailable: reason,
	}
}

func missingSection(service types.Service, quantity int64) Quote {
	return unavailable(service, quantity, "catalog has no %s pricing", service)
}

// New returns an empty configuration for a service. Empty selections resolve to
// the first option the catalog offers when quoted.
func New(service types.Service) (Request, bool) {
	switch service {
	case types.ServiceCloudServer:
		return &CloudServerConfig{}, true
	case types.ServiceBlockStorage:
		return &BlockStorageConfig{}, true
	case types.ServiceSnapshot:
		return &SnapshotConfig{}, true
	case types.ServiceDatabase:
		return &DatabaseConfig{}, true
	case types.ServiceSimpleStorage:
		return &SimpleStorageConfig{}, true
	case types.ServiceLoadBalancer:
		return &LoadBalancerConfig{}, true
	case types.ServiceKubernetes:
		return &KubernetesConfig{}, true
	case types.ServiceKafka:
		return &KafkaConfig{}, true
	case types.ServiceCallCenter:
		return &CallCenterConfig{}, true
	case types.ServiceBusinessEmail:
		return &BusinessEmailConfig{}, true
	case types.ServiceEmailTransaction:
		return &EmailTransactionConfig{}, true
	case types.ServiceLMS:
		return &LMSConfig{}, true
	case types.ServiceWanIP:
		return &WanIPConfig{}, true
	case types.ServiceBackupSchedule:
		return &BackupScheduleConfig{}, true
	case types.ServiceCustomImage:
		return &CustomImageConfig{}, true
	case types.ServiceCloudVPS:
		return &CloudVPSConfig{}, true
	case types.ServiceVPN:
		return &VPNConfig{}, true
	case types.ServiceWAF:
		return &WAFConfig{}, true
	case types.ServiceCDN:
		return &CDNConfig{}, true
	case types.ServiceContainerRegistry:
		return &ContainerRegistryConfig{}, true
	default:
		return nil, false
	}
}

// hours returns the on-demand hours requested, a full month when unset.
// At least one hour is billed.
func hours(h *int64) decimal.Decimal {
	if h == nil {
		return decimal.NewFromInt(primitives.HoursPerMonth)
	}
	return primitives.EffectiveHours(num(primitives.ClampMin(*h, minHours)))
}

func num(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func billingOrDefault(b types.BillingMethod) types.BillingMethod {
	if b == "" {
		return types.BillingSubscription
	}
	return b
}

func billingLabel(b types.BillingMethod, h decimal.Decimal) string {
	if b == types.BillingOnDemand {
		return fmt.Sprintf("on-demand %sh", h)
	}
	return "subscription"
}
