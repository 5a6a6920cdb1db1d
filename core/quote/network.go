package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cloud-quote/core/catalog"
	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/types"
)

// LoadBalancerConfig configures a load balancer package with optional transfer overage
type LoadBalancerConfig struct {
	Package   string `hcl:"package,optional" json:"package"`
	OverageGB int64  `hcl:"overage_gb,optional" json:"overage_gb"`
	Quantity  int64  `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (l *LoadBalancerConfig) Service() types.Service { return types.ServiceLoadBalancer }

// Quote implements Request
func (l *LoadBalancerConfig) Quote(c *catalog.Catalog) Quote {
	svc := l.Service()
	if c == nil || c.LoadBalancer == nil {
		return missingSection(svc, l.Quantity)
	}
	lb := c.LoadBalancer

	name := l.Package
	if name == "" {
		name = firstOf(lb.Packages).Name
	}
	pkg, ok := lb.Package(name)
	if !ok {
		return unavailable(svc, l.Quantity, "unknown load balancer package %q", name)
	}

	amount := pkg.Price
	desc := fmt.Sprintf("Load Balancer %s: %d connections, %d TB included", pkg.Name, pkg.Connections, pkg.FreeDataTB)
	if overage := primitives.ClampMin(l.OverageGB, 0); overage > 0 {
		amount = amount.Add(lb.OveragePricePerGB.Mul(num(overage)))
		desc += fmt.Sprintf(", %d GB overage", overage)
	}
	return priced(svc, desc, amount, l.Quantity)
}

// WanIPConfig configures public IPv4 addresses
type WanIPConfig struct {
	Billing  types.BillingMethod `hcl:"billing,optional" json:"billing"`
	Quantity int64               `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (w *WanIPConfig) Service() types.Service { return types.ServiceWanIP }

// Quote implements Request
func (w *WanIPConfig) Quote(c *catalog.Catalog) Quote {
	svc := w.Service()
	if c == nil || c.WanIP == nil {
		return missingSection(svc, w.Quantity)
	}
	var price decimal.Decimal
	billing := billingOrDefault(w.Billing)
	switch billing {
	case types.BillingSubscription:
		price = c.WanIP.Subscription
	case types.BillingOnDemand:
		price = c.WanIP.OnDemand
	default:
		return unavailable(svc, w.Quantity, "unknown billing method %q", billing)
	}
	return priced(svc, fmt.Sprintf("WAN IP, %s", billing), price, w.Quantity)
}

// VPNConfig configures a VPN package with optional metered transfer
type VPNConfig struct {
	Package    string `hcl:"package,optional" json:"package"`
	TransferGB int64  `hcl:"transfer_gb,optional" json:"transfer_gb"`
	Quantity   int64  `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (v *VPNConfig) Service() types.Service { return types.ServiceVPN }

// Quote implements Request
func (v *VPNConfig) Quote(c *catalog.Catalog) Quote {
	svc := v.Service()
	if c == nil || c.VPN == nil {
		return missingSection(svc, v.Quantity)
	}
	name := v.Package
	if name == "" {
		name = firstOf(c.VPN.Packages).Name
	}
	pkg, ok := catalog.FindPackage(c.VPN.Packages, name)
	if !ok {
		return unavailable(svc, v.Quantity, "unknown VPN package %q", name)
	}

	amount := pkg.Price
	desc := "VPN " + pkg.Name
	if transfer := primitives.ClampMin(v.TransferGB, 0); transfer > 0 {
		amount = amount.Add(c.VPN.DataTransferPricePerGB.Mul(num(transfer)))
		desc += fmt.Sprintf(", %d GB transfer", transfer)
	}
	return priced(svc, desc, amount, v.Quantity)
}

// WAFConfig configures the web application firewall
type WAFConfig struct {
	// RequestsMillion is monthly requests in millions
	RequestsMillion int64 `hcl:"requests_million,optional" json:"requests_million"`
	TransferGB      int64 `hcl:"transfer_gb,optional" json:"transfer_gb"`
	Quantity        int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (w *WAFConfig) Service() types.Service { return types.ServiceWAF }

// Quote implements Request
func (w *WAFConfig) Quote(c *catalog.Catalog) Quote {
	if c == nil || c.WAF == nil {
		return missingSection(w.Service(), w.Quantity)
	}
	requests := primitives.ClampMin(w.RequestsMillion, 0)
	transfer := primitives.ClampMin(w.TransferGB, 0)

	amount := c.WAF.Subscription.
		Add(c.WAF.RequestsMillion.Mul(num(requests))).
		Add(c.WAF.DataTransferOutboundGB.Mul(num(transfer)))

	desc := fmt.Sprintf("WAF: %dM requests, %d GB outbound", requests, transfer)
	return priced(w.Service(), desc, amount, w.Quantity)
}

// CDNConfig configures CDN egress
type CDNConfig struct {
	TransferGB int64 `hcl:"transfer_gb,optional" json:"transfer_gb"`
	Quantity   int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (d *CDNConfig) Service() types.Service { return types.ServiceCDN }

// Quote implements Request. The whole volume, raised to the minimum commitment,
// is billed at the rate of the band it falls in; the result never drops below
// the minimum price.
func (d *CDNConfig) Quote(c *catalog.Catalog) Quote {
	svc := d.Service()
	if c == nil || c.CDN == nil {
		return missingSection(svc, d.Quantity)
	}
	cdn := c.CDN

	requested := primitives.ClampMin(d.TransferGB, 0)
	effective := decimal.Max(num(requested), cdn.MinGB)

	tiers := make([]primitives.PricingTier, len(cdn.Tiers))
	for i, t := range cdn.Tiers {
		tiers[i] = primitives.PricingTier{UpTo: t.MaxGB, UnitRate: t.PricePerGB}
	}
	rate, ok := primitives.BandRate(effective, tiers)
	if !ok {
		return unavailable(svc, d.Quantity, "no CDN band holds %s GB", effective)
	}

	amount := decimal.Max(effective.Mul(rate), cdn.MinPrice)
	desc := fmt.Sprintf("CDN: %d GB transfer at %s/GB", requested, rate)
	return priced(svc, desc, amount, d.Quantity)
}
