package quote

import (
	"fmt"

	"cloud-quote/core/catalog"
	"cloud-quote/core/pricing/primitives"
	"cloud-quote/core/types"
)

// KubernetesConfig configures a managed Kubernetes control plane
type KubernetesConfig struct {
	Plan     string `hcl:"plan,optional" json:"plan"`
	Package  string `hcl:"package,optional" json:"package"`
	Quantity int64  `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (k *KubernetesConfig) Service() types.Service { return types.ServiceKubernetes }

// OnPlanChange switches plan and resets the package to the plan's first.
func (k *KubernetesConfig) OnPlanChange(c *catalog.Catalog, plan string) {
	k.Plan = plan
	if c == nil || c.Kubernetes == nil {
		return
	}
	if p, ok := c.Kubernetes.Plan(plan); ok {
		k.Package = firstOf(p.Packages).Name
	}
}

// Quote implements Request
func (k *KubernetesConfig) Quote(c *catalog.Catalog) Quote {
	svc := k.Service()
	if c == nil || c.Kubernetes == nil {
		return missingSection(svc, k.Quantity)
	}
	planName := k.Plan
	if planName == "" {
		planName = firstOf(c.Kubernetes.PlanNames())
	}
	plan, ok := c.Kubernetes.Plan(planName)
	if !ok {
		return unavailable(svc, k.Quantity, "unknown kubernetes plan %q", planName)
	}
	name := k.Package
	if name == "" {
		name = firstOf(plan.Packages).Name
	}
	pkg, ok := plan.Package(name)
	if !ok {
		return unavailable(svc, k.Quantity, "kubernetes plan %s has no package %q", planName, name)
	}

	desc := fmt.Sprintf("Kubernetes %s", pkg.Name)
	if pkg.MaxNodes > 0 {
		desc += fmt.Sprintf(": up to %d nodes, %d GB RAM", pkg.MaxNodes, pkg.RAM)
	}
	return priced(svc, desc, pkg.Price, k.Quantity)
}

// CallCenterConfig configures a call center package
type CallCenterConfig struct {
	Package  string `hcl:"package,optional" json:"package"`
	Quantity int64  `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (cc *CallCenterConfig) Service() types.Service { return types.ServiceCallCenter }

// Quote implements Request
func (cc *CallCenterConfig) Quote(c *catalog.Catalog) Quote {
	svc := cc.Service()
	if c == nil || c.CallCenter == nil {
		return missingSection(svc, cc.Quantity)
	}
	name := cc.Package
	if name == "" {
		name = firstOf(c.CallCenter.Packages).Name
	}
	pkg, ok := catalog.FindPackage(c.CallCenter.Packages, name)
	if !ok {
		return unavailable(svc, cc.Quantity, "unknown call center package %q", name)
	}
	desc := "Call Center " + pkg.Name
	if pkg.Details != "" {
		desc += ": " + pkg.Details
	}
	return priced(svc, desc, pkg.Price, cc.Quantity)
}

// BusinessEmailConfig configures a hosted mailbox package
type BusinessEmailConfig struct {
	Package  int64 `hcl:"package,optional" json:"package"`
	Quantity int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (b *BusinessEmailConfig) Service() types.Service { return types.ServiceBusinessEmail }

// Quote implements Request
func (b *BusinessEmailConfig) Quote(c *catalog.Catalog) Quote {
	svc := b.Service()
	if c == nil || c.BusinessEmail == nil {
		return missingSection(svc, b.Quantity)
	}
	id := b.Package
	if id == 0 {
		id = firstOf(c.BusinessEmail.Packages).ID
	}
	pkg, ok := c.BusinessEmail.Package(id)
	if !ok {
		return unavailable(svc, b.Quantity, "unknown business email package %d", id)
	}
	desc := fmt.Sprintf("Business Email package %d: %d GB, %d emails/day", pkg.ID, pkg.StorageGB, pkg.EmailsPerDay)
	return priced(svc, desc, pkg.Price, b.Quantity)
}

// Email transaction sending modes
const (
	EmailShared    = "shared"
	EmailDedicated = "dedicated"
)

// EmailTransactionConfig configures transactional email: metered on a shared
// pool or a dedicated plan.
type EmailTransactionConfig struct {
	Mode           string `hcl:"mode,optional" json:"mode"`
	EmailsPerMonth int64  `hcl:"emails_per_month,optional" json:"emails_per_month"`
	Plan           string `hcl:"plan,optional" json:"plan"`
	Quantity       int64  `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (e *EmailTransactionConfig) Service() types.Service { return types.ServiceEmailTransaction }

// OnModeChange switches mode; entering dedicated mode selects the first plan.
func (e *EmailTransactionConfig) OnModeChange(c *catalog.Catalog, mode string) {
	e.Mode = mode
	if mode == EmailDedicated && c != nil && c.Email != nil {
		e.Plan = firstOf(c.Email.Dedicated).Name
	}
}

// Quote implements Request
func (e *EmailTransactionConfig) Quote(c *catalog.Catalog) Quote {
	svc := e.Service()
	if c == nil || c.Email == nil {
		return missingSection(svc, e.Quantity)
	}
	switch e.Mode {
	case "", EmailShared:
		emails := primitives.ClampMin(e.EmailsPerMonth, 0)
		amount := c.Email.SharedPricePerEmail.Mul(num(emails))
		return priced(svc, fmt.Sprintf("Email Transaction shared: %d emails/month", emails), amount, e.Quantity)
	case EmailDedicated:
		name := e.Plan
		if name == "" {
			name = firstOf(c.Email.Dedicated).Name
		}
		pkg, ok := c.Email.Package(name)
		if !ok {
			return unavailable(svc, e.Quantity, "unknown email plan %q", name)
		}
		return priced(svc, fmt.Sprintf("Email Transaction %s: %d emails/day", pkg.Name, pkg.EmailsPerDay), pkg.Price, e.Quantity)
	default:
		return unavailable(svc, e.Quantity, "unknown email mode %q", e.Mode)
	}
}

// LMSConfig configures a learning management package with extra storage
type LMSConfig struct {
	Package           string `hcl:"package,optional" json:"package"`
	AdditionalStorage int64  `hcl:"additional_storage,optional" json:"additional_storage"`
	Quantity          int64  `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (l *LMSConfig) Service() types.Service { return types.ServiceLMS }

// Quote implements Request. Extra storage is sold in whole blocks.
func (l *LMSConfig) Quote(c *catalog.Catalog) Quote {
	svc := l.Service()
	if c == nil || c.LMS == nil {
		return missingSection(svc, l.Quantity)
	}
	name := l.Package
	if name == "" {
		name = firstOf(c.LMS.Packages).Name
	}
	pkg, ok := c.LMS.Package(name)
	if !ok {
		return unavailable(svc, l.Quantity, "unknown LMS package %q", name)
	}

	amount := pkg.Price
	desc := fmt.Sprintf("LMS %s: %d CCU, %d GB included", pkg.Name, pkg.CCU, pkg.FreeStorageGB)
	extra := primitives.ClampMin(l.AdditionalStorage, 0)
	if blocks := primitives.Blocks(extra, c.LMS.AdditionalStorage.BlockSizeGB); blocks > 0 {
		amount = amount.Add(c.LMS.AdditionalStorage.PricePerBlock.Mul(num(blocks)))
		desc += fmt.Sprintf(", +%d GB storage", extra)
	}
	return priced(svc, desc, amount, l.Quantity)
}

// CloudVPSConfig configures a fixed VPS bundle
type CloudVPSConfig struct {
	Package  int64 `hcl:"package,optional" json:"package"`
	Quantity int64 `hcl:"quantity,optional" json:"quantity"`
}

// Service implements Request
func (v *CloudVPSConfig) Service() types.Service { return types.ServiceCloudVPS }

// Quote implements Request
func (v *CloudVPSConfig) Quote(c *catalog.Catalog) Quote {
	svc := v.Service()
	if c == nil || c.CloudVPS == nil {
		return missingSection(svc, v.Quantity)
	}
	id := v.Package
	if id == 0 {
		id = firstOf(c.CloudVPS.Packages).ID
	}
	pkg, ok := c.CloudVPS.Package(id)
	if !ok {
		return unavailable(svc, v.Quantity, "unknown VPS package %d", id)
	}
	desc := fmt.Sprintf("Cloud VPS: %d vCPU, %d GB RAM, %d GB SSD", pkg.CPU, pkg.RAM, pkg.SSD)
	return priced(svc, desc, pkg.Price, v.Quantity)
}
