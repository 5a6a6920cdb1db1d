package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cloud-quote/core/catalog"
	"cloud-quote/core/types"
	"cloud-quote/internal/logging"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func int64p(v int64) *int64 { return &v }
func boolp(v bool) *bool    { return &v }

func TestQuotePrices(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		name string
		req  Request
		want int64
	}{
		{
			name: "amd subscription linear",
			req:  &CloudServerConfig{Chip: types.ChipAMDGen4, Tier: types.TierPremium, CPU: 2, RAM: 4, DiskType: types.DiskSSD, DiskSize: 100},
			want: 280000 + 340000 + 700000,
		},
		{
			name: "amd on demand with stopped hours",
			req: &CloudServerConfig{
				Chip: types.ChipAMDGen4, Tier: types.TierPremium, Billing: types.BillingOnDemand,
				CPU: 1, RAM: 1, DiskType: types.DiskSSD, DiskSize: 10,
				Hours: int64p(100), StoppedHours: 50,
			},
			// (292+177)×100 + (58+35)×50 + 12.6×10×150
			want: 46900 + 4650 + 18900,
		},
		{
			name: "intel subscription uses tier disk",
			req:  &CloudServerConfig{Chip: types.ChipIntelGen2, Tier: types.TierBasic, CPU: 1, RAM: 1, DiskType: types.DiskHDD, DiskSize: 10},
			want: 35000 + 60000 + 10910,
		},
		{
			name: "intel on demand full month",
			req:  &CloudServerConfig{Chip: types.ChipIntelGen2, Tier: types.TierBasic, Billing: types.BillingOnDemand, CPU: 1, RAM: 1, DiskType: types.DiskHDD, DiskSize: 10},
			want: (75+128)*730 + 2*10*730,
		},
		{
			name: "server with attached disks",
			req: &CloudServerConfig{
				Chip: types.ChipAMDGen4, Tier: types.TierPremium, CPU: 1, RAM: 1, DiskType: types.DiskHDD, DiskSize: 10,
				Disks: []AttachedDisk{{Type: types.DiskSSD, Size: 150, Quantity: 2}},
			},
			want: 140000 + 85000 + 20000 + 2*930000,
		},
		{
			name: "block storage on demand",
			req:  &BlockStorageConfig{Tier: types.TierPremium, Billing: types.BillingOnDemand, DiskType: types.DiskHDD, Size: 200, Hours: int64p(100)},
			want: 54000,
		},
		{
			name: "block storage clamps size",
			req:  &BlockStorageConfig{Tier: types.TierPremium, DiskType: types.DiskSSD, Size: -4},
			want: 70000,
		},
		{
			name: "snapshot share of volume",
			req:  &SnapshotConfig{Tier: types.TierPremium, DiskType: types.DiskSSD, Size: 150},
			want: 186000,
		},
		{
			name: "database defaults",
			req:  &DatabaseConfig{},
			want: 525 * 730,
		},
		{
			name: "database backup",
			req:  &DatabaseConfig{Tier: types.TierPremium, CPU: 2, RAM: 4, BackupGB: 100},
			want: 605 * 730,
		},
		{
			name: "kafka with wan ip",
			req:  &KafkaConfig{},
			want: 180000 + 150000 + 46000 + 100000,
		},
		{
			name: "kafka without wan ip",
			req:  &KafkaConfig{WanIP: boolp(false)},
			want: 180000 + 150000 + 46000,
		},
		{
			name: "simple storage package",
			req:  &SimpleStorageConfig{StorageClass: types.StorageCold, Package: 5120},
			want: 1400000,
		},
		{
			name: "simple storage pay as you go",
			req:  &SimpleStorageConfig{Model: SimpleStoragePayAsYouGo, StorageGB: 100, TransferGB: 10},
			want: 73000 + 20000,
		},
		{
			name: "load balancer overage",
			req:  &LoadBalancerConfig{Package: "Small", OverageGB: 100},
			want: 528000,
		},
		{
			name: "kubernetes package",
			req:  &KubernetesConfig{Plan: "everywhere", Package: "Everywhere-2"},
			want: 3000000,
		},
		{
			name: "call center",
			req:  &CallCenterConfig{Package: "V20"},
			want: 500000,
		},
		{
			name: "business email",
			req:  &BusinessEmailConfig{Package: 4},
			want: 460000,
		},
		{
			name: "shared email",
			req:  &EmailTransactionConfig{EmailsPerMonth: 1000},
			want: 3500,
		},
		{
			name: "dedicated email default plan",
			req:  &EmailTransactionConfig{Mode: EmailDedicated},
			want: 900000,
		},
		{
			name: "lms extra storage rounds up to blocks",
			req:  &LMSConfig{Package: "Pack 10 CCU", AdditionalStorage: 150},
			want: 1380000 + 2*800000,
		},
		{
			name: "wan ip on demand",
			req:  &WanIPConfig{Billing: types.BillingOnDemand},
			want: 100000,
		},
		{
			name: "backup schedule",
			req:  &BackupScheduleConfig{},
			want: 50000,
		},
		{
			name: "custom image",
			req:  &CustomImageConfig{SizeGB: 20},
			want: 20000,
		},
		{
			name: "cloud vps default package",
			req:  &CloudVPSConfig{},
			want: 99000,
		},
		{
			name: "vpn with transfer",
			req:  &VPNConfig{Package: "VPN-50", TransferGB: 100},
			want: 1550000,
		},
		{
			name: "waf",
			req:  &WAFConfig{RequestsMillion: 10, TransferGB: 100},
			want: 2350000,
		},
		{
			name: "cdn minimum price",
			req:  &CDNConfig{},
			want: 100000,
		},
		{
			name: "cdn volume band",
			req:  &CDNConfig{TransferGB: 20000},
			want: 20000 * 550,
		},
		{
			name: "container registry",
			req:  &ContainerRegistryConfig{StorageGB: 100, TransferGB: 10},
			want: 182500 + 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.req.Quote(c)
			require.Empty(t, q.Unavailable)
			assert.Equal(t, tt.want, q.UnitPrice)
			assert.Equal(t, int64(1), q.Quantity)
			assert.Equal(t, tt.req.Service(), q.Service)
			assert.NotEmpty(t, q.Description)
			assert.True(t, q.Addable())
		})
	}
}

func TestQuoteUnavailable(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown chip", &CloudServerConfig{Chip: "armGen1"}},
		{"tier outside chip", &CloudServerConfig{Chip: types.ChipAMDGen4, Tier: types.TierBasic}},
		{"cpu missing from table", &CloudServerConfig{Chip: types.ChipIntelGen2, Tier: types.TierBasic, CPU: 5, RAM: 1}},
		{"disk type outside tier", &BlockStorageConfig{Tier: types.TierEnterprise, DiskType: types.DiskHDD}},
		{"unknown database tier", &DatabaseConfig{Tier: types.TierBasic}},
		{"unknown storage package", &SimpleStorageConfig{Package: 777}},
		{"unknown email mode", &EmailTransactionConfig{Mode: "bulk"}},
		{"unknown vps", &CloudVPSConfig{Package: 99}},
		{"unknown kubernetes package", &KubernetesConfig{Plan: "everywhere", Package: "Standard-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.req.Quote(c)
			assert.NotEmpty(t, q.Unavailable)
			assert.Zero(t, q.UnitPrice)
			assert.False(t, q.Addable())
		})
	}
}

func TestQuoteMissingCatalogSection(t *testing.T) {
	empty := &catalog.Catalog{}
	for _, svc := range types.AllServices {
		t.Run(svc.String(), func(t *testing.T) {
			req, ok := New(svc)
			require.True(t, ok)
			assert.Equal(t, svc, req.Service())

			q := req.Quote(empty)
			assert.Contains(t, q.Unavailable, "catalog has no")
			assert.Zero(t, q.UnitPrice)
			assert.False(t, q.Addable())

			assert.False(t, req.Quote(nil).Addable())
		})
	}
}

func TestNewUnknownService(t *testing.T) {
	_, ok := New("mainframe")
	assert.False(t, ok)
}

func TestUnavailableLogsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	restore := logging.Replace(zap.New(core))
	defer restore()

	q := (&CloudVPSConfig{Package: 42}).Quote(loadCatalog(t))
	require.NotEmpty(t, q.Unavailable)

	entries := logs.FilterMessage("no price available").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cloud_vps", entries[0].ContextMap()["service"])
}

func TestFreeKubernetesPackageNotAddable(t *testing.T) {
	q := (&KubernetesConfig{}).Quote(loadCatalog(t))
	assert.Empty(t, q.Unavailable)
	assert.Equal(t, "Kubernetes Standard-0", q.Description)
	assert.Zero(t, q.UnitPrice)
	assert.False(t, q.Addable())
}

func TestQuantity(t *testing.T) {
	c := loadCatalog(t)

	q := (&CloudVPSConfig{Package: 2, Quantity: 3}).Quote(c)
	assert.Equal(t, int64(3), q.Quantity)
	assert.Equal(t, int64(447000), q.Total())

	item := q.LineItem()
	assert.Equal(t, types.ServiceCloudVPS, item.Service)
	assert.Equal(t, q.Description, item.Description)
	assert.Empty(t, item.ID)

	q = (&CloudVPSConfig{Package: 2, Quantity: -1}).Quote(c)
	assert.Equal(t, int64(1), q.Quantity)
}

func TestStoppedHoursCappedByMonth(t *testing.T) {
	c := loadCatalog(t)
	base := CloudServerConfig{
		Chip: types.ChipAMDGen4, Tier: types.TierPremium, Billing: types.BillingOnDemand,
		CPU: 1, RAM: 1, DiskType: types.DiskHDD, DiskSize: 10, Hours: int64p(700),
	}
	capped := base
	capped.StoppedHours = 30
	over := base
	over.StoppedHours = 500

	assert.Equal(t, capped.Quote(c).UnitPrice, over.Quote(c).UnitPrice)
}

func TestOnDemandHoursClampToOne(t *testing.T) {
	c := loadCatalog(t)
	server := func(h int64) Request {
		return &CloudServerConfig{
			Chip: types.ChipAMDGen4, Tier: types.TierPremium, Billing: types.BillingOnDemand,
			CPU: 1, RAM: 1, DiskType: types.DiskHDD, DiskSize: 10, Hours: int64p(h),
		}
	}
	volume := func(h int64) Request {
		return &BlockStorageConfig{Tier: types.TierPremium, Billing: types.BillingOnDemand, DiskType: types.DiskSSD, Size: 100, Hours: int64p(h)}
	}

	tests := []struct {
		name  string
		build func(int64) Request
	}{
		{"cloud server", server},
		{"block storage", volume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oneHour := tt.build(1).Quote(c)
			require.True(t, oneHour.Addable())

			for _, h := range []int64{0, -5} {
				q := tt.build(h).Quote(c)
				assert.True(t, q.Addable(), "hours %d", h)
				assert.Equal(t, oneHour.UnitPrice, q.UnitPrice, "hours %d", h)
			}
		})
	}
}

func TestSnapshotFollowsBlockStorageTable(t *testing.T) {
	c := loadCatalog(t)
	snapshot := &SnapshotConfig{Tier: types.TierPremium, DiskType: types.DiskSSD, Size: 150}
	volume := &BlockStorageConfig{Tier: types.TierPremium, DiskType: types.DiskSSD, Size: 150}

	before := snapshot.Quote(c)
	assert.Equal(t, int64(186000), before.UnitPrice)

	tier, ok := c.BlockStorage.Tier(types.TierPremium)
	require.True(t, ok)
	rate := tier.Subscription[types.DiskSSD]
	rate.PriceBelow = decimal.NewFromInt(14000)
	tier.Subscription[types.DiskSSD] = rate

	after := snapshot.Quote(c)
	block := volume.Quote(c)
	assert.Equal(t, int64(1630000), block.UnitPrice)

	want := decimal.NewFromInt(block.UnitPrice).Mul(c.Snapshot.CostPercentageOfBlockStorage).Round(0).IntPart()
	assert.Equal(t, want, after.UnitPrice)
	assert.Equal(t, int64(326000), after.UnitPrice)
}

func TestTransitions(t *testing.T) {
	c := loadCatalog(t)

	t.Run("server tier resets resources", func(t *testing.T) {
		s := &CloudServerConfig{Chip: types.ChipIntelGen2, Tier: types.TierBasic, CPU: 12, RAM: 24}
		s.OnTierChange(c, types.TierPremium)
		assert.Equal(t, types.TierPremium, s.Tier)
		assert.Equal(t, int64(1), s.CPU)
		assert.Equal(t, int64(1), s.RAM)
		assert.Equal(t, types.DiskHDD, s.DiskType)
		assert.True(t, s.Quote(c).Addable())
	})

	t.Run("chip change falls back to first tier", func(t *testing.T) {
		s := &CloudServerConfig{Chip: types.ChipIntelGen2, Tier: types.TierBasic, CPU: 1, RAM: 1}
		s.OnChipChange(c, types.ChipAMDGen4)
		assert.Equal(t, types.TierPremium, s.Tier)
		assert.True(t, s.Quote(c).Addable())
	})

	t.Run("billing change keeps a priced server", func(t *testing.T) {
		s := &CloudServerConfig{Chip: types.ChipIntelGen2, Tier: types.TierBasic}
		s.OnBillingChange(c, types.BillingOnDemand)
		assert.Equal(t, types.BillingOnDemand, s.Billing)
		assert.True(t, s.Quote(c).Addable())
	})

	t.Run("attached disks", func(t *testing.T) {
		s := &CloudServerConfig{Chip: types.ChipAMDGen4, Tier: types.TierPremium}
		s.AddDisk(c)
		s.AddDisk(c)
		require.Len(t, s.Disks, 2)
		assert.Equal(t, types.DiskHDD, s.Disks[0].Type)

		s.RemoveDisk(5)
		assert.Len(t, s.Disks, 2)
		s.RemoveDisk(0)
		assert.Len(t, s.Disks, 1)
	})

	t.Run("block storage tier drops missing disk type", func(t *testing.T) {
		b := &BlockStorageConfig{Tier: types.TierPremium, DiskType: types.DiskHDD}
		b.OnTierChange(c, types.TierEnterprise)
		assert.Equal(t, types.DiskSSD, b.DiskType)
		assert.True(t, b.Quote(c).Addable())
	})

	t.Run("snapshot tier drops missing disk type", func(t *testing.T) {
		s := &SnapshotConfig{Tier: types.TierPremium, DiskType: types.DiskHDD}
		s.OnTierChange(c, types.TierEnterprise)
		assert.Equal(t, types.DiskSSD, s.DiskType)
	})

	t.Run("database tier resets resources", func(t *testing.T) {
		d := &DatabaseConfig{Tier: types.TierPremium, CPU: 8, RAM: 16}
		d.OnTierChange(c, types.TierEnterprise)
		assert.Equal(t, int64(4), d.CPU)
		assert.Equal(t, int64(16), d.RAM)
	})

	t.Run("kubernetes plan resets package", func(t *testing.T) {
		k := &KubernetesConfig{Plan: "standard", Package: "Standard-1"}
		k.OnPlanChange(c, "everywhere")
		assert.Equal(t, "Everywhere-1", k.Package)
	})

	t.Run("storage class resets package", func(t *testing.T) {
		s := &SimpleStorageConfig{StorageClass: types.StorageStandard, Package: 500}
		s.OnStorageClassChange(c, types.StorageCold)
		assert.Equal(t, int64(1024), s.Package)
	})

	t.Run("email mode selects first plan", func(t *testing.T) {
		e := &EmailTransactionConfig{}
		e.OnModeChange(c, EmailDedicated)
		assert.Equal(t, "ET20", e.Plan)
	})
}
