package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-quote/internal/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  dir: /srv/catalog
estimate:
  billing_cycle: 12
  discount_percent: 15
output:
  format: markdown
  locale: en
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/catalog", cfg.Catalog.Dir)
	assert.Equal(t, 12, cfg.Estimate.BillingCycle)
	assert.Equal(t, 15.0, cfg.Estimate.DiscountPercent)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Equal(t, "en", cfg.Output.Locale)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CLOUDQUOTE_OUTPUT_FORMAT", "json")
	t.Setenv("CLOUDQUOTE_ESTIMATE_BILLING_CYCLE", "6")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 6, cfg.Estimate.BillingCycle)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"billing cycle", "estimate:\n  billing_cycle: 5\n"},
		{"discount", "estimate:\n  billing_cycle: 3\n  discount_percent: 95\n"},
		{"locale", "output:\n  locale: fr\n"},
		{"malformed", "output: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, ext := range []string{"yaml", "json", "toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "config."+ext)

			cfg := Default()
			cfg.Catalog.Dir = "/tmp/catalog"
			cfg.Estimate.BillingCycle = 24
			cfg.Output.Details = true
			require.NoError(t, cfg.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSettings(t *testing.T) {
	settings := Default().Settings()
	output, ok := settings["output"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cli", output["format"])
}

func TestGlobal(t *testing.T) {
	prev := Get()
	defer Set(prev)

	cfg := Default()
	cfg.Output.Locale = "en"
	Set(cfg)
	assert.Equal(t, "en", Get().Output.Locale)
}
