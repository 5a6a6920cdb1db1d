// Package config provides configuration management.
package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"cloud-quote/core/estimate"
	"cloud-quote/internal/errors"
	"cloud-quote/internal/logging"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. CLOUDQUOTE_OUTPUT_FORMAT
	EnvPrefix = "CLOUDQUOTE"

	configDir  = ".cloud-quote"
	configName = "config"
)

// Config is the main application configuration
type Config struct {
	// Catalog selects the pricing catalog
	Catalog CatalogConfig `json:"catalog" mapstructure:"catalog"`

	// Estimate holds default billing terms
	Estimate EstimateConfig `json:"estimate" mapstructure:"estimate"`

	// Output contains output configuration
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// CatalogConfig contains catalog settings
type CatalogConfig struct {
	// Dir is a directory of catalog JSON files. Empty uses the built-in catalog.
	Dir string `json:"dir" mapstructure:"dir"`
}

// EstimateConfig contains default billing terms. A quote file's billing block overrides them.
type EstimateConfig struct {
	BillingCycle    int     `json:"billing_cycle" mapstructure:"billing_cycle"`
	DiscountPercent float64 `json:"discount_percent" mapstructure:"discount_percent"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default output format (cli, json, markdown)
	Format string `json:"format" mapstructure:"format"`

	// Locale controls number formatting (vi, en)
	Locale string `json:"locale" mapstructure:"locale"`

	// NoColor disables terminal styling
	NoColor bool `json:"no_color" mapstructure:"no_color"`

	// Details shows line item IDs
	Details bool `json:"details" mapstructure:"details"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Estimate: EstimateConfig{
			BillingCycle: estimate.DefaultBillingCycle,
		},
		Output: OutputConfig{
			Format: "cli",
			Locale: "vi",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the configuration file used when none is given
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDir, configName+".yaml")
	}
	return filepath.Join(home, configDir, configName+".yaml")
}

// Load loads configuration from path, or from the default location when path
// is empty. A missing file yields the defaults. Environment variables with
// the CLOUDQUOTE_ prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(filepath.Dir(DefaultPath()))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case stderrors.As(err, &notFound), stderrors.Is(err, os.ErrNotExist):
			logging.Debug("no config file, using defaults")
		default:
			return nil, errors.Config("failed to read config file", err).WithContext("path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Config("failed to decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check
func (c *Config) Validate() error {
	if !lo.Contains(estimate.BillingCycles, c.Estimate.BillingCycle) {
		return errors.Newf(errors.TypeConfig, "estimate.billing_cycle must be one of %v", estimate.BillingCycles)
	}
	if c.Estimate.DiscountPercent < 0 || c.Estimate.DiscountPercent > estimate.MaxDiscountPercent {
		return errors.Newf(errors.TypeConfig, "estimate.discount_percent must be between 0 and %d", estimate.MaxDiscountPercent)
	}
	if !lo.Contains([]string{"vi", "en"}, c.Output.Locale) {
		return errors.Newf(errors.TypeConfig, "output.locale must be vi or en, got %q", c.Output.Locale)
	}
	return nil
}

// Save writes the configuration. The format follows the file extension
// (json, yaml, toml).
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Config("failed to create config directory", err)
	}

	v := viper.New()
	if err := v.MergeConfigMap(c.toMap()); err != nil {
		return errors.Config("failed to encode config", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return errors.Config("failed to write config", err).WithContext("path", path)
	}
	return nil
}

// Settings returns the configuration as nested maps keyed like the config file
func (c *Config) Settings() map[string]any {
	return c.toMap()
}

func (c *Config) toMap() map[string]any {
	data, _ := json.Marshal(c)
	out := make(map[string]any)
	_ = json.Unmarshal(data, &out)
	return out
}

func setDefaults(v *viper.Viper, cfg *Config) {
	for key, value := range flatten("", cfg.toMap()) {
		v.SetDefault(key, value)
	}
}

func flatten(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
