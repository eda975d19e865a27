// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"freight-quote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// DataDir is the directory holding the master tables
	DataDir string `json:"data_dir"`

	// Company is the default company name for report labeling
	Company string `json:"company"`

	// FixedCosts contains the monthly fixed-cost budgets
	FixedCosts FixedCostConfig `json:"fixed_costs"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// FixedCostConfig contains the fixed monthly budgets that enter the
// profitability computation. Both are per-run overridable so estimates
// stay testable without editing module constants.
type FixedCostConfig struct {
	// InHouseMonthly is the fixed monthly in-house operating cost
	InHouseMonthly decimal.Decimal `json:"in_house_monthly"`

	// FirstMileMonthly is the fixed monthly first-mile budget,
	// amortized equally across the shipments of a batch
	FirstMileMonthly decimal.Decimal `json:"first_mile_monthly"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json, csv)
	DefaultFormat string `json:"default_format"`

	// Directory is where report files are written
	Directory string `json:"directory"`

	// ShowDetails shows the per-shipment result table on the CLI
	ShowDetails bool `json:"show_details"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		DataDir: "data",
		Company: "",
		FixedCosts: FixedCostConfig{
			InHouseMonthly:   decimal.New(2_000_000, 0),
			FirstMileMonthly: decimal.New(2_000_000, 0),
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			Directory:     ".",
			ShowDetails:   true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set replaces the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
