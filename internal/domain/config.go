package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultDataFile          = "inventory.json"
	DefaultLogLevel          = "warn"
	DefaultLowStockThreshold = 5
	DefaultRecentLimit       = 10
)

// ValidLogLevels enumerates the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ProjectConfig holds configuration loaded from .stockroom.yaml.
type ProjectConfig struct {
	DataFile          string `yaml:"data_file"           json:"data_file"`
	LogLevel          string `yaml:"log_level"           json:"log_level"`
	LowStockThreshold int    `yaml:"low_stock_threshold" json:"low_stock_threshold"`
	RecentLimit       int    `yaml:"recent_limit"        json:"recent_limit"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		DataFile:          DefaultDataFile,
		LogLevel:          DefaultLogLevel,
		LowStockThreshold: DefaultLowStockThreshold,
		RecentLimit:       DefaultRecentLimit,
	}
}

// WithDefaults fills unset fields from DefaultConfig.
// A zero low_stock_threshold is kept: it means only empty products are low.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if c.DataFile == "" {
		c.DataFile = d.DataFile
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.RecentLimit == 0 {
		c.RecentLimit = d.RecentLimit
	}
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. log_level must be known or empty
	if c.LogLevel != "" {
		valid := false
		for _, l := range ValidLogLevels {
			if strings.EqualFold(c.LogLevel, l) {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
		}
	}

	// 2. thresholds cannot be negative
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("low_stock_threshold must be >= 0 (got %d)", c.LowStockThreshold)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("recent_limit must be >= 0 (got %d)", c.RecentLimit)
	}

	// 3. data_file must name a file, not a directory
	if c.DataFile != "" && (strings.HasSuffix(c.DataFile, "/") || filepath.Base(c.DataFile) == ".") {
		return fmt.Errorf("data_file %q must name a file", c.DataFile)
	}

	return nil
}

// DataPath resolves the data file against dir unless it is already absolute.
func (c ProjectConfig) DataPath(dir string) string {
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(dir, c.DataFile)
}
