package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "inventory.json", cfg.DataFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, 10, cfg.RecentLimit)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.ProjectConfig
		want string
	}{
		{"log level", domain.ProjectConfig{LogLevel: "verbose"}, "unknown log_level"},
		{"threshold", domain.ProjectConfig{LowStockThreshold: -1}, "low_stock_threshold"},
		{"recent", domain.ProjectConfig{RecentLimit: -1}, "recent_limit"},
		{"directory", domain.ProjectConfig{DataFile: "data/"}, "must name a file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestValidate_LogLevelIgnoresCase(t *testing.T) {
	assert.NoError(t, domain.ProjectConfig{LogLevel: "DEBUG"}.Validate())
}

func TestWithDefaults(t *testing.T) {
	cfg := domain.ProjectConfig{LowStockThreshold: 0}.WithDefaults()
	assert.Equal(t, "inventory.json", cfg.DataFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 10, cfg.RecentLimit)
	assert.Zero(t, cfg.LowStockThreshold)
}

func TestDataPath(t *testing.T) {
	cfg := domain.ProjectConfig{DataFile: "stock.json"}
	assert.Equal(t, filepath.Join("/srv/shop", "stock.json"), cfg.DataPath("/srv/shop"))

	abs := domain.ProjectConfig{DataFile: "/var/data/stock.json"}
	assert.Equal(t, "/var/data/stock.json", abs.DataPath("/srv/shop"))
}
