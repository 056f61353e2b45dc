package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/stockroom/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the working directory.
const FileName = ".stockroom.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .stockroom.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .stockroom.yaml from dir.
// Returns DefaultConfig if the file does not exist; keys absent from the file
// keep their default values.
func (l *YAMLLoader) Load(dir string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg.WithDefaults(), nil
}
