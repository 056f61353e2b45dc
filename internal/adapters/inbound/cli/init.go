package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/stockroom/internal/adapters/outbound/config"
	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd() *cobra.Command {
	var (
		dataFile string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .stockroom.yaml configuration file",
		Long:  "Create a .stockroom.yaml with default settings in dir (default: current directory).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			if dataFile != "" {
				cfg.DataFile = dataFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			content, err := generateConfig(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data-file", "", "Inventory data file relative to the config directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .stockroom.yaml")

	return cmd
}

func generateConfig(cfg domain.ProjectConfig) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	header := "# Stockroom configuration\n# log_level: debug, info, warn or error\n\n"
	return append([]byte(header), body...), nil
}
