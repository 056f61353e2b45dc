package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/abdidvp/stockroom/internal/adapters/outbound/config"
	"github.com/abdidvp/stockroom/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/stockroom/internal/adapters/outbound/history"
	"github.com/abdidvp/stockroom/internal/adapters/outbound/jsonfile"
	"github.com/abdidvp/stockroom/internal/application"
	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// globalFlags are shared by every command through the root's persistent flags.
type globalFlags struct {
	file      string
	configDir string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "stockroom",
		Short:         "Keep a small shop's stock in a JSON file",
		Long:          "Stockroom tracks electronics, groceries and clothing: stock levels, prices, expiry dates and total inventory value, persisted to a single JSON file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.file, "file", "f", "", "Inventory data file (overrides data_file from .stockroom.yaml)")
	cmd.PersistentFlags().StringVar(&g.configDir, "config", ".", "Directory containing .stockroom.yaml")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newAddCmd(g))
	cmd.AddCommand(newRemoveCmd(g))
	cmd.AddCommand(newSellCmd(g))
	cmd.AddCommand(newRestockCmd(g))
	cmd.AddCommand(newRepriceCmd(g))
	cmd.AddCommand(newPurgeExpiredCmd(g))
	cmd.AddCommand(newListCmd(g))
	cmd.AddCommand(newSearchCmd(g))
	cmd.AddCommand(newShowCmd(g))
	cmd.AddCommand(newValueCmd(g))
	cmd.AddCommand(newDashboardCmd(g))
	cmd.AddCommand(newHistoryCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// loadConfig reads .stockroom.yaml from the config directory and applies
// flag overrides.
func loadConfig(g *globalFlags) (domain.ProjectConfig, error) {
	var loader domain.ConfigLoader = config.New()
	cfg, err := loader.Load(g.configDir)
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
		if err := cfg.Validate(); err != nil {
			return domain.ProjectConfig{}, err
		}
	}
	return cfg, nil
}

// openService wires the inventory service for one command invocation and
// loads the data file.
func openService(cmd *cobra.Command, g *globalFlags) (*application.InventoryService, domain.ProjectConfig, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, cfg, err
	}

	path := cfg.DataPath(g.configDir)
	if g.file != "" {
		path = g.file
	}
	path, err = jsonfile.NormalizePath(path)
	if err != nil {
		return nil, cfg, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	svc := application.NewInventoryService(jsonfile.New(logger), history.New(), gitinfo.New(), path, logger)
	if err := svc.Open(); err != nil {
		return nil, cfg, err
	}
	return svc, cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: toLevel(level)}))
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
