package cli

import (
	"fmt"
	"time"

	"github.com/abdidvp/stockroom/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

func newDashboardCmd(g *globalFlags) *cobra.Command {
	var (
		jsonFlag bool
		lowStock int
		recent   int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarise the inventory",
		Long:  "Show product counts and value per type, expired groceries, low stock and the most recently added products.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := openService(cmd, g)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("low-stock") {
				lowStock = cfg.LowStockThreshold
			}
			if !cmd.Flags().Changed("recent") {
				recent = cfg.RecentLimit
			}

			report := svc.Report(lowStock, recent)
			if jsonFlag {
				return printJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDashboard(report, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&lowStock, "low-stock", 0, "Stock level at or below which a product is flagged (default from config)")
	cmd.Flags().IntVar(&recent, "recent", 0, "Number of recent products to show (default from config)")
	return cmd
}

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the save journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			entries, err := svc.History()
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}
			if jsonFlag {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	return cmd
}
