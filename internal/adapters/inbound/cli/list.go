package cli

import (
	"fmt"
	"time"

	"github.com/abdidvp/stockroom/internal/adapters/outbound/tui"
	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	var (
		kind     string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}

			products := svc.List()
			if kind != "" {
				k, err := domain.ParseKind(kind)
				if err != nil {
					return err
				}
				products = svc.SearchByKind(k)
			}
			return writeProducts(cmd, products, jsonFlag)
		},
	}

	cmd.Flags().StringVar(&kind, "type", "", "Only list one product type (electronics, grocery, clothing)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	return cmd
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find products whose name contains text (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			return writeProducts(cmd, svc.SearchByName(args[0]), jsonFlag)
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			p, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			if jsonFlag {
				return printJSON(cmd.OutOrStdout(), domain.Encode(p))
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProduct(p, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	return cmd
}

func newValueCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "value",
		Short: "Print the total inventory value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total inventory value: $%.2f\n", svc.TotalValue())
			return nil
		},
	}
}

func writeProducts(cmd *cobra.Command, products []domain.Product, asJSON bool) error {
	if asJSON {
		return printJSON(cmd.OutOrStdout(), domain.EncodeAll(products))
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(products, time.Now()))
	return nil
}
