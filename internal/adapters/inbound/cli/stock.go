package cli

import (
	"fmt"
	"strconv"

	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/spf13/cobra"
)

func newRemoveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			removed, err := svc.Remove(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed)
			return nil
		},
	}
}

func newSellCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <id> <quantity>",
		Short: "Sell units of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			p, err := svc.Sell(args[0], qty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sold %d x %s, %d left\n", qty, p.Name(), p.Stock())
			return nil
		},
	}
}

func newRestockCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "restock <id> <quantity>",
		Short: "Add units of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			p, err := svc.Restock(args[0], qty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restocked %s, %d in stock\n", p.Name(), p.Stock())
			return nil
		},
	}
}

func newRepriceCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reprice <id> <price>",
		Short: "Change a product's unit price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("%w: price must be a number (got %q)", domain.ErrValidation, args[1])
			}
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			p, err := svc.Reprice(args[0], price)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Repriced %s to $%.2f\n", p.Name(), p.Price())
			return nil
		},
	}
}

func newPurgeExpiredCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-expired",
		Short: "Remove every expired grocery product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(cmd, g)
			if err != nil {
				return err
			}
			n, err := svc.RemoveExpired()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired product(s)\n", n)
			return nil
		},
	}
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity must be a whole number (got %q)", domain.ErrValidation, s)
	}
	return n, nil
}
