package cli

import (
	"fmt"
	"time"

	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/spf13/cobra"
)

// itemFlags are the fields every product variant shares.
type itemFlags struct {
	id    string
	name  string
	price float64
	stock int
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "id", "", "Product id (generated when omitted)")
	cmd.Flags().StringVar(&f.name, "name", "", "Product name")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Unit price")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "Units in stock")
	_ = cmd.MarkFlagRequired("name")
}

func (f *itemFlags) item(kind domain.Kind) domain.Item {
	id := f.id
	if id == "" {
		id = domain.NewProductID(kind)
	}
	return domain.Item{ID: id, Name: f.name, Price: f.price, Stock: f.stock}
}

func newAddCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the inventory",
		Long:  "Add an electronics, grocery or clothing product. The inventory is saved after the product is added.",
	}
	cmd.AddCommand(newAddElectronicsCmd(g))
	cmd.AddCommand(newAddGroceryCmd(g))
	cmd.AddCommand(newAddClothingCmd(g))
	return cmd
}

func newAddElectronicsCmd(g *globalFlags) *cobra.Command {
	var (
		item     itemFlags
		warranty int
		brand    string
	)

	cmd := &cobra.Command{
		Use:   "electronics",
		Short: "Add an electronics product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.NewElectronics(item.item(domain.KindElectronics), warranty, brand)
			if err != nil {
				return err
			}
			return addProduct(cmd, g, p)
		},
	}

	item.register(cmd)
	cmd.Flags().IntVar(&warranty, "warranty", 0, "Warranty in years")
	cmd.Flags().StringVar(&brand, "brand", "", "Brand name")
	return cmd
}

func newAddGroceryCmd(g *globalFlags) *cobra.Command {
	var (
		item   itemFlags
		expiry string
	)

	cmd := &cobra.Command{
		Use:   "grocery",
		Short: "Add a grocery product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse(domain.DateLayout, expiry)
			if err != nil {
				return fmt.Errorf("%w: expiry must be a date in YYYY-MM-DD format (got %q)", domain.ErrValidation, expiry)
			}
			p, err := domain.NewGrocery(item.item(domain.KindGrocery), date)
			if err != nil {
				return err
			}
			return addProduct(cmd, g, p)
		},
	}

	item.register(cmd)
	cmd.Flags().StringVar(&expiry, "expiry", "", "Expiry date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("expiry")
	return cmd
}

func newAddClothingCmd(g *globalFlags) *cobra.Command {
	var (
		item     itemFlags
		size     string
		material string
	)

	cmd := &cobra.Command{
		Use:   "clothing",
		Short: "Add a clothing product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.NewClothing(item.item(domain.KindClothing), size, material)
			if err != nil {
				return err
			}
			return addProduct(cmd, g, p)
		},
	}

	item.register(cmd)
	cmd.Flags().StringVar(&size, "size", "", "Size label (e.g. M, 42)")
	cmd.Flags().StringVar(&material, "material", "", "Material")
	return cmd
}

func addProduct(cmd *cobra.Command, g *globalFlags, p domain.Product) error {
	svc, _, err := openService(cmd, g)
	if err != nil {
		return err
	}
	added, err := svc.Add(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", added)
	return nil
}
