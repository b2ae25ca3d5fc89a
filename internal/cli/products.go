package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfront/shopfront/internal/api"
)

func init() {
	rootCmd.AddCommand(newProductsCmd(), newProductCmd())
}

func newProductsCmd() *cobra.Command {
	var search string
	var featured bool

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			products, err := deps.API.Products(cmd.Context(), api.ProductQuery{
				Search:   search,
				Featured: featured,
			})
			if err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, "Unable to load products. Please try again later."))
			}

			if len(products) == 0 {
				if search != "" {
					fmt.Fprintf(out, "No products match %q.\n", search)
				} else {
					fmt.Fprintln(out, "No products available.")
				}
				return nil
			}

			for _, p := range products {
				fmt.Fprintln(out, renderProductRow(p))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or description")
	cmd.Flags().BoolVar(&featured, "featured", false, "only featured products")
	return cmd
}

func newProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			product, err := deps.API.Product(cmd.Context(), args[0])
			if errors.Is(err, api.ErrNotFound) {
				fmt.Fprintln(out, "Product not found.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, "Unable to load product. Please try again later."))
			}

			fmt.Fprint(out, renderProductCard(product))
			for i, image := range product.Images {
				fmt.Fprintln(out, deps.Theme.Muted.Render(fmt.Sprintf("Image %d: %s", i+1, image)))
			}
			return nil
		},
	}
}
