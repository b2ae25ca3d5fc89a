package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfront/shopfront/internal/api"
)

func init() {
	rootCmd.AddCommand(newOrdersCmd())
}

func newOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Show order history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			orders, err := deps.API.Orders(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, "Unable to load your orders. Please try again later."))
			}
			if len(orders) == 0 {
				fmt.Fprintln(out, "You have no orders yet.")
				return nil
			}
			for _, order := range orders {
				fmt.Fprintln(out, renderOrder(order))
			}
			return nil
		},
	}
}
