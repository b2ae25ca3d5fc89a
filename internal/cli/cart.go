package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shopfront/shopfront/internal/api"
)

const cartFallbackMessage = "Unable to update your cart. Please try again."

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit the cart",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showCart(cmd)
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(
		newCartShowCmd(),
		newCartAddCmd(),
		newCartSetCmd(),
		newCartRemoveCmd(),
		newCartClearCmd(),
	)
}

// showCart reloads the cart store and prints it. The mutation commands
// all end here so every edit echoes the server's view back.
func showCart(cmd *cobra.Command) error {
	if err := deps.Cart.Reload(cmd.Context()); err != nil {
		return fmt.Errorf("%s", api.BackendMessage(err, "Unable to load your cart. Please try again later."))
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderCart(deps.Cart.Items(), deps.Cart.Subtotal()))
	return nil
}

func newCartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showCart(cmd)
		},
	}
}

func newCartAddCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := deps.API.Product(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, "Unable to load product. Please try again later."))
			}
			if err := deps.Cart.AddItem(cmd.Context(), product, quantity); err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, cartFallbackMessage))
			}
			return showCart(cmd)
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")
	return cmd
}

func newCartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number, got %q", args[1])
			}
			if err := deps.Cart.UpdateQuantity(cmd.Context(), args[0], quantity); err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, cartFallbackMessage))
			}
			return showCart(cmd)
		},
	}
}

func newCartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.Cart.RemoveItem(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, cartFallbackMessage))
			}
			return showCart(cmd)
		},
	}
}

func newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := deps.Cart.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, cartFallbackMessage))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}
}
