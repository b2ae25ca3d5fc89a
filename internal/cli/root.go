package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfront/shopfront/pkg/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "Shopfront: a terminal storefront client",
	Long: `Shopfront is a terminal client for the marketplace backend.

It signs in against the REST API, keeps the session token on disk, and
exposes the catalog, cart, orders, and profile both as plain commands
and as an interactive browser (shopfront browse).`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if deps != nil {
			return nil // injected by tests
		}
		return InitDependencies(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("shopfront %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
}
