package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shopfront/shopfront/internal/tui"
)

func init() {
	rootCmd.AddCommand(newBrowseCmd())
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive storefront browser",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !interactive() {
				return fmt.Errorf("browse needs a terminal; use the plain commands instead")
			}

			app := tui.NewApp(tui.Options{
				Session:  deps.Session,
				Cart:     deps.Cart,
				API:      deps.API,
				Theme:    deps.Theme,
				Currency: deps.Settings.UI.Currency,
			})

			program := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}
}
