package cli

import (
	"github.com/spf13/cobra"

	"stairtour/internal/notify"
)

func newWhatsNewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whats-new",
		Short: "Show steps added since your last tour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := notify.NewPrompt(app.Store, app.Catalog)
			if !prompt.Show {
				app.Printer.Info("No new steps since your last tour.")
				return nil
			}
			app.Printer.Prompt(prompt)
			return nil
		},
	}
}
