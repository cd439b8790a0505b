package cli

import (
	"github.com/spf13/cobra"
)

func newStepsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the tour steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Printer.StepList(app.Catalog, app.Store.LoadOrDefault())
			return nil
		},
	}
}
