package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget all tour progress",
		Long:  "Delete the stored progress record. The next tour starts from the beginning.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Clear(); err != nil {
				app.Printer.Error(fmt.Errorf("failed to reset progress: %w", err))
				return NewExitError(1)
			}
			app.Printer.Success("Progress cleared")
			return nil
		},
	}
}
