package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stairtour/internal/notify"
)

func newUseCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <feature-key>",
		Short: "Record that a feature was used",
		Long: `Record that a feature was used.

The key must be one of the catalog's feature keys (see "stairtour steps").
Recording the same feature twice is harmless.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !app.Catalog.HasFeature(key) {
				app.Printer.Error(fmt.Errorf("unknown feature %q", key))
				return NewExitError(1)
			}

			rec, err := app.Store.MarkFeatureUsed(key)
			if err != nil {
				app.Printer.Error(fmt.Errorf("failed to record %s: %w", key, err))
				return NewExitError(1)
			}

			app.Printer.Success("%s recorded (%d%% of features explored)", key, notify.FeaturesExplored(rec, app.Catalog))
			return nil
		},
	}
}
