package cli

import (
	"github.com/spf13/cobra"

	"stairtour/internal/catalog"
	"stairtour/internal/notify"
	"stairtour/internal/output"
	"stairtour/internal/progress"
)

func newStatusCommand(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tour progress and features explored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := buildStatus(app)
			if asJSON {
				if err := app.Printer.JSON(view); err != nil {
					app.Printer.Error(err)
					return NewExitError(1)
				}
				return nil
			}
			app.Printer.Status(view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func buildStatus(app *App) output.StatusView {
	rec, exists := app.Store.Load()
	if !exists {
		rec = progress.DefaultRecord()
	}
	return output.StatusView{
		Exists:             exists,
		StorageKey:         app.Store.Key(),
		CatalogVersion:     app.Catalog.Version,
		Record:             rec,
		ShouldShowFullTour: notify.ShouldShowFullTour(app.Store),
		HasNewSteps:        notify.HasNewSteps(app.Store, app.Catalog),
		DeltaSteps:         catalog.StepIDs(notify.DeltaSteps(app.Store, app.Catalog)),
		Badge:              notify.NewBadge(rec, app.Catalog),
	}
}
