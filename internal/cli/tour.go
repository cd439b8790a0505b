package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stairtour/internal/router"
	"stairtour/internal/tour"
	"stairtour/internal/ui"
)

func newTourCommand(app *App) *cobra.Command {
	var full, delta bool

	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Run the guided tour",
		Long: `Run the interactive guided tour.

Without flags the tour picks itself: first-time users get every step,
returning users get only the steps added since their last run, and
everyone else is told they are up to date.

Keys: → or enter next, ← back, esc skip, u try the feature, q close.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := router.ModeAuto
			switch {
			case full:
				mode = router.ModeFull
			case delta:
				mode = router.ModeDelta
			}

			plan, err := app.Router.Plan(app.Store, mode)
			if errors.Is(err, router.ErrTourComplete) {
				app.Printer.Info("You're up to date. Use --full to take the tour again.")
				return nil
			}
			if err != nil {
				app.Printer.Error(err)
				return NewExitError(1)
			}
			app.Logger.Info("starting tour",
				zap.String("mode", string(plan.Mode)),
				zap.String("reason", plan.Reason),
				zap.Int("steps", plan.Len()),
			)

			m, err := ui.New(app.Catalog, app.Store, plan.Steps, ui.Options{
				Engine:      engineFrom(app.Config.Terminal),
				Logger:      app.Logger,
				TourOptions: []tour.Option{tour.WithTimings(app.Config.Timing.Reward, app.Config.Timing.Confetti)},
			})
			if err != nil {
				app.Printer.Error(err)
				return NewExitError(1)
			}

			outcome, ok, err := app.TourRunner.RunTour(cmd.Context(), m)
			if err != nil {
				app.Printer.Error(err)
				return NewExitError(1)
			}
			printOutcome(app, outcome, ok)
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "walk every step regardless of progress")
	cmd.Flags().BoolVar(&delta, "delta", false, "walk only steps not yet seen")
	cmd.MarkFlagsMutuallyExclusive("full", "delta")

	return cmd
}

func printOutcome(app *App, outcome tour.Outcome, ok bool) {
	if !ok {
		app.Printer.Info("Tour closed; progress unchanged.")
		return
	}

	switch outcome.Kind {
	case tour.OutcomeFinished:
		app.Printer.Success("Tour finished: %d step(s) recorded", len(outcome.Record.CompletedStepIDs))
	case tour.OutcomeSkipped:
		app.Printer.Info("Tour skipped after %d step(s). Run `stairtour tour --delta` to pick up the rest.",
			len(outcome.Record.CompletedStepIDs))
	}
	if outcome.SaveErr != nil {
		app.Printer.Warn("progress could not be saved: %v", outcome.SaveErr)
	}
}
