// Package cli implements the stairtour command line.
//
// Commands share one [App] holding the configuration, catalog, progress store
// and printer. Dependencies left nil are built from the configuration before
// the first command runs, so tests can inject their own.
//
// Key types:
//   - [App] - dependency container for all commands
//   - [TourRunner] - shows the interactive tour
//   - [ExitError] - carries a process exit code out of RunE
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stairtour/internal/catalog"
	"stairtour/internal/config"
	"stairtour/internal/output"
	"stairtour/internal/progress"
	"stairtour/internal/router"
	"stairtour/internal/tour"
	"stairtour/internal/ui"
)

// TourRunner shows a prepared tour model until it closes.
type TourRunner interface {
	RunTour(ctx context.Context, m *ui.Model) (outcome tour.Outcome, ok bool, err error)
}

type screenRunner struct{}

func (screenRunner) RunTour(ctx context.Context, m *ui.Model) (tour.Outcome, bool, error) {
	return ui.Run(ctx, m)
}

// App holds the dependencies shared by all commands.
type App struct {
	Config     *config.Config
	Catalog    *catalog.Catalog
	Store      *progress.Store
	Router     *router.Router
	Printer    *output.Printer
	Logger     *zap.Logger
	TourRunner TourRunner

	closers []io.Closer
}

// init fills in every dependency that was not injected.
func (app *App) init(cmd *cobra.Command) error {
	if app.Config == nil {
		app.Config = config.DefaultConfig()
	}
	if app.Printer == nil {
		app.Printer = output.NewPrinterWithWriter(cmd.OutOrStdout())
	}
	if app.Logger == nil {
		logger, err := newLogger(app.Config.Log, cmd.Name() == "tour", cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		app.Logger = logger
	}
	if app.Catalog == nil {
		cat, err := loadCatalog(app.Config.Catalog.Path)
		if err != nil {
			return err
		}
		app.Catalog = cat
	}
	if app.Store == nil {
		backend, err := app.openBackend()
		if err != nil {
			return err
		}
		app.Store = progress.NewStore(backend, app.Config.Storage.Key, app.Logger)
	}
	if app.Router == nil {
		app.Router = router.NewRouter(app.Catalog)
	}
	if app.TourRunner == nil {
		app.TourRunner = screenRunner{}
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.ReadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

func (app *App) openBackend() (progress.Backend, error) {
	dir := progress.ResolveDir(app.Config.Storage.Dir)

	switch app.Config.Storage.Backend {
	case config.BackendMemory:
		return progress.NewMemoryBackend(), nil
	case config.BackendSQLite:
		db, err := progress.OpenSQLite(filepath.Join(dir, progress.DefaultSQLiteFile))
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db)
		return db, nil
	default:
		return progress.NewFileBackend(dir), nil
	}
}

func (app *App) close() error {
	var errs []error
	for _, c := range app.closers {
		errs = append(errs, c.Close())
	}
	app.closers = nil
	if app.Logger != nil {
		// Syncing stderr fails on some platforms; that is not worth reporting.
		_ = app.Logger.Sync()
	}
	return errors.Join(errs...)
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stairtour",
		Short: "Guided product tour for ST.AIRS",
		Long: `stairtour walks users through the ST.AIRS strategy workspace one step at a time.

It remembers which steps each user has seen, offers a short tour when new
steps are added, and tracks which features have been explored.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	rootCmd.AddCommand(
		newTourCommand(app),
		newStatusCommand(app),
		newWhatsNewCommand(app),
		newUseCommand(app),
		newStepsCommand(app),
		newPlaceCommand(app),
		newResetCommand(app),
	)

	return rootCmd
}

// ExecuteResult is the outcome of running the command line.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// RunWithConfig runs the command line with args and the given configuration.
// It never calls os.Exit.
func RunWithConfig(cfg *config.Config, args []string) ExecuteResult {
	app := &App{Config: cfg}
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return ExecuteResult{}
	}
	// PostRun is skipped when RunE fails.
	_ = app.close()

	if code, ok := IsExitError(err); ok {
		return ExecuteResult{ExitCode: code, Err: err}
	}
	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	return ExecuteResult{ExitCode: 1, Err: err}
}

// Execute loads the configuration, runs the command line and exits.
func Execute() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	result := RunWithConfig(cfg, os.Args[1:])
	os.Exit(result.ExitCode)
}
