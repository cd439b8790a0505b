package cli

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stairtour/internal/catalog"
	"stairtour/internal/config"
	"stairtour/internal/output"
	"stairtour/internal/progress"
	"stairtour/internal/tour"
	"stairtour/internal/ui"
)

// MockTourRunner drives a tour model with scripted input instead of a
// terminal.
type MockTourRunner struct {
	// Keys are delivered in order until the model quits.
	Keys []tea.KeyMsg

	// Width and Height are sent as the initial window size. Zero means 120x40.
	Width, Height int

	// Err, when set, is returned without touching the model.
	Err error

	// Runs counts RunTour calls.
	Runs int

	// Steps records the step ids of the last tour shown.
	Steps []string
}

func (r *MockTourRunner) RunTour(ctx context.Context, m *ui.Model) (tour.Outcome, bool, error) {
	r.Runs++
	r.Steps = catalog.StepIDs(m.Controller().Steps())
	if r.Err != nil {
		m.Controller().Reset()
		return tour.Outcome{}, false, r.Err
	}

	w, h := r.Width, r.Height
	if w == 0 || h == 0 {
		w, h = 120, 40
	}
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	_ = m.View()

	for _, k := range r.Keys {
		_, cmd := m.Update(k)
		_ = m.View()
		if isQuit(cmd) {
			break
		}
	}
	// The controller outlives the screen; drop any unfinished run like the
	// real screen does on exit.
	if m.Controller().Active() {
		m.Controller().Reset()
	}
	outcome, ok := m.Outcome()
	return outcome, ok, nil
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// Scripted keys.
var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	keyUse   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}}
)

// repeatKey returns n copies of k.
func repeatKey(k tea.KeyMsg, n int) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, n)
	for i := range keys {
		keys[i] = k
	}
	return keys
}

// testApp bundles an [App] wired to in-memory dependencies with its output.
type testApp struct {
	*App
	Out     *bytes.Buffer
	Backend *progress.MemoryBackend
	Runner  *MockTourRunner
}

// newTestApp creates an App over the built-in catalog and an empty in-memory
// store.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithCatalog(t, catalog.Default())
}

func newTestAppWithCatalog(t *testing.T, cat *catalog.Catalog) *testApp {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = config.BackendMemory

	out := &bytes.Buffer{}
	backend := progress.NewMemoryBackend()
	runner := &MockTourRunner{}
	app := &App{
		Config:     cfg,
		Catalog:    cat,
		Store:      progress.NewStore(backend, cfg.Storage.Key, zap.NewNop()),
		Printer:    output.NewPrinterWithWriter(out),
		Logger:     zap.NewNop(),
		TourRunner: runner,
	}
	return &testApp{App: app, Out: out, Backend: backend, Runner: runner}
}

// run executes the root command with args against the test app.
func (ta *testApp) run(args ...string) error {
	ta.Out.Reset()
	rootCmd := NewRootCommand(ta.App)
	rootCmd.SetOut(ta.Out)
	rootCmd.SetErr(ta.Out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
