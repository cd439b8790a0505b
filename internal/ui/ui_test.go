package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stairtour/internal/catalog"
	"stairtour/internal/placement"
	"stairtour/internal/progress"
	"stairtour/internal/tour"
)

// stoppedTimer never fires.
type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return true }

// frozenScheduler keeps signals on for the whole test.
type frozenScheduler struct{}

func (frozenScheduler) AfterFunc(time.Duration, func()) tour.Timer { return stoppedTimer{} }

func terminalEngine() placement.Engine {
	return placement.Engine{Padding: 1, Tooltip: placement.Size{Width: 44, Height: 12}}
}

func newTestModel(t *testing.T, steps []catalog.Step) (*Model, *progress.Store) {
	t.Helper()
	store := progress.NewStore(progress.NewMemoryBackend(), catalog.StorageKey, nil)
	m, err := New(catalog.Default(), store, steps, Options{
		Engine:      terminalEngine(),
		TourOptions: []tour.Option{tour.WithScheduler(frozenScheduler{})},
	})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, store
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyU     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}}
)

func TestNew_EmptySteps(t *testing.T) {
	store := progress.NewStore(progress.NewMemoryBackend(), catalog.StorageKey, nil)
	_, err := New(catalog.Default(), store, nil, Options{Engine: terminalEngine()})
	assert.ErrorIs(t, err, tour.ErrNoSteps)
}

func TestModel_LoadingBeforeSize(t *testing.T) {
	store := progress.NewStore(progress.NewMemoryBackend(), catalog.StorageKey, nil)
	m, err := New(catalog.Default(), store, catalog.Default().Steps, Options{Engine: terminalEngine()})
	require.NoError(t, err)
	assert.Equal(t, "Loading tour…", m.View())
	assert.NotNil(t, m.Init())
}

func TestModel_FirstStepCentered(t *testing.T) {
	m, _ := newTestModel(t, catalog.Default().Steps)

	out := m.View()
	assert.Contains(t, out, "Welcome to ST.AIRS")
	assert.Contains(t, out, "Step 1 of 13")
	assert.Contains(t, out, "→ Next")
	assert.NotContains(t, out, "← Back")
	assert.NotContains(t, out, "┏", "welcome has no target to spotlight")

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 40)
	for i, line := range lines[:39] {
		assert.Equal(t, 120, ansi.StringWidth(line), "line %d", i)
	}
}

func TestModel_NavigateAndSpotlight(t *testing.T) {
	m, _ := newTestModel(t, catalog.Default().Steps)

	assert.Nil(t, press(m, keyRight))
	out := m.View()
	assert.Contains(t, out, "Company Brief")
	assert.Contains(t, out, "Step 2 of 13")
	assert.Contains(t, out, "✨", "reward flash after advancing")
	assert.Contains(t, out, "┏", "target is spotlighted")
	assert.Contains(t, out, "← Back")

	press(m, keyLeft)
	assert.Equal(t, 0, m.Controller().Index())

	press(m, keyEnter)
	assert.Equal(t, 1, m.Controller().Index())
}

func TestModel_TooltipBelowTarget(t *testing.T) {
	m, _ := newTestModel(t, catalog.Default().Steps)
	press(m, keyRight)

	lines := strings.Split(m.View(), "\n")
	// strategy-landing spans rows 0-2; the card starts one padding row below.
	assert.Contains(t, lines[4], "╭")
	assert.Contains(t, lines[5], "Company Brief")
}

func TestModel_UseFeature(t *testing.T) {
	m, store := newTestModel(t, catalog.Default().Steps)

	press(m, keyU)
	assert.Contains(t, m.View(), "Nothing to try")
	_, ok := store.Load()
	assert.False(t, ok)

	press(m, keyRight)
	press(m, keyU)
	press(m, keyU)
	assert.Contains(t, m.View(), "Company Brief explored")

	rec, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, []string{"strategy_landing"}, rec.FeaturesUsed)
	assert.Equal(t, tour.StateRunning, m.Controller().State(), "tracking never touches the tour")
}

func TestModel_SkipQuits(t *testing.T) {
	m, store := newTestModel(t, catalog.Default().Steps)
	press(m, keyRight)
	press(m, keyRight)
	press(m, keyRight)

	cmd := press(m, keyEsc)
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())

	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, tour.OutcomeSkipped, outcome.Kind)

	rec, ok := store.Load()
	require.True(t, ok)
	assert.Len(t, rec.CompletedStepIDs, 3)
	assert.True(t, rec.Dismissed)
	assert.Equal(t, catalog.Version, rec.CompletedVersion)
}

func TestModel_FinishFlow(t *testing.T) {
	steps := catalog.Default().Steps
	m, store := newTestModel(t, steps)

	for range steps {
		assert.False(t, isQuit(press(m, keyRight)))
	}
	require.Equal(t, tour.StateComplete, m.Controller().State())
	out := m.View()
	assert.Contains(t, out, "You're all set!")
	assert.Contains(t, out, "all 13 steps")
	assert.Contains(t, out, "✦", "confetti while the signal is on")

	assert.True(t, isQuit(press(m, keyEnter)))
	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, tour.OutcomeFinished, outcome.Kind)

	rec, ok := store.Load()
	require.True(t, ok)
	assert.Len(t, rec.CompletedStepIDs, 13)
	assert.False(t, rec.Dismissed)
}

func TestModel_QuitWithoutRecording(t *testing.T) {
	m, store := newTestModel(t, catalog.Default().Steps)
	press(m, keyRight)

	assert.True(t, isQuit(press(m, keyCtrlC)))
	assert.Equal(t, tour.StateInactive, m.Controller().State())
	_, ok := m.Outcome()
	assert.False(t, ok)
	_, ok = store.Load()
	assert.False(t, ok)
}

func TestModel_ResizeRecomputes(t *testing.T) {
	m, _ := newTestModel(t, catalog.Default().Steps)
	for i := 0; i < 11; i++ {
		press(m, keyRight)
	}
	step, _ := m.Controller().Current()
	require.Equal(t, "ai_chat", step.ID)
	assert.Contains(t, m.View(), "┏")

	// Too narrow for the sidebar: the target disappears and the card centers.
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 30})
	out := m.View()
	assert.NotContains(t, out, "┏")
	assert.Contains(t, out, "AI Chat Advisor")
}

func TestModel_TinyTerminal(t *testing.T) {
	m, _ := newTestModel(t, catalog.Default().Steps)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})

	assert.NotPanics(t, func() { _ = m.View() })
	press(m, keyRight)
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestLayout(t *testing.T) {
	regions := Layout(120, 39)

	names := make(map[string]bool)
	for _, r := range regions {
		assert.False(t, names[r.Name], "duplicate region %s", r.Name)
		names[r.Name] = true
		assert.GreaterOrEqual(t, r.X, 0)
		assert.GreaterOrEqual(t, r.Y, 0)
		assert.LessOrEqual(t, r.X+r.W, 120, r.Name)
		assert.LessOrEqual(t, r.Y+r.H, 39, r.Name)
	}

	for _, s := range catalog.Default().Steps {
		if !s.HasTarget() {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(s.Selector, "[data-tutorial='"), "']")
		assert.True(t, names[name], "no region for %s", s.ID)
	}
}

func TestLayout_Small(t *testing.T) {
	assert.Empty(t, Layout(5, 2))

	regions := Layout(50, 30)
	for _, r := range regions {
		assert.NotContains(t, r.Name, "nav-")
	}
}

func TestCanvas(t *testing.T) {
	c := newCanvas(6, 2)
	c.put(0, 0, "\x1b[1mab\x1b[0m")
	c.put(4, 0, "xyz")
	c.put(-1, 1, "12")
	assert.Equal(t, "ab  xy\n2     ", c.String())

	wide := newCanvas(4, 1)
	wide.put(0, 0, "界a")
	assert.Equal(t, "界a ", wide.String())
	wide.put(1, 0, "b")
	assert.Equal(t, " ba ", wide.String())
}

func TestCanvas_Box(t *testing.T) {
	c := newCanvas(8, 3)
	c.box(0, 0, 8, 3, thinBorder, "Hi")
	assert.Equal(t, "┌─ Hi ─┐\n│      │\n└──────┘", c.String())

	c.box(0, 0, 1, 1, heavyBorder, "")
	assert.NotContains(t, c.String(), "┏")
}
