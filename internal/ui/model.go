// Package ui hosts the guided tour in the terminal with bubbletea.
//
// The [Model] draws a schematic of the product screen, registers every
// region with a [locator.Registry], and on each frame asks the locator where
// the current step's target is and where its tooltip goes. Terminal cells are
// the unit of geometry here.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"stairtour/internal/catalog"
	"stairtour/internal/locator"
	"stairtour/internal/placement"
	storeprogress "stairtour/internal/progress"
	"stairtour/internal/tour"
)

// Options configure a [Model].
type Options struct {
	// Engine holds the placement parameters in cells.
	Engine placement.Engine

	// Logger receives key handling and feature tracking events.
	Logger *zap.Logger

	// TourOptions are passed through to [tour.New].
	TourOptions []tour.Option
}

// signalMsg reports that the reward or confetti signal changed.
type signalMsg struct{}

// Model is the bubbletea model for one tour run.
type Model struct {
	ctrl    *tour.Controller
	store   *storeprogress.Store
	reg     *locator.Registry
	loc     *locator.Locator
	engine  placement.Engine
	logger  *zap.Logger
	keys    KeyMap
	help    help.Model
	bar     progress.Model
	signals chan struct{}

	width, height int
	notice        string
	outcome       *tour.Outcome
	quit          bool
}

// New creates a [Model] and starts the tour over steps.
func New(cat *catalog.Catalog, store *storeprogress.Store, steps []catalog.Step, opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := locator.NewRegistry()
	m := &Model{
		store:   store,
		reg:     reg,
		loc:     locator.New(reg, opts.Engine),
		engine:  opts.Engine,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		signals: make(chan struct{}, 1),
	}

	tourOpts := append([]tour.Option{
		tour.WithLogger(logger),
		tour.WithOnClose(m.closed),
		tour.WithSignalListener(m.signalChanged),
	}, opts.TourOptions...)
	m.ctrl = tour.New(cat, store, tourOpts...)

	if err := m.ctrl.Start(steps); err != nil {
		return nil, err
	}
	return m, nil
}

// Controller returns the tour controller.
func (m *Model) Controller() *tour.Controller {
	return m.ctrl
}

// Outcome returns how the run ended. ok is false when the tour was closed
// without finishing or skipping.
func (m *Model) Outcome() (tour.Outcome, bool) {
	if m.outcome == nil {
		return tour.Outcome{}, false
	}
	return *m.outcome, true
}

func (m *Model) closed(o tour.Outcome) {
	m.outcome = &o
}

// signalChanged runs on a timer goroutine; it only nudges the event loop.
func (m *Model) signalChanged() {
	select {
	case m.signals <- struct{}{}:
	default:
	}
}

func waitForSignal(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return signalMsg{}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return waitForSignal(m.signals)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case signalMsg:
		return m, waitForSignal(m.signals)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Reset()
		m.quit = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Use):
		m.useFeature()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.ctrl.HandleKey(tour.KeyRight)
	case key.Matches(msg, m.keys.Back):
		m.ctrl.HandleKey(tour.KeyLeft)
	case key.Matches(msg, m.keys.Skip):
		m.ctrl.HandleKey(tour.KeyEscape)
	default:
		return m, nil
	}

	m.notice = ""
	m.logger.Debug("tour key", zap.String("key", msg.String()), zap.String("state", string(m.ctrl.State())))
	if !m.ctrl.Active() {
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

// useFeature records the current step's feature as used, the way the
// product reports it when the user actually opens that feature.
func (m *Model) useFeature() {
	step, ok := m.ctrl.Current()
	if !ok || step.FeatureKey == "" {
		m.notice = "Nothing to try on this step."
		return
	}
	if _, err := m.store.MarkFeatureUsed(step.FeatureKey); err != nil {
		m.logger.Warn("feature not recorded", zap.String("feature", step.FeatureKey), zap.Error(err))
		m.notice = "Could not record " + step.Title + "."
		return
	}
	m.logger.Debug("feature used", zap.String("feature", step.FeatureKey))
	m.notice = "✓ " + step.Title + " explored"
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quit || !m.ctrl.Active() {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading tour…"
	}

	screenH := m.height - 1
	regions := Layout(m.width, screenH)
	register(m.reg, regions)

	c := newCanvas(m.width, screenH)
	for _, r := range regions {
		c.box(r.X, r.Y, r.W, r.H, thinBorder, r.Label)
	}

	view := m.ctrl.Snapshot()
	viewport := placement.Size{Width: float64(m.width), Height: float64(screenH)}

	switch view.State {
	case tour.StateRunning:
		frame := m.loc.Refresh(view.Step, viewport)
		if t := frame.Target; t != nil {
			c.box(int(t.Left), int(t.Top), int(t.Width), int(t.Height), heavyBorder, "")
		}
		c.paste(int(frame.Tooltip.Left), int(frame.Tooltip.Top), m.renderTooltip(view))

	case tour.StateComplete:
		if view.Confetti {
			sprinkleConfetti(c)
		}
		card := m.renderCompletion(view)
		size := placement.Size{Width: float64(lipgloss.Width(card)), Height: float64(lipgloss.Height(card))}
		pos := placement.Engine{Tooltip: size}.Place(nil, viewport)
		c.paste(int(pos.Left), int(pos.Top), card)
	}

	footer := m.help.View(m.keys)
	if m.notice != "" {
		footer = m.notice + "  " + footer
	}
	return c.String() + "\n" + ansi.Truncate(footer, m.width, "…")
}

var (
	tooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// renderTooltip renders the step card sized to the engine's tooltip.
func (m *Model) renderTooltip(v tour.View) string {
	outerW := int(m.engine.Tooltip.Width)
	outerH := int(m.engine.Tooltip.Height)
	innerW := max(outerW-4, 10)
	innerH := max(outerH-2, 4)

	title := strings.TrimSpace(v.Step.Icon + " " + v.Step.Title)
	if v.Reward {
		title += " ✨"
	}

	m.bar.Width = max(innerW-len(v.Counter)-1, 4)
	counter := v.Counter + " " + m.bar.ViewAs(v.Progress)

	next := "→ Next"
	if v.IsLast {
		next = "→ Finish"
	}
	buttons := "esc Skip"
	if !v.IsFirst {
		buttons += "  ← Back"
	}
	buttons += "  " + next

	// Title, counter and buttons take three lines; the description gets the rest.
	descLines := strings.Split(ansi.Wordwrap(v.Step.Description, innerW, " "), "\n")
	if avail := innerH - 3; len(descLines) > avail {
		descLines = descLines[:max(avail, 0)]
		if n := len(descLines); n > 0 {
			descLines[n-1] = ansi.Truncate(descLines[n-1]+"…", innerW, "…")
		}
	}

	lines := []string{
		ansi.Truncate(titleStyle.Render(title), innerW, "…"),
		counter,
	}
	lines = append(lines, descLines...)
	lines = append(lines, buttons)

	return tooltipStyle.Width(innerW + 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCompletion(v tour.View) string {
	body := fmt.Sprintf("%s\n\nYou've completed all %d steps.\nPress enter to start climbing.",
		titleStyle.Render("🎉 You're all set!"), v.Total)
	return tooltipStyle.Render(body)
}

var confettiRunes = []string{"*", "+", "·", "✦", "•"}

// sprinkleConfetti scatters a fixed pattern of particles over the screen.
func sprinkleConfetti(c *canvas) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if (x*7+y*13)%23 == 0 {
				c.set(x, y, confettiRunes[(x+y)%len(confettiRunes)], 1)
			}
		}
	}
}
