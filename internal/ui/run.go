package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"stairtour/internal/tour"
)

// Run shows m full screen until the tour closes or ctx is cancelled.
// ok is false when the user closed the tour without finishing or skipping.
func Run(ctx context.Context, m *Model) (outcome tour.Outcome, ok bool, err error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		m.ctrl.Reset()
		return tour.Outcome{}, false, fmt.Errorf("tour screen failed: %w", err)
	}
	outcome, ok = m.Outcome()
	return outcome, ok, nil
}
