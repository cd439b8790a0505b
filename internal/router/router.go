// Package router decides which tour, if any, to launch for the current user.
//
// The router maps the stored progress record to a [Plan]: the full catalog
// for a first-time user, the delta of new steps for a returning user whose
// completed version is behind the catalog, or nothing at all. It is the
// central decision point the host consults before starting the controller.
//
// Key types:
//   - [Router] - decision logic bound to one catalog
//   - [Plan] - the chosen mode and step sequence
//   - [Mode] - auto, full or delta
package router

import (
	"errors"
	"fmt"

	"stairtour/internal/catalog"
	"stairtour/internal/notify"
)

// Sentinel errors for tour routing.
var (
	// ErrTourComplete means there is nothing to show. Callers should exit
	// quietly rather than treat this as a failure.
	ErrTourComplete = errors.New("tour is complete, nothing new to show")

	// ErrUnknownMode is returned for a mode string that is not recognized.
	ErrUnknownMode = errors.New("unknown tour mode")
)

// Mode selects how a tour is chosen.
type Mode string

const (
	// ModeAuto applies the first-run and new-steps predicates.
	ModeAuto Mode = "auto"

	// ModeFull always walks the whole catalog.
	ModeFull Mode = "full"

	// ModeDelta walks only the steps not yet recorded as completed.
	ModeDelta Mode = "delta"
)

// ParseMode converts a flag value to a [Mode]. The empty string is [ModeAuto].
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeFull, ModeDelta:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Router chooses tours from one catalog.
type Router struct {
	catalog *catalog.Catalog
}

// NewRouter creates a [Router] for cat.
func NewRouter(cat *catalog.Catalog) *Router {
	return &Router{catalog: cat}
}

// Route applies [ModeAuto].
//
// The rules are:
//   - no record -> full tour
//   - 0 < completed version < catalog version -> delta tour
//   - anything else -> [ErrTourComplete]
func (r *Router) Route(src notify.RecordSource) (Plan, error) {
	return r.Plan(src, ModeAuto)
}

// Plan chooses the steps for mode. An explicit [ModeFull] always succeeds;
// [ModeDelta] returns [ErrTourComplete] when every step is already recorded.
func (r *Router) Plan(src notify.RecordSource, mode Mode) (Plan, error) {
	switch mode {
	case ModeFull:
		return r.full("requested"), nil

	case ModeDelta:
		return r.delta(src, "requested")

	case ModeAuto, "":
		if notify.ShouldShowFullTour(src) {
			return r.full("first run"), nil
		}
		if notify.HasNewSteps(src, r.catalog) {
			return r.delta(src, "new steps since last run")
		}
		return Plan{}, ErrTourComplete

	default:
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func (r *Router) full(reason string) Plan {
	return Plan{
		Mode:    ModeFull,
		Steps:   r.catalog.Filter(func(catalog.Step) bool { return true }),
		Version: r.catalog.Version,
		Reason:  reason,
	}
}

func (r *Router) delta(src notify.RecordSource, reason string) (Plan, error) {
	steps := notify.DeltaSteps(src, r.catalog)
	if len(steps) == 0 {
		return Plan{}, ErrTourComplete
	}
	return Plan{
		Mode:    ModeDelta,
		Steps:   steps,
		Version: r.catalog.Version,
		Reason:  reason,
	}, nil
}
