// Package locator resolves a tour step's selector to on-screen geometry and
// places the tooltip for it.
//
// The host describes what is on screen through a [Layout]. [Locator.Refresh]
// is called on every step entry and on every resize or scroll while the tour
// runs; it recomputes everything from scratch and keeps no state between calls.
package locator

import (
	"regexp"
	"strings"
	"sync"

	"stairtour/internal/catalog"
	"stairtour/internal/placement"
)

// Layout answers selector queries against the current screen.
//
// Query returns every element matching selector in document order. An
// unknown selector yields no matches, not an error.
type Layout interface {
	Query(selector string) []placement.Rect
}

// attrSelector matches [data-tutorial='name'] and [data-tutorial="name"].
var attrSelector = regexp.MustCompile(`^\[\s*data-tutorial\s*=\s*(?:'([^']*)'|"([^"]*)")\s*\]$`)

// TargetName extracts the region name from a selector. Both the attribute
// form [data-tutorial='name'] and a bare name are accepted. ok is false for an
// empty or malformed selector.
func TargetName(selector string) (name string, ok bool) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return "", false
	}
	if m := attrSelector.FindStringSubmatch(selector); m != nil {
		name = m[1] + m[2]
		return name, name != ""
	}
	if strings.ContainsAny(selector, "[]='\" ") {
		return "", false
	}
	return selector, true
}

// Registry is a [Layout] filled by the host with named regions.
// Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	regions map[string][]placement.Rect
}

// NewRegistry creates an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{regions: make(map[string][]placement.Rect)}
}

// Add registers a region under name. Adding the same name again appends a
// further match after the existing ones.
func (r *Registry) Add(name string, rect placement.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions[name] = append(r.regions[name], rect)
}

// Reset removes all regions, typically before the host lays out a new frame.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.regions)
}

// Query implements [Layout].
func (r *Registry) Query(selector string) []placement.Rect {
	name, ok := TargetName(selector)
	if !ok {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]placement.Rect(nil), r.regions[name]...)
}

// Frame is everything the host needs to draw one step.
type Frame struct {
	// Target is the resolved element, nil when the step has no selector or
	// the selector matched nothing.
	Target *placement.Rect

	// Spotlight is the highlight ring around Target, nil with no target.
	Spotlight *placement.Rect

	// Tooltip is where the step card goes.
	Tooltip placement.Position
}

// Locator combines a [Layout] with a placement [placement.Engine].
type Locator struct {
	layout Layout
	engine placement.Engine
}

// New creates a [Locator].
func New(layout Layout, engine placement.Engine) *Locator {
	return &Locator{layout: layout, engine: engine}
}

// Engine returns the placement parameters in use.
func (l *Locator) Engine() placement.Engine {
	return l.engine
}

// Resolve returns the geometry of the step's target. A step without a
// selector, or whose selector matches nothing, resolves to nil. When several
// elements match, the first one wins.
func (l *Locator) Resolve(step catalog.Step) *placement.Rect {
	if !step.HasTarget() || l.layout == nil {
		return nil
	}
	matches := l.layout.Query(step.Selector)
	if len(matches) == 0 {
		return nil
	}
	target := matches[0]
	return &target
}

// Refresh resolves the step's target and places its tooltip in viewport.
func (l *Locator) Refresh(step catalog.Step, viewport placement.Size) Frame {
	target := l.Resolve(step)
	return Frame{
		Target:    target,
		Spotlight: placement.Spotlight(target),
		Tooltip:   l.engine.Place(target, viewport),
	}
}
