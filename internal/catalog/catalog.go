// Package catalog defines the ordered, versioned list of guided-tour steps.
//
// A [Catalog] is immutable once built: adding a step is an edit to the catalog
// source (the built-in [Default] list or a catalog file), followed by a bump of
// [Catalog.Version] so returning users are offered the new steps.
//
// Key types:
//   - [Step] is a single stop on the tour
//   - [Catalog] is the ordered step sequence plus its version
//
// Catalogs can be loaded from YAML or CSV files with [ReadFromFile]; every
// loaded catalog is checked with [Catalog.Validate].
package catalog

import (
	"errors"
	"fmt"
)

// StorageKey is the name under which the progress record for this catalog
// is persisted.
const StorageKey = "stairs_tutorial"

// Sentinel errors for catalog validation.
var (
	// ErrInvalidCatalog is returned when a catalog is structurally unusable
	// (non-positive version, empty step id).
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrDuplicateStepID is returned when two steps share the same id.
	ErrDuplicateStepID = errors.New("duplicate step id")
)

// Step is one stop on the guided tour.
type Step struct {
	// ID identifies the step for completion tracking. Unique within a catalog.
	ID string `yaml:"id"`

	// Title and Description are the tooltip text.
	Title       string `yaml:"title"`
	Description string `yaml:"description"`

	// Icon is a display glyph shown next to the title.
	Icon string `yaml:"icon"`

	// Selector names the on-screen element to spotlight.
	// Empty means the step is shown centered with no spotlight.
	Selector string `yaml:"selector"`

	// FeatureKey marks a trackable product feature. Empty when the step is
	// not tied to a feature.
	FeatureKey string `yaml:"feature_key"`
}

// HasTarget reports whether the step spotlights an on-screen element.
func (s Step) HasTarget() bool {
	return s.Selector != ""
}

// Catalog is the ordered list of tour steps and its version.
type Catalog struct {
	// Version increases whenever steps are appended. Never decremented.
	Version int

	// Steps are in tour order.
	Steps []Step
}

// New builds a catalog from the given steps. The slice is copied so later
// changes by the caller do not leak into the catalog.
func New(version int, steps []Step) *Catalog {
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Catalog{Version: version, Steps: cp}
}

// Validate checks the catalog invariants: a positive version and non-empty,
// pairwise distinct step ids.
func (c *Catalog) Validate() error {
	if c.Version <= 0 {
		return fmt.Errorf("%w: version must be positive, got %d", ErrInvalidCatalog, c.Version)
	}

	seen := make(map[string]int, len(c.Steps))
	for i, s := range c.Steps {
		if s.ID == "" {
			return fmt.Errorf("%w: step at index %d has no id", ErrInvalidCatalog, i)
		}
		if prev, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: %q at index %d and %d", ErrDuplicateStepID, s.ID, prev, i)
		}
		seen[s.ID] = i
	}
	return nil
}

// Len returns the number of steps.
func (c *Catalog) Len() int {
	return len(c.Steps)
}

// IDs returns the step ids in tour order.
func (c *Catalog) IDs() []string {
	return StepIDs(c.Steps)
}

// Lookup returns the step with the given id, or nil if not found.
func (c *Catalog) Lookup(id string) *Step {
	for i := range c.Steps {
		if c.Steps[i].ID == id {
			return &c.Steps[i]
		}
	}
	return nil
}

// Filter returns the steps for which keep returns true, preserving order.
func (c *Catalog) Filter(keep func(Step) bool) []Step {
	out := make([]Step, 0, len(c.Steps))
	for _, s := range c.Steps {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// FeatureKeys returns the non-empty feature keys in tour order.
// Its length is the denominator of the features-explored percentage.
func (c *Catalog) FeatureKeys() []string {
	var keys []string
	for _, s := range c.Steps {
		if s.FeatureKey != "" {
			keys = append(keys, s.FeatureKey)
		}
	}
	return keys
}

// HasFeature reports whether any step carries the given feature key.
func (c *Catalog) HasFeature(key string) bool {
	if key == "" {
		return false
	}
	for _, s := range c.Steps {
		if s.FeatureKey == key {
			return true
		}
	}
	return false
}

// StepIDs returns the ids of steps in order.
func StepIDs(steps []Step) []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}
