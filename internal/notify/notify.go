// Package notify derives the "what's new" prompt and the completion badge
// from the stored progress record.
//
// Everything here is read-only; writing progress is the job of the tour
// controller and the feature tracker.
//
// Key types:
//   - [Prompt] tells a returning user that steps were added since their last run
//   - [Badge] summarizes which catalog features have been used
package notify

import (
	"math"

	"stairtour/internal/catalog"
	"stairtour/internal/progress"
)

// RecordSource is the read side of a progress store.
type RecordSource interface {
	Load() (progress.Record, bool)
}

// ShouldShowFullTour reports whether the full tour should start on its own.
// Only a user with no stored record qualifies; a record that is merely behind
// the catalog version goes through [HasNewSteps] instead.
func ShouldShowFullTour(src RecordSource) bool {
	_, ok := src.Load()
	return !ok
}

// HasNewSteps reports whether the user finished or skipped an earlier catalog
// version. A completed version of 0 counts as never started.
func HasNewSteps(src RecordSource, cat *catalog.Catalog) bool {
	rec, ok := src.Load()
	if !ok {
		return false
	}
	return hasNewSteps(rec, cat)
}

func hasNewSteps(rec progress.Record, cat *catalog.Catalog) bool {
	return rec.CompletedVersion > 0 && rec.CompletedVersion < cat.Version
}

// DeltaSteps returns the catalog steps whose ids are not recorded as
// completed, in catalog order. With no record it returns the whole catalog.
func DeltaSteps(src RecordSource, cat *catalog.Catalog) []catalog.Step {
	rec, ok := src.Load()
	if !ok {
		return cat.Filter(func(catalog.Step) bool { return true })
	}
	return deltaSteps(rec, cat)
}

func deltaSteps(rec progress.Record, cat *catalog.Catalog) []catalog.Step {
	done := make(map[string]struct{}, len(rec.CompletedStepIDs))
	for _, id := range rec.CompletedStepIDs {
		done[id] = struct{}{}
	}
	return cat.Filter(func(s catalog.Step) bool {
		_, seen := done[s.ID]
		return !seen
	})
}

// FeaturesExplored returns round(100 * used / featureKeys), or 0 for a
// catalog without feature keys. Keys reported outside the catalog still
// count, so the result is capped at 100.
func FeaturesExplored(rec progress.Record, cat *catalog.Catalog) int {
	total := len(cat.FeatureKeys())
	if total == 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(len(rec.FeaturesUsed)) / float64(total)))
	return min(pct, 100)
}

// FeatureStatus is one row of the badge's feature checklist.
type FeatureStatus struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Used  bool   `json:"used"`
}

// Badge is the completion badge view model.
type Badge struct {
	Used     int             `json:"used"`
	Total    int             `json:"total"`
	Percent  int             `json:"percent"`
	Features []FeatureStatus `json:"features"`
}

// Complete reports whether every catalog feature has been used.
func (b Badge) Complete() bool {
	return b.Total > 0 && b.Used >= b.Total
}

// NewBadge builds the badge for rec. Used counts only catalog features; the
// percentage follows [FeaturesExplored].
func NewBadge(rec progress.Record, cat *catalog.Catalog) Badge {
	b := Badge{
		Percent:  FeaturesExplored(rec, cat),
		Features: []FeatureStatus{},
	}
	for _, s := range cat.Steps {
		if s.FeatureKey == "" {
			continue
		}
		used := rec.HasUsedFeature(s.FeatureKey)
		b.Features = append(b.Features, FeatureStatus{Key: s.FeatureKey, Title: s.Title, Used: used})
		b.Total++
		if used {
			b.Used++
		}
	}
	return b
}

// Prompt is the "what's new" view model.
type Prompt struct {
	Show        bool           `json:"show"`
	FromVersion int            `json:"fromVersion"`
	ToVersion   int            `json:"toVersion"`
	NewSteps    []catalog.Step `json:"newSteps"`
}

// NewPrompt builds the prompt. Show is false unless [HasNewSteps] holds; when
// shown, NewSteps lists the delta tour.
func NewPrompt(src RecordSource, cat *catalog.Catalog) Prompt {
	p := Prompt{ToVersion: cat.Version}
	rec, ok := src.Load()
	if !ok {
		return p
	}
	p.FromVersion = rec.CompletedVersion
	if !hasNewSteps(rec, cat) {
		return p
	}
	p.Show = true
	p.NewSteps = deltaSteps(rec, cat)
	return p
}
