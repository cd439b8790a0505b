package notify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stairtour/internal/catalog"
	"stairtour/internal/progress"
)

// staticSource returns a fixed record.
type staticSource struct {
	rec progress.Record
	ok  bool
}

func (s staticSource) Load() (progress.Record, bool) { return s.rec, s.ok }

func noRecord() staticSource { return staticSource{} }

func withRecord(rec progress.Record) staticSource { return staticSource{rec: rec, ok: true} }

func versionedCatalog(version int) *catalog.Catalog {
	return catalog.New(version, catalog.Default().Steps)
}

func TestShouldShowFullTour(t *testing.T) {
	assert.True(t, ShouldShowFullTour(noRecord()))
	assert.False(t, ShouldShowFullTour(withRecord(progress.DefaultRecord())))
	assert.False(t, ShouldShowFullTour(withRecord(progress.Record{CompletedVersion: 1})))
	assert.False(t, ShouldShowFullTour(withRecord(progress.Record{CompletedVersion: 99})))
}

func TestHasNewSteps(t *testing.T) {
	cat := versionedCatalog(3)
	tests := []struct {
		name string
		src  RecordSource
		want bool
	}{
		{"no record", noRecord(), false},
		{"never completed", withRecord(progress.Record{CompletedVersion: 0}), false},
		{"one behind", withRecord(progress.Record{CompletedVersion: 2}), true},
		{"two behind", withRecord(progress.Record{CompletedVersion: 1}), true},
		{"current", withRecord(progress.Record{CompletedVersion: 3}), false},
		{"ahead", withRecord(progress.Record{CompletedVersion: 4}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasNewSteps(tt.src, cat))
		})
	}
}

func TestDeltaSteps(t *testing.T) {
	cat := catalog.Default()

	t.Run("no record returns full catalog", func(t *testing.T) {
		got := DeltaSteps(noRecord(), cat)
		if diff := cmp.Diff(cat.Steps, got); diff != "" {
			t.Errorf("DeltaSteps() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("all completed returns empty", func(t *testing.T) {
		got := DeltaSteps(withRecord(progress.Record{CompletedStepIDs: cat.IDs()}), cat)
		assert.Empty(t, got)
	})

	t.Run("excludes only completed ids", func(t *testing.T) {
		rec := progress.Record{CompletedStepIDs: []string{"welcome", "notes", "retired_step"}}
		got := DeltaSteps(withRecord(rec), cat)
		assert.Equal(t, cat.Len()-2, len(got))
		want := cat.IDs()[1 : cat.Len()-1]
		if diff := cmp.Diff(want, catalog.StepIDs(got)); diff != "" {
			t.Errorf("DeltaSteps() ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("null completed ids", func(t *testing.T) {
		got := DeltaSteps(withRecord(progress.Record{}), cat)
		assert.Len(t, got, cat.Len())
	})
}

func TestFeaturesExplored(t *testing.T) {
	cat := catalog.Default()
	keys := cat.FeatureKeys()
	require.Len(t, keys, 12)

	tests := []struct {
		name string
		used []string
		want int
	}{
		{"none", nil, 0},
		{"one of twelve", keys[:1], 8},
		{"three of twelve", keys[:3], 25},
		{"six of twelve", keys[:6], 50},
		{"seven of twelve", keys[:7], 58},
		{"all", keys, 100},
		{"extra keys capped", append(append([]string{}, keys...), "beta_lab"), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FeaturesExplored(progress.Record{FeaturesUsed: tt.used}, cat)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("no feature keys", func(t *testing.T) {
		bare := catalog.New(1, []catalog.Step{{ID: "welcome", Title: "Hi"}})
		assert.Zero(t, FeaturesExplored(progress.Record{FeaturesUsed: []string{"x"}}, bare))
	})
}

func TestNewBadge(t *testing.T) {
	cat := catalog.New(1, []catalog.Step{
		{ID: "welcome", Title: "Welcome"},
		{ID: "notes", Title: "Notes", FeatureKey: "notes"},
		{ID: "export", Title: "Export", FeatureKey: "export"},
	})

	got := NewBadge(progress.Record{FeaturesUsed: []string{"export"}}, cat)
	want := Badge{
		Used:    1,
		Total:   2,
		Percent: 50,
		Features: []FeatureStatus{
			{Key: "notes", Title: "Notes", Used: false},
			{Key: "export", Title: "Export", Used: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewBadge() mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, got.Complete())

	full := NewBadge(progress.Record{FeaturesUsed: []string{"notes", "export"}}, cat)
	assert.True(t, full.Complete())
}

func TestNewPrompt(t *testing.T) {
	cat := versionedCatalog(2)

	t.Run("no record", func(t *testing.T) {
		p := NewPrompt(noRecord(), cat)
		assert.False(t, p.Show)
		assert.Equal(t, 2, p.ToVersion)
	})

	t.Run("current", func(t *testing.T) {
		p := NewPrompt(withRecord(progress.Record{CompletedVersion: 2}), cat)
		assert.False(t, p.Show)
		assert.Nil(t, p.NewSteps)
	})

	t.Run("behind", func(t *testing.T) {
		rec := progress.Record{CompletedVersion: 1, CompletedStepIDs: cat.IDs()[:11]}
		p := NewPrompt(withRecord(rec), cat)
		assert.True(t, p.Show)
		assert.Equal(t, 1, p.FromVersion)
		assert.Equal(t, []string{"ai_chat", "notes"}, catalog.StepIDs(p.NewSteps))
	})
}

func TestReturningUserScenario(t *testing.T) {
	backend := progress.NewMemoryBackend()
	store := progress.NewStore(backend, catalog.StorageKey, nil)

	v1 := catalog.New(1, catalog.Default().Steps[:11])
	require.True(t, ShouldShowFullTour(store))

	_, err := store.Update(func(r *progress.Record) {
		r.CompletedVersion = v1.Version
		r.CompletedStepIDs = v1.IDs()
	})
	require.NoError(t, err)
	assert.False(t, ShouldShowFullTour(store))
	assert.False(t, HasNewSteps(store, v1))

	v2 := versionedCatalog(2)
	assert.False(t, ShouldShowFullTour(store))
	require.True(t, HasNewSteps(store, v2))
	assert.Equal(t, []string{"ai_chat", "notes"}, catalog.StepIDs(DeltaSteps(store, v2)))
}
