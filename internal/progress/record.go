// Package progress persists the per-installation guided-tour progress record.
//
// The record is stored as JSON text under a single storage key. Reads fail soft:
// a missing, unreadable or malformed record is reported as "no record" so the
// host falls back to first-run behaviour instead of crashing.
//
// Key types:
//   - [Record] is the persisted summary of tour completion and feature usage
//   - [Store] loads, saves and updates the record through a [Backend]
//   - [FileBackend], [SQLiteBackend] and [MemoryBackend] are the storage options
package progress

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Record is the persisted tour progress for one installation.
//
// JSON layout:
//
//	{"completedVersion": 1, "completedStepIds": ["welcome"], "featuresUsed": ["notes"], "dismissed": false}
//
// Fields missing from older records decode to their defaults.
type Record struct {
	// CompletedVersion is the catalog version as of the last finish or skip.
	// Zero means the tour was never completed.
	CompletedVersion int `json:"completedVersion"`

	// CompletedStepIDs is the set of step ids marked complete.
	CompletedStepIDs []string `json:"completedStepIds"`

	// FeaturesUsed is the set of feature keys the host reported as exercised.
	FeaturesUsed []string `json:"featuresUsed"`

	// Dismissed is true when the user skipped the tour rather than finishing it.
	Dismissed bool `json:"dismissed"`
}

// DefaultRecord returns the record used when nothing has been stored yet.
func DefaultRecord() Record {
	return Record{
		CompletedVersion: 0,
		CompletedStepIDs: []string{},
		FeaturesUsed:     []string{},
		Dismissed:        false,
	}
}

// HasCompletedStep reports whether id is in the completed set.
func (r Record) HasCompletedStep(id string) bool {
	return slices.Contains(r.CompletedStepIDs, id)
}

// HasUsedFeature reports whether key is in the features-used set.
func (r Record) HasUsedFeature(key string) bool {
	return slices.Contains(r.FeaturesUsed, key)
}

// Clone returns a deep copy so callers can mutate it without aliasing.
func (r Record) Clone() Record {
	r.CompletedStepIDs = append([]string{}, r.CompletedStepIDs...)
	r.FeaturesUsed = append([]string{}, r.FeaturesUsed...)
	return r
}

// normalize replaces nil sets with empty ones and drops duplicates, keeping
// first-seen order.
func (r Record) normalize() Record {
	r.CompletedStepIDs = dedupe(r.CompletedStepIDs)
	r.FeaturesUsed = dedupe(r.FeaturesUsed)
	return r
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Encode serializes the record as JSON text.
func Encode(r Record) (string, error) {
	data, err := json.Marshal(r.normalize())
	if err != nil {
		return "", fmt.Errorf("failed to encode progress record: %w", err)
	}
	return string(data), nil
}

// Decode parses JSON text into a record. Absent fields take their defaults.
// A JSON null, or anything that is not an object, is an error.
func Decode(text string) (Record, error) {
	var raw *Record
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Record{}, fmt.Errorf("failed to decode progress record: %w", err)
	}
	if raw == nil {
		return Record{}, fmt.Errorf("failed to decode progress record: null")
	}
	return raw.normalize(), nil
}
