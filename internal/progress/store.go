package progress

import (
	"sync"

	"go.uber.org/zap"
)

// Store loads and saves the progress [Record] under one storage key.
//
// Store serializes its own read-modify-write sequences, so concurrent
// [Store.MarkFeatureUsed] calls never interleave partial writes.
type Store struct {
	mu      sync.Mutex
	backend Backend
	key     string
	logger  *zap.Logger
}

// NewStore creates a [Store] for key on the given backend. A nil logger
// disables logging.
func NewStore(backend Backend, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		key:     key,
		logger:  logger.With(zap.String("storage_key", key)),
	}
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load returns the stored record and true, or a zero record and false when
// nothing usable is stored. Read and decode failures are logged, never returned.
func (s *Store) Load() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Record, bool) {
	text, found, err := s.backend.Get(s.key)
	if err != nil {
		s.logger.Warn("progress read failed, treating as no record", zap.Error(err))
		return Record{}, false
	}
	if !found {
		return Record{}, false
	}

	rec, err := Decode(text)
	if err != nil {
		s.logger.Warn("progress record malformed, treating as no record", zap.Error(err))
		return Record{}, false
	}
	return rec, true
}

// LoadOrDefault returns the stored record, or [DefaultRecord] when there is none.
func (s *Store) LoadOrDefault() Record {
	if rec, ok := s.Load(); ok {
		return rec
	}
	return DefaultRecord()
}

// Save replaces the stored record.
func (s *Store) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(rec)
}

func (s *Store) save(rec Record) error {
	text, err := Encode(rec)
	if err != nil {
		return err
	}
	if err := s.backend.Put(s.key, text); err != nil {
		s.logger.Warn("progress write failed", zap.Error(err))
		return err
	}
	s.logger.Debug("progress saved",
		zap.Int("completed_version", rec.CompletedVersion),
		zap.Int("completed_steps", len(rec.CompletedStepIDs)),
		zap.Int("features_used", len(rec.FeaturesUsed)),
		zap.Bool("dismissed", rec.Dismissed),
	)
	return nil
}

// Update reads the current record (or the default), applies fn and saves the
// result. The whole sequence holds the store lock. The updated record is
// returned even when saving fails.
func (s *Store) Update(fn func(*Record)) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load()
	if !ok {
		rec = DefaultRecord()
	}
	fn(&rec)
	return rec, s.save(rec)
}

// MarkFeatureUsed adds key to the features-used set.
//
// Tracking is idempotent: when key is already present nothing is written.
// An empty key is ignored. The current record is returned in every case.
func (s *Store) MarkFeatureUsed(key string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load()
	if !ok {
		rec = DefaultRecord()
	}
	if key == "" || rec.HasUsedFeature(key) {
		return rec, nil
	}

	rec.FeaturesUsed = append(rec.FeaturesUsed, key)
	return rec, s.save(rec)
}

// Clear deletes the stored record. This is a host-level reset; the tour
// engine itself never deletes progress.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(s.key); err != nil {
		return err
	}
	s.logger.Info("progress cleared")
	return nil
}
