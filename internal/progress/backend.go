package progress

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// Backend stores raw record text by storage key.
//
// Get reports found=false (with a nil error) when the key has never been written.
// Put replaces any previous value; there is no partial-merge semantics.
type Backend interface {
	Get(key string) (value string, found bool, err error)
	Put(key, value string) error
	Delete(key string) error
}

// ErrInvalidKey is returned for storage keys that cannot be mapped to a file name.
var ErrInvalidKey = errors.New("invalid storage key")

// AppDirName is the directory name used under the user config dir.
const AppDirName = "stairtour"

// ResolveDir picks the directory for file-based progress storage.
//
// Resolution order:
//  1. STAIRTOUR_STATE_DIR environment variable (used as-is if set)
//  2. Explicit dir parameter (if non-empty)
//  3. The platform user config dir joined with [AppDirName]
//  4. ".stairtour" in the working directory when no config dir is available
func ResolveDir(dir string) string {
	if envDir := os.Getenv("STAIRTOUR_STATE_DIR"); envDir != "" {
		return envDir
	}
	if dir != "" {
		return dir
	}
	if cfgDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(cfgDir, AppDirName)
	}
	return "." + AppDirName
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileBackend keeps one JSON file per storage key inside a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a [FileBackend] rooted at dir. The directory is
// created lazily on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the storage directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

// Path returns the file that holds the given key.
func (b *FileBackend) Path(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(b.dir, key+".json"), nil
}

// Get reads the value for key.
func (b *FileBackend) Get(key string) (string, bool, error) {
	path, err := b.Path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read progress: %w", err)
	}
	return string(data), true, nil
}

// Put writes the value for key atomically (write to temp, then rename).
func (b *FileBackend) Put(key, value string) error {
	path, err := b.Path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Clean up temp file on rename failure
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write progress: %w", err)
	}

	return nil
}

// Delete removes the value for key. Deleting a missing key is not an error.
func (b *FileBackend) Delete(key string) error {
	path, err := b.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

// MemoryBackend keeps values in memory. Safe for concurrent use.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string

	// PutErr, when set, is returned by every Put. Used to simulate a full or
	// disabled storage.
	PutErr error
}

// NewMemoryBackend creates an empty [MemoryBackend].
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// Get returns the value for key.
func (b *MemoryBackend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok, nil
}

// Put stores the value for key.
func (b *MemoryBackend) Put(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.PutErr != nil {
		return b.PutErr
	}
	b.values[key] = value
	return nil
}

// Delete removes key.
func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
	return nil
}
