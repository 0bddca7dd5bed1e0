package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps each collection in its own JSON file under a data
// directory. This is the zero-dependency deployment mode.
type FileStore struct {
	typedStore
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed and returns a store
// backed by it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	fs := &FileStore{dir: dir}
	fs.typedStore.raw = fs
	return fs, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

func (fs *FileStore) get(key string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (fs *FileStore) set(key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	tmp := fs.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path(key))
}
