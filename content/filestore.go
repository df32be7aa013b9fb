package content

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps sealed book files on the local filesystem.
// Files are stored at: {baseDir}/{hex(bookHash[:1])}/{hex(bookHash)}
// The first byte (2 hex chars) is used as a subdirectory for sharding.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates a file-based store for sealed books.
// baseDir is typically "{DataDir}/books". The directory is created if it
// does not exist.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, ErrInvalidBaseDir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func validateBookHash(bookHash []byte) error {
	if len(bookHash) != BookHashSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidBookHash, len(bookHash))
	}
	return nil
}

// filePath returns the sharded path for a book hash.
func (fs *FileStore) filePath(bookHash []byte) string {
	hexHash := hex.EncodeToString(bookHash)
	return filepath.Join(fs.baseDir, hexHash[:2], hexHash)
}

// Put stores a sealed book indexed by its hash.
func (fs *FileStore) Put(bookHash, ciphertext []byte) error {
	if err := validateBookHash(bookHash); err != nil {
		return err
	}
	if len(ciphertext) == 0 {
		return ErrEmptyContent
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.filePath(bookHash)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.WriteFile(path, ciphertext, 0600); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Get retrieves a sealed book by its hash.
func (fs *FileStore) Get(bookHash []byte) ([]byte, error) {
	if err := validateBookHash(bookHash); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.filePath(bookHash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return data, nil
}

// Has reports whether a sealed book exists for the given hash.
func (fs *FileStore) Has(bookHash []byte) (bool, error) {
	if err := validateBookHash(bookHash); err != nil {
		return false, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if _, err := os.Stat(fs.filePath(bookHash)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return true, nil
}

// Delete removes a sealed book by its hash.
func (fs *FileStore) Delete(bookHash []byte) error {
	if err := validateBookHash(bookHash); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.filePath(bookHash)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Size returns the stored ciphertext size in bytes for a book hash.
func (fs *FileStore) Size(bookHash []byte) (int64, error) {
	if err := validateBookHash(bookHash); err != nil {
		return 0, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	info, err := os.Stat(fs.filePath(bookHash))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return info.Size(), nil
}

// List returns all stored book hashes by scanning the shard directories.
func (fs *FileStore) List() ([][]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	entries, err := os.ReadDir(fs.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	var result [][]byte
	for _, entry := range entries {
		if !entry.IsDir() || len(entry.Name()) != 2 {
			continue
		}

		files, err := os.ReadDir(filepath.Join(fs.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			bookHash, err := hex.DecodeString(f.Name())
			if err != nil || len(bookHash) != BookHashSize {
				continue
			}
			result = append(result, bookHash)
		}
	}
	return result, nil
}
