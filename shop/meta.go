package shop

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

// MetaStore persists shop-level state that is not owned by any other store,
// currently just the circuit breaker flag. A nil MetaStore means the flag
// lives only in memory and a restart reopens the shop.
type MetaStore interface {
	// LoadOpen returns the persisted breaker state. found is false when
	// nothing has been persisted yet.
	LoadOpen() (open bool, found bool, err error)

	// SaveOpen persists the breaker state.
	SaveOpen(open bool) error
}

var (
	bucketMeta = []byte("meta")
	keyIsOpen  = []byte("is_open")
)

// BoltMeta is a bbolt-backed implementation of MetaStore.
type BoltMeta struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ MetaStore = (*BoltMeta)(nil)

// OpenBoltMeta opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltMeta(dbPath string) (*BoltMeta, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("shop: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("shop: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("shop: create buckets: %w", err)
	}

	return &BoltMeta{db: db}, nil
}

// Close closes the underlying database.
func (m *BoltMeta) Close() error { return m.db.Close() }

// LoadOpen returns the persisted breaker state.
func (m *BoltMeta) LoadOpen() (bool, bool, error) {
	var open, found bool
	err := m.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get(keyIsOpen)
		if v == nil {
			return nil
		}
		found = true
		open = len(v) == 1 && v[0] == 1
		return nil
	})
	if err != nil {
		return false, false, fmt.Errorf("shop: load breaker state: %w", err)
	}
	return open, found, nil
}

// SaveOpen persists the breaker state.
func (m *BoltMeta) SaveOpen(open bool) error {
	return m.db.Update(func(tx *bbolt.Tx) error {
		v := []byte{0}
		if open {
			v[0] = 1
		}
		if err := tx.Bucket(bucketMeta).Put(keyIsOpen, v); err != nil {
			return fmt.Errorf("shop: save breaker state: %w", err)
		}
		return nil
	})
}
