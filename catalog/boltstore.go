package catalog

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/centralb/bookshop-go/identity"
)

var (
	bucketBooks      = []byte("books")
	bucketBookOwners = []byte("book_owners")
)

// BoltStore is a bbolt-backed implementation of Store.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("catalog: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBooks, bucketBookOwners} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// PutBook stores a new listing and indexes it by owner.
func (s *BoltStore) PutBook(b *BookRecord) error {
	if b == nil {
		return fmt.Errorf("%w: book record", ErrNilParam)
	}
	if err := checkHash(b.Hash); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		books := tx.Bucket(bucketBooks)
		if books.Get(b.Hash) != nil {
			return ErrDuplicateBook
		}

		data, err := encodeGob(b)
		if err != nil {
			return fmt.Errorf("encode book: %w", err)
		}
		if err := books.Put(b.Hash, data); err != nil {
			return fmt.Errorf("boltstore: put book: %w", err)
		}

		// Composite key: owner(20) + hash(32) for prefix scanning.
		compositeKey := make([]byte, identity.AddressSize+HashSize)
		copy(compositeKey, b.Owner.Bytes())
		copy(compositeKey[identity.AddressSize:], b.Hash)
		if err := tx.Bucket(bucketBookOwners).Put(compositeKey, []byte{}); err != nil {
			return fmt.Errorf("boltstore: put owner index: %w", err)
		}
		return nil
	})
}

// GetBook retrieves a listing by content hash.
func (s *BoltStore) GetBook(hash []byte) (*BookRecord, error) {
	if err := checkHash(hash); err != nil {
		return nil, err
	}

	var b BookRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketBooks).Get(hash)
		if data == nil {
			return ErrBookNotFound
		}
		if err := decodeGob(data, &b); err != nil {
			return fmt.Errorf("boltstore: decode book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBooksByOwner returns the content hashes of all books listed by owner.
func (s *BoltStore) GetBooksByOwner(owner identity.Address) ([][]byte, error) {
	prefix := owner.Bytes()

	var hashes [][]byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketBookOwners).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			hash := make([]byte, HashSize)
			copy(hash, k[identity.AddressSize:])
			hashes = append(hashes, hash)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: get books by owner: %w", err)
	}
	return hashes, nil
}

// BookCount returns the total number of listings.
func (s *BoltStore) BookCount() (uint64, error) {
	var count uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketBooks).Stats().KeyN)
		return nil
	})
	return count, err
}
