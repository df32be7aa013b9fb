package ledger

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/centralb/bookshop-go/identity"
)

var (
	bucketPurchases      = []byte("purchases")
	bucketPurchaseBuyers = []byte("purchase_buyers")
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
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketPurchases, bucketPurchaseBuyers} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// seqKey encodes a sequence number as an 8-byte big-endian key for sorted
// storage.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

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

// PutPurchase appends a purchase record, assigning its sequence number.
func (s *BoltStore) PutPurchase(p *Purchase) error {
	if err := validatePurchase(p); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPurchases)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("boltstore: next sequence: %w", err)
		}
		p.Seq = seq

		data, err := encodeGob(p)
		if err != nil {
			return fmt.Errorf("encode purchase: %w", err)
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("boltstore: put purchase: %w", err)
		}

		// Composite key: buyer(20) + seq(8) for ordered prefix scanning.
		compositeKey := make([]byte, identity.AddressSize+8)
		copy(compositeKey, p.Buyer.Bytes())
		copy(compositeKey[identity.AddressSize:], seqKey(seq))
		if err := tx.Bucket(bucketPurchaseBuyers).Put(compositeKey, []byte{}); err != nil {
			return fmt.Errorf("boltstore: put buyer index: %w", err)
		}
		return nil
	})
}

// GetPurchasesByBuyer returns the buyer's purchases in sequence order.
func (s *BoltStore) GetPurchasesByBuyer(buyer identity.Address) ([]*Purchase, error) {
	prefix := buyer.Bytes()

	var purchases []*Purchase
	err := s.db.View(func(tx *bbolt.Tx) error {
		idx := tx.Bucket(bucketPurchaseBuyers)
		all := tx.Bucket(bucketPurchases)

		c := idx.Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			data := all.Get(k[identity.AddressSize:])
			if data == nil {
				continue // stale index entry
			}
			var p Purchase
			if err := decodeGob(data, &p); err != nil {
				return fmt.Errorf("boltstore: decode purchase: %w", err)
			}
			purchases = append(purchases, &p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: get purchases by buyer: %w", err)
	}
	return purchases, nil
}

// DeletePurchase removes a purchase record and its buyer index entry.
func (s *BoltStore) DeletePurchase(seq uint64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPurchases)
		key := seqKey(seq)
		data := b.Get(key)
		if data == nil {
			return ErrPurchaseNotFound
		}
		var p Purchase
		if err := decodeGob(data, &p); err != nil {
			return fmt.Errorf("boltstore: decode purchase: %w", err)
		}
		if err := b.Delete(key); err != nil {
			return fmt.Errorf("boltstore: delete purchase: %w", err)
		}

		compositeKey := make([]byte, identity.AddressSize+8)
		copy(compositeKey, p.Buyer.Bytes())
		copy(compositeKey[identity.AddressSize:], key)
		if err := tx.Bucket(bucketPurchaseBuyers).Delete(compositeKey); err != nil {
			return fmt.Errorf("boltstore: delete buyer index entry: %w", err)
		}
		return nil
	})
}

// PurchaseCount returns the total number of purchase records.
func (s *BoltStore) PurchaseCount() (uint64, error) {
	var count uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketPurchases).Stats().KeyN)
		return nil
	})
	return count, err
}
