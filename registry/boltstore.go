package registry

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/centralb/bookshop-go/identity"
)

var bucketParticipants = []byte("participants")

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
		return nil, fmt.Errorf("registry: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("registry: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketParticipants)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("registry: create buckets: %w", err)
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

// PutParticipant stores a new participant.
func (s *BoltStore) PutParticipant(p *Participant) error {
	if p == nil {
		return fmt.Errorf("%w: participant", ErrNilParam)
	}
	if p.Address.IsZero() {
		return ErrZeroAddress
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketParticipants)
		if b.Get(p.Address.Bytes()) != nil {
			return ErrAlreadyRegistered
		}
		data, err := encodeGob(p)
		if err != nil {
			return fmt.Errorf("encode participant: %w", err)
		}
		if err := b.Put(p.Address.Bytes(), data); err != nil {
			return fmt.Errorf("boltstore: put participant: %w", err)
		}
		return nil
	})
}

// GetParticipant retrieves a participant by address.
func (s *BoltStore) GetParticipant(addr identity.Address) (*Participant, error) {
	var p Participant
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketParticipants).Get(addr.Bytes())
		if data == nil {
			return ErrNotRegistered
		}
		if err := decodeGob(data, &p); err != nil {
			return fmt.Errorf("boltstore: decode participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateRole overwrites the role of an existing participant.
func (s *BoltStore) UpdateRole(addr identity.Address, role Role) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketParticipants)
		data := b.Get(addr.Bytes())
		if data == nil {
			return ErrNotRegistered
		}
		var p Participant
		if err := decodeGob(data, &p); err != nil {
			return fmt.Errorf("boltstore: decode participant: %w", err)
		}
		p.Role = role
		updated, err := encodeGob(&p)
		if err != nil {
			return fmt.Errorf("encode participant: %w", err)
		}
		if err := b.Put(addr.Bytes(), updated); err != nil {
			return fmt.Errorf("boltstore: update participant: %w", err)
		}
		return nil
	})
}

// ParticipantCount returns the number of registered participants.
func (s *BoltStore) ParticipantCount() (uint64, error) {
	var count uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketParticipants).Stats().KeyN)
		return nil
	})
	return count, err
}
