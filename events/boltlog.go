package events

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketEvents = []byte("events")

// BoltLog is a bbolt-backed implementation of Log.
type BoltLog struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Log = (*BoltLog)(nil)

// OpenBoltLog opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltLog(dbPath string) (*BoltLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("events: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("events: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: create buckets: %w", err)
	}

	return &BoltLog{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLog) Close() error { return l.db.Close() }

// seqKey encodes a sequence number as an 8-byte big-endian key.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// Append adds an event to the log, assigning its sequence number.
func (l *BoltLog) Append(e *Event) error {
	if err := checkEvent(e); err != nil {
		return err
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("boltlog: next sequence: %w", err)
		}
		e.Seq = seq

		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(e); err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
		if err := b.Put(seqKey(seq), buf.Bytes()); err != nil {
			return fmt.Errorf("boltlog: put event: %w", err)
		}
		return nil
	})
}

// List returns all events in sequence order.
func (l *BoltLog) List() ([]*Event, error) {
	var result []*Event
	err := l.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEvents).ForEach(func(k, v []byte) error {
			var e Event
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&e); err != nil {
				return fmt.Errorf("boltlog: decode event: %w", err)
			}
			result = append(result, &e)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("boltlog: list events: %w", err)
	}
	return result, nil
}

// Count returns the number of logged events.
func (l *BoltLog) Count() (uint64, error) {
	var count uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketEvents).Stats().KeyN)
		return nil
	})
	return count, err
}
