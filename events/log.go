package events

import (
	"fmt"
	"sync"
)

// Log is an append-only event journal.
type Log interface {
	// Append adds an event to the log, assigning its sequence number.
	// The event's Seq field is set on success.
	Append(e *Event) error

	// List returns all events in sequence order.
	List() ([]*Event, error)

	// Count returns the number of logged events.
	Count() (uint64, error)
}

// checkEvent validates an event before append.
func checkEvent(e *Event) error {
	if e == nil {
		return fmt.Errorf("%w: event", ErrNilParam)
	}
	if e.Type < TypeUserCreated || e.Type > TypeBookBought {
		return fmt.Errorf("%w: %d", ErrInvalidType, e.Type)
	}
	return nil
}

// MemLog is an in-memory implementation of Log.
type MemLog struct {
	mu      sync.RWMutex
	entries []*Event
}

// Compile-time interface check.
var _ Log = (*MemLog)(nil)

// NewMemLog creates a new in-memory event log.
func NewMemLog() *MemLog {
	return &MemLog{}
}

// Append adds an event to the log.
func (l *MemLog) Append(e *Event) error {
	if err := checkEvent(e); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e.Seq = uint64(len(l.entries)) + 1
	stored := *e
	l.entries = append(l.entries, &stored)
	return nil
}

// List returns all events in sequence order.
func (l *MemLog) List() ([]*Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*Event, len(l.entries))
	for i, e := range l.entries {
		out := *e
		result[i] = &out
	}
	return result, nil
}

// Count returns the number of logged events.
func (l *MemLog) Count() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.entries)), nil
}
