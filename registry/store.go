package registry

import (
	"fmt"
	"sync"

	"github.com/centralb/bookshop-go/identity"
)

// Store persists participants.
type Store interface {
	// PutParticipant stores a new participant. Returns ErrAlreadyRegistered
	// if the address already holds a role.
	PutParticipant(p *Participant) error

	// GetParticipant retrieves a participant by address. Returns
	// ErrNotRegistered for unknown addresses.
	GetParticipant(addr identity.Address) (*Participant, error)

	// UpdateRole overwrites the role of an existing participant.
	UpdateRole(addr identity.Address, role Role) error

	// ParticipantCount returns the number of registered participants.
	ParticipantCount() (uint64, error)
}

// MemStore is an in-memory implementation of Store.
type MemStore struct {
	mu           sync.RWMutex
	participants map[identity.Address]*Participant
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates a new in-memory participant store.
func NewMemStore() *MemStore {
	return &MemStore{participants: make(map[identity.Address]*Participant)}
}

// PutParticipant stores a new participant.
func (s *MemStore) PutParticipant(p *Participant) error {
	if p == nil {
		return fmt.Errorf("%w: participant", ErrNilParam)
	}
	if p.Address.IsZero() {
		return ErrZeroAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.participants[p.Address]; exists {
		return ErrAlreadyRegistered
	}

	stored := *p
	s.participants[p.Address] = &stored
	return nil
}

// GetParticipant retrieves a participant by address.
func (s *MemStore) GetParticipant(addr identity.Address) (*Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[addr]
	if !ok {
		return nil, ErrNotRegistered
	}

	// Return a copy to avoid mutation.
	out := *p
	return &out, nil
}

// UpdateRole overwrites the role of an existing participant.
func (s *MemStore) UpdateRole(addr identity.Address, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[addr]
	if !ok {
		return ErrNotRegistered
	}
	p.Role = role
	return nil
}

// ParticipantCount returns the number of registered participants.
func (s *MemStore) ParticipantCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.participants)), nil
}
