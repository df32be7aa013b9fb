package catalog

import (
	"fmt"
	"sync"

	"github.com/centralb/bookshop-go/identity"
)

// Store persists book listings.
//
// Implementations reject duplicate content hashes; they do not validate
// field constraints — callers run ValidateBook first.
type Store interface {
	// PutBook stores a new listing. Returns ErrDuplicateBook if the
	// content hash is already listed.
	PutBook(b *BookRecord) error

	// GetBook retrieves a listing by content hash.
	GetBook(hash []byte) (*BookRecord, error)

	// GetBooksByOwner returns the content hashes of all books listed by
	// owner. Order is unspecified; an owner with no listings gets nil.
	GetBooksByOwner(owner identity.Address) ([][]byte, error)

	// BookCount returns the total number of listings.
	BookCount() (uint64, error)
}

// hashKey converts a content hash to a map key.
func hashKey(h []byte) string {
	return string(h)
}

// checkHash validates a content hash length.
func checkHash(hash []byte) error {
	if len(hash) != HashSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidHash, len(hash))
	}
	return nil
}

// MemStore is an in-memory implementation of Store.
type MemStore struct {
	mu      sync.RWMutex
	byHash  map[string]*BookRecord
	byOwner map[identity.Address][][]byte
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates a new in-memory catalog store.
func NewMemStore() *MemStore {
	return &MemStore{
		byHash:  make(map[string]*BookRecord),
		byOwner: make(map[identity.Address][][]byte),
	}
}

// PutBook stores a new listing.
func (s *MemStore) PutBook(b *BookRecord) error {
	if b == nil {
		return fmt.Errorf("%w: book record", ErrNilParam)
	}
	if err := checkHash(b.Hash); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := hashKey(b.Hash)
	if _, exists := s.byHash[key]; exists {
		return ErrDuplicateBook
	}

	stored := *b
	stored.Hash = append([]byte(nil), b.Hash...)
	s.byHash[key] = &stored
	s.byOwner[b.Owner] = append(s.byOwner[b.Owner], stored.Hash)
	return nil
}

// GetBook retrieves a listing by content hash.
func (s *MemStore) GetBook(hash []byte) (*BookRecord, error) {
	if err := checkHash(hash); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byHash[hashKey(hash)]
	if !ok {
		return nil, ErrBookNotFound
	}
	out := *b
	return &out, nil
}

// GetBooksByOwner returns the content hashes of all books listed by owner.
func (s *MemStore) GetBooksByOwner(owner identity.Address) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hashes := s.byOwner[owner]
	if len(hashes) == 0 {
		return nil, nil
	}

	// Return a copy to avoid mutation.
	result := make([][]byte, len(hashes))
	copy(result, hashes)
	return result, nil
}

// BookCount returns the total number of listings.
func (s *MemStore) BookCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.byHash)), nil
}
