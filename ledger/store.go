package ledger

import (
	"fmt"
	"sync"

	"github.com/centralb/bookshop-go/identity"
)

// Store persists purchase records.
type Store interface {
	// PutPurchase appends a purchase record, assigning its sequence
	// number. The record's Seq field is set on success.
	PutPurchase(p *Purchase) error

	// GetPurchasesByBuyer returns the buyer's purchases in sequence order.
	GetPurchasesByBuyer(buyer identity.Address) ([]*Purchase, error)

	// DeletePurchase removes a purchase record by sequence number. Only
	// used to roll back a purchase whose settlement failed; committed
	// purchases are never deleted.
	DeletePurchase(seq uint64) error

	// PurchaseCount returns the total number of purchase records.
	PurchaseCount() (uint64, error)
}

// validatePurchase checks the fields a store relies on.
func validatePurchase(p *Purchase) error {
	if p == nil {
		return fmt.Errorf("%w: purchase", ErrNilParam)
	}
	if p.Buyer.IsZero() || p.Seller.IsZero() {
		return ErrZeroAddress
	}
	if len(p.BookHash) != BookHashSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidBookHash, len(p.BookHash))
	}
	return nil
}

// MemStore is an in-memory implementation of Store.
type MemStore struct {
	mu      sync.RWMutex
	all     []*Purchase
	byBuyer map[identity.Address][]*Purchase
	nextSeq uint64
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates a new in-memory purchase store.
func NewMemStore() *MemStore {
	return &MemStore{
		byBuyer: make(map[identity.Address][]*Purchase),
		nextSeq: 1,
	}
}

// PutPurchase appends a purchase record.
func (s *MemStore) PutPurchase(p *Purchase) error {
	if err := validatePurchase(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.Seq = s.nextSeq
	s.nextSeq++

	stored := *p
	stored.BookHash = append([]byte(nil), p.BookHash...)
	s.all = append(s.all, &stored)
	s.byBuyer[p.Buyer] = append(s.byBuyer[p.Buyer], &stored)
	return nil
}

// GetPurchasesByBuyer returns the buyer's purchases in sequence order.
func (s *MemStore) GetPurchasesByBuyer(buyer identity.Address) ([]*Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchases := s.byBuyer[buyer]
	if len(purchases) == 0 {
		return nil, nil
	}

	result := make([]*Purchase, len(purchases))
	for i, p := range purchases {
		out := *p
		result[i] = &out
	}
	return result, nil
}

// DeletePurchase removes a purchase record by sequence number.
func (s *MemStore) DeletePurchase(seq uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.all {
		if p.Seq == seq {
			s.all = append(s.all[:i], s.all[i+1:]...)
			buyer := p.Buyer
			list := s.byBuyer[buyer]
			for j, bp := range list {
				if bp.Seq == seq {
					s.byBuyer[buyer] = append(list[:j], list[j+1:]...)
					break
				}
			}
			return nil
		}
	}
	return ErrPurchaseNotFound
}

// PurchaseCount returns the total number of purchase records.
func (s *MemStore) PurchaseCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.all)), nil
}
