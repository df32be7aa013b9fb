// Package shop implements the bookshop's serialized state machine.
//
// A Bookshop owns the registry, catalog, purchase ledger and event log, and
// executes every mutating operation under a single lock: no two mutations
// interleave, and each call either fully commits (state plus event) or
// leaves the shop exactly as it was. Fund movement happens through the
// ledger.Transferrer after the purchase record is written; a failed
// transfer rolls the record back, so no partial settlement is ever
// observable.
//
// Every operation takes the caller's identity as its first argument — the
// in-process equivalent of a transaction's sender.
package shop

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/centralb/bookshop-go/catalog"
	"github.com/centralb/bookshop-go/config"
	"github.com/centralb/bookshop-go/events"
	"github.com/centralb/bookshop-go/identity"
	"github.com/centralb/bookshop-go/ledger"
	"github.com/centralb/bookshop-go/registry"
	"github.com/centralb/bookshop-go/settle"
)

// Stores bundles the state backends a Bookshop runs on. Meta may be nil;
// everything else is required. Funds implementations must not call back
// into the shop: the shop's lock is held across the transfer, which makes
// reentrant mutation impossible rather than merely forbidden.
type Stores struct {
	Registry  registry.Store
	Catalog   catalog.Store
	Purchases ledger.Store
	Events    events.Log
	Funds     ledger.Transferrer
	Meta      MetaStore
}

// Bookshop is the marketplace state machine.
type Bookshop struct {
	mu sync.Mutex

	admin         identity.Address
	minCommission uint64
	open          bool

	registry  registry.Store
	catalog   catalog.Store
	purchases ledger.Store
	events    events.Log
	funds     ledger.Transferrer
	meta      MetaStore
}

// UserInfo is the read projection of a participant.
type UserInfo struct {
	Registered     bool
	ApprovedSeller bool
	Admin          bool
	Role           registry.Role
}

// New creates a Bookshop. cfg.Admin must be set; cfg.MinCommission is the
// listing commission floor, immutable for the shop's lifetime. The shop
// starts open unless a MetaStore carries a persisted breaker state.
func New(cfg config.Config, stores Stores) (*Bookshop, error) {
	if cfg.Admin == "" {
		return nil, ErrNoAdmin
	}
	admin, err := identity.FromString(cfg.Admin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidAdmin, err)
	}
	if cfg.MinCommission > catalog.MaxCommission {
		return nil, config.ErrInvalidMinCommission
	}
	if stores.Registry == nil || stores.Catalog == nil || stores.Purchases == nil ||
		stores.Events == nil || stores.Funds == nil {
		return nil, ErrNilStore
	}

	s := &Bookshop{
		admin:         admin,
		minCommission: cfg.MinCommission,
		open:          true,
		registry:      stores.Registry,
		catalog:       stores.Catalog,
		purchases:     stores.Purchases,
		events:        stores.Events,
		funds:         stores.Funds,
		meta:          stores.Meta,
	}

	if s.meta != nil {
		open, found, err := s.meta.LoadOpen()
		if err != nil {
			return nil, err
		}
		if found {
			s.open = open
		}
	}

	return s, nil
}

// NewInMemory creates a Bookshop on in-memory stores with a fresh
// ledger.Accounts balance book as the fund backend. Intended for tests and
// embedding without persistence.
func NewInMemory(cfg config.Config) (*Bookshop, *ledger.Accounts, error) {
	accounts := ledger.NewAccounts()
	s, err := New(cfg, Stores{
		Registry:  registry.NewMemStore(),
		Catalog:   catalog.NewMemStore(),
		Purchases: ledger.NewMemStore(),
		Events:    events.NewMemLog(),
		Funds:     accounts,
	})
	if err != nil {
		return nil, nil, err
	}
	return s, accounts, nil
}

// Admin returns the shop's admin address.
func (s *Bookshop) Admin() identity.Address {
	return s.admin
}

// MinCommission returns the configured listing commission floor.
func (s *Bookshop) MinCommission() uint64 {
	return s.minCommission
}

// IsOpen reports the circuit breaker state. Available while closed.
func (s *Bookshop) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// ToggleOpen flips the circuit breaker. Admin only. Returns the new state.
func (s *Bookshop) ToggleOpen(caller identity.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller != s.admin {
		return s.open, fmt.Errorf("%w: only admin may toggle the breaker", ErrUnauthorized)
	}

	next := !s.open
	if s.meta != nil {
		if err := s.meta.SaveOpen(next); err != nil {
			return s.open, err
		}
	}
	s.open = next
	return s.open, nil
}

// RegisterUser registers the caller as a Reader (wantsToSell false) or a
// PendingSeller (wantsToSell true).
func (s *Bookshop) RegisterUser(caller identity.Address, wantsToSell bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrShopClosed
	}
	if caller.IsZero() {
		return ErrZeroCaller
	}
	if caller == s.admin {
		return fmt.Errorf("%w: admin already holds a role", registry.ErrAlreadyRegistered)
	}

	p := registry.NewParticipant(caller, wantsToSell)
	if err := s.registry.PutParticipant(p); err != nil {
		return err
	}

	return s.events.Append(events.NewUserCreated(caller, wantsToSell))
}

// ApproveSeller escalates a PendingSeller to ApprovedSeller. Admin only.
func (s *Bookshop) ApproveSeller(caller, seller identity.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrShopClosed
	}
	if caller != s.admin {
		return fmt.Errorf("%w: only admin may approve sellers", ErrUnauthorized)
	}

	p, err := s.registry.GetParticipant(seller)
	if err != nil {
		if errors.Is(err, registry.ErrNotRegistered) {
			return fmt.Errorf("%w: %w", registry.ErrInvalidRoleTransition, err)
		}
		return err
	}
	if err := p.Approve(); err != nil {
		return err
	}
	if err := s.registry.UpdateRole(seller, p.Role); err != nil {
		return err
	}

	return s.events.Append(events.NewSellerApproved(seller))
}

// GetUser returns the read projection of subject. Unknown addresses get
// the zero UserInfo; this never fails and works while closed.
func (s *Bookshop) GetUser(subject identity.Address) UserInfo {
	if subject == s.admin {
		return UserInfo{Registered: true, Admin: true, Role: registry.RoleAdmin}
	}

	p, err := s.registry.GetParticipant(subject)
	if err != nil {
		return UserInfo{Role: registry.RoleUnregistered}
	}
	return UserInfo{
		Registered:     true,
		ApprovedSeller: p.Role == registry.RoleApprovedSeller,
		Role:           p.Role,
	}
}

// AddBook lists a new book. Caller must be an ApprovedSeller; the content
// hash must be globally new; commission must be within range and at or
// above the shop minimum.
func (s *Bookshop) AddBook(caller identity.Address, contentHash []byte, title, author string, price, commission uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrShopClosed
	}
	if err := s.requireApprovedSeller(caller); err != nil {
		return err
	}

	book := &catalog.BookRecord{
		Hash:       contentHash,
		Owner:      caller,
		Title:      title,
		Author:     author,
		Price:      price,
		Commission: commission,
	}
	if err := catalog.ValidateBook(book, s.minCommission); err != nil {
		return err
	}
	if err := s.catalog.PutBook(book); err != nil {
		return err
	}

	return s.events.Append(events.NewBookAdded(contentHash, caller))
}

// requireApprovedSeller checks the caller's role for AddBook. The admin and
// every non-ApprovedSeller participant are rejected alike.
func (s *Bookshop) requireApprovedSeller(caller identity.Address) error {
	if caller.IsZero() {
		return ErrZeroCaller
	}
	if caller == s.admin {
		return fmt.Errorf("%w: admin may not list books", ErrUnauthorized)
	}
	p, err := s.registry.GetParticipant(caller)
	if err != nil {
		if errors.Is(err, registry.ErrNotRegistered) {
			return fmt.Errorf("%w: caller not registered", ErrUnauthorized)
		}
		return err
	}
	if p.Role != registry.RoleApprovedSeller {
		return fmt.Errorf("%w: caller is %s", ErrUnauthorized, p.Role)
	}
	return nil
}

// BuyBook settles a purchase: the commission fee goes to the admin, the
// price remainder to the book's owner, and any overpayment straight back
// to the buyer. All three movements happen atomically; on transfer failure
// the purchase record is rolled back and the call leaves no trace.
//
// Repeat purchases of the same book by the same buyer are allowed and each
// settles in full.
func (s *Bookshop) BuyBook(caller identity.Address, contentHash []byte, payment uint64) (*ledger.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, ErrShopClosed
	}
	if caller.IsZero() {
		return nil, ErrZeroCaller
	}

	book, err := s.catalog.GetBook(contentHash)
	if err != nil {
		return nil, err
	}

	split, err := settle.Compute(book.Price, book.Commission, payment)
	if err != nil {
		return nil, err
	}

	purchase := &ledger.Purchase{
		Buyer:         caller,
		Seller:        book.Owner,
		BookHash:      book.Hash,
		Price:         split.Price,
		Fee:           split.Fee,
		SellerPayment: split.SellerPayment,
		Refund:        split.Refund,
		Timestamp:     time.Now().Unix(),
	}
	if err := s.purchases.PutPurchase(purchase); err != nil {
		return nil, err
	}

	// State is committed; the external transfer runs last. Zero-amount
	// payouts are omitted so backends never see empty credits.
	var payouts []ledger.Payout
	if split.Fee > 0 {
		payouts = append(payouts, ledger.Payout{To: s.admin, Amount: split.Fee})
	}
	if split.SellerPayment > 0 {
		payouts = append(payouts, ledger.Payout{To: book.Owner, Amount: split.SellerPayment})
	}
	if split.Refund > 0 {
		payouts = append(payouts, ledger.Payout{To: caller, Amount: split.Refund})
	}

	if err := s.funds.Settle(caller, payment, payouts); err != nil {
		if delErr := s.purchases.DeletePurchase(purchase.Seq); delErr != nil {
			return nil, fmt.Errorf("rollback purchase %d: %w (after %w)", purchase.Seq, delErr, err)
		}
		if errors.Is(err, ledger.ErrTransferFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ledger.ErrTransferFailed, err)
	}

	if err := s.events.Append(events.NewBookBought(book.Hash, caller, payment)); err != nil {
		return nil, err
	}

	return purchase, nil
}

// GetOwnedBooks returns the content hashes of books listed by caller.
// Available while closed.
func (s *Bookshop) GetOwnedBooks(caller identity.Address) ([][]byte, error) {
	return s.catalog.GetBooksByOwner(caller)
}

// GetPurchasedBooks returns the content hashes of books caller has bought,
// in purchase order, one entry per purchase. Available while closed.
func (s *Bookshop) GetPurchasedBooks(caller identity.Address) ([][]byte, error) {
	purchases, err := s.purchases.GetPurchasesByBuyer(caller)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return nil, nil
	}
	hashes := make([][]byte, len(purchases))
	for i, p := range purchases {
		hashes[i] = p.BookHash
	}
	return hashes, nil
}

// Events returns the full event history in sequence order.
// Available while closed.
func (s *Bookshop) Events() ([]*events.Event, error) {
	return s.events.List()
}

// GetBook returns the full listing for a content hash.
// Available while closed.
func (s *Bookshop) GetBook(contentHash []byte) (*catalog.BookRecord, error) {
	return s.catalog.GetBook(contentHash)
}
