package ledger

import (
	"fmt"
	"sync"

	"github.com/centralb/bookshop-go/identity"
)

// Accounts is an in-process balance book implementing Transferrer.
//
// It is a closed system: value enters only through Mint, and Settle moves
// it between accounts without creating or destroying any. All movements of
// one settlement happen under a single lock, so a settlement is atomic and
// balances always sum to the minted total.
type Accounts struct {
	mu       sync.RWMutex
	balances map[identity.Address]uint64
	minted   uint64
}

// Compile-time interface check.
var _ Transferrer = (*Accounts)(nil)

// NewAccounts creates an empty balance book.
func NewAccounts() *Accounts {
	return &Accounts{balances: make(map[identity.Address]uint64)}
}

// Mint credits amount to addr out of thin air. Used to fund accounts.
func (a *Accounts) Mint(addr identity.Address, amount uint64) error {
	if addr.IsZero() {
		return ErrZeroAddress
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.balances[addr] += amount
	a.minted += amount
	return nil
}

// Balance returns the current balance of addr.
func (a *Accounts) Balance(addr identity.Address) uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balances[addr]
}

// TotalMinted returns the sum of all Mint calls. Balances always sum to
// this value.
func (a *Accounts) TotalMinted() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.minted
}

// Settle debits payment from buyer and applies the payouts atomically.
func (a *Accounts) Settle(buyer identity.Address, payment uint64, payouts []Payout) error {
	if buyer.IsZero() {
		return fmt.Errorf("%w: %w", ErrTransferFailed, ErrZeroAddress)
	}

	var total uint64
	for _, p := range payouts {
		if p.To.IsZero() {
			return fmt.Errorf("%w: %w", ErrTransferFailed, ErrZeroAddress)
		}
		total += p.Amount
	}
	if total != payment {
		return fmt.Errorf("%w: %w: payouts=%d payment=%d",
			ErrTransferFailed, ErrUnbalancedSettlement, total, payment)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balances[buyer] < payment {
		return fmt.Errorf("%w: %w: balance=%d payment=%d",
			ErrTransferFailed, ErrInsufficientFunds, a.balances[buyer], payment)
	}

	a.balances[buyer] -= payment
	for _, p := range payouts {
		a.balances[p.To] += p.Amount
	}
	return nil
}
