// Package ledger holds the money side of the bookshop: the fund transfer
// primitive used during settlement, an in-process balance book implementing
// it, and the purchase records written after each successful sale.
package ledger

import (
	"github.com/centralb/bookshop-go/identity"
)

// BookHashSize is the length of a book content hash (32 bytes).
const BookHashSize = 32

// Payout is a single credit within a settlement.
type Payout struct {
	To     identity.Address
	Amount uint64
}

// Transferrer moves funds during a purchase.
//
// Settle debits payment from buyer and applies every payout, atomically:
// either all movements happen or none do. The payouts must sum exactly to
// payment. A failed settlement leaves all balances untouched.
type Transferrer interface {
	Settle(buyer identity.Address, payment uint64, payouts []Payout) error
}

// Purchase records one settled sale. Repeat purchases of the same book by
// the same buyer each get their own record; the sequence number is assigned
// by the store and orders the purchase history globally.
type Purchase struct {
	Seq           uint64
	Buyer         identity.Address
	Seller        identity.Address
	BookHash      []byte
	Price         uint64
	Fee           uint64
	SellerPayment uint64
	Refund        uint64
	Timestamp     int64 // Unix seconds
}
