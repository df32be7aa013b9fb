// Package events defines the bookshop's append-only event log.
//
// Every successful mutating operation appends exactly one event; the log is
// the audit trail clients scan to rebuild read projections. Events are
// never rewritten or deleted.
package events

import (
	"fmt"
	"time"

	"github.com/centralb/bookshop-go/identity"
)

// Type identifies an event kind.
type Type uint8

const (
	// TypeUserCreated records a self-registration.
	TypeUserCreated Type = iota + 1

	// TypeSellerApproved records an admin approving a pending seller.
	TypeSellerApproved

	// TypeBookAdded records a new listing.
	TypeBookAdded

	// TypeBookBought records a settled purchase.
	TypeBookBought
)

// String returns the event type name.
func (t Type) String() string {
	switch t {
	case TypeUserCreated:
		return "UserCreated"
	case TypeSellerApproved:
		return "SellerApproved"
	case TypeBookAdded:
		return "BookAdded"
	case TypeBookBought:
		return "BookBought"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Event is a single log entry. Seq is assigned by the log on append and
// orders the history; the remaining fields are populated per type.
type Event struct {
	Seq       uint64
	Type      Type
	Timestamp int64 // Unix seconds

	Identity    identity.Address // UserCreated, SellerApproved: the subject
	WantsToSell bool             // UserCreated
	BookHash    []byte           // BookAdded, BookBought
	Owner       identity.Address // BookAdded: listing seller
	Buyer       identity.Address // BookBought
	AmountPaid  uint64           // BookBought
}

// NewUserCreated builds a UserCreated event.
func NewUserCreated(subject identity.Address, wantsToSell bool) *Event {
	return &Event{
		Type:        TypeUserCreated,
		Timestamp:   time.Now().Unix(),
		Identity:    subject,
		WantsToSell: wantsToSell,
	}
}

// NewSellerApproved builds a SellerApproved event.
func NewSellerApproved(subject identity.Address) *Event {
	return &Event{
		Type:      TypeSellerApproved,
		Timestamp: time.Now().Unix(),
		Identity:  subject,
	}
}

// NewBookAdded builds a BookAdded event.
func NewBookAdded(bookHash []byte, owner identity.Address) *Event {
	return &Event{
		Type:      TypeBookAdded,
		Timestamp: time.Now().Unix(),
		BookHash:  append([]byte(nil), bookHash...),
		Owner:     owner,
	}
}

// NewBookBought builds a BookBought event.
func NewBookBought(bookHash []byte, buyer identity.Address, amountPaid uint64) *Event {
	return &Event{
		Type:       TypeBookBought,
		Timestamp:  time.Now().Unix(),
		BookHash:   append([]byte(nil), bookHash...),
		Buyer:      buyer,
		AmountPaid: amountPaid,
	}
}
