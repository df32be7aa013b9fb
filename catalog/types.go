// Package catalog stores book listings keyed by content hash.
//
// A book record is immutable once listed: the catalog is append-only and a
// content hash can never be listed twice, by any seller. The hash is the
// off-chain content store's 32-byte identifier; the catalog never sees book
// bytes.
package catalog

import (
	"fmt"

	"github.com/centralb/bookshop-go/identity"
)

const (
	// HashSize is the required length of a book content hash (32 bytes).
	HashSize = 32

	// MaxTitleLen bounds the stored title length in bytes.
	MaxTitleLen = 256

	// MaxAuthorLen bounds the stored author length in bytes.
	MaxAuthorLen = 256

	// MaxCommission is the upper bound of the commission percentage.
	MaxCommission = 100
)

// BookRecord is a single book listing.
type BookRecord struct {
	Hash       []byte           // content hash, HashSize bytes
	Owner      identity.Address // listing seller
	Title      string
	Author     string
	Price      uint64 // smallest currency unit
	Commission uint64 // percent of price retained by the platform, 0-100
}

// ValidateBook checks a record against the catalog's field constraints.
// minCommission is the platform's configured commission floor.
func ValidateBook(b *BookRecord, minCommission uint64) error {
	if b == nil {
		return fmt.Errorf("%w: book record", ErrNilParam)
	}
	if len(b.Hash) != HashSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidHash, len(b.Hash))
	}
	if b.Owner.IsZero() {
		return ErrZeroOwner
	}
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if len(b.Title) > MaxTitleLen {
		return fmt.Errorf("%w: %d bytes", ErrTitleTooLong, len(b.Title))
	}
	if b.Author == "" {
		return ErrEmptyAuthor
	}
	if len(b.Author) > MaxAuthorLen {
		return fmt.Errorf("%w: %d bytes", ErrAuthorTooLong, len(b.Author))
	}
	if b.Commission > MaxCommission {
		return fmt.Errorf("%w: %d", ErrCommissionOutOfRange, b.Commission)
	}
	if b.Commission < minCommission {
		return fmt.Errorf("%w: %d < minimum %d", ErrCommissionTooLow, b.Commission, minCommission)
	}
	return nil
}
