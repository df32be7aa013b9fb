// Package identity defines participant identities for the bookshop core.
//
// An identity is the 20-byte HASH160 of a compressed secp256k1 public key,
// the same value that appears in a P2PKH locking script. The core never
// handles keys itself; callers resolve whatever credential they hold (a
// wallet key, a signed request) down to an Address before invoking shop
// operations.
package identity

import (
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/bsv-blockchain/go-sdk/script"
)

// AddressSize is the length of an address in bytes (RIPEMD160 output).
const AddressSize = 20

// Address is a participant identity: HASH160(compressed pubkey).
type Address [AddressSize]byte

// ZeroAddress is the all-zero address. It is never a valid participant.
var ZeroAddress Address

// FromString parses a base58check-encoded P2PKH address string.
func FromString(s string) (Address, error) {
	addr, err := script.NewAddressFromString(s)
	if err != nil {
		return ZeroAddress, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	pkh := []byte(addr.PublicKeyHash)
	if len(pkh) != AddressSize {
		return ZeroAddress, fmt.Errorf("%w: public key hash must be %d bytes, got %d",
			ErrInvalidAddress, AddressSize, len(pkh))
	}
	var a Address
	copy(a[:], pkh)
	return a, nil
}

// FromPublicKey derives the address of a public key:
// RIPEMD160(SHA256(compressed pubkey)).
func FromPublicKey(pub *ec.PublicKey) (Address, error) {
	if pub == nil {
		return ZeroAddress, fmt.Errorf("%w: nil public key", ErrInvalidAddress)
	}
	var a Address
	copy(a[:], bsvhash.Hash160(pub.Compressed()))
	return a, nil
}

// FromBytes builds an Address from a raw 20-byte hash.
func FromBytes(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return ZeroAddress, fmt.Errorf("%w: need %d bytes, got %d",
			ErrInvalidAddress, AddressSize, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Bytes returns the raw 20-byte hash.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// String renders the address in base58check (mainnet P2PKH prefix).
func (a Address) String() string {
	addr, err := script.NewAddressFromPublicKeyHash(a[:], true)
	if err != nil {
		// Cannot happen for a 20-byte hash; hex keeps String infallible.
		return hex.EncodeToString(a[:])
	}
	return addr.AddressString
}
