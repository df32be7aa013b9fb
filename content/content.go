// Package content handles the book files behind catalog listings.
//
// A listing carries only the book's content commitment:
//
//	book_hash = SHA256(SHA256(plaintext))
//
// The file itself is sealed with a key derived from the seller's content
// secret and stored off to the side, indexed by book_hash:
//
//	aes_key = HKDF-SHA256(secret, book_hash, "bookshop-content-encryption")
//
// The derivation is deterministic, so sealing the same file under the same
// secret always yields the same key; after a purchase the seller hands the
// buyer the key (or the secret scoped to this book) and the buyer verifies
// the opened plaintext against the book_hash from the catalog.
package content

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// BookHashSize is the length of the double-SHA256 content commitment.
	BookHashSize = 32

	// HKDFInfo is the constant info string used in HKDF-SHA256 key derivation.
	HKDFInfo = "bookshop-content-encryption"

	// AESKeyLen is the length of the derived AES-256 key in bytes.
	AESKeyLen = 32

	// NonceLen is the length of the AES-GCM nonce in bytes.
	NonceLen = 12

	// GCMTagLen is the length of the GCM authentication tag in bytes.
	GCMTagLen = 16

	// MinCiphertextLen is the minimum valid ciphertext length (nonce + tag).
	MinCiphertextLen = NonceLen + GCMTagLen
)

// SealedBook holds the output of a Seal operation.
type SealedBook struct {
	// Ciphertext is nonce(12B) || AES-256-GCM(plaintext, aes_key) || tag(16B).
	Ciphertext []byte

	// BookHash is SHA256(SHA256(plaintext)), 32 bytes. This is the value
	// the seller lists in the catalog.
	BookHash []byte

	// AESKey is the derived AES-256 key, 32 bytes. The seller hands this
	// to a buyer after settlement; it can also be re-derived from the
	// secret and BookHash.
	AESKey []byte
}

// ComputeBookHash computes the double-SHA256 content commitment.
// Returns SHA256(SHA256(plaintext)), 32 bytes. The value serves dual
// purpose as HKDF salt and as the catalog's duplicate-detection key.
func ComputeBookHash(plaintext []byte) []byte {
	first := sha256.Sum256(plaintext)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DeriveKey derives the 32-byte AES-256 key for a book using HKDF-SHA256.
//
// The HKDF parameters are:
//   - IKM  = secret (the seller's content secret)
//   - Salt = bookHash
//   - Info = "bookshop-content-encryption"
//   - Len  = 32 (AES-256)
func DeriveKey(secret, bookHash []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: secret is empty", ErrKeyDerivation)
	}
	if len(bookHash) != BookHashSize {
		return nil, fmt.Errorf("%w: book hash must be %d bytes, got %d",
			ErrKeyDerivation, BookHashSize, len(bookHash))
	}

	r := hkdf.New(sha256.New, secret, bookHash, []byte(HKDFInfo))
	key := make([]byte, AESKeyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}
	return key, nil
}

// Seal encrypts a book file under the seller's content secret.
//
// Process:
//  1. Computes book_hash = SHA256(SHA256(plaintext))
//  2. Derives the AES key via HKDF-SHA256
//  3. Encrypts with AES-256-GCM (random 12-byte nonce)
func Seal(plaintext, secret []byte) (*SealedBook, error) {
	bookHash := ComputeBookHash(plaintext)

	key, err := DeriveKey(secret, bookHash)
	if err != nil {
		return nil, err
	}

	ciphertext, err := aesGCMEncrypt(plaintext, key)
	if err != nil {
		return nil, err
	}

	return &SealedBook{
		Ciphertext: ciphertext,
		BookHash:   bookHash,
		AESKey:     key,
	}, nil
}

// Open decrypts a sealed book with the seller's content secret and verifies
// the plaintext against the expected book_hash from the catalog.
func Open(ciphertext, secret, bookHash []byte) ([]byte, error) {
	key, err := DeriveKey(secret, bookHash)
	if err != nil {
		return nil, err
	}
	return OpenWithKey(ciphertext, key, bookHash)
}

// OpenWithKey decrypts a sealed book with a pre-derived AES key, as handed
// to a buyer after settlement, and verifies the content commitment.
func OpenWithKey(ciphertext, key, bookHash []byte) ([]byte, error) {
	if len(key) != AESKeyLen {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d",
			ErrKeyDerivation, AESKeyLen, len(key))
	}
	if len(bookHash) != BookHashSize {
		return nil, fmt.Errorf("%w: book hash must be %d bytes", ErrHashMismatch, len(bookHash))
	}

	plaintext, err := aesGCMDecrypt(ciphertext, key)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(ComputeBookHash(plaintext), bookHash) {
		return nil, ErrHashMismatch
	}
	return plaintext, nil
}

// aesGCMEncrypt encrypts plaintext with AES-256-GCM.
// Returns nonce(12B) || ciphertext || tag(16B).
func aesGCMEncrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("content: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("content: GCM creation failed: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("content: random nonce generation failed: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// aesGCMDecrypt decrypts AES-256-GCM ciphertext.
// Input format: nonce(12B) || ciphertext || tag(16B).
func aesGCMDecrypt(ciphertext, key []byte) ([]byte, error) {
	if len(ciphertext) < MinCiphertextLen {
		return nil, ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("content: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("content: GCM creation failed: %w", err)
	}

	nonce := ciphertext[:gcm.NonceSize()]
	encrypted := ciphertext[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, encrypted, nil)
	if err != nil {
		return nil, ErrOpenFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
