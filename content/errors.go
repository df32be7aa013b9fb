package content

import "errors"

var (
	// ErrKeyDerivation indicates HKDF key derivation failed or was given
	// invalid inputs.
	ErrKeyDerivation = errors.New("content: key derivation failed")

	// ErrHashMismatch indicates the opened plaintext does not match the
	// expected book hash.
	ErrHashMismatch = errors.New("content: book hash mismatch")

	// ErrInvalidCiphertext indicates the ciphertext is too short to contain
	// a nonce and authentication tag.
	ErrInvalidCiphertext = errors.New("content: invalid ciphertext")

	// ErrOpenFailed indicates AES-GCM authentication or decryption failed.
	ErrOpenFailed = errors.New("content: decryption failed")

	// ErrInvalidBaseDir indicates the file store base directory is empty.
	ErrInvalidBaseDir = errors.New("content: invalid base directory")

	// ErrInvalidBookHash indicates a book hash of the wrong length.
	ErrInvalidBookHash = errors.New("content: invalid book hash")

	// ErrEmptyContent indicates an attempt to store empty content.
	ErrEmptyContent = errors.New("content: empty content")

	// ErrNotFound indicates no content is stored for the book hash.
	ErrNotFound = errors.New("content: not found")

	// ErrIOFailure indicates a filesystem operation failed.
	ErrIOFailure = errors.New("content: I/O failure")
)
