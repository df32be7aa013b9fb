package catalog

import "errors"

var (
	// ErrDuplicateBook indicates the content hash is already listed.
	ErrDuplicateBook = errors.New("catalog: content hash already listed")

	// ErrBookNotFound indicates no listing exists for the content hash.
	ErrBookNotFound = errors.New("catalog: book not found")

	// ErrInvalidHash indicates the content hash is not exactly 32 bytes.
	ErrInvalidHash = errors.New("catalog: content hash must be 32 bytes")

	// ErrZeroOwner indicates the listing owner is the zero address.
	ErrZeroOwner = errors.New("catalog: zero owner address")

	// ErrEmptyTitle indicates the title is empty.
	ErrEmptyTitle = errors.New("catalog: title must not be empty")

	// ErrTitleTooLong indicates the title exceeds the storage bound.
	ErrTitleTooLong = errors.New("catalog: title too long")

	// ErrEmptyAuthor indicates the author is empty.
	ErrEmptyAuthor = errors.New("catalog: author must not be empty")

	// ErrAuthorTooLong indicates the author exceeds the storage bound.
	ErrAuthorTooLong = errors.New("catalog: author too long")

	// ErrCommissionOutOfRange indicates the commission is above 100 percent.
	ErrCommissionOutOfRange = errors.New("catalog: commission out of range")

	// ErrCommissionTooLow indicates the commission is below the platform minimum.
	ErrCommissionTooLow = errors.New("catalog: commission below platform minimum")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("catalog: nil parameter")
)
