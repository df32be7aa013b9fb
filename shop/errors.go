package shop

import "errors"

var (
	// ErrUnauthorized indicates the caller's role does not permit the operation.
	ErrUnauthorized = errors.New("shop: unauthorized")

	// ErrShopClosed indicates the circuit breaker is tripped.
	ErrShopClosed = errors.New("shop: bookshop is closed")

	// ErrNoAdmin indicates the shop was constructed without an admin address.
	ErrNoAdmin = errors.New("shop: admin address required")

	// ErrNilStore indicates a required store dependency was nil.
	ErrNilStore = errors.New("shop: nil store dependency")

	// ErrZeroCaller indicates the caller identity is the zero address.
	ErrZeroCaller = errors.New("shop: zero caller address")
)
