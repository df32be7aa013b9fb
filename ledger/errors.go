package ledger

import "errors"

var (
	// ErrTransferFailed indicates a settlement fund movement failed.
	// Errors from Transferrer backends are wrapped in this sentinel.
	ErrTransferFailed = errors.New("ledger: transfer failed")

	// ErrInsufficientFunds indicates the buyer's balance cannot cover the payment.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrUnbalancedSettlement indicates the payouts do not sum to the payment.
	ErrUnbalancedSettlement = errors.New("ledger: payouts do not sum to payment")

	// ErrZeroAddress indicates the all-zero address in a settlement or record.
	ErrZeroAddress = errors.New("ledger: zero address")

	// ErrInvalidBookHash indicates the book hash is not exactly 32 bytes.
	ErrInvalidBookHash = errors.New("ledger: book hash must be 32 bytes")

	// ErrPurchaseNotFound indicates no purchase record has the sequence number.
	ErrPurchaseNotFound = errors.New("ledger: purchase not found")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("ledger: nil parameter")
)
