package settle

import "errors"

var (
	// ErrInsufficientPayment indicates the payment is below the book price.
	ErrInsufficientPayment = errors.New("settle: insufficient payment")

	// ErrCommissionOutOfRange indicates the commission is above 100 percent.
	ErrCommissionOutOfRange = errors.New("settle: commission out of range")

	// ErrAmountOverflow indicates the fee computation would overflow uint64.
	ErrAmountOverflow = errors.New("settle: amount overflow")

	// ErrConservationViolation indicates the split does not sum to the payment.
	ErrConservationViolation = errors.New("settle: conservation violated")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("settle: nil parameter")
)
