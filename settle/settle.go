// Package settle computes purchase settlements.
//
// All arithmetic is integer-only in the smallest currency unit. The
// commission fee multiplies before dividing so no precision is lost to
// intermediate rounding; the seller receives the exact remainder of the
// price, and the buyer the exact overpayment, so every settlement conserves
// the payment to the last unit.
package settle

import (
	"fmt"
	"math"
)

// Settlement is the three-way split of a purchase payment.
type Settlement struct {
	Price         uint64 // book price
	Fee           uint64 // platform commission, paid to the admin
	SellerPayment uint64 // price minus fee, paid to the book owner
	Refund        uint64 // overpayment returned to the buyer
}

// Compute splits a payment for a book priced at price with the given
// commission percentage.
//
//	Fee           = price * commission / 100   (integer division)
//	SellerPayment = price - Fee
//	Refund        = payment - price
//
// Fee + SellerPayment + Refund == payment always holds.
func Compute(price, commission, payment uint64) (*Settlement, error) {
	if commission > 100 {
		return nil, fmt.Errorf("%w: %d", ErrCommissionOutOfRange, commission)
	}
	if payment < price {
		return nil, fmt.Errorf("%w: paid %d, price %d", ErrInsufficientPayment, payment, price)
	}
	if commission != 0 && price > math.MaxUint64/commission {
		return nil, fmt.Errorf("%w: price %d commission %d", ErrAmountOverflow, price, commission)
	}

	fee := price * commission / 100
	return &Settlement{
		Price:         price,
		Fee:           fee,
		SellerPayment: price - fee,
		Refund:        payment - price,
	}, nil
}

// ValidateConservation checks that the split sums exactly to the payment.
func ValidateConservation(s *Settlement, payment uint64) error {
	if s == nil {
		return fmt.Errorf("%w: settlement", ErrNilParam)
	}
	total := s.Fee + s.SellerPayment + s.Refund
	if total != payment {
		return fmt.Errorf("%w: fee=%d seller=%d refund=%d payment=%d",
			ErrConservationViolation, s.Fee, s.SellerPayment, s.Refund, payment)
	}
	return nil
}
