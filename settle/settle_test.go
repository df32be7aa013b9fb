package settle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		price      uint64
		commission uint64
		payment    uint64
		wantFee    uint64
		wantSeller uint64
		wantRefund uint64
	}{
		// The canonical scenario: 10% of 1500, paid 2500.
		{"overpaid", 1500, 10, 2500, 150, 1350, 1000},
		{"exact payment", 1500, 10, 1500, 150, 1350, 0},
		{"zero commission", 1000, 0, 1000, 0, 1000, 0},
		{"full commission", 1000, 100, 1000, 1000, 0, 0},
		{"free book", 0, 10, 0, 0, 0, 0},
		{"free book overpaid", 0, 10, 500, 0, 0, 500},
		{"fee rounds down", 99, 10, 99, 9, 90, 0},
		{"tiny price high commission", 1, 99, 1, 0, 1, 0},
		{"one unit fee", 100, 1, 100, 1, 99, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Compute(tc.price, tc.commission, tc.payment)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFee, s.Fee, "fee")
			assert.Equal(t, tc.wantSeller, s.SellerPayment, "seller payment")
			assert.Equal(t, tc.wantRefund, s.Refund, "refund")
			assert.NoError(t, ValidateConservation(s, tc.payment))
		})
	}
}

func TestCompute_InsufficientPayment(t *testing.T) {
	_, err := Compute(1500, 10, 1499)
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	_, err = Compute(1, 10, 0)
	assert.ErrorIs(t, err, ErrInsufficientPayment)
}

func TestCompute_CommissionOutOfRange(t *testing.T) {
	_, err := Compute(1500, 101, 2500)
	assert.ErrorIs(t, err, ErrCommissionOutOfRange)
}

func TestCompute_Overflow(t *testing.T) {
	_, err := Compute(math.MaxUint64, 2, math.MaxUint64)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	// Zero commission never multiplies, so max price is fine.
	s, err := Compute(math.MaxUint64, 0, math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.Fee)
	assert.Equal(t, uint64(math.MaxUint64), s.SellerPayment)
}

func TestCompute_ConservationSweep(t *testing.T) {
	// Conservation must hold across awkward price/commission pairs.
	for _, price := range []uint64{1, 3, 7, 99, 100, 101, 1500, 123456789} {
		for _, commission := range []uint64{0, 1, 3, 10, 33, 50, 99, 100} {
			payment := price + price/2
			s, err := Compute(price, commission, payment)
			require.NoError(t, err)
			require.NoError(t, ValidateConservation(s, payment),
				"price=%d commission=%d", price, commission)
			assert.Equal(t, price, s.Fee+s.SellerPayment,
				"fee + seller payment must equal price")
		}
	}
}

func TestValidateConservation(t *testing.T) {
	s := &Settlement{Price: 100, Fee: 10, SellerPayment: 90, Refund: 5}
	assert.NoError(t, ValidateConservation(s, 105))
	assert.ErrorIs(t, ValidateConservation(s, 106), ErrConservationViolation)
	assert.ErrorIs(t, ValidateConservation(nil, 0), ErrNilParam)
}
