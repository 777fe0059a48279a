package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestValidateCart(t *testing.T) {
	t.Run("accepts a valid cart", func(t *testing.T) {
		err := ValidateCart([]CartLine{{ProductID: 1, Quantity: 2}})
		assert.NoError(t, err)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		err := ValidateCart(nil)
		assert.Error(t, err)
		var cerr *Error
		assert.ErrorAs(t, err, &cerr)
		assert.Equal(t, ErrKindCart, cerr.Kind)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		err := ValidateCart([]CartLine{{ProductID: 1, Quantity: 0}})
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		err := ValidateCart([]CartLine{{ProductID: 1, Quantity: -3}})
		assert.Error(t, err)
	})

	t.Run("rejects zero product id", func(t *testing.T) {
		err := ValidateCart([]CartLine{{ProductID: 0, Quantity: 1}})
		assert.Error(t, err)
	})
}

func TestSubtotal(t *testing.T) {
	t.Run("sums line extensions", func(t *testing.T) {
		// Product priced 100 with 10% catalog discount, quantity 2
		lines := []EnrichedLine{{ProductID: 1, Name: "Masala Dosa", Quantity: 2, UnitPrice: d(90)}}
		assert.True(t, Subtotal(lines).Equal(d(180)))
	})

	t.Run("unknown products contribute zero", func(t *testing.T) {
		lines := []EnrichedLine{
			{ProductID: 1, Quantity: 2, UnitPrice: d(90)},
			{ProductID: 99, Name: "Unknown", Quantity: 5, UnitPrice: decimal.Zero},
		}
		assert.True(t, Subtotal(lines).Equal(d(180)))
	})
}

func TestComputeTotals(t *testing.T) {
	t.Run("tax applies after fees and discount", func(t *testing.T) {
		got := ComputeTotals(d(180), d(5), d(74), d(18), d(10))
		// base = 180 + 5 + 74 - 18 = 241; tax = 24.1; total = 265.1
		assert.True(t, got.Tax.Equal(d(24.1)), "tax = %s", got.Tax)
		assert.True(t, got.Total.Equal(d(265.1)), "total = %s", got.Total)
	})

	t.Run("zero tax rate yields zero tax", func(t *testing.T) {
		got := ComputeTotals(d(100), d(5), d(10), decimal.Zero, decimal.Zero)
		assert.True(t, got.Tax.IsZero())
		assert.True(t, got.Total.Equal(d(115)))
	})

	t.Run("discount equal to subtotal leaves only fees taxable", func(t *testing.T) {
		got := ComputeTotals(d(120), d(5), d(10), d(120), d(10))
		// base = 15, tax = 1.5, total = 16.5
		assert.True(t, got.Total.Equal(d(16.5)), "total = %s", got.Total)
	})

	t.Run("total invariant holds across a grid of inputs", func(t *testing.T) {
		subtotals := []float64{0, 49.99, 180, 1234.56}
		fees := []float64{0, 5, 30}
		rates := []float64{0, 5, 18}
		for _, sub := range subtotals {
			for _, fee := range fees {
				for _, rate := range rates {
					discount := sub / 2
					got := ComputeTotals(d(sub), d(fee), d(fee), d(discount), d(rate))
					base := d(sub).Add(d(fee)).Add(d(fee)).Sub(d(discount))
					assert.True(t, got.Total.Equal(base.Add(got.Tax)),
						"sub=%v fee=%v rate=%v", sub, fee, rate)
					assert.False(t, got.Total.IsNegative())
				}
			}
		}
	})
}
