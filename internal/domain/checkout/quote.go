package checkout

import "github.com/shopspring/decimal"

// Quote is the fully priced, not-yet-committed representation of a cart for a
// given shop and delivery address.
type Quote struct {
	Lines          []EnrichedLine
	Subtotal       decimal.Decimal
	PlatformFee    decimal.Decimal
	DeliveryFee    decimal.Decimal
	Tax            decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Totals is the result of the combined fee/discount/tax formula
type Totals struct {
	Tax   decimal.Decimal
	Total decimal.Decimal
}

// Subtotal sums the line extensions of an enriched cart
func Subtotal(lines []EnrichedLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Extension())
	}
	return sum
}

// ComputeTotals applies the order-sensitive pricing formula: fees are added
// and the discount subtracted first, then tax is computed on that amount and
// added on top. Tax is NOT computed on the subtotal alone; reordering these
// steps changes the charged amount.
//
//	base  = subtotal + platformFee + deliveryFee - discount
//	tax   = base * taxRatePercent / 100
//	total = base + tax
//
// The discount is assumed to be already clamped to the subtotal, so base and
// total are never negative for non-negative fees.
func ComputeTotals(subtotal, platformFee, deliveryFee, discount, taxRatePercent decimal.Decimal) Totals {
	base := subtotal.Add(platformFee).Add(deliveryFee).Sub(discount)
	tax := base.Mul(taxRatePercent).Div(decimal.NewFromInt(100))
	return Totals{
		Tax:   tax,
		Total: base.Add(tax),
	}
}
