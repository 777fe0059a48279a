package checkout

import "github.com/shopspring/decimal"

// CartLine is the ephemeral client-supplied cart entry: a product reference
// and a quantity, nothing more. Prices always come from the catalog.
type CartLine struct {
	ProductID uint
	Quantity  int
}

// ValidateCart rejects anything that is not a non-empty list of positive
// quantities.
func ValidateCart(lines []CartLine) error {
	if len(lines) == 0 {
		return NewCartError("cart is empty")
	}
	for _, line := range lines {
		if line.ProductID == 0 {
			return NewCartError("cart contains an invalid product id")
		}
		if line.Quantity <= 0 {
			return NewCartError("cart quantities must be positive")
		}
	}
	return nil
}

// EnrichedLine is a cart line augmented with authoritative name, price and
// stock from the catalog. Products that no longer exist resolve to
// name "Unknown" with zero price and stock rather than failing the quote;
// stale carts stay quotable and the gap is visible downstream.
type EnrichedLine struct {
	ProductID uint
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal // after catalog discount
	Stock     int64           // at quote time
}

// Extension returns quantity * unit price for the line
func (l EnrichedLine) Extension() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
