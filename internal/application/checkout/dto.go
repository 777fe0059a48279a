package checkout

import (
	"github.com/shopdash/backend/internal/domain/checkout"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
)

// QuoteRequest carries everything the pricing engine needs to price a cart
type QuoteRequest struct {
	ShopID           uint
	Lines            []checkout.CartLine
	DeliveryLocation valueobject.GeoPoint
	CouponCode       string
}

// PlaceOrderRequest carries the commit-time inputs. Note there are no
// client-side totals here: the quote is always re-derived server-side.
type PlaceOrderRequest struct {
	ShopID           uint
	Lines            []checkout.CartLine
	Address          string
	DeliveryLocation valueobject.GeoPoint
	PaymentMethod    string
	CouponCode       string
}
