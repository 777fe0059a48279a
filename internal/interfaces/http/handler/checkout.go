package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutapp "github.com/shopdash/backend/internal/application/checkout"
	"github.com/shopdash/backend/internal/domain/checkout"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CheckoutHandler serves the quote endpoint. Its request and response bodies
// are a fixed public contract consumed by existing clients and do not use the
// dto.Response envelope.
type CheckoutHandler struct {
	BaseHandler
	pricingService *checkoutapp.PricingService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(pricingService *checkoutapp.PricingService) *CheckoutHandler {
	return &CheckoutHandler{
		pricingService: pricingService,
	}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout/summary", h.Quote)
}

// CartLineRequest is one client cart entry: a product reference and a
// quantity. Prices always come from the catalog.
type CartLineRequest struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

// QuoteRequest represents the quote request body
type QuoteRequest struct {
	Cart    []CartLineRequest    `json:"cart"`
	Coupon  string               `json:"coupon"`
	ShopID  uint                 `json:"shopId"`
	HomeLoc valueobject.GeoPoint `json:"homeLoc"`
}

// EnrichedLineResponse is a cart line augmented with authoritative catalog
// data. Products that no longer exist come back named "Unknown" with zero
// price and stock.
type EnrichedLineResponse struct {
	ProductID              uint    `json:"productId"`
	Name                   string  `json:"name"`
	Quantity               int     `json:"quantity"`
	UnitPriceAfterDiscount float64 `json:"unitPriceAfterDiscount"`
	StockAtQuoteTime       int64   `json:"stockAtQuoteTime"`
}

// QuoteResponse represents the priced quote body
type QuoteResponse struct {
	Cart           []EnrichedLineResponse `json:"cart"`
	Subtotal       float64                `json:"subtotal"`
	PlatformFees   float64                `json:"platformFees"`
	DeliveryFees   float64                `json:"deliveryFees"`
	Tax            float64                `json:"tax"`
	Total          float64                `json:"total"`
	DiscountAmount float64                `json:"discountAmount"`
}

// CheckoutErrorResponse tags a quote failure so the client can route the
// message to the right UI element (coupon field vs page-level banner)
type CheckoutErrorResponse struct {
	ErrorType string `json:"errorType"`
	Error     string `json:"error"`
}

// Quote prices a cart for a shop and delivery address
func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeCheckoutError(c, checkout.NewCartError("invalid request body"))
		return
	}
	if err := req.HomeLoc.Validate(); err != nil {
		writeCheckoutError(c, checkout.NewCartError("invalid delivery location"))
		return
	}

	quote, err := h.pricingService.Quote(c.Request.Context(), checkoutapp.QuoteRequest{
		ShopID:           req.ShopID,
		Lines:            toCartLines(req.Cart),
		DeliveryLocation: req.HomeLoc,
		CouponCode:       req.Coupon,
	})
	if err != nil {
		writeCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// toCartLines converts wire cart lines to domain cart lines
func toCartLines(cart []CartLineRequest) []checkout.CartLine {
	lines := make([]checkout.CartLine, 0, len(cart))
	for _, l := range cart {
		lines = append(lines, checkout.CartLine{ProductID: l.ID, Quantity: l.Quantity})
	}
	return lines
}

// wireAmount converts a monetary amount to the plain JSON number the public
// contract carries. Amounts stay typed as INR Money until this boundary.
func wireAmount(d decimal.Decimal) float64 {
	return valueobject.NewMoneyINR(d).Float64()
}

// toQuoteResponse converts a domain quote to the wire shape
func toQuoteResponse(quote *checkout.Quote) QuoteResponse {
	lines := make([]EnrichedLineResponse, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, EnrichedLineResponse{
			ProductID:              l.ProductID,
			Name:                   l.Name,
			Quantity:               l.Quantity,
			UnitPriceAfterDiscount: wireAmount(l.UnitPrice),
			StockAtQuoteTime:       l.Stock,
		})
	}
	return QuoteResponse{
		Cart:           lines,
		Subtotal:       wireAmount(quote.Subtotal),
		PlatformFees:   wireAmount(quote.PlatformFee),
		DeliveryFees:   wireAmount(quote.DeliveryFee),
		Tax:            wireAmount(quote.Tax),
		Total:          wireAmount(quote.Total),
		DiscountAmount: wireAmount(quote.DiscountAmount),
	}
}

// writeCheckoutError maps the checkout error taxonomy to the wire shape:
// cart and coupon problems are 400s with their message, anything else is an
// opaque 500.
func writeCheckoutError(c *gin.Context, err error) {
	var checkoutErr *checkout.Error
	if errors.As(err, &checkoutErr) {
		status := http.StatusBadRequest
		if checkoutErr.Kind == checkout.ErrKindDatabase {
			status = http.StatusInternalServerError
		}
		c.JSON(status, CheckoutErrorResponse{
			ErrorType: string(checkoutErr.Kind),
			Error:     checkoutErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, CheckoutErrorResponse{
		ErrorType: string(checkout.ErrKindDatabase),
		Error:     "something went wrong",
	})
}
