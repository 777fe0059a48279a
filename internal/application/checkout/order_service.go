package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/shopdash/backend/internal/domain/checkout"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/ordering"
	"github.com/shopdash/backend/internal/domain/promotion"
	"github.com/shopdash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService commits priced carts as orders. The quote is always re-derived
// server-side from current state; client-submitted totals are never trusted
// or persisted.
type OrderService struct {
	pricing   *PricingService
	orders    ordering.Repository
	customers identity.CustomerRepository
	log       *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	pricing *PricingService,
	orders ordering.Repository,
	customers identity.CustomerRepository,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		pricing:   pricing,
		orders:    orders,
		customers: customers,
		log:       log,
		now:       time.Now,
	}
}

// PlaceOrder re-prices the cart, persists the order header and items,
// decrements stock and increments coupon usage as one atomic unit, and
// returns the new order ID.
//
// Pricing errors propagate unchanged with their taxonomy. A missing customer
// surfaces as shared.ErrNotFound.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID uint, req PlaceOrderRequest) (uint, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, shared.ErrNotFound
		}
		s.log.Error("customer lookup failed", zap.Uint("customer_id", customerID), zap.Error(err))
		return 0, checkout.NewDataError(err)
	}

	// Re-derive the quote from current server-side state. This runs outside
	// the commit transaction; its errors propagate as-is.
	quote, settings, err := s.pricing.quoteWithSettings(ctx, QuoteRequest{
		ShopID:           req.ShopID,
		Lines:            req.Lines,
		DeliveryLocation: req.DeliveryLocation,
		CouponCode:       req.CouponCode,
	})
	if err != nil {
		return 0, err
	}

	eta := s.now().Add(settings.EstimatedDeliveryTime())

	order, err := ordering.NewOrder(customerID, req.ShopID, quote, req.Address,
		req.DeliveryLocation, req.PaymentMethod, req.CouponCode, eta)
	if err != nil {
		return 0, err
	}

	if err := s.orders.Commit(ctx, order); err != nil {
		// The coupon may have been exhausted by a concurrent checkout between
		// quoting and commit; the guarded increment catches exactly that.
		if errors.Is(err, promotion.ErrExhausted) {
			return 0, checkout.NewCouponError("coupon has reached its max uses")
		}
		s.log.Error("order commit failed",
			zap.Uint("customer_id", customerID),
			zap.Uint("shop_id", req.ShopID),
			zap.Error(err))
		return 0, checkout.NewDataError(err)
	}

	s.log.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", customerID),
		zap.Uint("shop_id", req.ShopID),
		zap.Stringer("total", order.TotalAmountMoney()))

	return order.ID, nil
}

// GetOrder returns one order with its items, restricted to its owner
func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID uint) (*ordering.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// ListOrders returns a customer's orders newest first
func (s *OrderService) ListOrders(ctx context.Context, customerID uint, page, pageSize int) ([]ordering.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return s.orders.FindByCustomer(ctx, customerID, page, pageSize)
}
