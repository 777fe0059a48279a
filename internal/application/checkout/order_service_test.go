package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/domain/checkout"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/ordering"
	"github.com/shopdash/backend/internal/domain/promotion"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCustomerID = uint(7)

func testCustomer() *identity.Customer {
	c := &identity.Customer{Name: "Asha", Email: "asha@example.com"}
	c.ID = testCustomerID
	return c
}

type orderFixture struct {
	*pricingFixture
	orders    *MockOrderRepository
	customers *MockCustomerRepository
	service   *OrderService
	now       time.Time
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		pricingFixture: newPricingFixture(),
		orders:         new(MockOrderRepository),
		customers:      new(MockCustomerRepository),
		now:            time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.service = NewOrderService(f.pricingFixture.service, f.orders, f.customers, zap.NewNop())
	f.service.now = func() time.Time { return f.now }
	return f
}

func placeOrderRequest(coupon string) PlaceOrderRequest {
	return PlaceOrderRequest{
		ShopID:           testShopID,
		Lines:            []checkout.CartLine{{ProductID: 1, Quantity: 2}},
		Address:          "12 MG Road",
		DeliveryLocation: homeLocation,
		PaymentMethod:    ordering.PaymentMethodCOD,
		CouponCode:       coupon,
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	t.Run("commits a repriced order and returns its ID", func(t *testing.T) {
		f := newOrderFixture()
		f.customers.On("FindByID", mock.Anything, testCustomerID).Return(testCustomer(), nil)
		f.expectHappyLookups([]catalog.Product{testProduct()}, testSettings())

		var committed *ordering.Order
		f.orders.On("Commit", mock.Anything, mock.AnythingOfType("*ordering.Order")).
			Run(func(args mock.Arguments) {
				committed = args.Get(1).(*ordering.Order)
				committed.ID = 11
			}).Return(nil)

		id, err := f.service.PlaceOrder(context.Background(), testCustomerID, placeOrderRequest(""))
		require.NoError(t, err)
		assert.Equal(t, uint(11), id)

		// The committed order carries server-derived prices, never client input
		require.NotNil(t, committed)
		assert.Equal(t, testCustomerID, committed.CustomerID)
		assert.Equal(t, testShopID, committed.ShopID)
		assert.Equal(t, ordering.OrderStatusPlaced, committed.Status)
		require.Len(t, committed.Items, 1)
		assert.True(t, committed.Items[0].PriceAtOrderTime.Equal(decimal.NewFromInt(90)))
		assert.True(t, committed.PlatformFee.Equal(decimal.NewFromInt(5)))
		assert.True(t, committed.TotalAmount.IsPositive())
	})

	t.Run("defaults the delivery ETA when unconfigured", func(t *testing.T) {
		f := newOrderFixture()
		f.customers.On("FindByID", mock.Anything, testCustomerID).Return(testCustomer(), nil)
		// testSettings carries no estimated_delivery_time row
		f.expectHappyLookups([]catalog.Product{testProduct()}, testSettings())

		var committed *ordering.Order
		f.orders.On("Commit", mock.Anything, mock.AnythingOfType("*ordering.Order")).
			Run(func(args mock.Arguments) {
				committed = args.Get(1).(*ordering.Order)
			}).Return(nil)

		_, err := f.service.PlaceOrder(context.Background(), testCustomerID, placeOrderRequest(""))
		require.NoError(t, err)
		assert.Equal(t, f.now.Add(1500*time.Second), committed.EstimatedDelivery)
	})

	t.Run("rejects an unknown customer", func(t *testing.T) {
		f := newOrderFixture()
		f.customers.On("FindByID", mock.Anything, testCustomerID).Return(nil, shared.ErrNotFound)

		_, err := f.service.PlaceOrder(context.Background(), testCustomerID, placeOrderRequest(""))

		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.orders.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	})

	t.Run("wraps customer lookup failures as database errors", func(t *testing.T) {
		f := newOrderFixture()
		f.customers.On("FindByID", mock.Anything, testCustomerID).Return(nil, errors.New("connection reset"))

		_, err := f.service.PlaceOrder(context.Background(), testCustomerID, placeOrderRequest(""))

		var cerr *checkout.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, checkout.ErrKindDatabase, cerr.Kind)
		f.orders.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	})

	t.Run("propagates pricing errors unchanged", func(t *testing.T) {
		f := newOrderFixture()
		f.customers.On("FindByID", mock.Anything, testCustomerID).Return(testCustomer(), nil)

		req := placeOrderRequest("")
		req.Lines = nil
		_, err := f.service.PlaceOrder(context.Background(), testCustomerID, req)

		var cerr *checkout.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, checkout.ErrKindCart, cerr.Kind)
		f.orders.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	})

	t.Run("maps a raced-out coupon to a coupon error", func(t *testing.T) {
		f := newOrderFixture()
		f.customers.On("FindByID", mock.Anything, testCustomerID).Return(testCustomer(), nil)
		f.expectHappyLookups([]catalog.Product{testProduct()}, testSettings())
		f.coupons.On("FindByCode", mock.Anything, "SAVE10", testShopID).Return(&promotion.Coupon{
			Code:          "SAVE10",
			ShopID:        testShopID,
			DiscountType:  promotion.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(10),
			Uses:          99,
			MaxUses:       100,
		}, nil)
		// Redeemable at quote time, exhausted by a concurrent order at commit
		f.orders.On("Commit", mock.Anything, mock.Anything).Return(promotion.ErrExhausted)

		_, err := f.service.PlaceOrder(context.Background(), testCustomerID, placeOrderRequest("SAVE10"))

		var cerr *checkout.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, checkout.ErrKindCoupon, cerr.Kind)
		assert.Contains(t, cerr.Message, "max uses")
	})

	t.Run("wraps other commit failures as database errors", func(t *testing.T) {
		f := newOrderFixture()
		f.customers.On("FindByID", mock.Anything, testCustomerID).Return(testCustomer(), nil)
		f.expectHappyLookups([]catalog.Product{testProduct()}, testSettings())
		f.orders.On("Commit", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))

		_, err := f.service.PlaceOrder(context.Background(), testCustomerID, placeOrderRequest(""))

		var cerr *checkout.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, checkout.ErrKindDatabase, cerr.Kind)
		assert.NotContains(t, cerr.Message, "deadlock")
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	order := &ordering.Order{CustomerID: testCustomerID}
	order.ID = 11

	t.Run("returns the owner's order", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByID", mock.Anything, uint(11)).Return(order, nil)

		got, err := f.service.GetOrder(context.Background(), testCustomerID, 11)
		require.NoError(t, err)
		assert.Equal(t, uint(11), got.ID)
	})

	t.Run("hides other customers' orders as not found", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByID", mock.Anything, uint(11)).Return(order, nil)

		_, err := f.service.GetOrder(context.Background(), testCustomerID+1, 11)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByID", mock.Anything, uint(11)).Return(nil, shared.ErrNotFound)

		_, err := f.service.GetOrder(context.Background(), testCustomerID, 11)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("FindByCustomer", mock.Anything, testCustomerID, 1, 20).
		Return([]ordering.Order{}, int64(0), nil)

	// Zero and negative paging inputs fall back to the defaults
	_, _, err := f.service.ListOrders(context.Background(), testCustomerID, 0, -5)
	require.NoError(t, err)
	f.orders.AssertExpectations(t)
}
