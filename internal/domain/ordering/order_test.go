package ordering

import (
	"testing"
	"time"

	"github.com/shopdash/backend/internal/domain/checkout"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuote() *checkout.Quote {
	return &checkout.Quote{
		Lines: []checkout.EnrichedLine{
			{ProductID: 1, Name: "Masala Dosa", Quantity: 2, UnitPrice: decimal.NewFromInt(90), Stock: 20},
		},
		Subtotal:       decimal.NewFromInt(180),
		PlatformFee:    decimal.NewFromInt(5),
		DeliveryFee:    decimal.NewFromInt(74),
		Tax:            decimal.NewFromFloat(24.1),
		DiscountAmount: decimal.NewFromInt(18),
		Total:          decimal.NewFromFloat(265.1),
	}
}

func TestNewOrder(t *testing.T) {
	loc := valueobject.GeoPoint{Latitude: 12.95, Longitude: 77.65}
	eta := time.Now().Add(25 * time.Minute)

	t.Run("captures quote breakdown and line prices", func(t *testing.T) {
		order, err := NewOrder(7, 3, testQuote(), "12 MG Road", loc, PaymentMethodCOD, "SAVE10", eta)
		require.NoError(t, err)

		assert.Equal(t, uint(7), order.CustomerID)
		assert.Equal(t, uint(3), order.ShopID)
		assert.Equal(t, OrderStatusPlaced, order.Status)
		assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(265.1)))
		assert.True(t, order.DiscountAmount.Equal(decimal.NewFromInt(18)))
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Masala Dosa", order.Items[0].ProductName)
		assert.True(t, order.Items[0].PriceAtOrderTime.Equal(decimal.NewFromInt(90)))
		assert.True(t, order.UsedCoupon())
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		_, err := NewOrder(0, 3, testQuote(), "addr", loc, PaymentMethodCOD, "", eta)
		assert.Error(t, err)
	})

	t.Run("rejects empty quote", func(t *testing.T) {
		_, err := NewOrder(7, 3, &checkout.Quote{}, "addr", loc, PaymentMethodCOD, "", eta)
		assert.Error(t, err)
	})

	t.Run("rejects missing payment method", func(t *testing.T) {
		_, err := NewOrder(7, 3, testQuote(), "addr", loc, "", "", eta)
		assert.Error(t, err)
	})
}

func TestOrderItem_Amount(t *testing.T) {
	item := OrderItem{Quantity: 3, PriceAtOrderTime: decimal.NewFromFloat(49.5)}
	assert.True(t, item.Amount().Equal(decimal.NewFromFloat(148.5)))
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusPreparing))
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusPreparing.CanTransitionTo(OrderStatusOutForDelivery))
	assert.True(t, OrderStatusOutForDelivery.CanTransitionTo(OrderStatusDelivered))

	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPlaced))
	assert.False(t, OrderStatusOutForDelivery.CanTransitionTo(OrderStatusCancelled))
}

func TestOrder_UpdateStatus(t *testing.T) {
	loc := valueobject.GeoPoint{}
	order, err := NewOrder(7, 3, testQuote(), "addr", loc, PaymentMethodCOD, "", time.Now())
	require.NoError(t, err)

	t.Run("walks the happy path and settles COD on delivery", func(t *testing.T) {
		require.NoError(t, order.UpdateStatus(OrderStatusPreparing))
		require.NoError(t, order.UpdateStatus(OrderStatusOutForDelivery))
		require.NoError(t, order.UpdateStatus(OrderStatusDelivered))

		assert.NotNil(t, order.ActualDelivery)
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	})

	t.Run("rejects transitions out of terminal states", func(t *testing.T) {
		err := order.UpdateStatus(OrderStatusPreparing)
		assert.Error(t, err)
	})
}

func TestOrder_AssignDeliveryAssistant(t *testing.T) {
	order, err := NewOrder(7, 3, testQuote(), "addr", valueobject.GeoPoint{}, PaymentMethodCOD, "", time.Now())
	require.NoError(t, err)

	require.NoError(t, order.AssignDeliveryAssistant(42))
	require.NotNil(t, order.DeliveryAssistantID)
	assert.Equal(t, uint(42), *order.DeliveryAssistantID)

	require.NoError(t, order.UpdateStatus(OrderStatusCancelled))
	assert.Error(t, order.AssignDeliveryAssistant(43))
}
