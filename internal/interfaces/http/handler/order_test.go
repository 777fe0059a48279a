package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	checkoutapp "github.com/shopdash/backend/internal/application/checkout"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/ordering"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/infrastructure/cache"
	"github.com/shopdash/backend/internal/interfaces/http/dto"
	"github.com/shopdash/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOrderRepo struct {
	commitErr error
	nextID    uint
	committed *ordering.Order
	orders    []ordering.Order
}

func (s *stubOrderRepo) Commit(ctx context.Context, order *ordering.Order) error {
	if s.commitErr != nil {
		return s.commitErr
	}
	order.ID = s.nextID
	s.committed = order
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uint) (*ordering.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubOrderRepo) FindByCustomer(ctx context.Context, customerID uint, page, pageSize int) ([]ordering.Order, int64, error) {
	var result []ordering.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	return result, int64(len(result)), nil
}

type stubCustomerRepo struct {
	exists bool
}

func (s *stubCustomerRepo) FindByID(ctx context.Context, id uint) (*identity.Customer, error) {
	if !s.exists {
		return nil, shared.ErrNotFound
	}
	c := &identity.Customer{Name: "Asha", Email: "asha@example.com"}
	c.ID = id
	return c, nil
}

type orderTestEnv struct {
	*checkoutTestEnv
	orders    *stubOrderRepo
	customers *stubCustomerRepo
	store     shared.IdempotencyStore
	engine    *gin.Engine
}

// newOrderTestEnv wires the order routes behind a fake identity middleware
// that authenticates everyone as the given customer. Zero means no identity.
func newOrderTestEnv(t *testing.T, authenticatedAs uint) *orderTestEnv {
	t.Helper()

	env := &orderTestEnv{
		checkoutTestEnv: newCheckoutTestEnv(),
		orders:          &stubOrderRepo{nextID: 11},
		customers:       &stubCustomerRepo{exists: true},
		store:           cache.NewInMemoryIdempotencyStore(),
	}
	t.Cleanup(func() { _ = env.store.Close() })

	pricing := checkoutapp.NewPricingService(
		env.products, env.shops, env.coupons, env.settings, zap.NewNop())
	orderService := checkoutapp.NewOrderService(pricing, env.orders, env.customers, zap.NewNop())

	env.engine = gin.New()
	if authenticatedAs != 0 {
		env.engine.Use(func(c *gin.Context) {
			c.Set(middleware.CustomerIDKey, authenticatedAs)
		})
	}
	h := NewOrderHandler(orderService, env.store, time.Hour, zap.NewNop())
	h.RegisterRoutes(env.engine.Group(""))
	return env
}

func placeOrderBody() gin.H {
	return gin.H{
		"shopId": 3,
		"cart":   []gin.H{{"id": 1, "name": "Masala Dosa", "quantity": 2, "price": 90}},
		"address": gin.H{
			"houseNo":   "12",
			"street":    "MG Road",
			"city":      "Bengaluru",
			"pincode":   "560001",
			"latitude":  12.95,
			"longitude": 77.65,
		},
		"paymentMethod": "cod",
	}
}

func (env *orderTestEnv) place(t *testing.T, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	env.engine.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_Place(t *testing.T) {
	t.Run("commits the cart and returns the new order id", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)

		w := env.place(t, placeOrderBody(), nil)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp PlaceOrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint(11), resp.OrderID)
		assert.NotEmpty(t, resp.Message)

		require.NotNil(t, env.orders.committed)
		assert.Equal(t, uint(7), env.orders.committed.CustomerID)
		// The committed price comes from the catalog, not the client body
		assert.True(t, env.orders.committed.Items[0].PriceAtOrderTime.Equal(decimal.NewFromInt(90)))
	})

	t.Run("rejects requests without an identity", func(t *testing.T) {
		env := newOrderTestEnv(t, 0)

		w := env.place(t, placeOrderBody(), nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "error")
	})

	t.Run("returns 404 when the customer does not exist", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)
		env.customers.exists = false

		w := env.place(t, placeOrderBody(), nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "customer not found")
	})

	t.Run("keeps the pricing taxonomy for quote-stage failures", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)

		body := placeOrderBody()
		body["cart"] = []gin.H{}
		w := env.place(t, body, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp CheckoutErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "cart", resp.ErrorType)
	})

	t.Run("replaying an idempotency key yields a conflict, not a second order", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)
		headers := map[string]string{IdempotencyKeyHeader: "order-abc-123"}

		first := env.place(t, placeOrderBody(), headers)
		require.Equal(t, http.StatusCreated, first.Code)

		second := env.place(t, placeOrderBody(), headers)
		require.Equal(t, http.StatusConflict, second.Code)
		assert.Contains(t, second.Body.String(), "duplicate request")
	})

	t.Run("hides commit failures behind an opaque 500", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)
		env.orders.commitErr = errors.New("pq: deadlock detected")

		w := env.place(t, placeOrderBody(), nil)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "deadlock")
	})
}

func customerOrder(id, customerID uint) ordering.Order {
	o := ordering.Order{
		CustomerID:    customerID,
		ShopID:        3,
		Status:        ordering.OrderStatusPlaced,
		TotalAmount:   decimal.NewFromFloat(265.1),
		PlatformFee:   decimal.NewFromInt(5),
		DeliveryFee:   decimal.NewFromInt(74),
		Tax:           decimal.NewFromFloat(24.1),
		PaymentStatus: ordering.PaymentStatusPending,
		PaymentMethod: ordering.PaymentMethodCOD,
		Items: []ordering.OrderItem{
			{ProductID: 1, ProductName: "Masala Dosa", Quantity: 2, PriceAtOrderTime: decimal.NewFromInt(90)},
		},
	}
	o.ID = id
	return o
}

func TestOrderHandler_Reads(t *testing.T) {
	t.Run("lists only the authenticated customer's orders", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)
		env.orders.orders = []ordering.Order{
			customerOrder(11, 7),
			customerOrder(12, 8),
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		env.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("returns one order with its items", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)
		env.orders.orders = []ordering.Order{customerOrder(11, 7)}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/11", nil)
		env.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Masala Dosa")
	})

	t.Run("hides other customers' orders as not found", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)
		env.orders.orders = []ordering.Order{customerOrder(11, 8)}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/11", nil)
		env.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects a non-numeric order id", func(t *testing.T) {
		env := newOrderTestEnv(t, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/abc", nil)
		env.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
