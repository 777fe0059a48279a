package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	checkoutapp "github.com/shopdash/backend/internal/application/checkout"
	"github.com/shopdash/backend/internal/domain/checkout"
	"github.com/shopdash/backend/internal/domain/ordering"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client's commit de-duplication key
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler serves order placement and the customer's order reads. The
// placement endpoint keeps its fixed public body shapes; the reads use the
// dto.Response envelope.
type OrderHandler struct {
	BaseHandler
	orderService     *checkoutapp.OrderService
	idempotencyStore shared.IdempotencyStore
	idempotencyTTL   time.Duration
	logger           *zap.Logger
}

// NewOrderHandler creates a new OrderHandler. The idempotency store is
// optional; without it commit de-duplication is disabled.
func NewOrderHandler(
	orderService *checkoutapp.OrderService,
	idempotencyStore shared.IdempotencyStore,
	idempotencyTTL time.Duration,
	logger *zap.Logger,
) *OrderHandler {
	if idempotencyTTL <= 0 {
		idempotencyTTL = shared.DefaultIdempotencyConfig().TTL
	}
	return &OrderHandler{
		orderService:     orderService,
		idempotencyStore: idempotencyStore,
		idempotencyTTL:   idempotencyTTL,
		logger:           logger,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.Place)
	rg.GET("/orders", h.List)
	rg.GET("/orders/:id", h.GetByID)
}

// OrderCartLineRequest is one client cart entry at commit time. Name and
// price are accepted for compatibility but never trusted; the quote is
// re-derived server-side.
type OrderCartLineRequest struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderAddressRequest represents the delivery address
type OrderAddressRequest struct {
	HouseNo   string  `json:"houseNo"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	Pincode   string  `json:"pincode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location returns the address coordinates
func (a OrderAddressRequest) Location() valueobject.GeoPoint {
	return valueobject.GeoPoint{Latitude: a.Latitude, Longitude: a.Longitude}
}

// Line returns the address as a single display line
func (a OrderAddressRequest) Line() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.HouseNo, a.Street, a.City, a.Pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// PlaceOrderRequest represents the order placement body
type PlaceOrderRequest struct {
	ShopID        uint                   `json:"shopId"`
	Cart          []OrderCartLineRequest `json:"cart"`
	Address       OrderAddressRequest    `json:"address"`
	PaymentMethod string                 `json:"paymentMethod" binding:"omitempty,payment_method"`
	Coupon        string                 `json:"coupon"`
}

// PlaceOrderResponse represents a successful placement
type PlaceOrderResponse struct {
	Message string `json:"message"`
	OrderID uint   `json:"orderId"`
}

// Place commits the cart as an order for the authenticated customer
func (h *OrderHandler) Place(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeCheckoutError(c, checkout.NewCartError("invalid request body"))
		return
	}
	if err := req.Address.Location().Validate(); err != nil {
		writeCheckoutError(c, checkout.NewCartError("invalid delivery location"))
		return
	}

	// Placement is not safe to retry blindly. When the client supplies an
	// idempotency key, claim it before committing; a replay gets a conflict
	// instead of a duplicate order.
	if key := c.GetHeader(IdempotencyKeyHeader); key != "" && h.idempotencyStore != nil {
		claimed, err := h.idempotencyStore.MarkProcessed(c.Request.Context(), key, h.idempotencyTTL)
		if err != nil {
			h.logger.Error("idempotency claim failed", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
			return
		}
		if !claimed {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
			return
		}
	}

	lines := make([]checkout.CartLine, 0, len(req.Cart))
	for _, l := range req.Cart {
		lines = append(lines, checkout.CartLine{ProductID: l.ID, Quantity: l.Quantity})
	}

	orderID, err := h.orderService.PlaceOrder(c.Request.Context(), customerID, checkoutapp.PlaceOrderRequest{
		ShopID:           req.ShopID,
		Lines:            lines,
		Address:          req.Address.Line(),
		DeliveryLocation: req.Address.Location(),
		PaymentMethod:    req.PaymentMethod,
		CouponCode:       req.Coupon,
	})
	if err != nil {
		h.writePlacementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PlaceOrderResponse{
		Message: "Order placed successfully",
		OrderID: orderID,
	})
}

// writePlacementError maps placement failures to the wire: pricing taxonomy
// errors keep their tagged 400/500 shape, a missing customer is a 404, and
// everything else is an opaque 500.
func (h *OrderHandler) writePlacementError(c *gin.Context, err error) {
	var checkoutErr *checkout.Error
	if errors.As(err, &checkoutErr) {
		if checkoutErr.Kind == checkout.ErrKindDatabase {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
			return
		}
		c.JSON(http.StatusBadRequest, CheckoutErrorResponse{
			ErrorType: string(checkoutErr.Kind),
			Error:     checkoutErr.Message,
		})
		return
	}

	if errors.Is(err, shared.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domainErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
}

// OrderItemResponse represents one committed order line
type OrderItemResponse struct {
	ProductID        uint    `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Quantity         int     `json:"quantity"`
	PriceAtOrderTime float64 `json:"price_at_order_time"`
}

// OrderResponse represents an order in the response
type OrderResponse struct {
	ID                uint                `json:"id"`
	ShopID            uint                `json:"shop_id"`
	Status            string              `json:"status"`
	Items             []OrderItemResponse `json:"items,omitempty"`
	EstimatedDelivery time.Time           `json:"estimated_delivery"`
	ActualDelivery    *time.Time          `json:"actual_delivery,omitempty"`
	DeliveryAddress   string              `json:"delivery_address"`
	TotalAmount       float64             `json:"total_amount"`
	PlatformFee       float64             `json:"platform_fee"`
	DeliveryFee       float64             `json:"delivery_fee"`
	Tax               float64             `json:"tax"`
	DiscountAmount    float64             `json:"discount_amount"`
	CouponCode        string              `json:"coupon_code,omitempty"`
	PaymentStatus     string              `json:"payment_status"`
	PaymentMethod     string              `json:"payment_method"`
	CreatedAt         time.Time           `json:"created_at"`
}

// List returns the authenticated customer's orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), customerID, req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}

	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// GetByID returns one of the authenticated customer's orders with its items
func (h *OrderHandler) GetByID(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), customerID, uint(orderID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// toOrderResponse converts a domain order to the wire shape
func toOrderResponse(order *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			PriceAtOrderTime: wireAmount(item.PriceAtOrderTime),
		})
	}

	return OrderResponse{
		ID:                order.ID,
		ShopID:            order.ShopID,
		Status:            order.Status.String(),
		Items:             items,
		EstimatedDelivery: order.EstimatedDelivery,
		ActualDelivery:    order.ActualDelivery,
		DeliveryAddress:   order.DeliveryAddress,
		TotalAmount:       wireAmount(order.TotalAmount),
		PlatformFee:       wireAmount(order.PlatformFee),
		DeliveryFee:       wireAmount(order.DeliveryFee),
		Tax:               wireAmount(order.Tax),
		DiscountAmount:    wireAmount(order.DiscountAmount),
		CouponCode:        order.CouponCode,
		PaymentStatus:     string(order.PaymentStatus),
		PaymentMethod:     order.PaymentMethod,
		CreatedAt:         order.CreatedAt,
	}
}
