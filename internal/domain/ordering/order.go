package ordering

import (
	"time"

	"github.com/shopdash/backend/internal/domain/checkout"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the delivery lifecycle of an order
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "PLACED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPreparing, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPlaced:
		return target == OrderStatusPreparing || target == OrderStatusCancelled
	case OrderStatusPreparing:
		return target == OrderStatusOutForDelivery || target == OrderStatusCancelled
	case OrderStatusOutForDelivery:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentStatus represents payment progress. Only the pay-on-delivery flow is
// distinguished today; gateway integration is out of scope.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// PaymentMethodCOD is the only supported payment method
const PaymentMethodCOD = "cod"

// OrderItem is one committed line of an order. Immutable once created: it
// captures the price actually charged, decoupled from any later catalog
// price change.
type OrderItem struct {
	ID               uint            `gorm:"primaryKey"`
	OrderID          uint            `gorm:"not null;index"`
	ProductID        uint            `gorm:"not null"`
	ProductName      string          `gorm:"not null"`
	Quantity         int             `gorm:"not null"`
	PriceAtOrderTime decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt        time.Time
}

// Amount returns quantity * captured price for the item
func (i *OrderItem) Amount() decimal.Decimal {
	return i.PriceAtOrderTime.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the committed result of a checkout. Created exactly once by order
// commit with the server-derived quote breakdown, mutated afterward only by
// back-office status and assignment updates, never deleted.
type Order struct {
	shared.BaseEntity
	CustomerID          uint        `gorm:"not null;index"`
	ShopID              uint        `gorm:"not null;index"`
	DeliveryAssistantID *uint       `gorm:"index"`
	Items               []OrderItem `gorm:"foreignKey:OrderID"`
	Status              OrderStatus `gorm:"not null"`
	EstimatedDelivery   time.Time
	ActualDelivery      *time.Time
	DeliveryAddress     string
	DeliveryLatitude    float64
	DeliveryLongitude   float64
	TotalAmount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PlatformFee         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryFee         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax                 decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CouponCode          string
	PaymentStatus       PaymentStatus `gorm:"not null"`
	PaymentMethod       string        `gorm:"not null"`
}

// NewOrder builds an order from a server-derived quote. Client-submitted
// totals never reach this constructor.
func NewOrder(customerID, shopID uint, quote *checkout.Quote, address string, location valueobject.GeoPoint, paymentMethod string, couponCode string, eta time.Time) (*Order, error) {
	if customerID == 0 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if shopID == 0 {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if quote == nil || len(quote.Lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot create an order without items")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is required")
	}

	order := &Order{
		CustomerID:        customerID,
		ShopID:            shopID,
		Status:            OrderStatusPlaced,
		EstimatedDelivery: eta,
		DeliveryAddress:   address,
		DeliveryLatitude:  location.Latitude,
		DeliveryLongitude: location.Longitude,
		TotalAmount:       quote.Total,
		PlatformFee:       quote.PlatformFee,
		DeliveryFee:       quote.DeliveryFee,
		Tax:               quote.Tax,
		DiscountAmount:    quote.DiscountAmount,
		CouponCode:        couponCode,
		PaymentStatus:     PaymentStatusPending,
		PaymentMethod:     paymentMethod,
	}

	for _, line := range quote.Lines {
		order.Items = append(order.Items, OrderItem{
			ProductID:        line.ProductID,
			ProductName:      line.Name,
			Quantity:         line.Quantity,
			PriceAtOrderTime: line.UnitPrice,
		})
	}

	return order, nil
}

// UpdateStatus transitions the order to a new status
func (o *Order) UpdateStatus(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState
	}
	o.Status = target
	if target == OrderStatusDelivered {
		now := time.Now()
		o.ActualDelivery = &now
		if o.PaymentMethod == PaymentMethodCOD {
			o.PaymentStatus = PaymentStatusPaid
		}
	}
	o.UpdatedAt = time.Now()
	return nil
}

// AssignDeliveryAssistant assigns the order to a delivery assistant
func (o *Order) AssignDeliveryAssistant(assistantID uint) error {
	if o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled {
		return shared.ErrInvalidState
	}
	o.DeliveryAssistantID = &assistantID
	o.UpdatedAt = time.Now()
	return nil
}

// DeliveryLocation returns the delivery coordinates
func (o *Order) DeliveryLocation() valueobject.GeoPoint {
	return valueobject.GeoPoint{Latitude: o.DeliveryLatitude, Longitude: o.DeliveryLongitude}
}

// TotalAmountMoney returns the total as Money
func (o *Order) TotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.TotalAmount)
}

// UsedCoupon reports whether a coupon was applied to the order
func (o *Order) UsedCoupon() bool {
	return o.CouponCode != ""
}
