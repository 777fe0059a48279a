package ordering

import "context"

// Repository defines persistence operations for committed orders
type Repository interface {
	// Commit persists the order header and its items, decrements stock per
	// line (floored at zero) and, when the order references a coupon,
	// increments its usage counter, all inside one transaction. A coupon
	// that reached max uses aborts the transaction with promotion.ErrExhausted.
	Commit(ctx context.Context, order *Order) error

	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByCustomer lists a customer's orders newest first, paginated
	FindByCustomer(ctx context.Context, customerID uint, page, pageSize int) ([]Order, int64, error)
}
