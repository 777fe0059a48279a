package catalog

import "context"

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// FindByIDs fetches all referenced products in one batch. IDs with no
	// matching row are simply absent from the result; the caller decides how
	// to treat them.
	FindByIDs(ctx context.Context, ids []uint) ([]Product, error)

	// FindByShop lists products for a shop, paginated
	FindByShop(ctx context.Context, shopID uint, page, pageSize int) ([]Product, int64, error)

	// DecrementStock atomically subtracts quantity from a product's stock,
	// flooring at zero. Must be a single UPDATE, not a read-then-write.
	DecrementStock(ctx context.Context, productID uint, quantity int64) error
}
