package catalog

import (
	"context"

	"github.com/shopdash/backend/internal/domain/catalog"
	shopdomain "github.com/shopdash/backend/internal/domain/shop"
)

// ProductService serves the read-only catalog browse surface. Catalog
// mutation belongs to the back-office collaborator and is not exposed here.
type ProductService struct {
	products catalog.ProductRepository
	shops    shopdomain.Repository
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, shops shopdomain.Repository) *ProductService {
	return &ProductService{
		products: products,
		shops:    shops,
	}
}

// ListByShop returns one shop's products, paginated. The shop is looked up
// first so a bad shop ID reads as not-found instead of an empty page.
func (s *ProductService) ListByShop(ctx context.Context, shopID uint, page, pageSize int) ([]catalog.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, 0, err
	}

	return s.products.FindByShop(ctx, shopID, page, pageSize)
}

// GetShop returns one shop's public record
func (s *ProductService) GetShop(ctx context.Context, shopID uint) (*shopdomain.Shop, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return shop, nil
}
