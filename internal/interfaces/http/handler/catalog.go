package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopdash/backend/internal/application/catalog"
	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the read-only catalog browse endpoints
type CatalogHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(productService *catalogapp.ProductService) *CatalogHandler {
	return &CatalogHandler{
		productService: productService,
	}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/shops/:shopId", h.GetShop)
	rg.GET("/shops/:shopId/products", h.ListProducts)
}

// ProductResponse represents a product in the response
type ProductResponse struct {
	ID              uint    `json:"id"`
	ShopID          uint    `json:"shop_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount_percent"`
	Stock           int64   `json:"stock"`
}

// ShopResponse represents a shop in the response
type ShopResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Open      bool    `json:"open"`
}

// GetShop returns one shop's public record
func (h *CatalogHandler) GetShop(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("shopId"), 10, 32)
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}

	shop, err := h.productService.GetShop(c.Request.Context(), uint(shopID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ShopResponse{
		ID:        shop.ID,
		Name:      shop.Name,
		Address:   shop.Address,
		Latitude:  shop.Latitude,
		Longitude: shop.Longitude,
		Open:      shop.Open,
	})
}

// ListProducts returns one shop's products, paginated
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("shopId"), 10, 32)
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
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

	products, total, err := h.productService.ListByShop(c.Request.Context(), uint(shopID), req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}

	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// toProductResponse converts a domain product to the wire shape
func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		ShopID:          p.ShopID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           wireAmount(p.Price),
		DiscountPercent: p.DiscountPercent.InexactFloat64(),
		Stock:           p.Stock,
	}
}
