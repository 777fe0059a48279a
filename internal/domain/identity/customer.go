package identity

import (
	"context"

	"github.com/shopdash/backend/internal/domain/shared"
)

// Customer is the marketplace buyer identity. Registration, sessions and
// role-based authorization are handled by the external auth collaborator;
// checkout only verifies the customer exists before committing an order.
type Customer struct {
	shared.BaseEntity
	Name  string `gorm:"not null"`
	Email string `gorm:"uniqueIndex;not null"`
	Phone string
}

// CustomerRepository defines the reads checkout needs from the customer store
type CustomerRepository interface {
	// FindByID returns the customer or shared.ErrNotFound.
	FindByID(ctx context.Context, id uint) (*Customer, error)
}

// Resolver turns an opaque credential (a bearer token) into a customer ID.
// Implemented by the auth adapter; consumed by the identity middleware.
type Resolver interface {
	Resolve(token string) (customerID uint, err error)
}
