package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductFilter narrows product queries
type ProductFilter struct {
	Category *Category
	Status   *ProductStatus
	OwnerID  *uuid.UUID
}

// ProductRepository defines persistence operations for catalog products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
