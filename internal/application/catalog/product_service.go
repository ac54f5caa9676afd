package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
)

// Actor identifies the authenticated caller of a catalog operation
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// ProductService handles the first-party product lifecycle
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateProductInput contains input for creating a product
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
}

// UpdateProductInput contains input for updating a product
type UpdateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
	InStock     bool
}

// ListFilter narrows a product listing
type ListFilter struct {
	Category string
	Status   string
}

// Create adds a new product owned by the actor. Sellers and admins only.
// Products from sellers start in pending review, admin products are
// approved immediately.
func (s *ProductService) Create(ctx context.Context, actor Actor, input CreateProductInput) (*catalog.Product, error) {
	if actor.Role != identity.RoleSeller && actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	product, err := catalog.NewProduct(actor.UserID, input.Name, input.Description, catalog.Category(input.Category), input.Price)
	if err != nil {
		return nil, err
	}
	if input.ImageURL != "" {
		if err := product.SetImageURL(input.ImageURL); err != nil {
			return nil, err
		}
	}
	if actor.Role == identity.RoleAdmin {
		if err := product.SetStatus(catalog.ProductStatusApproved); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("owner_id", actor.UserID.String()),
		zap.String("status", string(product.Status)))

	return product, nil
}

// List returns products visible to the actor. Admins see everything,
// sellers see approved products plus their own, regular users see only
// approved products.
func (s *ProductService) List(ctx context.Context, actor Actor, filter ListFilter) ([]catalog.Product, error) {
	repoFilter := catalog.ProductFilter{}
	if filter.Category != "" {
		category := catalog.Category(filter.Category)
		if !category.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown category")
		}
		repoFilter.Category = &category
	}

	switch actor.Role {
	case identity.RoleAdmin:
		if filter.Status != "" {
			status := catalog.ProductStatus(filter.Status)
			if !status.IsValid() {
				return nil, shared.NewDomainError("INVALID_INPUT", "Unknown status")
			}
			repoFilter.Status = &status
		}
		return s.findAll(ctx, repoFilter)
	case identity.RoleSeller:
		approved := catalog.ProductStatusApproved
		repoFilter.Status = &approved
		visible, err := s.findAll(ctx, repoFilter)
		if err != nil {
			return nil, err
		}
		ownFilter := repoFilter
		ownFilter.Status = nil
		ownFilter.OwnerID = &actor.UserID
		own, err := s.findAll(ctx, ownFilter)
		if err != nil {
			return nil, err
		}
		return mergeProducts(visible, own), nil
	default:
		approved := catalog.ProductStatusApproved
		repoFilter.Status = &approved
		return s.findAll(ctx, repoFilter)
	}
}

// GetByID returns a single product, applying the same visibility rules
// as List.
func (s *ProductService) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !s.canView(actor, product) {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

// Update modifies a product. Only the owner or an admin may update;
// edits by a seller send the product back to pending review.
func (s *ProductService) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProductInput) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !product.IsOwnedBy(actor.UserID) && actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	if err := product.Update(input.Name, input.Description, catalog.Category(input.Category), input.Price, input.InStock); err != nil {
		return nil, err
	}
	if err := product.SetImageURL(input.ImageURL); err != nil {
		return nil, err
	}
	if actor.Role != identity.RoleAdmin {
		if err := product.SetStatus(catalog.ProductStatusPending); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	return product, nil
}

// Delete removes a product. Only the owner or an admin may delete.
func (s *ProductService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}
	if !product.IsOwnedBy(actor.UserID) && actor.Role != identity.RoleAdmin {
		return shared.ErrForbidden
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.String("actor_id", actor.UserID.String()))

	return nil
}

// UpdateStatus moves a product through the review workflow. Admin only.
func (s *ProductService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*catalog.Product, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := product.SetStatus(catalog.ProductStatus(status)); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product status")
	}

	s.logger.Info("Product status changed",
		zap.String("product_id", product.ID.String()),
		zap.String("status", string(product.Status)))

	return product, nil
}

func (s *ProductService) findAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}
	return products, nil
}

func (s *ProductService) canView(actor Actor, product *catalog.Product) bool {
	if product.IsApproved() {
		return true
	}
	if actor.Role == identity.RoleAdmin {
		return true
	}
	return product.IsOwnedBy(actor.UserID)
}

func mergeProducts(a, b []catalog.Product) []catalog.Product {
	seen := make(map[uuid.UUID]struct{}, len(a))
	merged := make([]catalog.Product, 0, len(a)+len(b))
	for _, p := range a {
		seen[p.ID] = struct{}{}
		merged = append(merged, p)
	}
	for _, p := range b {
		if _, ok := seen[p.ID]; !ok {
			merged = append(merged, p)
		}
	}
	return merged
}
