package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/shared"
)

// ProductStatus represents the moderation status of a seller listing
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
)

// IsValid checks whether the status is one of the known statuses
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusPending, ProductStatusApproved, ProductStatusRejected:
		return true
	}
	return false
}

// Category represents the store-level product category
type Category string

const (
	CategoryClothes   Category = "clothes"
	CategoryGadgets   Category = "gadgets"
	CategoryCosmetics Category = "cosmetics"
)

// IsValid checks whether the category is one of the known categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryClothes, CategoryGadgets, CategoryCosmetics:
		return true
	}
	return false
}

// Product represents a seller-owned listing in the first-party catalog.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Category    Category        `gorm:"type:varchar(20);not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	InStock     bool            `gorm:"not null;default:true"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new pending product owned by the given seller
func NewProduct(ownerID uuid.UUID, name, description string, category Category, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category must be one of clothes, gadgets, cosmetics")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		InStock:     true,
		OwnerID:     ownerID,
		Status:      ProductStatusPending,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string, category Category, price decimal.Decimal, inStock bool) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Category must be one of clothes, gadgets, cosmetics")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.Price = price
	p.InStock = inStock
	p.UpdatedAt = time.Now()
	return nil
}

// SetImageURL sets the product image URL
func (p *Product) SetImageURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}
	p.ImageURL = url
	p.UpdatedAt = time.Now()
	return nil
}

// SetStatus transitions the product to a new moderation status
func (p *Product) SetStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be one of pending, approved, rejected")
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy reports whether the product belongs to the given user
func (p *Product) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

// IsApproved reports whether the product is publicly visible
func (p *Product) IsApproved() bool {
	return p.Status == ProductStatusApproved
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
