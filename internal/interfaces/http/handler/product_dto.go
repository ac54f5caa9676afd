package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/catalog"
)

// =====================
// Product Request DTOs
// =====================

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Category    string          `json:"category" binding:"required,oneof=clothes gadgets cosmetics"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url,max=2048"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Category    string          `json:"category" binding:"required,oneof=clothes gadgets cosmetics"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url,max=2048"`
	InStock     bool            `json:"in_stock"`
}

// UpdateProductStatusRequest represents the request body for review decisions
type UpdateProductStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// ListProductsRequest represents the query parameters for product listings
type ListProductsRequest struct {
	Category string `form:"category" binding:"omitempty,oneof=clothes gadgets cosmetics"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// =====================
// Product Response DTOs
// =====================

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	InStock     bool            `json:"in_stock"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		OwnerID:     p.OwnerID,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = toProductResponse(&products[i])
	}
	return responses
}
