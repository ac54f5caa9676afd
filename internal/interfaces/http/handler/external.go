package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appexternal "github.com/shop/backend/internal/application/external"
	"github.com/shop/backend/internal/domain/shared"
)

// ExternalProductHandler serves merged external catalog facets.
// Responses are bare JSON documents rather than enveloped, the
// storefront consumes them directly.
type ExternalProductHandler struct {
	service    *appexternal.Service
	production bool
	logger     *zap.Logger
}

// NewExternalProductHandler creates a new external catalog handler
func NewExternalProductHandler(service *appexternal.Service, production bool, logger *zap.Logger) *ExternalProductHandler {
	return &ExternalProductHandler{
		service:    service,
		production: production,
		logger:     logger,
	}
}

// Facet returns a handler serving the named facet listing
func (h *ExternalProductHandler) Facet(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := h.service.Facet(c.Request.Context(), name)
		if err != nil {
			h.facetError(c, name, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// ProductByID returns a single normalized external product
func (h *ExternalProductHandler) ProductByID(c *gin.Context) {
	product, err := h.service.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.facetError(c, "product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ExternalProductHandler) facetError(c *gin.Context, name string, err error) {
	h.logger.Error("Failed to serve external products",
		zap.String("facet", name),
		zap.Error(err))

	body := gin.H{"message": "Failed to fetch " + name + " products"}
	if !h.production {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
