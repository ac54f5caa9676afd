package upstream

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/external"
	"github.com/shop/backend/internal/infrastructure/cache"
)

// DummyJSONClient adapts the DummyJSON catalog to the gateway interface
type DummyJSONClient struct {
	fetcher *Fetcher
	baseURL string
	logger  *zap.Logger
}

// NewDummyJSONClient creates a DummyJSON gateway
func NewDummyJSONClient(fetcher *Fetcher, baseURL string, logger *zap.Logger) *DummyJSONClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DummyJSONClient{
		fetcher: fetcher,
		baseURL: baseURL,
		logger:  logger,
	}
}

type dummyJSONListResponse struct {
	Products []external.RawProduct `json:"products"`
}

// Products fetches up to limit products from an upstream category.
// The pseudo-category "all" queries the unscoped product listing.
// Any fetch or decode failure yields an empty slice.
func (c *DummyJSONClient) Products(ctx context.Context, category string, limit int) []external.RawProduct {
	cacheKey := cache.Key("dummyjson", map[string]string{
		"category": category,
		"limit":    strconv.Itoa(limit),
	})

	rawURL := c.baseURL
	if category != "all" {
		rawURL += "/category/" + url.PathEscape(category)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	result := c.fetcher.Fetch(ctx, rawURL, query, cacheKey)
	if !result.OK {
		return nil
	}

	var envelope dummyJSONListResponse
	if err := json.Unmarshal(result.Body, &envelope); err != nil {
		c.logger.Warn("Unexpected dummyjson response shape",
			zap.String("category", category),
			zap.Error(err))
		return nil
	}
	return envelope.Products
}

// Ensure DummyJSONClient implements the gateway interface
var _ external.DummyJSONGateway = (*DummyJSONClient)(nil)
