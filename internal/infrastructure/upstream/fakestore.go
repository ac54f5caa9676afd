package upstream

import (
	"context"
	"encoding/json"
	"net/url"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/external"
	"github.com/shop/backend/internal/infrastructure/cache"
)

// FakeStoreClient adapts the Fake Store catalog to the gateway interface
type FakeStoreClient struct {
	fetcher *Fetcher
	baseURL string
	logger  *zap.Logger
}

// NewFakeStoreClient creates a Fake Store gateway
func NewFakeStoreClient(fetcher *Fetcher, baseURL string, logger *zap.Logger) *FakeStoreClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FakeStoreClient{
		fetcher: fetcher,
		baseURL: baseURL,
		logger:  logger,
	}
}

// fakeStoreListResponse models the optional envelope some deployments
// of the catalog wrap list responses in
type fakeStoreListResponse struct {
	Data []external.RawProduct `json:"data"`
}

// ProductsByCategory fetches all products in an upstream category.
// Both the enveloped and the bare-array response shapes are accepted.
// Any fetch or decode failure yields an empty slice.
func (c *FakeStoreClient) ProductsByCategory(ctx context.Context, category string) []external.RawProduct {
	cacheKey := cache.Key("fakestore", map[string]string{"category": category})
	rawURL := c.baseURL + "/category/" + url.PathEscape(category)

	result := c.fetcher.Fetch(ctx, rawURL, nil, cacheKey)
	if !result.OK {
		return nil
	}

	var envelope fakeStoreListResponse
	if err := json.Unmarshal(result.Body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data
	}

	var products []external.RawProduct
	if err := json.Unmarshal(result.Body, &products); err != nil {
		c.logger.Warn("Unexpected fakestore response shape",
			zap.String("category", category),
			zap.Error(err))
		return nil
	}
	return products
}

// ProductByID fetches a single product record. The raw body is not
// cached here; callers cache the normalized product instead.
func (c *FakeStoreClient) ProductByID(ctx context.Context, id string) (*external.RawProduct, bool) {
	rawURL := c.baseURL + "/" + url.PathEscape(id)

	result := c.fetcher.Fetch(ctx, rawURL, nil, "")
	if !result.OK {
		return nil, false
	}

	var product *external.RawProduct
	if err := json.Unmarshal(result.Body, &product); err != nil || product == nil {
		return nil, false
	}
	return product, true
}

// Ensure FakeStoreClient implements the gateway interface
var _ external.FakeStoreGateway = (*FakeStoreClient)(nil)
