package external

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/external"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/cache"
)

// Service aggregates external catalogs into storefront facets.
// Upstream failures degrade a facet to fewer products, never to an
// error, so the storefront keeps rendering when an upstream is down.
type Service struct {
	fakeStore external.FakeStoreGateway
	dummyJSON external.DummyJSONGateway
	cache     cache.Store
	logger    *zap.Logger
}

// NewService creates a new external catalog aggregation service
func NewService(fakeStore external.FakeStoreGateway, dummyJSON external.DummyJSONGateway, store cache.Store, logger *zap.Logger) *Service {
	return &Service{
		fakeStore: fakeStore,
		dummyJSON: dummyJSON,
		cache:     store,
		logger:    logger,
	}
}

// Facet returns the merged product listing for the named facet. Slices
// are fetched concurrently and merged back in declared order.
func (s *Service) Facet(ctx context.Context, name string) ([]external.Product, error) {
	plans, ok := facetPlans[name]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Unknown facet")
	}

	slices := make([][]external.Product, len(plans))
	var wg sync.WaitGroup
	for i, plan := range plans {
		wg.Add(1)
		go func(i int, plan slicePlan) {
			defer wg.Done()
			slices[i] = s.fetchSlice(ctx, plan)
		}(i, plan)
	}
	wg.Wait()

	var total int
	for _, slice := range slices {
		total += len(slice)
	}
	products := make([]external.Product, 0, total)
	for _, slice := range slices {
		products = append(products, slice...)
	}

	s.logger.Debug("Facet assembled",
		zap.String("facet", name),
		zap.Int("products", len(products)))

	return products, nil
}

func (s *Service) fetchSlice(ctx context.Context, plan slicePlan) []external.Product {
	var raws []external.RawProduct
	switch plan.source {
	case external.SourceFakeStore:
		raws = s.fakeStore.ProductsByCategory(ctx, plan.upstreamCategory)
	case external.SourceDummyJSON:
		raws = s.dummyJSON.Products(ctx, plan.upstreamCategory, plan.fetchLimit)
	}
	return ProcessProducts(raws, plan.limit, TransformConfig{
		Source:   plan.source,
		Gender:   plan.gender,
		Category: plan.category,
		IDOffset: plan.idOffset,
	})
}

// ProductByID returns a single normalized product from the Fake Store
// catalog. Normalized products are cached under their raw id so repeat
// detail-page hits skip the upstream entirely.
func (s *Service) ProductByID(ctx context.Context, id string) (*external.Product, error) {
	cacheKey := "product_" + id
	if data, ok := s.cache.Get(ctx, cacheKey); ok {
		var product external.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		s.cache.Delete(ctx, cacheKey)
	}

	raw, ok := s.fakeStore.ProductByID(ctx, id)
	if !ok {
		return nil, shared.ErrNotFound
	}

	facet, known := upstreamCategoryFacets[raw.Category]
	if !known {
		facet.category = external.CategoryClothes
		facet.gender = external.GenderUnisex
	}

	product := TransformProduct(*raw, TransformConfig{
		Source:   external.SourceFakeStore,
		Gender:   facet.gender,
		Category: facet.category,
	})

	if data, err := json.Marshal(product); err == nil {
		s.cache.Set(ctx, cacheKey, data)
	}

	return &product, nil
}
