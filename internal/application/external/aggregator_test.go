package external

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/external"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/cache"
)

type stubFakeStore struct {
	products map[string][]external.RawProduct
	byID     map[string]*external.RawProduct
	calls    int
}

func (s *stubFakeStore) ProductsByCategory(_ context.Context, category string) []external.RawProduct {
	return s.products[category]
}

func (s *stubFakeStore) ProductByID(_ context.Context, id string) (*external.RawProduct, bool) {
	s.calls++
	raw, ok := s.byID[id]
	return raw, ok
}

type stubDummyJSON struct {
	products map[string][]external.RawProduct
}

func (s *stubDummyJSON) Products(_ context.Context, category string, _ int) []external.RawProduct {
	return s.products[category]
}

func newTestService(fakeStore *stubFakeStore, dummyJSON *stubDummyJSON) *Service {
	return NewService(fakeStore, dummyJSON, cache.NewMemoryStore(), zap.NewNop())
}

func TestFacet_MergesSlicesInDeclaredOrder(t *testing.T) {
	fakeStore := &stubFakeStore{products: map[string][]external.RawProduct{
		"electronics": {{ID: 1, Title: "Monitor"}},
	}}
	dummyJSON := &stubDummyJSON{products: map[string][]external.RawProduct{
		"smartphones": {{ID: 2, Title: "Phone"}},
	}}
	svc := newTestService(fakeStore, dummyJSON)

	products, err := svc.Facet(context.Background(), "gadgets")
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Fake Store slice first, then DummyJSON, per the facet plan
	assert.Equal(t, "Monitor", products[0].Name)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Phone", products[1].Name)
	assert.Equal(t, int64(230_002), products[1].ID)
	assert.Equal(t, external.CategoryGadgets, products[0].Category)
	assert.Equal(t, external.GenderUnisex, products[1].Gender)
}

func TestFacet_UpstreamFailureDegradesToPartialListing(t *testing.T) {
	fakeStore := &stubFakeStore{products: map[string][]external.RawProduct{
		"jewelery": {{ID: 5, Title: "Ring"}},
	}}
	dummyJSON := &stubDummyJSON{products: map[string][]external.RawProduct{}}
	svc := newTestService(fakeStore, dummyJSON)

	products, err := svc.Facet(context.Background(), "cosmetics")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Ring", products[0].Name)
}

func TestFacet_AllUpstreamsDownReturnsEmptyListing(t *testing.T) {
	svc := newTestService(&stubFakeStore{}, &stubDummyJSON{})

	products, err := svc.Facet(context.Background(), "men")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFacet_UnknownName(t *testing.T) {
	svc := newTestService(&stubFakeStore{}, &stubDummyJSON{})

	_, err := svc.Facet(context.Background(), "electronics")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestFacets_EveryListedFacetIsServed(t *testing.T) {
	svc := newTestService(&stubFakeStore{}, &stubDummyJSON{})

	names := Facets()
	assert.ElementsMatch(t, []string{"all", "men", "women", "clothes", "gadgets", "cosmetics"}, names)

	for _, name := range names {
		products, err := svc.Facet(context.Background(), name)
		require.NoError(t, err, "facet %s", name)
		assert.Empty(t, products)
	}
}

func TestFacet_AppliesSliceLimits(t *testing.T) {
	many := make([]external.RawProduct, 20)
	for i := range many {
		many[i] = external.RawProduct{ID: int64(i + 1), Title: "Item"}
	}
	fakeStore := &stubFakeStore{products: map[string][]external.RawProduct{
		"electronics": many,
	}}
	svc := newTestService(fakeStore, &stubDummyJSON{})

	products, err := svc.Facet(context.Background(), "gadgets")
	require.NoError(t, err)
	assert.Len(t, products, 10)
}

func TestProductByID_NormalizesAndCaches(t *testing.T) {
	fakeStore := &stubFakeStore{byID: map[string]*external.RawProduct{
		"3": {ID: 3, Title: "Gold Ring", Category: "jewelery", Price: 120},
	}}
	svc := newTestService(fakeStore, &stubDummyJSON{})

	product, err := svc.ProductByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), product.ID)
	assert.Equal(t, "Gold Ring", product.Name)
	assert.Equal(t, external.CategoryCosmetics, product.Category)
	assert.Equal(t, external.GenderUnisex, product.Gender)

	// Second lookup is served from cache without touching the upstream
	again, err := svc.ProductByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, product, again)
	assert.Equal(t, 1, fakeStore.calls)
}

func TestProductByID_UnknownCategoryDefaultsToClothes(t *testing.T) {
	fakeStore := &stubFakeStore{byID: map[string]*external.RawProduct{
		"9": {ID: 9, Title: "Mystery Item", Category: "misc"},
	}}
	svc := newTestService(fakeStore, &stubDummyJSON{})

	product, err := svc.ProductByID(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, external.CategoryClothes, product.Category)
	assert.Equal(t, external.GenderUnisex, product.Gender)
}

func TestProductByID_NotFound(t *testing.T) {
	svc := newTestService(&stubFakeStore{}, &stubDummyJSON{})

	_, err := svc.ProductByID(context.Background(), "404")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductByID_CorruptCacheEntryIsDiscarded(t *testing.T) {
	store := cache.NewMemoryStore()
	fakeStore := &stubFakeStore{byID: map[string]*external.RawProduct{
		"3": {ID: 3, Title: "Gold Ring", Category: "jewelery"},
	}}
	svc := NewService(fakeStore, &stubDummyJSON{}, store, zap.NewNop())

	store.Set(context.Background(), "product_3", []byte("not json"))

	product, err := svc.ProductByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Gold Ring", product.Name)

	// The bad entry was replaced by the normalized product
	data, ok := store.Get(context.Background(), "product_3")
	require.True(t, ok)
	var cached external.Product
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Equal(t, "Gold Ring", cached.Name)
}
