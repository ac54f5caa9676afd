package external

import "context"

// FakeStoreGateway fetches raw products from the Fake Store catalog.
// Implementations never return errors; an unreachable or misbehaving
// upstream yields an empty slice or a missing product.
type FakeStoreGateway interface {
	ProductsByCategory(ctx context.Context, category string) []RawProduct
	ProductByID(ctx context.Context, id string) (*RawProduct, bool)
}

// DummyJSONGateway fetches raw products from the DummyJSON catalog
type DummyJSONGateway interface {
	Products(ctx context.Context, category string, limit int) []RawProduct
}
