package external

import "github.com/shop/backend/internal/domain/external"

// slicePlan describes one upstream slice of a facet: where to fetch it
// from, how many items to keep, and the facet metadata stamped onto
// each normalized product. The idOffset keeps every slice's ids in a
// disjoint range so a merged facet never contains duplicate ids.
type slicePlan struct {
	source           external.Source
	upstreamCategory string
	fetchLimit       int
	limit            int
	gender           external.Gender
	category         external.Category
	idOffset         int64
}

// facetPlans maps each storefront facet to its upstream slices in
// presentation order.
var facetPlans = map[string][]slicePlan{
	"men": {
		{source: external.SourceFakeStore, upstreamCategory: "men's clothing", limit: 10, gender: external.GenderMen, category: external.CategoryClothes, idOffset: 0},
		{source: external.SourceFakeStore, upstreamCategory: "electronics", limit: 8, gender: external.GenderMen, category: external.CategoryGadgets, idOffset: 20_000},
		{source: external.SourceFakeStore, upstreamCategory: "jewelery", limit: 6, gender: external.GenderMen, category: external.CategoryCosmetics, idOffset: 30_000},
		{source: external.SourceDummyJSON, upstreamCategory: "mens-shirts", fetchLimit: 12, limit: 12, gender: external.GenderMen, category: external.CategoryClothes, idOffset: 50_000},
		{source: external.SourceDummyJSON, upstreamCategory: "smartphones", fetchLimit: 10, limit: 10, gender: external.GenderMen, category: external.CategoryGadgets, idOffset: 60_000},
	},
	"women": {
		{source: external.SourceFakeStore, upstreamCategory: "women's clothing", limit: 10, gender: external.GenderWomen, category: external.CategoryClothes, idOffset: 110_000},
		{source: external.SourceFakeStore, upstreamCategory: "electronics", limit: 8, gender: external.GenderWomen, category: external.CategoryGadgets, idOffset: 120_000},
		{source: external.SourceFakeStore, upstreamCategory: "jewelery", limit: 6, gender: external.GenderWomen, category: external.CategoryCosmetics, idOffset: 130_000},
		{source: external.SourceDummyJSON, upstreamCategory: "womens-dresses", fetchLimit: 12, limit: 12, gender: external.GenderWomen, category: external.CategoryClothes, idOffset: 140_000},
		{source: external.SourceDummyJSON, upstreamCategory: "smartphones", fetchLimit: 10, limit: 10, gender: external.GenderWomen, category: external.CategoryGadgets, idOffset: 150_000},
	},
	"clothes": {
		{source: external.SourceFakeStore, upstreamCategory: "men's clothing", limit: 8, gender: external.GenderMen, category: external.CategoryClothes, idOffset: 0},
		{source: external.SourceFakeStore, upstreamCategory: "women's clothing", limit: 8, gender: external.GenderWomen, category: external.CategoryClothes, idOffset: 50_000},
		{source: external.SourceDummyJSON, upstreamCategory: "mens-shirts", fetchLimit: 10, limit: 10, gender: external.GenderMen, category: external.CategoryClothes, idOffset: 200_000},
		{source: external.SourceDummyJSON, upstreamCategory: "womens-dresses", fetchLimit: 10, limit: 10, gender: external.GenderWomen, category: external.CategoryClothes, idOffset: 210_000},
	},
	"gadgets": {
		{source: external.SourceFakeStore, upstreamCategory: "electronics", limit: 10, gender: external.GenderUnisex, category: external.CategoryGadgets, idOffset: 0},
		{source: external.SourceDummyJSON, upstreamCategory: "smartphones", fetchLimit: 15, limit: 15, gender: external.GenderUnisex, category: external.CategoryGadgets, idOffset: 230_000},
	},
	"cosmetics": {
		{source: external.SourceFakeStore, upstreamCategory: "jewelery", limit: 10, gender: external.GenderUnisex, category: external.CategoryCosmetics, idOffset: 0},
		{source: external.SourceDummyJSON, upstreamCategory: "fragrances", fetchLimit: 15, limit: 15, gender: external.GenderUnisex, category: external.CategoryCosmetics, idOffset: 250_000},
	},
	"all": {
		{source: external.SourceFakeStore, upstreamCategory: "men's clothing", limit: 8, gender: external.GenderMen, category: external.CategoryClothes, idOffset: 0},
		{source: external.SourceFakeStore, upstreamCategory: "women's clothing", limit: 8, gender: external.GenderWomen, category: external.CategoryClothes, idOffset: 50_000},
		{source: external.SourceFakeStore, upstreamCategory: "electronics", limit: 8, gender: external.GenderUnisex, category: external.CategoryGadgets, idOffset: 20_000},
		{source: external.SourceFakeStore, upstreamCategory: "jewelery", limit: 8, gender: external.GenderUnisex, category: external.CategoryCosmetics, idOffset: 30_000},
		{source: external.SourceDummyJSON, upstreamCategory: "mens-shirts", fetchLimit: 10, limit: 10, gender: external.GenderMen, category: external.CategoryClothes, idOffset: 270_000},
		{source: external.SourceDummyJSON, upstreamCategory: "womens-dresses", fetchLimit: 10, limit: 10, gender: external.GenderWomen, category: external.CategoryClothes, idOffset: 280_000},
		{source: external.SourceDummyJSON, upstreamCategory: "smartphones", fetchLimit: 10, limit: 10, gender: external.GenderUnisex, category: external.CategoryGadgets, idOffset: 290_000},
		{source: external.SourceDummyJSON, upstreamCategory: "fragrances", fetchLimit: 10, limit: 10, gender: external.GenderUnisex, category: external.CategoryCosmetics, idOffset: 300_000},
	},
}

// Facets lists the facet names the aggregator can serve.
func Facets() []string {
	names := make([]string, 0, len(facetPlans))
	for name := range facetPlans {
		names = append(names, name)
	}
	return names
}

// upstreamCategoryFacets maps a Fake Store category onto the facet
// metadata used when a product is looked up directly by id rather
// than through a facet listing.
var upstreamCategoryFacets = map[string]struct {
	category external.Category
	gender   external.Gender
}{
	"men's clothing":   {external.CategoryClothes, external.GenderMen},
	"women's clothing": {external.CategoryClothes, external.GenderWomen},
	"electronics":      {external.CategoryGadgets, external.GenderUnisex},
	"jewelery":         {external.CategoryCosmetics, external.GenderUnisex},
}
