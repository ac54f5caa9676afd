package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/external"
)

func TestTransformProduct_FakeStore(t *testing.T) {
	raw := external.RawProduct{
		ID:          4,
		Title:       "Leather Jacket",
		Description: "A sturdy jacket",
		Price:       59.99,
		Image:       "https://img.example.com/jacket.jpg",
		Thumbnail:   "https://img.example.com/jacket-thumb.jpg",
	}

	product := TransformProduct(raw, TransformConfig{
		Source:   external.SourceFakeStore,
		Gender:   external.GenderMen,
		Category: external.CategoryClothes,
		IDOffset: 20_000,
	})

	assert.Equal(t, int64(20_004), product.ID)
	assert.Equal(t, "Leather Jacket", product.Name)
	assert.Equal(t, "A sturdy jacket", product.Description)
	assert.Equal(t, 59.99, product.Price)
	require.NotNil(t, product.ImageURL)
	assert.Equal(t, "https://img.example.com/jacket.jpg", *product.ImageURL)
	assert.Equal(t, external.CategoryClothes, product.Category)
	assert.Equal(t, external.GenderMen, product.Gender)
	assert.True(t, product.InStock)
	assert.True(t, product.External)
}

func TestTransformProduct_ImageBySource(t *testing.T) {
	raw := external.RawProduct{
		ID:        1,
		Title:     "Widget",
		Image:     "https://img.example.com/image.jpg",
		Thumbnail: "https://img.example.com/thumb.jpg",
		Images:    []string{"https://img.example.com/first.jpg"},
	}

	tests := []struct {
		source external.Source
		want   string
	}{
		{external.SourceFakeStore, "https://img.example.com/image.jpg"},
		{external.SourceDummyJSON, "https://img.example.com/thumb.jpg"},
		{external.SourceStoreAPI, "https://img.example.com/first.jpg"},
	}

	for _, tt := range tests {
		product := TransformProduct(raw, TransformConfig{Source: tt.source})
		require.NotNil(t, product.ImageURL, "source %s", tt.source)
		assert.Equal(t, tt.want, *product.ImageURL, "source %s", tt.source)
	}
}

func TestTransformProduct_DummyJSONFallsBackToFirstImage(t *testing.T) {
	raw := external.RawProduct{
		ID:     7,
		Title:  "Phone",
		Images: []string{"https://img.example.com/phone.jpg"},
	}

	product := TransformProduct(raw, TransformConfig{Source: external.SourceDummyJSON})

	require.NotNil(t, product.ImageURL)
	assert.Equal(t, "https://img.example.com/phone.jpg", *product.ImageURL)
}

func TestTransformProduct_Defaults(t *testing.T) {
	product := TransformProduct(external.RawProduct{ID: 3}, TransformConfig{
		Source: external.SourceFakeStore,
	})

	assert.Equal(t, "Unnamed Product", product.Name)
	assert.Equal(t, "No description available", product.Description)
	assert.Zero(t, product.Price)
	assert.Nil(t, product.ImageURL)
}

func TestTransformProduct_NegativePriceClampedToZero(t *testing.T) {
	product := TransformProduct(external.RawProduct{ID: 3, Title: "Broken Feed", Price: -9.99}, TransformConfig{
		Source: external.SourceFakeStore,
	})

	assert.Zero(t, product.Price)
}

func TestTransformProduct_NameFallsBackToNameField(t *testing.T) {
	product := TransformProduct(external.RawProduct{ID: 3, Name: "Plain Shirt"}, TransformConfig{
		Source: external.SourceFakeStore,
	})

	assert.Equal(t, "Plain Shirt", product.Name)
}

func TestTransformProduct_FallbackIDIsStable(t *testing.T) {
	raw := external.RawProduct{Title: "No ID Product", Description: "missing upstream id"}

	first := TransformProduct(raw, TransformConfig{Source: external.SourceFakeStore})
	second := TransformProduct(raw, TransformConfig{Source: external.SourceFakeStore})

	assert.Equal(t, first.ID, second.ID)
	assert.GreaterOrEqual(t, first.ID, int64(0))
	assert.Less(t, first.ID, int64(fallbackIDRange))
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid https", "https://img.example.com/a.jpg", true},
		{"valid http", "http://img.example.com/a.jpg", true},
		{"empty", "", false},
		{"placeholder host", "https://via.placeholder.com/150", false},
		{"placeholder anywhere", "https://cdn.example.com/placeholder.png", false},
		{"relative path", "/images/a.jpg", false},
		{"ftp scheme", "ftp://example.com/a.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateImageURL(tt.in)
			if tt.want {
				require.NotNil(t, got)
				assert.Equal(t, tt.in, *got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestProcessProducts_LimitAndStride(t *testing.T) {
	raws := []external.RawProduct{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c"},
		{ID: 4, Title: "d"},
	}

	products := ProcessProducts(raws, 3, TransformConfig{
		Source:   external.SourceDummyJSON,
		IDOffset: 50_000,
	})

	require.Len(t, products, 3)
	assert.Equal(t, int64(50_001), products[0].ID)
	assert.Equal(t, int64(60_002), products[1].ID)
	assert.Equal(t, int64(70_003), products[2].ID)
}

func TestProcessProducts_ZeroLimitKeepsAll(t *testing.T) {
	raws := []external.RawProduct{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}

	products := ProcessProducts(raws, 0, TransformConfig{Source: external.SourceFakeStore})

	assert.Len(t, products, 2)
}
