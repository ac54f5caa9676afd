package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	ownerID := uuid.New()
	product, err := NewProduct(ownerID, "Denim Jacket", "Blue denim", CategoryClothes, decimal.NewFromFloat(49.90))
	require.NoError(t, err)

	assert.Equal(t, "Denim Jacket", product.Name)
	assert.Equal(t, CategoryClothes, product.Category)
	assert.Equal(t, ProductStatusPending, product.Status, "new listings await review")
	assert.True(t, product.InStock)
	assert.True(t, product.IsOwnedBy(ownerID))
	assert.False(t, product.IsApproved())
}

func TestNewProduct_Validation(t *testing.T) {
	ownerID := uuid.New()

	_, err := NewProduct(ownerID, "  ", "d", CategoryClothes, decimal.Zero)
	assertDomainCode(t, err, "INVALID_NAME")

	_, err = NewProduct(ownerID, "Name", "d", Category("food"), decimal.Zero)
	assertDomainCode(t, err, "INVALID_CATEGORY")

	_, err = NewProduct(ownerID, "Name", "d", CategoryGadgets, decimal.NewFromInt(-1))
	assertDomainCode(t, err, "INVALID_PRICE")
}

func TestProduct_Update(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Old", "old", CategoryClothes, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, product.Update("New", "new", CategoryGadgets, decimal.NewFromInt(10), false))
	assert.Equal(t, "New", product.Name)
	assert.Equal(t, CategoryGadgets, product.Category)
	assert.False(t, product.InStock)

	err = product.Update("New", "new", CategoryGadgets, decimal.NewFromInt(-10), true)
	assertDomainCode(t, err, "INVALID_PRICE")
}

func TestProduct_SetStatus(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Item", "", CategoryCosmetics, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, product.SetStatus(ProductStatusApproved))
	assert.True(t, product.IsApproved())

	err = product.SetStatus(ProductStatus("shipped"))
	assertDomainCode(t, err, "INVALID_STATUS")
	assert.True(t, product.IsApproved(), "invalid transition leaves status unchanged")
}

func TestProduct_SetImageURL(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Item", "", CategoryCosmetics, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, product.SetImageURL("https://img.example.com/a.jpg"))
	assert.Equal(t, "https://img.example.com/a.jpg", product.ImageURL)

	err = product.SetImageURL("https://img.example.com/" + strings.Repeat("a", 500))
	assertDomainCode(t, err, "INVALID_IMAGE_URL")
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
