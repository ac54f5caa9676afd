package external

import (
	"hash/fnv"
	"net/url"
	"strings"

	"github.com/shop/backend/internal/domain/external"
)

const (
	defaultName        = "Unnamed Product"
	defaultDescription = "No description available"

	// fallbackIDRange bounds synthetic ids for raw products that
	// arrive without one, keeping them below every facet offset.
	fallbackIDRange = 1_000_000

	// offsetStride spaces out per-item offsets within one facet slice
	// so ids from the same upstream never collide across slices.
	offsetStride = 10_000
)

// TransformConfig carries the facet metadata stamped onto every
// product normalized from a given upstream slice.
type TransformConfig struct {
	Source   external.Source
	Gender   external.Gender
	Category external.Category
	IDOffset int64
}

// TransformProduct converts a raw upstream product into the normalized
// shape, picking the image field by source and offsetting the id into
// the facet's reserved range.
func TransformProduct(raw external.RawProduct, cfg TransformConfig) external.Product {
	var image string
	switch cfg.Source {
	case external.SourceFakeStore:
		image = firstNonEmpty(raw.Image, raw.Thumbnail)
	case external.SourceDummyJSON:
		image = raw.Thumbnail
		if image == "" && len(raw.Images) > 0 {
			image = raw.Images[0]
		}
	case external.SourceStoreAPI:
		if len(raw.Images) > 0 {
			image = raw.Images[0]
		} else {
			image = raw.Image
		}
	}

	name := firstNonEmpty(raw.Title, raw.Name, defaultName)
	description := raw.Description
	if description == "" {
		description = defaultDescription
	}

	id := raw.ID
	if id == 0 {
		id = fallbackID(name, description)
	}

	price := raw.Price
	if price < 0 {
		price = 0
	}

	return external.Product{
		ID:          id + cfg.IDOffset,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    validateImageURL(image),
		Category:    cfg.Category,
		Gender:      cfg.Gender,
		InStock:     true,
		External:    true,
	}
}

// ProcessProducts normalizes up to limit raw products, giving each
// index its own id offset band within the facet's range.
func ProcessProducts(raws []external.RawProduct, limit int, cfg TransformConfig) []external.Product {
	if limit > 0 && len(raws) > limit {
		raws = raws[:limit]
	}
	products := make([]external.Product, 0, len(raws))
	for i, raw := range raws {
		itemCfg := cfg
		itemCfg.IDOffset = cfg.IDOffset + int64(i)*offsetStride
		products = append(products, TransformProduct(raw, itemCfg))
	}
	return products
}

// validateImageURL returns the url if it is a usable absolute http(s)
// url, and nil otherwise. Placeholder images are dropped so the
// storefront falls back to its own artwork.
func validateImageURL(raw string) *string {
	if raw == "" {
		return nil
	}
	if strings.Contains(raw, "placeholder") || strings.Contains(raw, "via.placeholder") {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil
	}
	return &raw
}

// fallbackID derives a stable id from the product's content so repeat
// fetches of an id-less product keep the same identity.
func fallbackID(name, description string) int64 {
	h := fnv.New32a()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(description))
	return int64(h.Sum32() % fallbackIDRange)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
