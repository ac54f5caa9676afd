package external

// Source identifies the upstream catalog a raw product came from.
// The set is closed; adding a source means adding a schema adapter.
type Source string

const (
	SourceFakeStore Source = "fakestore"
	SourceDummyJSON Source = "dummyjson"
	SourceStoreAPI  Source = "storeapi"
)

// Gender is the audience facet attached to a normalized product
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

// Category is the store-level category attached to a normalized product
type Category string

const (
	CategoryClothes   Category = "clothes"
	CategoryGadgets   Category = "gadgets"
	CategoryCosmetics Category = "cosmetics"
)

// RawProduct is the union of the upstream product shapes.
// Fields absent from a given source simply stay at their zero value.
type RawProduct struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
}

// Product is a normalized product from an external catalog.
// The wire shape matches what the storefront consumes directly,
// so these are serialized as-is without a response envelope.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Category    Category `json:"category"`
	Gender      Gender   `json:"gender"`
	InStock     bool     `json:"inStock"`
	External    bool     `json:"external"`
}
