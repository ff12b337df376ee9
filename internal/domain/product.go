package domain

// ProductSummary is the catalog card shape rendered on listing pages.
type ProductSummary struct {
	ID         int64  `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	SKU        string `json:"sku,omitempty"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	ImageAlt   string `json:"imageAlt,omitempty"`
}

// ProductDetail extends the summary with the fields product pages need.
type ProductDetail struct {
	ProductSummary
	Description      string   `json:"description,omitempty"`
	GalleryImageURLs []string `json:"galleryImageUrls,omitempty"`
}

// ProductPage is one slice of a cursor-paginated product listing.
type ProductPage struct {
	Items       []ProductSummary `json:"items"`
	EndCursor   string           `json:"endCursor,omitempty"`
	HasNextPage bool             `json:"hasNextPage"`
}
