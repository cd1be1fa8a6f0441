package models

// Product is the normalized record extracted from a product page.
//
// Every field is guaranteed present and type-correct after normalization:
// the extraction cascade may leave any of them unpopulated, but the
// normalizer fills defaults before the record is returned to a caller.
type Product struct {
	// Title is the product name. Never empty; defaults to "Product".
	Title string `json:"title"`

	// SalePrice is the current (possibly discounted) price. Never negative.
	SalePrice float64 `json:"salePrice"`

	// OriginalPrice is the list price before discount. Defaults to
	// SalePrice when the page exposes only one price. Source data may
	// report an original price below the sale price; no invariant is
	// forced between the two.
	OriginalPrice float64 `json:"originalPrice"`

	// Discount is the integer discount percentage, present only when
	// OriginalPrice > SalePrice > 0.
	Discount *int `json:"discount,omitempty"`

	// Rating is the average review score, clamped to [0, 5].
	Rating float64 `json:"rating"`

	// Reviews is the review count. Never negative.
	Reviews int `json:"reviews"`

	// Images is an ordered, deduplicated list of absolute image URLs.
	// Never empty; falls back to a single placeholder URL.
	Images []string `json:"images"`

	// Description is plain text, truncated to 1000 characters.
	Description string `json:"description"`

	// Specs is an ordered list of specification label/value pairs.
	Specs []Spec `json:"specs"`
}

// Spec is a single specification entry, e.g. {"Material", "Aluminium"}.
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
