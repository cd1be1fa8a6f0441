package extract

// Per-field selector cascades, tried in order until one yields usable
// content. Kept as data rather than control flow so they can be extended
// (and tested) without touching the extraction logic.

var titleSelectors = []string{
	"h1[data-pl=product-title]",
	".product-title-text",
	"h1.product-name",
	".pdp-mod-product-badge-title",
	"h1",
}

var salePriceSelectors = []string{
	".product-price-value",
	".uniform-banner-box-price",
	"[class*=PriceText]",
	".pdp-price_type_normal",
	".price-current",
	".product-price .price",
	"[itemprop=price]",
}

var originalPriceSelectors = []string{
	".product-price-original",
	".price-original",
	"[class*=Price--original]",
	".pdp-price_type_deleted",
	".product-price del",
	"del",
}

var ratingSelectors = []string{
	".overview-rating-average",
	"[itemprop=ratingValue]",
	".rating-value",
	"[class*=rating-average]",
}

var reviewCountSelectors = []string{
	".product-reviewer-reviews",
	"[itemprop=reviewCount]",
	".review-count",
	"[class*=review-num]",
}

var descriptionSelectors = []string{
	".detail-desc-decorate-richtext",
	".product-description",
	"#product-description",
	"[class*=description]",
}

var imageSelectors = []string{
	".images-view-item img",
	"[class*=slider--img] img",
	"[class*=image-view] img",
	".product-image img",
	".magnifier-image img",
	"img[class*=gallery]",
}

// imageAttrs is the attribute preference order when reading an image
// element. Lazy-loaded galleries keep the real URL in data-src.
var imageAttrs = []string{"data-src", "src", "data-image"}

// specSelector locates spec rows plus the label/value inside each row.
type specSelector struct {
	Container string
	Label     string
	Value     string
}

var specSelectors = []specSelector{
	{Container: ".specification .do-entry-item", Label: ".do-entry-item-key", Value: ".do-entry-item-val"},
	{Container: ".product-prop-list .product-prop", Label: ".property-title", Value: ".property-desc"},
	{Container: ".specs-table tr", Label: "th", Value: "td"},
	{Container: "[class*=specification] li", Label: ".title", Value: ".desc"},
}
