package extract

import (
	"math"

	"github.com/itemlens/itemlens/models"
)

const (
	defaultTitle     = "Product"
	descriptionLimit = 1000

	// placeholderImage backs the images field when every strategy failed.
	placeholderImage = "https://via.placeholder.com/600x600?text=No+Image"
)

// Normalize fills every field of a record with a type-safe default and
// derives the discount. It runs unconditionally at the end of the cascade
// and is idempotent: normalizing an already-normalized record is a no-op.
func Normalize(p *models.Product) {
	if p.Title == "" {
		p.Title = defaultTitle
	}
	if p.SalePrice < 0 {
		p.SalePrice = 0
	}
	if p.OriginalPrice <= 0 {
		p.OriginalPrice = p.SalePrice
	}
	if p.Rating < 0 {
		p.Rating = 0
	}
	if p.Rating > 5 {
		p.Rating = 5
	}
	if p.Reviews < 0 {
		p.Reviews = 0
	}
	if len(p.Images) == 0 {
		p.Images = []string{placeholderImage}
	}
	p.Description = truncate(p.Description, descriptionLimit)
	if p.Specs == nil {
		p.Specs = []models.Spec{}
	}

	// Discount holds only when the page reports a genuine markdown.
	// Recomputed from scratch so normalization stays idempotent.
	p.Discount = nil
	if p.OriginalPrice > p.SalePrice && p.SalePrice > 0 {
		d := int(math.Round((p.OriginalPrice - p.SalePrice) / p.OriginalPrice * 100))
		p.Discount = &d
	}
}

// truncate limits s to at most limit runes. Counting bytes would cut
// multibyte text short and could split a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
