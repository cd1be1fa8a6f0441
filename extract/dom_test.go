package extract

import (
	"strings"
	"testing"
)

func TestExtractDOM_FullPage(t *testing.T) {
	raw := `<html><body>
		<h1 data-pl="product-title">Ergonomic Office Chair Deluxe</h1>
		<div class="product-price-value">US $149.99</div>
		<div class="product-price-original">US $299.99</div>
		<div class="overview-rating-average">4.8</div>
		<div class="product-reviewer-reviews">1,205 Reviews</div>
		<div class="detail-desc-decorate-richtext">A very comfortable chair for long days.</div>
		<div class="images-view-item"><img src="https://cdn.example.com/chair1.jpg"></div>
		<div class="images-view-item"><img src="https://cdn.example.com/chair2.jpg"></div>
		<div class="specification">
			<div class="do-entry-item"><span class="do-entry-item-key">Material</span><span class="do-entry-item-val">Mesh</span></div>
			<div class="do-entry-item"><span class="do-entry-item-key">Color</span><span class="do-entry-item-val">Black</span></div>
		</div>
	</body></html>`

	p := extractDOM(raw, "https://www.example.com/item/1234567890.html", testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	if p.Title == nil || *p.Title != "Ergonomic Office Chair Deluxe" {
		t.Errorf("title = %v", p.Title)
	}
	if p.SalePrice == nil || *p.SalePrice != 149.99 {
		t.Errorf("salePrice = %v, want 149.99 parsed out of the currency text", p.SalePrice)
	}
	if p.OriginalPrice == nil || *p.OriginalPrice != 299.99 {
		t.Errorf("originalPrice = %v", p.OriginalPrice)
	}
	if p.Rating == nil || *p.Rating != 4.8 {
		t.Errorf("rating = %v", p.Rating)
	}
	if p.Reviews == nil || *p.Reviews != 1205 {
		t.Errorf("reviews = %v, want 1205 with the comma stripped", p.Reviews)
	}
	if len(p.Images) != 2 {
		t.Errorf("images = %v", p.Images)
	}
	if len(p.Specs) != 2 || p.Specs[0].Label != "Material" || p.Specs[0].Value != "Mesh" {
		t.Errorf("specs = %v", p.Specs)
	}
}

func TestExtractDOM_TitleLengthGate(t *testing.T) {
	// Headings of 10 characters or fewer are placeholders, not titles.
	raw := `<html><body><h1>Loading...</h1></body></html>`
	p := extractDOM(raw, "https://www.example.com/", testLogger())
	if p != nil && p.Title != nil {
		t.Errorf("short heading should be rejected, got %q", *p.Title)
	}

	longEnough := `<html><body><h1>A Perfectly Reasonable Product Name</h1></body></html>`
	p = extractDOM(longEnough, "https://www.example.com/", testLogger())
	if p == nil || p.Title == nil {
		t.Fatal("expected the heading to be accepted")
	}
}

func TestExtractDOM_TitleLengthGateCountsRunes(t *testing.T) {
	// Six CJK characters are 18 bytes but still only six characters; the
	// gate must reject on rune count, not byte count.
	raw := `<html><body><h1>无线蓝牙耳机</h1></body></html>`
	p := extractDOM(raw, "https://www.example.com/", testLogger())
	if p != nil && p.Title != nil {
		t.Errorf("six-rune heading should be rejected, got %q", *p.Title)
	}

	accepted := `<html><body><h1>无线蓝牙耳机专业版降噪旗舰款</h1></body></html>`
	p = extractDOM(accepted, "https://www.example.com/", testLogger())
	if p == nil || p.Title == nil {
		t.Fatal("expected a heading of more than ten runes to be accepted")
	}
}

func TestExtractDOM_ImageAttrPreference(t *testing.T) {
	// Lazy-loaded galleries keep the real URL in data-src; the src value
	// is usually a placeholder and must lose.
	raw := `<html><body>
		<div class="images-view-item"><img data-src="https://cdn.example.com/real.jpg" src="https://cdn.example.com/placeholder.gif"></div>
	</body></html>`

	p := extractDOM(raw, "https://www.example.com/", testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	if len(p.Images) != 1 || p.Images[0] != "https://cdn.example.com/real.jpg" {
		t.Errorf("images = %v, want data-src to win", p.Images)
	}
}

func TestExtractDOM_ImageURLNormalization(t *testing.T) {
	raw := `<html><body>
		<div class="images-view-item"><img src="//cdn.example.com/proto-relative.jpg"></div>
		<div class="images-view-item"><img src="/media/root-relative.jpg"></div>
		<div class="images-view-item"><img src="not-a-url.jpg"></div>
	</body></html>`

	p := extractDOM(raw, "https://www.example.com/item/1234567890.html", testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	want := []string{
		"https://cdn.example.com/proto-relative.jpg",
		"https://www.example.com/media/root-relative.jpg",
	}
	if len(p.Images) != len(want) {
		t.Fatalf("images = %v, want %v", p.Images, want)
	}
	for i := range want {
		if p.Images[i] != want[i] {
			t.Errorf("images[%d] = %q, want %q", i, p.Images[i], want[i])
		}
	}
}

func TestExtractDOM_ImageExclusions(t *testing.T) {
	// Chrome assets are filtered here just like in the raw-text fallback.
	raw := `<html><body>
		<div class="images-view-item"><img src="https://cdn.example.com/site-logo.jpg"></div>
		<div class="images-view-item"><img src="https://cdn.example.com/cart-icon.png"></div>
		<div class="images-view-item"><img src="https://cdn.example.com/placeholder.jpg"></div>
		<div class="images-view-item"><img src="https://cdn.example.com/product.jpg"></div>
	</body></html>`

	p := extractDOM(raw, "https://www.example.com/", testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	if len(p.Images) != 1 || p.Images[0] != "https://cdn.example.com/product.jpg" {
		t.Errorf("images = %v, want only the product photo", p.Images)
	}
}

func TestExtractDOM_ImageDedupe(t *testing.T) {
	raw := `<html><body>
		<div class="images-view-item"><img src="https://cdn.example.com/same.jpg"></div>
		<div class="images-view-item"><img src="https://cdn.example.com/same.jpg"></div>
	</body></html>`

	p := extractDOM(raw, "https://www.example.com/", testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	if len(p.Images) != 1 {
		t.Errorf("images = %v, want duplicates collapsed", p.Images)
	}
}

func TestExtractDOM_LinkedDataEnrichment(t *testing.T) {
	// Selector-found fields stay; linked data only fills the gaps, and
	// never the prices.
	raw := `<html><head>
	<script type="application/ld+json">
	{"@type": "Product", "name": "LD Title That Should Lose", "description": "LD description fills the gap.",
	 "offers": {"price": 999}, "aggregateRating": {"ratingValue": 3.0, "reviewCount": 50}}
	</script>
	</head><body>
		<h1>Selector Title That Should Win</h1>
		<div class="product-price-value">$10.00</div>
	</body></html>`

	p := extractDOM(raw, "https://www.example.com/", testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	if *p.Title != "Selector Title That Should Win" {
		t.Errorf("title = %q", *p.Title)
	}
	if *p.SalePrice != 10.00 {
		t.Errorf("salePrice = %v, linked data must not touch prices", *p.SalePrice)
	}
	if p.Description == nil || *p.Description != "LD description fills the gap." {
		t.Errorf("description = %v", p.Description)
	}
	if p.Rating == nil || *p.Rating != 3.0 {
		t.Errorf("rating = %v, want the linked-data fill", p.Rating)
	}
}

func TestExtractDOM_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("x", descriptionLimit+500)
	raw := `<html><body><div class="product-description">` + long + `</div></body></html>`

	p := extractDOM(raw, "https://www.example.com/", testLogger())
	if p == nil || p.Description == nil {
		t.Fatal("expected a description")
	}
	if len(*p.Description) != descriptionLimit {
		t.Errorf("description length = %d, want %d", len(*p.Description), descriptionLimit)
	}
}

func TestExtractDOM_EmptyPage(t *testing.T) {
	if p := extractDOM(`<html><body></body></html>`, "https://www.example.com/", testLogger()); p != nil {
		t.Errorf("expected nil for an empty page, got %+v", p)
	}
}

func TestSelectNumber_CascadeOrder(t *testing.T) {
	raw := `<html><body>
		<div class="price-current">$5.00</div>
		<div class="product-price-value">$3.00</div>
	</body></html>`

	p := extractDOM(raw, "https://www.example.com/", testLogger())
	if p == nil || p.SalePrice == nil {
		t.Fatal("expected a sale price")
	}
	if *p.SalePrice != 3.00 {
		t.Errorf("salePrice = %v, want the earlier selector in the cascade to win", *p.SalePrice)
	}
}
