package extract

import (
	"testing"
)

func TestExtractLinkedData_Product(t *testing.T) {
	raw := `<html><head>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "Product",
		"name": "Mechanical Keyboard",
		"description": "A clicky keyboard.",
		"image": ["https://cdn.example.com/kb1.jpg", "https://cdn.example.com/kb2.jpg"],
		"offers": {"@type": "Offer", "price": "89.99", "priceCurrency": "USD"},
		"aggregateRating": {"ratingValue": 4.5, "reviewCount": "312"}
	}
	</script>
	</head><body></body></html>`

	p := extractLinkedData(raw, testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	if p.Title == nil || *p.Title != "Mechanical Keyboard" {
		t.Errorf("title = %v", p.Title)
	}
	if p.SalePrice == nil || *p.SalePrice != 89.99 {
		t.Errorf("salePrice = %v, want 89.99", p.SalePrice)
	}
	if p.OriginalPrice == nil || *p.OriginalPrice != 89.99 {
		t.Errorf("originalPrice = %v, want offer price to fill both", p.OriginalPrice)
	}
	if p.Rating == nil || *p.Rating != 4.5 {
		t.Errorf("rating = %v", p.Rating)
	}
	if p.Reviews == nil || *p.Reviews != 312 {
		t.Errorf("reviews = %v, want 312 (string coercion)", p.Reviews)
	}
	if len(p.Images) != 2 {
		t.Errorf("images = %v", p.Images)
	}
}

func TestExtractLinkedData_TypeArray(t *testing.T) {
	raw := `<script type="application/ld+json">
	{"@type": ["Thing", "Product"], "name": "Array Typed Product"}
	</script>`

	p := extractLinkedData(raw, testLogger())
	if p == nil {
		t.Fatal("expected a record for @type array containing Product")
	}
	if *p.Title != "Array Typed Product" {
		t.Errorf("title = %q", *p.Title)
	}
}

func TestExtractLinkedData_SkipsNonProduct(t *testing.T) {
	raw := `<script type="application/ld+json">
	{"@type": "BreadcrumbList", "name": "Breadcrumbs"}
	</script>
	<script type="application/ld+json">
	{"@type": "Product", "name": "The Actual Product"}
	</script>`

	p := extractLinkedData(raw, testLogger())
	if p == nil {
		t.Fatal("expected the Product payload to be found")
	}
	if *p.Title != "The Actual Product" {
		t.Errorf("title = %q, want the Product entry, not the breadcrumb", *p.Title)
	}
}

func TestExtractLinkedData_SkipsBadJSON(t *testing.T) {
	raw := `<script type="application/ld+json">{not json at all</script>
	<script type="application/ld+json">{"@type": "Product", "name": "Survivor"}</script>`

	p := extractLinkedData(raw, testLogger())
	if p == nil {
		t.Fatal("a malformed payload must not abort the scan")
	}
	if *p.Title != "Survivor" {
		t.Errorf("title = %q", *p.Title)
	}
}

func TestExtractLinkedData_NoScripts(t *testing.T) {
	if p := extractLinkedData(`<html><body><p>plain page</p></body></html>`, testLogger()); p != nil {
		t.Errorf("expected nil, got %+v", p)
	}
}

func TestExtractLinkedData_OffersArray(t *testing.T) {
	raw := `<script type="application/ld+json">
	{"@type": "Product", "name": "Multi Offer", "offers": [{"price": 10.5}, {"price": 12.0}]}
	</script>`

	p := extractLinkedData(raw, testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	if p.SalePrice == nil || *p.SalePrice != 10.5 {
		t.Errorf("salePrice = %v, want first offer's price", p.SalePrice)
	}
}

func TestExtractLinkedData_SingleImageString(t *testing.T) {
	raw := `<script type="application/ld+json">
	{"@type": "Product", "name": "One Image", "image": "https://cdn.example.com/solo.jpg"}
	</script>`

	p := extractLinkedData(raw, testLogger())
	if p == nil {
		t.Fatal("expected a record")
	}
	if len(p.Images) != 1 || p.Images[0] != "https://cdn.example.com/solo.jpg" {
		t.Errorf("images = %v", p.Images)
	}
}
