package extract

import (
	"testing"
)

func TestItemID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{
			"item with slug",
			"https://www.example.com/item/blue-widget-1234567890.html",
			"1234567890", true,
		},
		{
			"bare item id",
			"https://www.example.com/item/1234567890.html",
			"1234567890", true,
		},
		{
			"store product with slug",
			"https://shop.example.com/store/product/wireless-earbuds-pro-9876543210.html",
			"9876543210", true,
		},
		{
			"query string stripped before matching",
			"https://www.example.com/item/blue-widget-1234567890.html?spm=a2g0o.detail",
			"1234567890", true,
		},
		{
			"fragment stripped before matching",
			"https://www.example.com/item/1234567890.html#reviews",
			"1234567890", true,
		},
		{
			"category page has no id",
			"https://www.example.com/category/shoes",
			"", false,
		},
		{
			"id too short",
			"https://www.example.com/item/12345.html",
			"", false,
		},
		{
			"id too long",
			"https://www.example.com/item/12345678901234567.html",
			"", false,
		},
		{
			"empty url",
			"",
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ItemID(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ItemID(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ItemID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestItemID_PatternOrder(t *testing.T) {
	// A slugged URL must bind the id after the last hyphen, not swallow
	// digits from the slug.
	got, ok := ItemID("https://www.example.com/item/model-2024-edition-1005006789012345.html")
	if !ok {
		t.Fatal("expected an item id")
	}
	if got != "1005006789012345" {
		t.Errorf("got %q, want %q", got, "1005006789012345")
	}
}
