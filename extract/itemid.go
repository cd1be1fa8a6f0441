package extract

import (
	"regexp"
	"strings"
)

// itemIDPatterns are the known product-URL shapes, tried in order:
// item page with slug and id, bare item id, store product with slug and id.
var itemIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/item/[\w-]*-(\d{6,16})\.html`),
	regexp.MustCompile(`/item/(\d{6,16})\.html`),
	regexp.MustCompile(`/store/product/[\w-]*-(\d{6,16})\.html`),
}

// ItemID derives the numeric product identifier from a product URL.
// The query string is stripped before matching. Absence is a normal
// outcome, reported via ok=false, never an error.
func ItemID(rawURL string) (string, bool) {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	for _, re := range itemIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}
