package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// priceFallbackPatterns are tried in order over the raw page text when no
// strategy recovered a sale price: currency-prefixed, currency-suffixed,
// quoted JSON key, and labeled forms.
var priceFallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[$€£¥]\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*(?:USD|EUR|GBP)`),
	regexp.MustCompile(`"(?:salePrice|sale_price|price)"\s*:\s*"?([\d,]+(?:\.\d+)?)"?`),
	regexp.MustCompile(`(?i)price:\s*['"]?([\d,]+(?:\.\d+)?)`),
}

// imageFallbackPattern matches bare image URLs in the raw page text.
var imageFallbackPattern = regexp.MustCompile(`https?://[^\s"'<>\\]+\.(?:jpe?g|png|webp)`)

// excludedImageMarkers filter out chrome assets that are never product
// photos. The filtering behavior applies in every fallback branch.
var excludedImageMarkers = []string{"placeholder", "logo", "icon"}

const maxFallbackImages = 10

// applyRegexFallback patches only a still-missing sale price and a still-
// empty image list by scanning the raw page text. Fields any earlier
// strategy populated are never overwritten.
func applyRegexFallback(p *partial, raw string) {
	if p.SalePrice == nil || *p.SalePrice == 0 {
		for _, re := range priceFallbackPatterns {
			m := re.FindStringSubmatch(raw)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil {
				continue
			}
			p.SalePrice = &v
			break
		}
	}

	if len(p.Images) == 0 {
		seen := make(map[string]struct{})
		for _, u := range imageFallbackPattern.FindAllString(raw, -1) {
			if excludedImageURL(u) {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			p.Images = append(p.Images, u)
			if len(p.Images) >= maxFallbackImages {
				break
			}
		}
	}
}

func excludedImageURL(u string) bool {
	lower := strings.ToLower(u)
	for _, marker := range excludedImageMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
