package extract

import (
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/itemlens/itemlens/models"
)

var (
	// numberRe matches the first numeric substring of an element's text,
	// e.g. "US $1,299.99" -> "1,299.99".
	numberRe = regexp.MustCompile(`\d[\d,]*\.?\d*`)

	// countRe matches a digit-and-comma review count, e.g. "2,841 Reviews".
	countRe = regexp.MustCompile(`[\d,]+`)
)

// extractDOM parses the page into a DOM and walks the per-field selector
// cascades. It only runs when both JSON-based strategies came up empty.
func extractDOM(raw, pageURL string, log *slog.Logger) *partial {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		log.Debug("dom: parse failed", "error", err)
		return nil
	}

	p := &partial{}

	// Title: reject placeholder headings and runaway matches.
	for _, sel := range titleSelectors {
		t := strings.TrimSpace(doc.Find(sel).First().Text())
		if l := utf8.RuneCountInString(t); l > 10 && l < 500 {
			p.Title = &t
			break
		}
	}

	if v, ok := selectNumber(doc, salePriceSelectors); ok {
		p.SalePrice = &v
	}
	if v, ok := selectNumber(doc, originalPriceSelectors); ok {
		p.OriginalPrice = &v
	}
	if v, ok := selectNumber(doc, ratingSelectors); ok {
		p.Rating = &v
	}

	for _, sel := range reviewCountSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		m := countRe.FindString(text)
		if m == "" {
			continue
		}
		if n, err := strconv.Atoi(strings.ReplaceAll(m, ",", "")); err == nil {
			p.Reviews = &n
			break
		}
	}

	for _, sel := range descriptionSelectors {
		t := strings.TrimSpace(doc.Find(sel).First().Text())
		if t != "" {
			t = truncate(t, descriptionLimit)
			p.Description = &t
			break
		}
	}

	p.Images = collectImages(doc, baseOrigin(pageURL))
	p.Specs = collectSpecs(doc)

	// Secondary enrichment: any linked-data script found along the way
	// fills fields the selectors missed. Prices are left alone: the DOM
	// is the better source for sale vs. list distinction.
	if ld := extractLinkedData(raw, log); ld != nil {
		if p.Title == nil {
			p.Title = ld.Title
		}
		if p.Rating == nil {
			p.Rating = ld.Rating
		}
		if p.Reviews == nil {
			p.Reviews = ld.Reviews
		}
		if p.Description == nil {
			p.Description = ld.Description
		}
		if len(p.Images) == 0 {
			p.Images = ld.Images
		}
	}

	// Last resort for the description: readability's article text.
	if p.Description == nil {
		if u, err := url.Parse(pageURL); err == nil {
			if article, err := readability.FromReader(strings.NewReader(raw), u); err == nil {
				if t := strings.TrimSpace(article.TextContent); t != "" {
					t = truncate(t, descriptionLimit)
					p.Description = &t
				}
			}
		}
	}

	if p.empty() {
		return nil
	}
	return p
}

// selectNumber walks a selector cascade and parses the first numeric
// substring of the first non-empty match.
func selectNumber(doc *goquery.Document, selectors []string) (float64, bool) {
	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text == "" {
			continue
		}
		m := numberRe.FindString(text)
		if m == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// collectImages walks the image selector cascade, reading the preferred
// source attribute from each match, and stops at the first selector that
// yields at least one usable URL.
func collectImages(doc *goquery.Document, origin string) []string {
	for _, sel := range imageSelectors {
		var imgs []string
		seen := make(map[string]struct{})
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			var src string
			for _, attr := range imageAttrs {
				if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
					src = strings.TrimSpace(v)
					break
				}
			}
			u := normalizeImageURL(src, origin)
			if u == "" || excludedImageURL(u) {
				return
			}
			if _, dup := seen[u]; dup {
				return
			}
			seen[u] = struct{}{}
			imgs = append(imgs, u)
		})
		if len(imgs) > 0 {
			return imgs
		}
	}
	return nil
}

// collectSpecs extracts label/value pairs from the first selector set
// that matches at least one container. Pairs with an empty side are dropped.
func collectSpecs(doc *goquery.Document) []models.Spec {
	for _, sc := range specSelectors {
		rows := doc.Find(sc.Container)
		if rows.Length() == 0 {
			continue
		}
		var specs []models.Spec
		rows.Each(func(_ int, row *goquery.Selection) {
			label := strings.TrimSpace(row.Find(sc.Label).First().Text())
			value := strings.TrimSpace(row.Find(sc.Value).First().Text())
			if label != "" && value != "" {
				specs = append(specs, models.Spec{Label: label, Value: value})
			}
		})
		return specs
	}
	return nil
}

// normalizeImageURL turns protocol-relative and root-relative image URLs
// into absolute ones. Anything else that is not already absolute is
// unusable and dropped.
func normalizeImageURL(src, origin string) string {
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	case strings.HasPrefix(src, "/") && origin != "":
		return origin + src
	}
	return ""
}

// baseOrigin extracts scheme://host from the page URL for resolving
// root-relative image paths.
func baseOrigin(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
