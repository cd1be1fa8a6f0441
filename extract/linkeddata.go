package extract

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ldScriptSel matches structured-data script elements.
var ldScriptSel = func() cascadia.Sel {
	sel, err := cascadia.Parse(`script[type="application/ld+json"]`)
	if err != nil {
		panic(err)
	}
	return sel
}()

// ldProduct mirrors the subset of a schema.org Product node we consume.
// Loosely typed fields (@type, price, image, counts) show up as strings,
// numbers, or arrays in the wild, so they stay `any` and are coerced.
type ldProduct struct {
	Type            any       `json:"@type"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Image           any       `json:"image"`
	Offers          any       `json:"offers"`
	AggregateRating *ldRating `json:"aggregateRating"`
}

type ldRating struct {
	RatingValue any `json:"ratingValue"`
	ReviewCount any `json:"reviewCount"`
}

// extractLinkedData scans every ld+json script on the page and populates a
// record from the first payload whose declared type is Product. Payloads
// that fail to parse are skipped; multiple Product entries are not merged.
func extractLinkedData(raw string, log *slog.Logger) *partial {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		log.Debug("linked data: html parse failed", "error", err)
		return nil
	}

	for _, node := range cascadia.QueryAll(doc, ldScriptSel) {
		payload := textContent(node)
		if payload == "" {
			continue
		}

		var ld ldProduct
		if err := json.Unmarshal([]byte(payload), &ld); err != nil {
			log.Debug("linked data: payload did not parse", "error", err)
			continue
		}
		if !isProductType(ld.Type) {
			continue
		}

		p := &partial{}
		if name := strings.TrimSpace(ld.Name); name != "" {
			p.Title = &name
		}
		// Linked data rarely distinguishes sale from list price; the
		// offer price fills both.
		if v, ok := offerPrice(ld.Offers); ok {
			sale, orig := v, v
			p.SalePrice = &sale
			p.OriginalPrice = &orig
		}
		if ld.AggregateRating != nil {
			if v, ok := pickFloat(ld.AggregateRating.RatingValue); ok {
				p.Rating = &v
			}
			if v, ok := pickFloat(ld.AggregateRating.ReviewCount); ok {
				n := int(v)
				p.Reviews = &n
			}
		}
		p.Images = imageList(ld.Image)
		if desc := strings.TrimSpace(ld.Description); desc != "" {
			p.Description = &desc
		}

		if p.empty() {
			continue
		}
		return p
	}
	return nil
}

// isProductType accepts @type as "Product" or an array containing it.
func isProductType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Product"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Product" {
				return true
			}
		}
	}
	return false
}

// offerPrice digs the price out of an offers value, which may be a single
// offer object or an array of them.
func offerPrice(offers any) (float64, bool) {
	switch v := offers.(type) {
	case map[string]any:
		if f, ok := pickFloat(v["price"]); ok {
			return f, true
		}
		return pickFloat(v["lowPrice"])
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if f, ok := pickFloat(m["price"]); ok {
					return f, true
				}
			}
		}
	}
	return 0, false
}

// imageList normalizes the image field, a single URL or an array of them,
// into a string slice.
func imageList(v any) []string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return []string{t}
		}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// textContent concatenates the text children of a node.
func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
