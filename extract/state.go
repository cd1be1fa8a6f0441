package extract

import (
	"encoding/json"
	"log/slog"
	"strings"
)

const (
	// stateMarker is the global assignment carrying the page's
	// client-side rendering data.
	stateMarker = "window.runParams"

	// stateWindow bounds the scan after the marker so a pathological
	// page cannot make the brace scan walk the whole document.
	stateWindow = 1 << 20
)

// statePaths are the nested locations probed, in order, for the product
// object inside the parsed state.
var statePaths = [][]string{
	{"data", "productInfoComponent"},
	{"productInfoComponent"},
	{"data", "skuModule"},
}

// extractState pulls product fields out of the embedded global-state
// assignment. Returns nil when the marker is absent, the JSON object is
// unterminated or malformed, or no known path resolves. All of these are
// normal outcomes for pages rendered differently.
func extractState(raw string, log *slog.Logger) *partial {
	idx := strings.Index(raw, stateMarker)
	if idx < 0 {
		return nil
	}

	window := raw[idx:]
	if len(window) > stateWindow {
		window = window[:stateWindow]
	}

	obj, ok := balancedJSON(window)
	if !ok {
		log.Debug("embedded state marker found but object unterminated")
		return nil
	}

	var root map[string]any
	if err := json.Unmarshal([]byte(obj), &root); err != nil {
		log.Debug("embedded state did not parse", "error", err)
		return nil
	}

	info, ok := probeFirst(root, statePaths)
	if !ok {
		log.Debug("embedded state parsed but no product path resolved")
		return nil
	}

	p := &partial{}
	if s := pickString(info, "subject", "title"); s != "" {
		p.Title = &s
	}
	if v, ok := pickPrice(info["salePrice"]); ok {
		p.SalePrice = &v
	}
	if v, ok := pickPrice(info["originalPrice"]); ok {
		p.OriginalPrice = &v
	}
	if v, ok := pickFloat(info["averageStar"]); ok {
		p.Rating = &v
	}
	if v, ok := pickFloat(info["totalValidNum"]); ok {
		n := int(v)
		p.Reviews = &n
	}
	p.Images = pickStrings(info, "imagePathList", "images")
	if s := pickString(info, "description"); s != "" {
		p.Description = &s
	}
	// This source carries no structured spec list; Specs stays empty.

	if p.empty() {
		return nil
	}
	return p
}

// balancedJSON returns the first balanced {...} object in s by counting
// brace depth. A regex cannot bound arbitrarily nested JSON, so the scan
// walks forward until depth returns to zero.
func balancedJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
