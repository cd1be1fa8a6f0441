// Package extract turns raw product-page HTML into a normalized product
// record through a cascade of independent strategies: embedded state,
// structured linked data, DOM heuristics, and a regex last resort. No
// strategy failure is fatal; the normalizer guarantees a complete record
// even when every strategy came up empty.
package extract

import (
	"io"
	"log/slog"

	"github.com/itemlens/itemlens/models"
)

// Pipeline runs the extraction cascade over fetched page content. It
// holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	log *slog.Logger
}

// NewPipeline creates a pipeline with the given diagnostics logger.
// A nil logger silences diagnostics entirely.
func NewPipeline(log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{log: log}
}

// Run executes the cascade over the raw page text and returns a fully
// normalized record. It never fails: an unreadable page yields the
// all-defaults record.
//
// Order matters. The embedded-state assignment is the richest source and
// wins outright; linked data runs only when it produced nothing; DOM
// heuristics only when both JSON sources produced nothing. The regex
// fallback then patches a still-missing price or image list regardless of
// which branch ran, and normalization always closes the cascade.
func (pl *Pipeline) Run(pageURL, raw string) *models.Product {
	acc := &partial{}

	if st := extractState(raw, pl.log); st != nil {
		pl.log.Debug("extract: embedded state resolved")
		acc.merge(st)
	}
	if acc.empty() {
		if ld := extractLinkedData(raw, pl.log); ld != nil {
			pl.log.Debug("extract: linked data resolved")
			acc.merge(ld)
		}
	}
	if acc.empty() {
		if dm := extractDOM(raw, pageURL, pl.log); dm != nil {
			pl.log.Debug("extract: dom heuristics resolved")
			acc.merge(dm)
		}
	}

	applyRegexFallback(acc, raw)

	prod := acc.product()
	Normalize(prod)
	return prod
}
