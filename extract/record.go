package extract

import "github.com/itemlens/itemlens/models"

// partial is a progressively populated product record. Every field is
// optional so each strategy can report exactly what it found; merge fills
// gaps in the accumulator without overwriting an earlier strategy's result.
type partial struct {
	Title         *string
	SalePrice     *float64
	OriginalPrice *float64
	Rating        *float64
	Reviews       *int
	Images        []string
	Description   *string
	Specs         []models.Spec
}

// empty reports whether no field has been populated yet. The cascade uses
// this to decide whether the next strategy should run at all.
func (p *partial) empty() bool {
	return p.Title == nil &&
		p.SalePrice == nil &&
		p.OriginalPrice == nil &&
		p.Rating == nil &&
		p.Reviews == nil &&
		len(p.Images) == 0 &&
		p.Description == nil &&
		len(p.Specs) == 0
}

// merge copies fields from src into p, fill-if-absent only.
func (p *partial) merge(src *partial) {
	if src == nil {
		return
	}
	if p.Title == nil {
		p.Title = src.Title
	}
	if p.SalePrice == nil {
		p.SalePrice = src.SalePrice
	}
	if p.OriginalPrice == nil {
		p.OriginalPrice = src.OriginalPrice
	}
	if p.Rating == nil {
		p.Rating = src.Rating
	}
	if p.Reviews == nil {
		p.Reviews = src.Reviews
	}
	if len(p.Images) == 0 {
		p.Images = src.Images
	}
	if p.Description == nil {
		p.Description = src.Description
	}
	if len(p.Specs) == 0 {
		p.Specs = src.Specs
	}
}

// product converts the accumulated partial into a concrete record. Unset
// fields become zero values; Normalize fills defaults afterwards.
func (p *partial) product() *models.Product {
	prod := &models.Product{}
	if p.Title != nil {
		prod.Title = *p.Title
	}
	if p.SalePrice != nil {
		prod.SalePrice = *p.SalePrice
	}
	if p.OriginalPrice != nil {
		prod.OriginalPrice = *p.OriginalPrice
	} else {
		prod.OriginalPrice = prod.SalePrice
	}
	if p.Rating != nil {
		prod.Rating = *p.Rating
	}
	if p.Reviews != nil {
		prod.Reviews = *p.Reviews
	}
	prod.Images = p.Images
	if p.Description != nil {
		prod.Description = *p.Description
	}
	prod.Specs = p.Specs
	return prod
}
