package models

// ProductRequest is the payload for POST /api/v1/product.
type ProductRequest struct {
	// URL is the product page to fetch and extract. Required.
	URL string `json:"url" binding:"required,url"`
}
