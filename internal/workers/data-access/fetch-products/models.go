package fetchproducts

import "storefront-workers/internal/models"

type Input struct {
	StoreSlug    string `json:"storeSlug"`
	StoreID      string `json:"storeId,omitempty"`
	CategoryID   string `json:"categoryId,omitempty"`
	FeaturedOnly bool   `json:"featuredOnly"`
	Limit        int    `json:"limit,omitempty"`
}

type Output struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
	Brands   []string         `json:"brands"`
}
