// internal/models/product.go
package models

type Product struct {
	ID             string   `json:"id"`
	StoreID        string   `json:"storeId"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Brand          string   `json:"brand,omitempty"`
	CategoryID     string   `json:"categoryId,omitempty"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty"`
	Currency       string   `json:"currency"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	Featured       bool     `json:"featured"`
	Rating         float64  `json:"rating,omitempty"`
	Stock          int      `json:"stock"`
}

// OnSale reports whether a compare-at price above the current price is set.
func (p Product) OnSale() bool {
	return p.CompareAtPrice != nil && *p.CompareAtPrice > p.Price
}

// ProductData is the product input shared by every section of one page.
type ProductData struct {
	Products []Product `json:"products"`
}

// Brands returns distinct non-empty brands in first-seen order.
func (d *ProductData) Brands() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var brands []string
	for _, p := range d.Products {
		if p.Brand == "" || seen[p.Brand] {
			continue
		}
		seen[p.Brand] = true
		brands = append(brands, p.Brand)
	}
	return brands
}

// ProductFilter narrows a product fetch. StoreSlug is always set; StoreID may be empty
// when products are fetched concurrently with the store.
type ProductFilter struct {
	StoreID      string `json:"storeId,omitempty"`
	StoreSlug    string `json:"storeSlug"`
	CategoryID   string `json:"categoryId,omitempty"`
	FeaturedOnly bool   `json:"featuredOnly"`
	Limit        int    `json:"limit"`
}
