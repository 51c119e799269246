package component

import "storefront-workers/internal/models"

// View models emitted in Block.Data. Rendering is left to the storefront frontend.

type ProductCard struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Brand          string   `json:"brand,omitempty"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty"`
	Currency       string   `json:"currency"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	OnSale         bool     `json:"onSale"`
}

func toCard(p models.Product) ProductCard {
	return ProductCard{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Brand:          p.Brand,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Currency:       p.Currency,
		ImageURL:       p.ImageURL,
		OnSale:         p.OnSale(),
	}
}

type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type HeaderView struct {
	StoreName string    `json:"storeName"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	Nav       []NavLink `json:"nav"`
}

type FooterView struct {
	StoreName string `json:"storeName"`
	Currency  string `json:"currency"`
	Tagline   string `json:"tagline,omitempty"`
}

type HeroView struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	CTALabel string `json:"ctaLabel,omitempty"`
	CTAHref  string `json:"ctaHref,omitempty"`
}

type CarouselView struct {
	Title    string        `json:"title"`
	Autoplay bool          `json:"autoplay"`
	Slides   []ProductCard `json:"slides"`
}

type PromoView struct {
	Message string `json:"message"`
	Href    string `json:"href,omitempty"`
}

type CategoryGridView struct {
	Title      string            `json:"title"`
	Layout     string            `json:"layout"`
	Categories []models.Category `json:"categories"`
}

type ProductGridView struct {
	Title    string        `json:"title"`
	Columns  int           `json:"columns"`
	Products []ProductCard `json:"products"`
}

type BrandStripView struct {
	Title  string   `json:"title"`
	Brands []string `json:"brands"`
}

type BrandGroup struct {
	Brand    string        `json:"brand"`
	Products []ProductCard `json:"products"`
}

type BrandProductsView struct {
	Title  string       `json:"title"`
	Groups []BrandGroup `json:"groups"`
}

type Testimonial struct {
	Author string `json:"author"`
	Quote  string `json:"quote"`
}

type TestimonialsView struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

type NewsletterView struct {
	Heading     string `json:"heading"`
	Placeholder string `json:"placeholder"`
	ButtonLabel string `json:"buttonLabel"`
}
