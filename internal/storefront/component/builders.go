package component

import (
	"fmt"

	"storefront-workers/internal/models"
)

// Inputs carries only what an entry accepts; the rest stays zero.
type Inputs struct {
	Store      *models.Store
	Products   []models.Product
	Categories []models.Category
	Props      map[string]interface{}
}

// Builder turns inputs into a view model. Builders are pure.
type Builder func(in Inputs) interface{}

// Builders is the static table every registry entry must name a member of.
func Builders() map[string]Builder {
	return map[string]Builder{
		"SiteHeader":       buildHeader,
		"SiteFooter":       buildFooter,
		"HeroBanner":       buildHero,
		"HeroCarousel":     buildCarousel,
		"PromoBanner":      buildPromo,
		"CategoryGrid":     buildCategoryGrid,
		"ProductGrid":      buildProductGrid,
		"ProductList":      buildProductList,
		"DealsGrid":        buildDeals,
		"BrandStrip":       buildBrandStrip,
		"BrandProductGrid": buildBrandProducts,
		"Testimonials":     buildTestimonials,
		"Newsletter":       buildNewsletter,
	}
}

func storeName(s *models.Store) string {
	if s == nil {
		return ""
	}
	return s.Name
}

func buildHeader(in Inputs) interface{} {
	view := HeaderView{StoreName: storeName(in.Store), Nav: []NavLink{}}
	if in.Store != nil {
		view.LogoURL = in.Store.LogoURL
	}
	for _, c := range in.Categories {
		view.Nav = append(view.Nav, NavLink{Label: c.Name, Href: "/c/" + c.Slug})
	}
	return view
}

func buildFooter(in Inputs) interface{} {
	view := FooterView{StoreName: storeName(in.Store)}
	if in.Store != nil {
		view.Currency = in.Store.Currency
		view.Tagline = in.Store.Description
	}
	return view
}

func buildHero(in Inputs) interface{} {
	return HeroView{
		Title:    propString(in.Props, "title", storeName(in.Store)),
		Subtitle: propString(in.Props, "subtitle", ""),
		ImageURL: propString(in.Props, "imageUrl", ""),
		CTALabel: propString(in.Props, "ctaLabel", ""),
		CTAHref:  propString(in.Props, "ctaHref", "/products"),
	}
}

func buildCarousel(in Inputs) interface{} {
	return CarouselView{
		Title:    propString(in.Props, "title", storeName(in.Store)),
		Autoplay: propBool(in.Props, "autoplay", false),
		Slides:   cards(in.Products, propInt(in.Props, "slides", 5)),
	}
}

func buildPromo(in Inputs) interface{} {
	return PromoView{
		Message: propString(in.Props, "message", ""),
		Href:    propString(in.Props, "href", ""),
	}
}

func buildCategoryGrid(in Inputs) interface{} {
	limit := propInt(in.Props, "limit", 0)
	cats := in.Categories
	if limit > 0 && len(cats) > limit {
		cats = cats[:limit]
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return CategoryGridView{
		Title:      propString(in.Props, "title", "Shop by category"),
		Layout:     propString(in.Props, "layout", "grid"),
		Categories: cats,
	}
}

func buildProductGrid(in Inputs) interface{} {
	return ProductGridView{
		Title:    propString(in.Props, "title", "Featured products"),
		Columns:  propInt(in.Props, "columns", 4),
		Products: cards(in.Products, propInt(in.Props, "limit", 0)),
	}
}

func buildProductList(in Inputs) interface{} {
	return ProductGridView{
		Title:    propString(in.Props, "title", "Featured products"),
		Columns:  1,
		Products: cards(in.Products, propInt(in.Props, "limit", 10)),
	}
}

func buildDeals(in Inputs) interface{} {
	var onSale []models.Product
	for _, p := range in.Products {
		if p.OnSale() {
			onSale = append(onSale, p)
		}
	}
	return ProductGridView{
		Title:    propString(in.Props, "title", "Deals"),
		Columns:  propInt(in.Props, "columns", 4),
		Products: cards(onSale, propInt(in.Props, "limit", 8)),
	}
}

func buildBrandStrip(in Inputs) interface{} {
	brands := (&models.ProductData{Products: in.Products}).Brands()
	if brands == nil {
		brands = []string{}
	}
	return BrandStripView{
		Title:  propString(in.Props, "title", "Our brands"),
		Brands: brands,
	}
}

func buildBrandProducts(in Inputs) interface{} {
	perBrand := propInt(in.Props, "perBrand", 4)
	groups := []BrandGroup{}
	index := make(map[string]int)
	for _, p := range in.Products {
		if p.Brand == "" {
			continue
		}
		i, ok := index[p.Brand]
		if !ok {
			i = len(groups)
			index[p.Brand] = i
			groups = append(groups, BrandGroup{Brand: p.Brand, Products: []ProductCard{}})
		}
		if len(groups[i].Products) < perBrand {
			groups[i].Products = append(groups[i].Products, toCard(p))
		}
	}
	return BrandProductsView{
		Title:  propString(in.Props, "title", "Shop by brand"),
		Groups: groups,
	}
}

func buildTestimonials(in Inputs) interface{} {
	view := TestimonialsView{
		Title: propString(in.Props, "title", "What customers say"),
		Items: []Testimonial{},
	}
	items, _ := in.Props["items"].([]interface{})
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		view.Items = append(view.Items, Testimonial{
			Author: propString(item, "author", "Anonymous"),
			Quote:  fmt.Sprint(item["quote"]),
		})
	}
	return view
}

func buildNewsletter(in Inputs) interface{} {
	return NewsletterView{
		Heading:     propString(in.Props, "heading", fmt.Sprintf("Get %s news first", storeName(in.Store))),
		Placeholder: propString(in.Props, "placeholder", "you@example.com"),
		ButtonLabel: propString(in.Props, "buttonLabel", "Subscribe"),
	}
}

// cards converts up to limit products; limit <= 0 means all.
func cards(products []models.Product, limit int) []ProductCard {
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	out := make([]ProductCard, len(products))
	for i, p := range products {
		out[i] = toCard(p)
	}
	return out
}
