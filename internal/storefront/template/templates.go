package template

// Template is either a legacy fixed section list or a fully configured layout.
// Both resolve to a Configuration; the dynamic form is canonical.
type Template interface {
	ID() string
	Configuration() *Configuration
	isTemplate()
}

// LegacyStaticTemplate is a fixed ordered list of section types, all enabled.
type LegacyStaticTemplate struct {
	TemplateID string
	Name       string
	Sections   []string
}

func (t LegacyStaticTemplate) ID() string { return t.TemplateID }

func (t LegacyStaticTemplate) Configuration() *Configuration {
	cfg := &Configuration{
		TemplateID: t.TemplateID,
		Name:       t.Name,
		Sections:   make(Sections, 0, len(t.Sections)),
	}
	for i, key := range t.Sections {
		cfg.Sections = append(cfg.Sections, Section{
			Key:    key,
			Config: SectionConfig{Enabled: true, Order: Order(float64(i + 1))},
		})
	}
	return cfg
}

func (LegacyStaticTemplate) isTemplate() {}

// DynamicConfiguredTemplate carries an authored Configuration.
type DynamicConfiguredTemplate struct {
	Config *Configuration
}

func (t DynamicConfiguredTemplate) ID() string { return t.Config.TemplateID }

func (t DynamicConfiguredTemplate) Configuration() *Configuration {
	return t.Config.Clone()
}

func (DynamicConfiguredTemplate) isTemplate() {}

// Section types shipped with the default templates.
const (
	SectionHeader           = "header"
	SectionFooter           = "footer"
	SectionHeroBanner       = "hero-banner"
	SectionHeroCarousel     = "hero-carousel"
	SectionPromoBanner      = "promo-banner"
	SectionCategories       = "categories"
	SectionFeaturedProducts = "featured-products"
	SectionDeals            = "deals"
	SectionBrands           = "brands"
	SectionBrandProducts    = "brand-products"
	SectionTestimonials     = "testimonials"
	SectionNewsletter       = "newsletter"
)

// DefaultTemplateID is the last resort of every fallback chain.
const DefaultTemplateID = "home-1"

// DefaultTemplates returns the built-in template set.
func DefaultTemplates() []Template {
	return []Template{
		LegacyStaticTemplate{TemplateID: "home-1", Name: "Classic", Sections: []string{
			SectionHeader, SectionHeroBanner, SectionCategories, SectionFeaturedProducts, SectionFooter,
		}},
		LegacyStaticTemplate{TemplateID: "home-2", Name: "Promo First", Sections: []string{
			SectionHeader, SectionPromoBanner, SectionHeroBanner, SectionFeaturedProducts, SectionCategories, SectionFooter,
		}},
		LegacyStaticTemplate{TemplateID: "home-3", Name: "Storyteller", Sections: []string{
			SectionHeader, SectionHeroBanner, SectionFeaturedProducts, SectionTestimonials, SectionNewsletter, SectionFooter,
		}},
		LegacyStaticTemplate{TemplateID: "home-4", Name: "Catalog", Sections: []string{
			SectionHeader, SectionCategories, SectionFeaturedProducts, SectionNewsletter, SectionFooter,
		}},
		LegacyStaticTemplate{TemplateID: "home-5", Name: "Minimal", Sections: []string{
			SectionHeader, SectionHeroBanner, SectionFeaturedProducts, SectionFooter,
		}},
		LegacyStaticTemplate{TemplateID: "home-6", Name: "Bargain", Sections: []string{
			SectionHeader, SectionHeroBanner, SectionCategories, SectionDeals, SectionFooter,
		}},
		LegacyStaticTemplate{TemplateID: "home-7", Name: "Community", Sections: []string{
			SectionHeader, SectionFeaturedProducts, SectionCategories, SectionTestimonials, SectionFooter,
		}},
		LegacyStaticTemplate{TemplateID: "home-8", Name: "Coming Soon", Sections: []string{
			SectionHeader, SectionHeroBanner, SectionNewsletter, SectionFooter,
		}},
		DynamicConfiguredTemplate{Config: &Configuration{
			TemplateID: "home-electronic",
			Name:       "Electronics",
			Sections: Sections{
				{Key: SectionHeader, Config: SectionConfig{Enabled: true, Order: Order(0)}},
				{Key: SectionHeroCarousel, Config: SectionConfig{Enabled: true, Order: Order(1), Props: map[string]interface{}{
					"title":    "Latest tech at {{store.name}}",
					"autoplay": true,
				}}},
				{Key: SectionDeals, Config: SectionConfig{Enabled: true, Order: Order(2), Props: map[string]interface{}{
					"title": "Today's deals",
					"limit": float64(4),
				}}},
				{Key: SectionCategories, Config: SectionConfig{Enabled: true, Order: Order(3)}},
				{Key: SectionFeaturedProducts, Config: SectionConfig{Enabled: true, Order: Order(4), Props: map[string]interface{}{
					"title":   "Featured gadgets",
					"columns": float64(4),
				}}},
				{Key: SectionNewsletter, Config: SectionConfig{Enabled: false, Order: Order(5)}},
				{Key: SectionFooter, Config: SectionConfig{Enabled: true, Order: Order(99)}},
			},
		}},
		DynamicConfiguredTemplate{Config: &Configuration{
			TemplateID: "home-fashion",
			Name:       "Fashion",
			Sections: Sections{
				{Key: SectionHeader, Config: SectionConfig{Enabled: true, Order: Order(0)}},
				{Key: SectionHeroCarousel, Config: SectionConfig{Enabled: true, Order: Order(1), Props: map[string]interface{}{
					"title": "New season at {{store.name}}",
				}}},
				{Key: SectionCategories, Config: SectionConfig{Enabled: true, Order: Order(2), Props: map[string]interface{}{
					"layout": "carousel",
				}}},
				{Key: SectionFeaturedProducts, Config: SectionConfig{Enabled: true, Order: Order(3), Props: map[string]interface{}{
					"title":   "Trending now",
					"columns": float64(3),
				}}},
				{Key: SectionTestimonials, Config: SectionConfig{Enabled: true, Order: Order(4)}},
				{Key: SectionFooter, Config: SectionConfig{Enabled: true}},
			},
		}},
		DynamicConfiguredTemplate{Config: &Configuration{
			TemplateID: "home-men",
			Name:       "Menswear",
			Sections: Sections{
				{Key: SectionHeader, Config: SectionConfig{Enabled: true, Order: Order(0)}},
				{Key: SectionHeroBanner, Config: SectionConfig{Enabled: true, Order: Order(1), Props: map[string]interface{}{
					"title":    "{{store.name}} Men's Collection",
					"ctaLabel": "Shop now",
				}}},
				{Key: SectionCategories, Config: SectionConfig{Enabled: true, Order: Order(2)}},
				{Key: SectionFeaturedProducts, Config: SectionConfig{Enabled: true, Order: Order(3), Props: map[string]interface{}{
					"title": "Best sellers",
				}}},
				{Key: SectionFooter, Config: SectionConfig{Enabled: true}},
			},
		}},
		DynamicConfiguredTemplate{Config: &Configuration{
			TemplateID: "home-grocery",
			Name:       "Grocery",
			Sections: Sections{
				{Key: SectionHeader, Config: SectionConfig{Enabled: true, Order: Order(0)}},
				{Key: SectionPromoBanner, Config: SectionConfig{Enabled: true, Order: Order(1), Props: map[string]interface{}{
					"message": "Free delivery on orders over 50 {{store.currency}}",
				}}},
				{Key: SectionCategories, Config: SectionConfig{Enabled: true, Order: Order(2)}},
				{Key: SectionFeaturedProducts, Config: SectionConfig{Enabled: true, Order: Order(3), Props: map[string]interface{}{
					"title": "Fresh picks",
				}}},
				{Key: SectionDeals, Config: SectionConfig{Enabled: true, Order: Order(4)}},
				{Key: SectionFooter, Config: SectionConfig{Enabled: true}},
			},
		}},
		DynamicConfiguredTemplate{Config: &Configuration{
			TemplateID: "multi-brand",
			Name:       "Marketplace",
			Sections: Sections{
				{Key: SectionHeader, Config: SectionConfig{Enabled: true, Order: Order(0)}},
				{Key: SectionHeroBanner, Config: SectionConfig{Enabled: true, Order: Order(1), Props: map[string]interface{}{
					"title": "Every brand, one place",
				}}},
				{Key: SectionBrands, Config: SectionConfig{Enabled: true, Order: Order(2)}},
				{Key: "shop-by-brand", Config: SectionConfig{ComponentKey: SectionBrandProducts, Enabled: true, Order: Order(3), Props: map[string]interface{}{
					"perBrand": float64(4),
				}}},
				{Key: SectionFeaturedProducts, Config: SectionConfig{Enabled: true, Order: Order(4)}},
				{Key: SectionFooter, Config: SectionConfig{Enabled: true}},
			},
		}},
	}
}
