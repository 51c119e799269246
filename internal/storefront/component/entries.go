package component

import tmpl "storefront-workers/internal/storefront/template"

// DefaultEntries is the built-in registry manifest covering every default template.
func DefaultEntries() []Entry {
	storeProps := []InputKind{InputStore, InputProps}
	productProps := []InputKind{InputProducts, InputProps}

	entries := []Entry{
		{SectionType: tmpl.SectionHeader, TemplateID: AnyTemplate, Component: "SiteHeader", Accepts: []InputKind{InputStore, InputCategories}},
		{SectionType: tmpl.SectionFooter, TemplateID: AnyTemplate, Component: "SiteFooter", Accepts: []InputKind{InputStore}},
		{SectionType: tmpl.SectionHeroBanner, TemplateID: AnyTemplate, Component: "HeroBanner", Accepts: storeProps},
		{SectionType: tmpl.SectionCategories, TemplateID: AnyTemplate, Component: "CategoryGrid", Accepts: []InputKind{InputCategories, InputProps}},
		{SectionType: tmpl.SectionFeaturedProducts, TemplateID: AnyTemplate, Component: "ProductGrid", Accepts: productProps},
		{SectionType: tmpl.SectionNewsletter, TemplateID: AnyTemplate, Component: "Newsletter", Accepts: storeProps},

		{SectionType: tmpl.SectionFeaturedProducts, TemplateID: "home-grocery", Component: "ProductList", Accepts: productProps},
		{SectionType: tmpl.SectionBrands, TemplateID: "multi-brand", Component: "BrandStrip", Accepts: productProps},
		{SectionType: tmpl.SectionBrandProducts, TemplateID: "multi-brand", Component: "BrandProductGrid", Accepts: productProps},
	}

	for _, id := range []string{"home-electronic", "home-fashion"} {
		entries = append(entries, Entry{SectionType: tmpl.SectionHeroCarousel, TemplateID: id, Component: "HeroCarousel",
			Accepts: []InputKind{InputStore, InputProducts, InputProps}})
	}
	for _, id := range []string{"home-6", "home-electronic", "home-grocery"} {
		entries = append(entries, Entry{SectionType: tmpl.SectionDeals, TemplateID: id, Component: "DealsGrid", Accepts: productProps})
	}
	for _, id := range []string{"home-2", "home-grocery"} {
		entries = append(entries, Entry{SectionType: tmpl.SectionPromoBanner, TemplateID: id, Component: "PromoBanner", Accepts: storeProps})
	}
	for _, id := range []string{"home-3", "home-7", "home-fashion"} {
		entries = append(entries, Entry{SectionType: tmpl.SectionTestimonials, TemplateID: id, Component: "Testimonials", Accepts: []InputKind{InputProps}})
	}

	return entries
}
