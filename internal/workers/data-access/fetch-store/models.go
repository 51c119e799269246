package fetchstore

import "storefront-workers/internal/models"

type Input struct {
	StoreSlug string `json:"storeSlug"`
}

type Output struct {
	Store                *models.Store `json:"store"`
	StoreThemeOrTemplate string        `json:"storeThemeOrTemplate,omitempty"`
	HasTemplateConfig    bool          `json:"hasTemplateConfig"`
}
