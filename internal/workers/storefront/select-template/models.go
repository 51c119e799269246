package selecttemplate

type Input struct {
	StoreSlug          string `json:"storeSlug,omitempty"`
	ExplicitTemplateID string `json:"templateId,omitempty"`
	// StoreThemeOrTemplate wins over Theme and TemplatePreference when set.
	StoreThemeOrTemplate string `json:"storeThemeOrTemplate,omitempty"`
	Theme                string `json:"theme,omitempty"`
	TemplatePreference   string `json:"templatePreference,omitempty"`
	FallbackTemplateID   string `json:"fallbackTemplateId,omitempty"`
}

type Output struct {
	SelectedTemplateID string `json:"selectedTemplateId"`
	SelectionSource    string `json:"selectionSource"`
}
