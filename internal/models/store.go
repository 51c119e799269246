// internal/models/store.go
package models

import (
	"encoding/json"
	"time"
)

// Store is the per-tenant context handed to the composer. Read-only once fetched.
type Store struct {
	ID                 string     `json:"id"`
	Slug               string     `json:"slug"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Theme              string     `json:"theme,omitempty"`
	TemplatePreference string     `json:"templatePreference,omitempty"`
	LogoURL            string     `json:"logoUrl,omitempty"`
	Currency           string     `json:"currency"`
	Categories         []Category `json:"categories"`
	// TemplateConfig is the tenant's authored page layout, validated before use.
	TemplateConfig json.RawMessage `json:"templateConfig,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ThemeOrTemplate is the store-level hint used by template selection.
// An explicit template preference wins over the theme.
func (s *Store) ThemeOrTemplate() string {
	if s == nil {
		return ""
	}
	if s.TemplatePreference != "" {
		return s.TemplatePreference
	}
	return s.Theme
}

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl,omitempty"`
	Position int    `json:"position"`
}
