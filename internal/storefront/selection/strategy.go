// Package selection decides which template a storefront request renders with.
package selection

import (
	"fmt"
	"strings"

	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/metrics"
)

// Source records which rule produced a selection.
type Source string

const (
	SourceExplicit      Source = "explicit"
	SourceStoreTemplate Source = "store-template"
	SourceTheme         Source = "theme"
	SourceThemeDefault  Source = "theme-default"
	SourceFallback      Source = "fallback"
)

// Selection is the outcome of Select.
type Selection struct {
	TemplateID string `json:"templateId"`
	Source     Source `json:"source"`
}

// Catalog is the template lookup the strategy needs.
type Catalog interface {
	Canonical(id string) (string, bool)
	DefaultID() string
}

// DefaultThemeTemplates maps store themes onto built-in templates.
func DefaultThemeTemplates() map[string]string {
	return map[string]string{
		"electronics": "home-electronic",
		"electronic":  "home-electronic",
		"fashion":     "home-men",
		"menswear":    "home-men",
		"clothing":    "home-fashion",
		"apparel":     "home-fashion",
		"grocery":     "home-grocery",
		"marketplace": "multi-brand",
		"multi-brand": "multi-brand",
	}
}

// Strategy applies explicit → store → fallback. Immutable after construction.
type Strategy struct {
	catalog Catalog
	themes  map[string]string
	logger  logger.Logger
}

// NewStrategy merges overrides over DefaultThemeTemplates. Every mapped template must exist.
func NewStrategy(catalog Catalog, overrides map[string]string, log logger.Logger) (*Strategy, error) {
	themes := DefaultThemeTemplates()
	for theme, id := range overrides {
		themes[normalizeTheme(theme)] = id
	}
	for theme, id := range themes {
		canonical, ok := catalog.Canonical(id)
		if !ok {
			return nil, fmt.Errorf("theme %q maps to unknown template %q", theme, id)
		}
		themes[theme] = canonical
	}
	return &Strategy{
		catalog: catalog,
		themes:  themes,
		logger:  log.WithFields(map[string]interface{}{"component": "selection"}),
	}, nil
}

// Select never fails. An explicit id that does not resolve is ignored.
func (s *Strategy) Select(explicitID, storeThemeOrTemplate, fallbackID string) Selection {
	sel := s.selectTemplate(explicitID, storeThemeOrTemplate, fallbackID)
	metrics.TemplateSelections.WithLabelValues(sel.TemplateID, string(sel.Source)).Inc()
	s.logger.Debug("template selected", map[string]interface{}{
		"explicitId": explicitID,
		"storeValue": storeThemeOrTemplate,
		"templateId": sel.TemplateID,
		"source":     string(sel.Source),
	})
	return sel
}

func (s *Strategy) selectTemplate(explicitID, storeValue, fallbackID string) Selection {
	if id, ok := s.catalog.Canonical(explicitID); ok {
		return Selection{TemplateID: id, Source: SourceExplicit}
	}
	if strings.TrimSpace(explicitID) != "" {
		s.logger.Info("ignoring unknown explicit template", map[string]interface{}{"explicitId": explicitID})
	}

	if theme := normalizeTheme(storeValue); theme != "" {
		if id, ok := s.catalog.Canonical(theme); ok {
			return Selection{TemplateID: id, Source: SourceStoreTemplate}
		}
		if id, ok := s.themes[theme]; ok {
			return Selection{TemplateID: id, Source: SourceTheme}
		}
		return Selection{TemplateID: s.catalog.DefaultID(), Source: SourceThemeDefault}
	}

	if id, ok := s.catalog.Canonical(fallbackID); ok {
		return Selection{TemplateID: id, Source: SourceFallback}
	}
	return Selection{TemplateID: s.catalog.DefaultID(), Source: SourceFallback}
}

// ThemeTemplate reports the template mapped to theme.
func (s *Strategy) ThemeTemplate(theme string) (string, bool) {
	id, ok := s.themes[normalizeTheme(theme)]
	return id, ok
}

func normalizeTheme(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
