package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// zero-padded numeric suffix, e.g. home-01
var paddedSuffix = regexp.MustCompile(`^(.*\D)0+(\d+)$`)

// Resolver maps template ids to configurations. Immutable after construction.
type Resolver struct {
	templates map[string]Template
	defaultID string
}

// NewResolver indexes templates by id. defaultID must be one of them.
func NewResolver(templates []Template, defaultID string) (*Resolver, error) {
	r := &Resolver{
		templates: make(map[string]Template, len(templates)),
		defaultID: defaultID,
	}
	for _, t := range templates {
		id := t.ID()
		if id == "" {
			return nil, fmt.Errorf("template with empty id")
		}
		if _, dup := r.templates[id]; dup {
			return nil, fmt.Errorf("duplicate template id %q", id)
		}
		r.templates[id] = t
	}
	if _, ok := r.templates[defaultID]; !ok {
		return nil, fmt.Errorf("default template %q is not registered", defaultID)
	}
	return r, nil
}

// DefaultID is the id used when nothing else resolves.
func (r *Resolver) DefaultID() string {
	return r.defaultID
}

// Canonical returns the registered id that id refers to, if any.
// Zero-padded suffixes are stripped, so home-01 and home-1 are the same template.
func (r *Resolver) Canonical(id string) (string, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return "", false
	}
	if _, ok := r.templates[id]; ok {
		return id, true
	}
	if stripped := paddedSuffix.ReplaceAllString(id, "${1}${2}"); stripped != id {
		if _, ok := r.templates[stripped]; ok {
			return stripped, true
		}
	}
	return "", false
}

// Normalize returns the canonical id, or the default id when id is unknown.
func (r *Resolver) Normalize(id string) string {
	if canonical, ok := r.Canonical(id); ok {
		return canonical
	}
	return r.defaultID
}

// Known reports whether id resolves to a registered template.
func (r *Resolver) Known(id string) bool {
	_, ok := r.Canonical(id)
	return ok
}

// IDs lists registered template ids in sorted order.
func (r *Resolver) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetConfig returns override unchanged when it is non-nil. Otherwise it returns a
// copy of the built-in configuration for templateID, falling back to the default template.
func (r *Resolver) GetConfig(templateID string, override *Configuration) *Configuration {
	if override != nil {
		return override
	}
	return r.templates[r.Normalize(templateID)].Configuration()
}

// Bind returns cfg with its TemplateID in canonical form, so a layout stored as
// home-01 composes against the home-1 components. cfg is returned as is when its
// id is already canonical or unknown; otherwise the result is a copy.
func (r *Resolver) Bind(cfg *Configuration) *Configuration {
	if cfg == nil {
		return nil
	}
	id, ok := r.Canonical(cfg.TemplateID)
	if !ok || id == cfg.TemplateID {
		return cfg
	}
	bound := cfg.Clone()
	bound.TemplateID = id
	return bound
}
