// Package component maps (section type, template id) pairs to view-model builders.
package component

import (
	"fmt"

	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/metrics"
	"storefront-workers/internal/models"
)

// AnyTemplate registers an entry for every template that has no exact entry.
const AnyTemplate = "*"

// InputKind names one input a builder may receive.
type InputKind string

const (
	InputStore      InputKind = "store"
	InputProducts   InputKind = "products"
	InputCategories InputKind = "categories"
	InputProps      InputKind = "props"
)

func (k InputKind) valid() bool {
	switch k {
	case InputStore, InputProducts, InputCategories, InputProps:
		return true
	}
	return false
}

// Entry declares which builder renders a section type for a template.
type Entry struct {
	SectionType string      `json:"sectionType"`
	TemplateID  string      `json:"templateId"`
	Component   string      `json:"component"`
	Accepts     []InputKind `json:"accepts"`
}

// Block is a resolved, render-ready section.
type Block struct {
	Key       string                 `json:"key"`
	Type      string                 `json:"type"`
	Component string                 `json:"component"`
	Position  int                    `json:"position"`
	Props     map[string]interface{} `json:"props,omitempty"`
	Data      interface{}            `json:"data,omitempty"`
}

type entryKey struct {
	sectionType string
	templateID  string
}

type registered struct {
	entry   Entry
	build   Builder
	accepts map[InputKind]bool
}

// Registry is read-only after NewRegistry and safe for concurrent use.
type Registry struct {
	entries map[entryKey]registered
	logger  logger.Logger
}

// NewRegistry binds entries to builders. An entry naming an unknown builder is an error.
func NewRegistry(entries []Entry, builders map[string]Builder, log logger.Logger) (*Registry, error) {
	r := &Registry{
		entries: make(map[entryKey]registered, len(entries)),
		logger:  log,
	}
	for i, e := range entries {
		if e.SectionType == "" {
			return nil, fmt.Errorf("entry %d: sectionType is required", i)
		}
		if e.TemplateID == "" {
			return nil, fmt.Errorf("entry %d (%s): templateId is required, use %q for any template", i, e.SectionType, AnyTemplate)
		}
		build, ok := builders[e.Component]
		if !ok {
			return nil, fmt.Errorf("entry %d (%s/%s): unknown component %q", i, e.SectionType, e.TemplateID, e.Component)
		}
		key := entryKey{sectionType: e.SectionType, templateID: e.TemplateID}
		if _, dup := r.entries[key]; dup {
			return nil, fmt.Errorf("entry %d: duplicate registration for %s/%s", i, e.SectionType, e.TemplateID)
		}
		accepts := make(map[InputKind]bool, len(e.Accepts))
		for _, k := range e.Accepts {
			if !k.valid() {
				return nil, fmt.Errorf("entry %d (%s/%s): unknown input kind %q", i, e.SectionType, e.TemplateID, k)
			}
			accepts[k] = true
		}
		r.entries[key] = registered{entry: e, build: build, accepts: accepts}
	}
	return r, nil
}

// Lookup finds the entry for a pairing, preferring an exact template match over AnyTemplate.
func (r *Registry) Lookup(sectionType, templateID string) (Entry, bool) {
	reg, ok := r.lookup(sectionType, templateID)
	return reg.entry, ok
}

func (r *Registry) lookup(sectionType, templateID string) (registered, bool) {
	if reg, ok := r.entries[entryKey{sectionType, templateID}]; ok {
		return reg, true
	}
	reg, ok := r.entries[entryKey{sectionType, AnyTemplate}]
	return reg, ok
}

// Resolve builds the block for a section. An unregistered pairing is not an error:
// it yields (nil, false) and a single warning.
func (r *Registry) Resolve(sectionType, templateID string, props map[string]interface{}, store *models.Store, data *models.ProductData) (*Block, bool) {
	reg, ok := r.lookup(sectionType, templateID)
	if !ok {
		r.logger.Warn("no component registered for section", map[string]interface{}{
			"sectionType": sectionType,
			"templateId":  templateID,
		})
		metrics.SectionsSkipped.WithLabelValues(templateID, sectionType).Inc()
		return nil, false
	}

	in := Inputs{}
	if reg.accepts[InputStore] {
		in.Store = store
	}
	if reg.accepts[InputCategories] && store != nil {
		in.Categories = store.Categories
	}
	if reg.accepts[InputProducts] && data != nil {
		in.Products = data.Products
	}
	if reg.accepts[InputProps] {
		in.Props = props
		if reg.accepts[InputStore] {
			in.Props = Interpolate(props, StoreContext(store))
		}
	}

	metrics.SectionsRendered.WithLabelValues(templateID, sectionType).Inc()
	return &Block{
		Type:      sectionType,
		Component: reg.entry.Component,
		Props:     in.Props,
		Data:      reg.build(in),
	}, true
}

// Entries returns a copy of every registration.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, reg := range r.entries {
		out = append(out, reg.entry)
	}
	return out
}
