// Package compose turns a template configuration into an ordered list of blocks.
package compose

import (
	"sort"

	"storefront-workers/internal/models"
	"storefront-workers/internal/storefront/component"
	tmpl "storefront-workers/internal/storefront/template"
)

// Resolver is the registry surface the composer needs.
type Resolver interface {
	Resolve(sectionType, templateID string, props map[string]interface{}, store *models.Store, data *models.ProductData) (*component.Block, bool)
}

// ResolvedSection is one enabled section after lookup. Block is nil when no component matched.
type ResolvedSection struct {
	Key         string
	SectionType string
	Block       *component.Block
}

// Composition is the result of one compose pass. TemplateID is the id the
// components were looked up under.
type Composition struct {
	TemplateID string
	Sections   []ResolvedSection
}

// Blocks returns the resolved blocks in render order with Position set to their index.
func (c *Composition) Blocks() []*component.Block {
	blocks := make([]*component.Block, 0, len(c.Sections))
	for _, s := range c.Sections {
		if s.Block != nil {
			blocks = append(blocks, s.Block)
		}
	}
	return blocks
}

// Missing returns the keys of enabled sections that had no component.
func (c *Composition) Missing() []string {
	var keys []string
	for _, s := range c.Sections {
		if s.Block == nil {
			keys = append(keys, s.Key)
		}
	}
	return keys
}

// TemplateIDs canonicalizes template ids before component lookup.
type TemplateIDs interface {
	Canonical(id string) (string, bool)
}

// Option configures a Composer.
type Option func(*Composer)

// WithTemplateIDs makes the composer look components up under the canonical
// template id, so home-01 and home-1 select the same components.
func WithTemplateIDs(ids TemplateIDs) Option {
	return func(c *Composer) {
		c.ids = ids
	}
}

// Composer orders a configuration's sections and resolves each against the registry.
type Composer struct {
	registry Resolver
	ids      TemplateIDs
}

// NewComposer returns a Composer over registry. Without WithTemplateIDs the
// configuration's template id is used verbatim.
func NewComposer(registry Resolver, opts ...Option) *Composer {
	c := &Composer{registry: registry}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose keeps enabled sections, sorts them by order (missing last, ties in
// declaration order), resolves each and drops the ones without a component.
func (c *Composer) Compose(cfg *tmpl.Configuration, store *models.Store, data *models.ProductData) *Composition {
	out := &Composition{}
	if cfg == nil {
		return out
	}
	out.TemplateID = cfg.TemplateID
	if c.ids != nil {
		if id, ok := c.ids.Canonical(cfg.TemplateID); ok {
			out.TemplateID = id
		}
	}

	enabled := make([]tmpl.Section, 0, len(cfg.Sections))
	for _, sec := range cfg.Sections {
		if sec.Config.Enabled {
			enabled = append(enabled, sec)
		}
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Config.SortOrder() < enabled[j].Config.SortOrder()
	})

	position := 0
	for _, sec := range enabled {
		sectionType := sec.Config.SectionType(sec.Key)
		block, ok := c.registry.Resolve(sectionType, out.TemplateID, sec.Config.Props, store, data)
		resolved := ResolvedSection{Key: sec.Key, SectionType: sectionType}
		if ok && block != nil {
			block.Key = sec.Key
			block.Position = position
			position++
			resolved.Block = block
		}
		out.Sections = append(out.Sections, resolved)
	}
	return out
}
