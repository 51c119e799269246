package component

import (
	"fmt"
	"time"

	"storefront-workers/pkg/registry"
)

// EntriesFromManifest converts a loaded manifest and checks it against builders.
func EntriesFromManifest(m *registry.Manifest, builders map[string]Builder) ([]Entry, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(m.Components))
	for _, c := range m.Components {
		if _, ok := builders[c.Component]; !ok {
			return nil, fmt.Errorf("%s on %s: unknown component %q", c.SectionType, c.TemplateID, c.Component)
		}
		accepts := make([]InputKind, len(c.Accepts))
		for i, kind := range c.Accepts {
			accepts[i] = InputKind(kind)
		}
		entries = append(entries, Entry{
			SectionType: c.SectionType,
			TemplateID:  c.TemplateID,
			Component:   c.Component,
			Accepts:     accepts,
		})
	}
	return entries, nil
}

// DefaultManifest renders DefaultEntries as a manifest, the seed for configs/components.json.
func DefaultManifest(now time.Time) *registry.Manifest {
	m := registry.NewManifest(now)
	for _, e := range DefaultEntries() {
		accepts := make([]string, len(e.Accepts))
		for i, kind := range e.Accepts {
			accepts[i] = string(kind)
		}
		m.Components = append(m.Components, registry.ComponentEntry{
			SectionType: e.SectionType,
			TemplateID:  e.TemplateID,
			Component:   e.Component,
			Accepts:     accepts,
		})
	}
	return m
}
