package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var ErrEntryNotFound = errors.New("component entry not found")

// LoadManifest reads the manifest at path and checks it against the manifest schema.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := schemaError("invalid manifest "+path, manifestSchema.ValidateBytes(data)); err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return &m, nil
}

// NewManifest returns an empty manifest stamped with now.
func NewManifest(now time.Time) *Manifest {
	return &Manifest{
		Version:     "1.0.0",
		LastUpdated: now.UTC().Format(time.RFC3339),
		Components:  []ComponentEntry{},
	}
}

// Save writes m as indented JSON, creating the parent directory.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

func (m *Manifest) Find(sectionType, templateID string) (int, bool) {
	for i, e := range m.Components {
		if e.SectionType == sectionType && e.TemplateID == templateID {
			return i, true
		}
	}
	return -1, false
}

// Add appends entry. A second entry for the same section type and template is rejected.
func (m *Manifest) Add(entry ComponentEntry, now time.Time) error {
	if err := schemaError("invalid component entry", entrySchema.ValidateValue(entry)); err != nil {
		return err
	}
	if _, ok := m.Find(entry.SectionType, entry.TemplateID); ok {
		return fmt.Errorf("component for %s on %s already exists", entry.SectionType, entry.TemplateID)
	}
	m.Components = append(m.Components, entry)
	m.LastUpdated = now.UTC().Format(time.RFC3339)
	return nil
}

func (m *Manifest) Remove(sectionType, templateID string, now time.Time) error {
	i, ok := m.Find(sectionType, templateID)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrEntryNotFound, sectionType, templateID)
	}
	m.Components = append(m.Components[:i], m.Components[i+1:]...)
	m.LastUpdated = now.UTC().Format(time.RFC3339)
	return nil
}

// Validate checks m against the manifest schema and rejects duplicate
// (sectionType, templateId) pairs. It does not know which component builders
// exist; callers check that separately.
func (m *Manifest) Validate() error {
	if len(m.Components) == 0 {
		return fmt.Errorf("manifest contains no components")
	}
	if err := schemaError("invalid manifest", manifestSchema.ValidateValue(m)); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, e := range m.Components {
		key := e.SectionType + "@" + e.TemplateID
		if seen[key] {
			return fmt.Errorf("duplicate component for %s on %s", e.SectionType, e.TemplateID)
		}
		seen[key] = true
	}
	return nil
}
