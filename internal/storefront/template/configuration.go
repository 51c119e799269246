// Package template models page layouts and resolves a template id to its configuration.
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// SectionConfig is one authored section of a page layout.
type SectionConfig struct {
	// ComponentKey names the registry section type. Empty means the section key is used.
	ComponentKey string `json:"componentKey,omitempty"`
	Enabled      bool   `json:"enabled"`
	// Order is nil when the author left it out. Missing orders sort last.
	Order *float64               `json:"order,omitempty"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// SectionType is the registry lookup key for a section stored under key.
func (c SectionConfig) SectionType(key string) string {
	if c.ComponentKey != "" {
		return c.ComponentKey
	}
	return key
}

// SortOrder maps a missing order to +Inf.
func (c SectionConfig) SortOrder() float64 {
	if c.Order == nil {
		return math.Inf(1)
	}
	return *c.Order
}

// Section pairs a section key with its configuration.
type Section struct {
	Key    string
	Config SectionConfig
}

// Sections keeps declaration order, which breaks ties between equal orders.
// It encodes as a JSON object and rejects duplicate keys on decode.
type Sections []Section

// Get returns the configuration stored under key.
func (s Sections) Get(key string) (SectionConfig, bool) {
	for _, sec := range s {
		if sec.Key == key {
			return sec.Config, true
		}
	}
	return SectionConfig{}, false
}

// Keys lists section keys in declaration order.
func (s Sections) Keys() []string {
	keys := make([]string, len(s))
	for i, sec := range s {
		keys[i] = sec.Key
	}
	return keys
}

// Set replaces the section stored under key in place, or appends it.
func (s *Sections) Set(key string, cfg SectionConfig) {
	for i := range *s {
		if (*s)[i].Key == key {
			(*s)[i].Config = cfg
			return
		}
	}
	*s = append(*s, Section{Key: key, Config: cfg})
}

// MarshalJSON writes the sections as an object, keys in declaration order.
func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sec.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(sec.Config)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sec.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Sections) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections: expected object, got %v", tok)
	}

	out := Sections{}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("sections: expected key, got %v", tok)
		}
		if seen[key] {
			return &DuplicateSectionError{Key: key}
		}
		seen[key] = true

		var cfg SectionConfig
		if err := dec.Decode(&cfg); err != nil {
			return fmt.Errorf("section %q: %w", key, err)
		}
		out = append(out, Section{Key: key, Config: cfg})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// DuplicateSectionError is returned when a sections object repeats a key.
type DuplicateSectionError struct {
	Key string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("duplicate section key %q", e.Key)
}

// Configuration is the full page layout for one template.
type Configuration struct {
	TemplateID string   `json:"templateId"`
	Name       string   `json:"name"`
	Sections   Sections `json:"sections"`
}

// Clone deep-copies c so callers can mutate the result freely.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := &Configuration{
		TemplateID: c.TemplateID,
		Name:       c.Name,
		Sections:   make(Sections, len(c.Sections)),
	}
	for i, sec := range c.Sections {
		cfg := sec.Config
		if cfg.Order != nil {
			order := *cfg.Order
			cfg.Order = &order
		}
		cfg.Props = cloneMap(cfg.Props)
		out.Sections[i] = Section{Key: sec.Key, Config: cfg}
	}
	return out
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return cloneMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// Order returns a pointer for literal section orders.
func Order(v float64) *float64 {
	return &v
}
