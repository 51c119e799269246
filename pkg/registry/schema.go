package registry

import (
	"fmt"
	"strings"

	"storefront-workers/internal/common/validation"
)

// Manifest is the on-disk component registry: which component renders each
// section type, per template or for any template ("*").
type Manifest struct {
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
	Components  []ComponentEntry `json:"components"`
}

type ComponentEntry struct {
	SectionType string   `json:"sectionType"`
	TemplateID  string   `json:"templateId"`
	Component   string   `json:"component"`
	Accepts     []string `json:"accepts"`
	Description string   `json:"description,omitempty"`
}

// AnyTemplate matches every template id.
const AnyTemplate = "*"

// InputKinds are the values allowed in ComponentEntry.Accepts. Keep entrySchemaJSON in step.
var InputKinds = []string{"store", "products", "categories", "props"}

const entrySchemaJSON = `{
	"type": "object",
	"required": ["sectionType", "templateId", "component"],
	"properties": {
		"sectionType": {"type": "string", "minLength": 1},
		"templateId": {"type": "string", "minLength": 1},
		"component": {"type": "string", "minLength": 1},
		"accepts": {
			"type": ["array", "null"],
			"items": {"enum": ["store", "products", "categories", "props"]}
		},
		"description": {"type": "string"}
	}
}`

var (
	entrySchema    = validation.MustCompile(entrySchemaJSON)
	manifestSchema = validation.MustCompile(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["components"],
	"properties": {
		"version": {"type": "string"},
		"lastUpdated": {"type": "string"},
		"components": {"type": ["array", "null"], "items": ` + entrySchemaJSON + `}
	}
}`)
)

func schemaError(prefix string, res *validation.ValidationResult) error {
	if res.Valid {
		return nil
	}
	return fmt.Errorf("%s: %s", prefix, strings.Join(res.GetErrorMessages(), "; "))
}
