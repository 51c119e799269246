package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storefront-workers/internal/common/validation"
)

// ErrInvalidConfiguration matches every *InvalidConfigError via errors.Is.
var ErrInvalidConfiguration = errors.New("invalid template configuration")

// InvalidConfigError lists every problem found in an authored configuration.
type InvalidConfigError struct {
	TemplateID string
	Problems   []string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid template configuration %q: %s", e.TemplateID, strings.Join(e.Problems, "; "))
}

func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

const configurationSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["templateId", "sections"],
	"properties": {
		"templateId": {"type": "string", "minLength": 1},
		"name": {"type": "string"},
		"sections": {
			"type": "object",
			"propertyNames": {"minLength": 1},
			"additionalProperties": {
				"type": "object",
				"additionalProperties": false,
				"properties": {
					"componentKey": {"type": "string"},
					"enabled": {"type": "boolean"},
					"order": {"type": ["number", "null"]},
					"props": {"type": "object"}
				}
			}
		}
	}
}`

var configSchema = validation.MustCompile(configurationSchema)

// Parse validates raw against the configuration schema and decodes it.
// Every failure is an *InvalidConfigError.
func Parse(raw []byte) (*Configuration, error) {
	res := configSchema.ValidateBytes(raw)
	if !res.Valid {
		return nil, &InvalidConfigError{
			TemplateID: peekTemplateID(raw),
			Problems:   res.GetErrorMessages(),
		}
	}

	var cfg Configuration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, &InvalidConfigError{
			TemplateID: peekTemplateID(raw),
			Problems:   []string{err.Error()},
		}
	}
	return &cfg, nil
}

// peekTemplateID best-effort extracts templateId for error reporting.
func peekTemplateID(raw []byte) string {
	var head struct {
		TemplateID interface{} `json:"templateId"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return ""
	}
	if id, ok := head.TemplateID.(string); ok {
		return id
	}
	return ""
}
