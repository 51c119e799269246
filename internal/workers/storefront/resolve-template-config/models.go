package resolvetemplateconfig

import (
	"encoding/json"

	tmpl "storefront-workers/internal/storefront/template"
)

type Input struct {
	TemplateID string `json:"templateId"`
	// Override is an authored configuration returned as-is once it validates.
	Override json.RawMessage `json:"override,omitempty"`
}

type Output struct {
	TemplateID    string              `json:"templateId"`
	Normalized    bool                `json:"normalized"`
	Source        string              `json:"configSource"`
	Configuration *tmpl.Configuration `json:"configuration"`
}
