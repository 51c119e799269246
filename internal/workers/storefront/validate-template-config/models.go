package validatetemplateconfig

import "encoding/json"

type Input struct {
	StoreSlug     string          `json:"storeSlug,omitempty"`
	Configuration json.RawMessage `json:"configuration"`
}

type Output struct {
	Valid      bool     `json:"valid"`
	TemplateID string   `json:"templateId,omitempty"`
	Problems   []string `json:"problems"`
	Warnings   []string `json:"warnings"`
	AlertID    string   `json:"alertId,omitempty"`
}
