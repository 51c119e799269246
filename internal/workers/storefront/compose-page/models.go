package composepage

import (
	"encoding/json"

	"storefront-workers/internal/storefront/page"
)

type Input struct {
	StoreSlug          string          `json:"storeSlug"`
	TemplateID         string          `json:"templateId,omitempty"`
	FallbackTemplateID string          `json:"fallbackTemplateId,omitempty"`
	ProductLimit       int             `json:"productLimit,omitempty"`
	Override           json.RawMessage `json:"override,omitempty"`
}

type Output struct {
	Page       *page.Page `json:"page"`
	BlockCount int        `json:"blockCount"`
}
