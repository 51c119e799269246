package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["slug"],
	"properties": {
		"slug": {"type": "string", "minLength": 1},
		"limit": {"type": "integer", "minimum": 0},
		"filters": {
			"type": "object",
			"properties": {"featured": {"type": "boolean"}}
		}
	}
}`

func TestValidateBytes(t *testing.T) {
	schema := MustCompile(testSchema)

	tests := []struct {
		name       string
		doc        string
		wantValid  bool
		wantFields []string
		wantText   string
	}{
		{name: "valid", doc: `{"slug":"acme","limit":4}`, wantValid: true},
		{name: "missing slug", doc: `{"limit":4}`, wantText: "slug is required"},
		{name: "wrong type", doc: `{"slug":"acme","limit":"four"}`, wantFields: []string{"limit"}},
		{name: "nested", doc: `{"slug":"acme","filters":{"featured":"yes"}}`, wantFields: []string{"filters.featured"}},
		{name: "malformed", doc: `{"slug":`, wantFields: []string{"(root)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := schema.ValidateBytes([]byte(tt.doc))
			assert.Equal(t, tt.wantValid, res.Valid)
			for _, f := range tt.wantFields {
				assert.True(t, res.HasErrors(f), "expected error on %s, got %v", f, res.GetErrorMessages())
			}
			if tt.wantText != "" {
				assert.Contains(t, strings.Join(res.GetErrorMessages(), "\n"), tt.wantText)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	schema := MustCompile(testSchema)

	res := schema.ValidateValue(map[string]interface{}{"slug": "", "filters": map[string]interface{}{"featured": 1}})
	require.False(t, res.Valid)
	assert.True(t, res.HasErrors("slug"))
	assert.Len(t, res.GetErrorsForField("filters"), 1)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile(`not json`) })
}
