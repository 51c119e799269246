package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	ctx := map[string]interface{}{
		"store":  map[string]interface{}{"name": "Acme", "currency": "EUR"},
		"limits": map[string]interface{}{"featured": 8},
	}

	tests := []struct {
		name  string
		props map[string]interface{}
		want  map[string]interface{}
	}{
		{
			name:  "whole placeholder keeps type",
			props: map[string]interface{}{"limit": "{{limits.featured}}"},
			want:  map[string]interface{}{"limit": float64(8)},
		},
		{
			name:  "embedded placeholder",
			props: map[string]interface{}{"title": "Shop {{store.name}} in {{store.currency}}"},
			want:  map[string]interface{}{"title": "Shop Acme in EUR"},
		},
		{
			name:  "unknown placeholder left alone",
			props: map[string]interface{}{"title": "{{store.owner}}", "sub": "by {{store.owner}}"},
			want:  map[string]interface{}{"title": "{{store.owner}}", "sub": "by {{store.owner}}"},
		},
		{
			name: "nested maps and arrays",
			props: map[string]interface{}{
				"cta":   map[string]interface{}{"label": "Visit {{store.name}}"},
				"items": []interface{}{"{{store.currency}}", float64(1), true},
			},
			want: map[string]interface{}{
				"cta":   map[string]interface{}{"label": "Visit Acme"},
				"items": []interface{}{"EUR", float64(1), true},
			},
		},
		{
			name:  "nil props",
			props: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(tt.props, ctx))
		})
	}
}

func TestInterpolate_NilContext(t *testing.T) {
	props := map[string]interface{}{"title": "{{store.name}}"}
	assert.Equal(t, props, Interpolate(props, nil))
}

func TestPlaceholders(t *testing.T) {
	props := map[string]interface{}{
		"title": "Hi {{store.name}}",
		"list":  []interface{}{map[string]interface{}{"x": "{{ store.slug }}"}},
	}
	assert.ElementsMatch(t, []string{"store.name", "store.slug"}, Placeholders(props))
}

func TestStoreContext(t *testing.T) {
	assert.Nil(t, StoreContext(nil))

	ctx := StoreContext(createTestStore())
	store := ctx["store"].(map[string]interface{})
	assert.Equal(t, "Acme", store["name"])
	assert.Equal(t, "acme", store["slug"])
}

func TestKnownPlaceholder(t *testing.T) {
	assert.True(t, KnownPlaceholder("store.name"))
	assert.True(t, KnownPlaceholder("store.currency"))
	assert.False(t, KnownPlaceholder("store.owner"))
	assert.False(t, KnownPlaceholder("user.name"))
}
