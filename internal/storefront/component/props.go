package component

import (
	"fmt"
	"regexp"
	"strings"

	"storefront-workers/internal/models"
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// StoreContext exposes store fields to props placeholders as {{store.<field>}}.
func StoreContext(store *models.Store) map[string]interface{} {
	if store == nil {
		return nil
	}
	return map[string]interface{}{
		"store": map[string]interface{}{
			"id":          store.ID,
			"slug":        store.Slug,
			"name":        store.Name,
			"description": store.Description,
			"theme":       store.Theme,
			"currency":    store.Currency,
			"logoUrl":     store.LogoURL,
		},
	}
}

// Interpolate returns a copy of props with {{path}} placeholders resolved against ctx.
// A string that is exactly one placeholder takes the value's own type.
// Unresolvable placeholders are left untouched.
func Interpolate(props map[string]interface{}, ctx map[string]interface{}) map[string]interface{} {
	if props == nil {
		return nil
	}
	out, _ := substitute(props, ctx).(map[string]interface{})
	return out
}

func substitute(v interface{}, ctx map[string]interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return substituteString(val, ctx)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = substitute(item, ctx)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = substitute(item, ctx)
		}
		return out
	default:
		return val
	}
}

func substituteString(s string, ctx map[string]interface{}) interface{} {
	if m := placeholder.FindStringSubmatchIndex(s); m != nil && m[0] == 0 && m[1] == len(s) {
		if value, ok := lookupNestedValue(ctx, s[m[2]:m[3]]); ok {
			return normalizeNumber(value)
		}
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		path := placeholder.FindStringSubmatch(match)[1]
		value, ok := lookupNestedValue(ctx, path)
		if !ok {
			return match
		}
		return fmt.Sprint(value)
	})
}

// normalizeNumber keeps props JSON-shaped: integers become float64.
func normalizeNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	default:
		return v
	}
}

func lookupNestedValue(data map[string]interface{}, path string) (interface{}, bool) {
	var current interface{} = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Placeholders lists every placeholder path used anywhere in props.
func Placeholders(props map[string]interface{}) []string {
	var paths []string
	var walk func(interface{})
	walk = func(v interface{}) {
		switch val := v.(type) {
		case string:
			for _, m := range placeholder.FindAllStringSubmatch(val, -1) {
				paths = append(paths, m[1])
			}
		case map[string]interface{}:
			for _, item := range val {
				walk(item)
			}
		case []interface{}:
			for _, item := range val {
				walk(item)
			}
		}
	}
	walk(props)
	return paths
}

func propString(props map[string]interface{}, key, def string) string {
	if s, ok := props[key].(string); ok && s != "" {
		return s
	}
	return def
}

func propInt(props map[string]interface{}, key string, def int) int {
	switch n := props[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return def
}

func propBool(props map[string]interface{}, key string, def bool) bool {
	if b, ok := props[key].(bool); ok {
		return b
	}
	return def
}

// KnownPlaceholder reports whether path resolves against a store context.
func KnownPlaceholder(path string) bool {
	_, ok := lookupNestedValue(StoreContext(&models.Store{}), path)
	return ok
}
