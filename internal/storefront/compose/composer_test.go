package compose

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/models"
	"storefront-workers/internal/storefront/component"
	tmpl "storefront-workers/internal/storefront/template"
)

// ==========================
// Test Helpers
// ==========================

func echoBuilder(in component.Inputs) interface{} {
	return in.Props
}

func createTestComposer(t *testing.T, entries ...component.Entry) (*Composer, *observer.ObservedLogs) {
	t.Helper()
	log, logs := logger.NewObservedLogger(zapcore.WarnLevel)
	registry, err := component.NewRegistry(entries, map[string]component.Builder{"Echo": echoBuilder}, log)
	require.NoError(t, err)
	return NewComposer(registry), logs
}

func entry(sectionType, templateID string) component.Entry {
	return component.Entry{SectionType: sectionType, TemplateID: templateID, Component: "Echo", Accepts: []component.InputKind{component.InputProps}}
}

func section(key string, enabled bool, order *float64) tmpl.Section {
	return tmpl.Section{Key: key, Config: tmpl.SectionConfig{Enabled: enabled, Order: order}}
}

func blockKeys(blocks []*component.Block) []string {
	keys := make([]string, len(blocks))
	for i, b := range blocks {
		keys[i] = b.Key
	}
	return keys
}

var testStore = &models.Store{ID: "s1", Slug: "acme", Name: "Acme"}

// ==========================
// Filtering and resolution
// ==========================

func TestCompose_EnabledAndRegisteredMatrix(t *testing.T) {
	composer, _ := createTestComposer(t, entry("a", component.AnyTemplate), entry("b", component.AnyTemplate))

	tests := []struct {
		name     string
		sections tmpl.Sections
		wantKeys []string
	}{
		{"enabled and registered", tmpl.Sections{section("a", true, tmpl.Order(1))}, []string{"a"}},
		{"disabled and registered", tmpl.Sections{section("a", false, tmpl.Order(1))}, []string{}},
		{"enabled and missing", tmpl.Sections{section("x", true, tmpl.Order(1))}, []string{}},
		{"disabled and missing", tmpl.Sections{section("x", false, tmpl.Order(1))}, []string{}},
		{"mixed", tmpl.Sections{
			section("a", true, tmpl.Order(1)),
			section("x", true, tmpl.Order(2)),
			section("b", false, tmpl.Order(3)),
			section("b2", true, nil),
		}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &tmpl.Configuration{TemplateID: "home-1", Sections: tt.sections}
			blocks := composer.Compose(cfg, testStore, nil).Blocks()
			assert.Equal(t, tt.wantKeys, blockKeys(blocks))
		})
	}
}

func TestCompose_OrdersByOrderThenDeclaration(t *testing.T) {
	composer, _ := createTestComposer(t, entry("a", component.AnyTemplate), entry("b", component.AnyTemplate), entry("c", component.AnyTemplate))

	cfg := &tmpl.Configuration{TemplateID: "home-1", Sections: tmpl.Sections{
		section("a", true, tmpl.Order(2)),
		section("b", true, tmpl.Order(1)),
		section("c", true, nil),
	}}

	blocks := composer.Compose(cfg, testStore, nil).Blocks()
	require.Equal(t, []string{"b", "a", "c"}, blockKeys(blocks))
	for i, b := range blocks {
		assert.Equal(t, i, b.Position)
	}
}

func TestCompose_TiesKeepDeclarationOrder(t *testing.T) {
	composer, _ := createTestComposer(t,
		entry("w", component.AnyTemplate), entry("x", component.AnyTemplate),
		entry("y", component.AnyTemplate), entry("z", component.AnyTemplate))

	cfg := &tmpl.Configuration{TemplateID: "home-1", Sections: tmpl.Sections{
		section("z", true, nil),
		section("y", true, tmpl.Order(5)),
		section("x", true, nil),
		section("w", true, tmpl.Order(5)),
	}}

	assert.Equal(t, []string{"y", "w", "z", "x"}, blockKeys(composer.Compose(cfg, testStore, nil).Blocks()))
}

func TestCompose_NegativeAndFractionalOrders(t *testing.T) {
	composer, _ := createTestComposer(t, entry("a", component.AnyTemplate), entry("b", component.AnyTemplate), entry("c", component.AnyTemplate))

	cfg := &tmpl.Configuration{TemplateID: "home-1", Sections: tmpl.Sections{
		section("a", true, tmpl.Order(1.5)),
		section("b", true, tmpl.Order(-1)),
		section("c", true, tmpl.Order(1.25)),
	}}

	assert.Equal(t, []string{"b", "c", "a"}, blockKeys(composer.Compose(cfg, testStore, nil).Blocks()))
}

func TestCompose_MissingSkippedWithSingleDiagnostic(t *testing.T) {
	composer, logs := createTestComposer(t, entry("a", component.AnyTemplate), entry("c", component.AnyTemplate))

	cfg := &tmpl.Configuration{TemplateID: "home-1", Sections: tmpl.Sections{
		section("a", true, tmpl.Order(1)),
		section("ghost", true, tmpl.Order(2)),
		section("c", true, tmpl.Order(3)),
	}}

	comp := composer.Compose(cfg, testStore, nil)
	blocks := comp.Blocks()

	assert.Equal(t, []string{"a", "c"}, blockKeys(blocks))
	assert.Equal(t, 1, blocks[1].Position)
	assert.Equal(t, []string{"ghost"}, comp.Missing())
	assert.Len(t, comp.Sections, 3)

	warnings := logs.FilterMessage("no component registered for section")
	require.Equal(t, 1, warnings.Len())
	assert.Equal(t, "ghost", warnings.All()[0].ContextMap()["sectionType"])
	assert.Equal(t, 1, logs.Len())
}

func TestCompose_ComponentKeyOverridesSectionKey(t *testing.T) {
	composer, _ := createTestComposer(t, entry("hero-banner", "home-1"))

	cfg := &tmpl.Configuration{TemplateID: "home-1", Sections: tmpl.Sections{
		{Key: "top-hero", Config: tmpl.SectionConfig{ComponentKey: "hero-banner", Enabled: true}},
		{Key: "hero-banner", Config: tmpl.SectionConfig{Enabled: true}},
	}}

	blocks := composer.Compose(cfg, testStore, nil).Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "top-hero", blocks[0].Key)
	assert.Equal(t, "hero-banner", blocks[0].Type)
	assert.Equal(t, "hero-banner", blocks[1].Key)
}

func TestCompose_UsesTemplateIDForLookup(t *testing.T) {
	composer, _ := createTestComposer(t, entry("brands", "multi-brand"))
	sections := tmpl.Sections{section("brands", true, tmpl.Order(1))}

	hit := composer.Compose(&tmpl.Configuration{TemplateID: "multi-brand", Sections: sections}, testStore, nil)
	miss := composer.Compose(&tmpl.Configuration{TemplateID: "home-1", Sections: sections}, testStore, nil)

	assert.Len(t, hit.Blocks(), 1)
	assert.Empty(t, miss.Blocks())
}

func TestCompose_PaddedTemplateIDMatchesCanonicalComponents(t *testing.T) {
	log, _ := logger.NewObservedLogger(zapcore.WarnLevel)
	registry, err := component.NewRegistry(
		[]component.Entry{entry("header", component.AnyTemplate), entry("deals", "home-6")},
		map[string]component.Builder{"Echo": echoBuilder}, log)
	require.NoError(t, err)
	resolver, err := tmpl.NewResolver(tmpl.DefaultTemplates(), tmpl.DefaultTemplateID)
	require.NoError(t, err)
	composer := NewComposer(registry, WithTemplateIDs(resolver))

	sections := tmpl.Sections{section("header", true, tmpl.Order(1)), section("deals", true, tmpl.Order(2))}

	for _, id := range []string{"home-6", "home-06", "HOME-006"} {
		t.Run(id, func(t *testing.T) {
			comp := composer.Compose(&tmpl.Configuration{TemplateID: id, Sections: sections}, testStore, nil)

			assert.Equal(t, "home-6", comp.TemplateID)
			assert.Equal(t, []string{"header", "deals"}, blockKeys(comp.Blocks()))
			assert.Empty(t, comp.Missing())
		})
	}

	unknown := composer.Compose(&tmpl.Configuration{TemplateID: "custom", Sections: sections}, testStore, nil)
	assert.Equal(t, "custom", unknown.TemplateID)
	assert.Equal(t, []string{"deals"}, unknown.Missing())
}

func TestCompose_NilAndEmptyConfig(t *testing.T) {
	composer, _ := createTestComposer(t)

	assert.Empty(t, composer.Compose(nil, testStore, nil).Blocks())
	assert.Empty(t, composer.Compose(&tmpl.Configuration{TemplateID: "home-1"}, testStore, nil).Blocks())
}

// ==========================
// Determinism and round trip
// ==========================

func TestCompose_Deterministic(t *testing.T) {
	log := logger.NewNoOpLogger()
	registry, err := component.NewRegistry(component.DefaultEntries(), component.Builders(), log)
	require.NoError(t, err)
	composer := NewComposer(registry)

	resolver, err := tmpl.NewResolver(tmpl.DefaultTemplates(), tmpl.DefaultTemplateID)
	require.NoError(t, err)

	data := &models.ProductData{Products: []models.Product{{ID: "p1", Name: "One", Brand: "B", Price: 1}}}
	for _, id := range resolver.IDs() {
		cfg := resolver.GetConfig(id, nil)
		first, _ := json.Marshal(composer.Compose(cfg, testStore, data).Blocks())
		second, _ := json.Marshal(composer.Compose(cfg, testStore, data).Blocks())
		assert.JSONEq(t, string(first), string(second), id)
	}
}

func TestCompose_JSONRoundTripComposesIdentically(t *testing.T) {
	composer, _ := createTestComposer(t, entry("a", component.AnyTemplate), entry("b", component.AnyTemplate), entry("c", component.AnyTemplate))

	original := &tmpl.Configuration{TemplateID: "home-1", Name: "Home", Sections: tmpl.Sections{
		{Key: "c", Config: tmpl.SectionConfig{Enabled: true, Props: map[string]interface{}{"n": float64(3)}}},
		{Key: "a", Config: tmpl.SectionConfig{Enabled: true, Order: tmpl.Order(2)}},
		{Key: "b", Config: tmpl.SectionConfig{Enabled: true, Order: tmpl.Order(2)}},
		{Key: "off", Config: tmpl.SectionConfig{Enabled: false, Order: tmpl.Order(0)}},
	}}

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	decoded, err := tmpl.Parse(raw)
	require.NoError(t, err)

	want := composer.Compose(original, testStore, nil).Blocks()
	got := composer.Compose(decoded, testStore, nil).Blocks()
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"a", "b", "c"}, blockKeys(got))
}
