package validatetemplateconfig

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/storefront/alerts"
	"storefront-workers/internal/storefront/component"
	tmpl "storefront-workers/internal/storefront/template"
)

// ==========================
// Test Helper Functions
// ==========================

type MockNotifier struct {
	NotifyFunc func(ctx context.Context, alert alerts.ConfigAlert) (*alerts.Delivery, error)
	calls      []alerts.ConfigAlert
}

func (m *MockNotifier) NotifyConfigInvalid(ctx context.Context, alert alerts.ConfigAlert) (*alerts.Delivery, error) {
	m.calls = append(m.calls, alert)
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, alert)
	}
	return &alerts.Delivery{AlertID: "alert-123"}, nil
}

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second, NotifyOnInvalid: true}
}

func createTestHandler(t *testing.T, config *Config, notifier alerts.Notifier) *Handler {
	if config == nil {
		config = createTestConfig()
	}
	log := logger.NewTestLogger(t)
	resolver, err := tmpl.NewResolver(tmpl.DefaultTemplates(), tmpl.DefaultTemplateID)
	require.NoError(t, err)
	registry, err := component.NewRegistry(component.DefaultEntries(), component.Builders(), log)
	require.NoError(t, err)
	return NewHandler(config, resolver, registry, notifier, nil, log)
}

func createInput(configuration string) *Input {
	return &Input{StoreSlug: "acme", Configuration: json.RawMessage(configuration)}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Valid(t *testing.T) {
	notifier := &MockNotifier{}
	handler := createTestHandler(t, nil, notifier)

	output, err := handler.Execute(context.Background(), createInput(`{
		"templateId": "home-electronic",
		"sections": {
			"header": {"enabled": true, "order": 0},
			"hero-carousel": {"enabled": true, "order": 1, "props": {"title": "Hello {{store.name}}"}},
			"footer": {"enabled": true}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, output.Valid)
	assert.Equal(t, "home-electronic", output.TemplateID)
	assert.Empty(t, output.Problems)
	assert.Empty(t, output.Warnings)
	assert.Empty(t, notifier.calls)
}

func TestHandler_Execute_Warnings(t *testing.T) {
	handler := createTestHandler(t, nil, &MockNotifier{})

	tests := []struct {
		name         string
		config       string
		wantWarnings []string
	}{
		{
			name:         "section without component",
			config:       `{"templateId":"home-1","sections":{"header":{"enabled":true},"hero-carousel":{"enabled":true}}}`,
			wantWarnings: []string{`section "hero-carousel": no component for "hero-carousel" on home-1, it will be skipped`},
		},
		{
			name:         "disabled unknown section is fine",
			config:       `{"templateId":"home-1","sections":{"header":{"enabled":true},"mystery":{"enabled":false}}}`,
			wantWarnings: []string{},
		},
		{
			name:         "unresolved placeholder",
			config:       `{"templateId":"home-1","sections":{"hero-banner":{"enabled":true,"props":{"title":"{{store.owner}}"}}}}`,
			wantWarnings: []string{`section "hero-banner": placeholder {{store.owner}} does not resolve`},
		},
		{
			name:         "padded template id",
			config:       `{"templateId":"home-01","sections":{"header":{"enabled":true}}}`,
			wantWarnings: []string{`templateId "home-01" is stored as "home-1"`},
		},
		{
			name:         "nothing enabled",
			config:       `{"templateId":"home-1","sections":{"header":{"enabled":false}}}`,
			wantWarnings: []string{"no sections are enabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), createInput(tt.config))
			require.NoError(t, err)
			assert.True(t, output.Valid)
			assert.Equal(t, tt.wantWarnings, output.Warnings)
		})
	}
}

func TestHandler_Execute_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantProblem string
	}{
		{"order is a string", `{"templateId":"home-1","sections":{"header":{"enabled":true,"order":"first"}}}`, "order"},
		{"missing sections", `{"templateId":"home-1"}`, "sections"},
		{"empty template id", `{"templateId":"","sections":{}}`, "templateId"},
		{"unknown section field", `{"templateId":"home-1","sections":{"header":{"enabled":true,"colour":"red"}}}`, "colour"},
		{"duplicate section", `{"templateId":"home-1","sections":{"header":{"enabled":true},"header":{"enabled":true}}}`, "header"},
		{"unknown template", `{"templateId":"home-boutique","sections":{"header":{"enabled":true}}}`, "home-boutique"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &MockNotifier{}
			handler := createTestHandler(t, nil, notifier)

			output, err := handler.Execute(context.Background(), createInput(tt.config))
			require.NoError(t, err)

			assert.False(t, output.Valid)
			require.NotEmpty(t, output.Problems)
			assert.Contains(t, joined(output.Problems), tt.wantProblem)
			assert.Equal(t, "alert-123", output.AlertID)

			require.Len(t, notifier.calls, 1)
			assert.Equal(t, alerts.OriginValidation, notifier.calls[0].Origin)
			assert.Equal(t, "acme", notifier.calls[0].StoreSlug)
		})
	}
}

func TestHandler_Execute_FailOnInvalid(t *testing.T) {
	config := &Config{Timeout: time.Second, FailOnInvalid: true}
	notifier := &MockNotifier{}
	handler := createTestHandler(t, config, notifier)

	output, err := handler.Execute(context.Background(), createInput(`{"templateId":"home-1","sections":{"header":{"order":"x"}}}`))
	assert.Nil(t, output)
	require.Error(t, err)

	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeTemplateConfigInvalid, stdErr.Code)
	assert.Equal(t, "home-1", stdErr.Metadata["templateId"])
	assert.Empty(t, notifier.calls)
}

func TestHandler_Execute_AlertFailure(t *testing.T) {
	notifier := &MockNotifier{NotifyFunc: func(ctx context.Context, alert alerts.ConfigAlert) (*alerts.Delivery, error) {
		return &alerts.Delivery{}, apperrors.NewAlertSendFailedError("sns", errors.New("throttled"))
	}}
	handler := createTestHandler(t, nil, notifier)

	_, err := handler.Execute(context.Background(), createInput(`{"templateId":"home-1"}`))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlertSendFailed))
}

func TestHandler_Execute_ErrorCases(t *testing.T) {
	handler := createTestHandler(t, nil, nil)

	_, err := handler.Execute(context.Background(), nil)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput))

	_, err = handler.Execute(context.Background(), &Input{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput))
}

func joined(items []string) string {
	out := ""
	for _, s := range items {
		out += s + "\n"
	}
	return out
}
