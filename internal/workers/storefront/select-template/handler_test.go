package selecttemplate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/storefront/selection"
	tmpl "storefront-workers/internal/storefront/template"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:           5 * time.Second,
		DefaultFallbackID: "home-1",
	}
}

func createTestHandler(t *testing.T, config *Config, themes map[string]string) *Handler {
	if config == nil {
		config = createTestConfig()
	}
	resolver, err := tmpl.NewResolver(tmpl.DefaultTemplates(), tmpl.DefaultTemplateID)
	require.NoError(t, err)
	strategy, err := selection.NewStrategy(resolver, themes, logger.NewTestLogger(t))
	require.NoError(t, err)
	return NewHandler(config, strategy, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name       string
		input      *Input
		wantID     string
		wantSource string
	}{
		{
			name:       "explicit template id",
			input:      &Input{ExplicitTemplateID: "home-4", Theme: "electronics"},
			wantID:     "home-4",
			wantSource: "explicit",
		},
		{
			name:       "explicit zero-padded id",
			input:      &Input{ExplicitTemplateID: "home-01"},
			wantID:     "home-1",
			wantSource: "explicit",
		},
		{
			name:       "template preference beats theme",
			input:      &Input{Theme: "electronics", TemplatePreference: "home-6"},
			wantID:     "home-6",
			wantSource: "store-template",
		},
		{
			name:       "theme mapped",
			input:      &Input{Theme: "fashion"},
			wantID:     "home-men",
			wantSource: "theme",
		},
		{
			name:       "combined store value",
			input:      &Input{StoreThemeOrTemplate: "grocery", Theme: "fashion"},
			wantID:     "home-grocery",
			wantSource: "theme",
		},
		{
			name:       "unmapped theme",
			input:      &Input{Theme: "antiques"},
			wantID:     "home-1",
			wantSource: "theme-default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, nil, nil)
			output, err := handler.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, output.SelectedTemplateID)
			assert.Equal(t, tt.wantSource, output.SelectionSource)
		})
	}
}

func TestHandler_Execute_FallbackScenarios(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		input  *Input
		wantID string
	}{
		{
			name:   "unknown explicit id is not an error",
			input:  &Input{ExplicitTemplateID: "not-a-real-template", FallbackTemplateID: "home-1"},
			wantID: "home-1",
		},
		{
			name:   "job fallback",
			input:  &Input{FallbackTemplateID: "home-03"},
			wantID: "home-3",
		},
		{
			name:   "configured fallback when job has none",
			config: &Config{Timeout: time.Second, DefaultFallbackID: "home-7"},
			input:  &Input{},
			wantID: "home-7",
		},
		{
			name:   "unknown fallback resolves to default",
			input:  &Input{FallbackTemplateID: "home-404"},
			wantID: "home-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, tt.config, nil)
			output, err := handler.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, output.SelectedTemplateID)
			assert.Equal(t, "fallback", output.SelectionSource)
		})
	}
}

func TestHandler_Execute_ConfiguredThemes(t *testing.T) {
	handler := createTestHandler(t, nil, map[string]string{"outdoor": "home-5"})

	output, err := handler.Execute(context.Background(), &Input{Theme: "Outdoor"})
	require.NoError(t, err)
	assert.Equal(t, "home-5", output.SelectedTemplateID)
}

func TestHandler_Execute_ErrorCases(t *testing.T) {
	handler := createTestHandler(t, nil, nil)

	output, err := handler.Execute(context.Background(), nil)
	assert.Nil(t, output)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput))
}
