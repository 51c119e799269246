package composepage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/storefront/component"
	"storefront-workers/internal/storefront/page"
)

// ==========================
// Test Helper Functions
// ==========================

type MockRenderer struct {
	RenderFunc func(ctx context.Context, req page.Request) (*page.Page, error)
	requests   []page.Request
}

func (m *MockRenderer) Render(ctx context.Context, req page.Request) (*page.Page, error) {
	m.requests = append(m.requests, req)
	if m.RenderFunc != nil {
		return m.RenderFunc(ctx, req)
	}
	return &page.Page{
		RenderID:   "render-1",
		StoreSlug:  req.StoreSlug,
		TemplateID: "home-1",
		Blocks: []*component.Block{
			{Key: "header", Type: "header", Component: "SiteHeader", Position: 0},
			{Key: "footer", Type: "footer", Component: "SiteFooter", Position: 1},
		},
	}, nil
}

func createTestHandler(t *testing.T, renderer page.Renderer) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, renderer, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	renderer := &MockRenderer{}
	handler := createTestHandler(t, renderer)

	output, err := handler.Execute(context.Background(), &Input{
		StoreSlug:          "acme",
		TemplateID:         "home-01",
		FallbackTemplateID: "home-2",
		ProductLimit:       6,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, output.BlockCount)
	assert.Equal(t, "render-1", output.Page.RenderID)

	require.Len(t, renderer.requests, 1)
	req := renderer.requests[0]
	assert.Equal(t, "acme", req.StoreSlug)
	assert.Equal(t, "home-01", req.TemplateID)
	assert.Equal(t, "home-2", req.FallbackTemplateID)
	assert.Equal(t, 6, req.ProductLimit)
	assert.Nil(t, req.Override)
}

func TestHandler_Execute_Override(t *testing.T) {
	tests := []struct {
		name         string
		override     string
		wantOverride bool
	}{
		{"absent", ``, false},
		{"null", `null`, false},
		{"layout", `{"templateId":"home-5","sections":{"header":{"enabled":true}}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &MockRenderer{}
			handler := createTestHandler(t, renderer)

			_, err := handler.Execute(context.Background(), &Input{StoreSlug: "acme", Override: json.RawMessage(tt.override)})
			require.NoError(t, err)
			require.Len(t, renderer.requests, 1)

			if !tt.wantOverride {
				assert.Nil(t, renderer.requests[0].Override)
				return
			}
			require.NotNil(t, renderer.requests[0].Override)
			assert.Equal(t, "home-5", renderer.requests[0].Override.TemplateID)
			assert.Equal(t, []string{"header"}, renderer.requests[0].Override.Sections.Keys())
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_ErrorCases(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		render   error
		wantCode apperrors.ErrorCode
	}{
		{"nil input", nil, nil, apperrors.ErrCodeInvalidInput},
		{"blank slug", &Input{StoreSlug: "  "}, nil, apperrors.ErrCodeInvalidInput},
		{
			name:     "invalid override",
			input:    &Input{StoreSlug: "acme", Override: json.RawMessage(`{"templateId":"home-5","sections":{"header":{"order":"top"}}}`)},
			wantCode: apperrors.ErrCodeTemplateConfigInvalid,
		},
		{"store missing", &Input{StoreSlug: "ghost"}, apperrors.NewStoreNotFoundError("ghost"), apperrors.ErrCodeStoreNotFound},
		{"fetch timeout", &Input{StoreSlug: "slow"}, apperrors.NewFetchTimeoutError("products"), apperrors.ErrCodeFetchTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &MockRenderer{}
			if tt.render != nil {
				renderErr := tt.render
				renderer.RenderFunc = func(ctx context.Context, req page.Request) (*page.Page, error) {
					return nil, renderErr
				}
			}
			handler := createTestHandler(t, renderer)

			output, err := handler.Execute(context.Background(), tt.input)
			assert.Nil(t, output)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)

			if tt.render == nil {
				assert.Empty(t, renderer.requests)
			}
		})
	}
}
