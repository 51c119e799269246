package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeDataFetchFailed, 3},
		{ErrCodeAlertSendFailed, 3},
		{ErrCodeFetchTimeout, 2},
		{ErrCodeStoreNotFound, 0},
		{ErrCodeTemplateConfigInvalid, 0},
		{ErrCodeParseError, 0},
		{ErrCodeInternal, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetRetryCount(tt.code))
			assert.Equal(t, tt.want > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewTemplateConfigInvalidError("home-electronic", []string{"sections is required", "templateId is empty"})
	bpmn := ConvertToBPMNError(stdErr)

	assert.Equal(t, "TEMPLATE_CONFIG_INVALID", bpmn.Code)
	assert.False(t, bpmn.Retryable)
	assert.Equal(t, 0, bpmn.Retries)
	assert.Equal(t, "sections is required; templateId is empty", bpmn.Details)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "TEMPLATE_CONFIG_INVALID", vars["errorCode"])
	assert.Equal(t, "TEMPLATE_CONFIG_INVALID", vars["originalErrorCode"])
	assert.Equal(t, "home-electronic", vars["templateId"])
}

func TestConvertToBPMNError_RetryableFetch(t *testing.T) {
	bpmn := ConvertToBPMNError(NewDataFetchFailedError("elasticsearch", fmt.Errorf("connection refused")))
	assert.True(t, bpmn.Retryable)
	assert.Equal(t, 3, bpmn.Retries)
	assert.Equal(t, "elasticsearch", bpmn.ErrorVariables["source"])
}

func TestAsStandardError_Wrapped(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	wrapped := fmt.Errorf("render: %w", NewDataFetchFailedError("postgres", cause))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeDataFetchFailed, stdErr.Code)
	assert.True(t, HasCode(wrapped, ErrCodeDataFetchFailed))
	assert.True(t, stderrors.Is(wrapped, cause))

	_, ok = AsStandardError(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "TENANT", GetErrorCategory(ErrCodeStoreNotFound))
	assert.Equal(t, "TEMPLATE", GetErrorCategory(ErrCodeTemplateConfigInvalid))
	assert.Equal(t, "DATA", GetErrorCategory(ErrCodeDataFetchFailed))
	assert.Equal(t, "DATA", GetErrorCategory(ErrCodeFetchTimeout))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
