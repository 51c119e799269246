// Package errors maps storefront failures onto Zeebe job outcomes.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeStoreNotFound         ErrorCode = "STORE_NOT_FOUND"
	ErrCodeTemplateConfigInvalid ErrorCode = "TEMPLATE_CONFIG_INVALID"
	ErrCodeDataFetchFailed       ErrorCode = "DATA_FETCH_FAILED"
	ErrCodeFetchTimeout          ErrorCode = "FETCH_TIMEOUT"
	ErrCodeInvalidInput          ErrorCode = "INVALID_INPUT"
	ErrCodeAlertSendFailed       ErrorCode = "ALERT_SEND_FAILED"
	ErrCodeParseError            ErrorCode = "PARSE_ERROR"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the internal error shape every worker returns from Execute.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// BPMNError is what gets thrown to the process engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// Constructors
// ==========================

func NewStoreNotFoundError(slug string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreNotFound,
		Message:   "Store not found",
		Details:   fmt.Sprintf("storeSlug: %s", slug),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewTemplateConfigInvalidError(templateID string, problems []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateConfigInvalid,
		Message:   "Template configuration is invalid",
		Details:   strings.Join(problems, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"templateId": templateID},
		Timestamp: time.Now().UTC(),
	}
}

func NewDataFetchFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataFetchFailed,
		Message:   "Storefront data fetch failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewFetchTimeoutError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchTimeout,
		Message:   "Storefront data fetch timed out",
		Details:   fmt.Sprintf("source: %s", source),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid job input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAlertSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertSendFailed,
		Message:   "Configuration alert delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// BPMN mapping
// ==========================

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeStoreNotFound:         "STORE_NOT_FOUND",
	ErrCodeTemplateConfigInvalid: "TEMPLATE_CONFIG_INVALID",
	ErrCodeDataFetchFailed:       "DATA_FETCH_FAILED",
	ErrCodeFetchTimeout:          "FETCH_TIMEOUT",
	ErrCodeInvalidInput:          "INVALID_INPUT",
	ErrCodeAlertSendFailed:       "ALERT_SEND_FAILED",
	ErrCodeParseError:            "PARSE_ERROR",
	ErrCodeInternal:              "INTERNAL_ERROR",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDataFetchFailed, ErrCodeAlertSendFailed:
		return 3
	case ErrCodeFetchTimeout:
		return 2
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// AsStandardError unwraps err to a *StandardError when one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "STORE"):
		return "TENANT"
	case strings.Contains(codeStr, "TEMPLATE"):
		return "TEMPLATE"
	case strings.Contains(codeStr, "FETCH"):
		return "DATA"
	case strings.Contains(codeStr, "ALERT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
