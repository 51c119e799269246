// Package http holds the JSON response helpers shared by the page route and the health probes.
package http

import (
	"encoding/json"
	nethttp "net/http"

	apperrors "storefront-workers/internal/common/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WriteJSON encodes v with status.
func WriteJSON(w nethttp.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeStoreNotFound:
		return nethttp.StatusNotFound
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeParseError, apperrors.ErrCodeTemplateConfigInvalid:
		return nethttp.StatusBadRequest
	case apperrors.ErrCodeFetchTimeout:
		return nethttp.StatusGatewayTimeout
	case apperrors.ErrCodeDataFetchFailed:
		return nethttp.StatusBadGateway
	default:
		return nethttp.StatusInternalServerError
	}
}

// WriteError writes err as an ErrorBody. Errors without a code are reported as internal.
func WriteError(w nethttp.ResponseWriter, err error) {
	stdErr, ok := apperrors.AsStandardError(err)
	if !ok {
		stdErr = apperrors.NewInternalError(err)
	}
	WriteJSON(w, StatusFor(stdErr.Code), ErrorBody{
		Error:   string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	})
}
