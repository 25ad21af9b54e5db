package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// Upstream error codes
const (
	CodeTimeout        = "timeout"
	CodeCanceled       = "canceled"
	CodeNetwork        = "network_error"
	CodeAuthentication = "authentication_failed"
	CodeRateLimited    = "rate_limit_exceeded"
	CodeTooLarge       = "file_too_large"
	CodeInvalidRequest = "invalid_request"
	CodeServerError    = "server_error"
	CodeEmptyResponse  = "empty_response"
	CodeUnknown        = "unknown_error"
)

// UpstreamError describes a failed call to a hosted service
type UpstreamError struct {
	Provider   string `json:"provider"`
	Code       string `json:"code"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	Timeout    bool   `json:"timeout"`
	Err        error  `json:"-"`
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is an upstream failure worth one more attempt
func IsRetryable(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.Retryable
}

// ClassifyTransport handles failures that happen below the provider's own
// error format: deadlines, cancellation and broken connections. ok is false
// when err is none of those.
func ClassifyTransport(provider string, err error) (*UpstreamError, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &UpstreamError{
			Provider: provider,
			Code:     CodeTimeout,
			Message:  "request timed out",
			Timeout:  true,
			Err:      err,
		}, true
	case errors.Is(err, context.Canceled):
		return &UpstreamError{
			Provider: provider,
			Code:     CodeCanceled,
			Message:  "request canceled",
			Err:      err,
		}, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &UpstreamError{
			Provider: provider,
			Code:     CodeTimeout,
			Message:  "request timed out",
			Timeout:  true,
			Err:      err,
		}, true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) {
		return &UpstreamError{
			Provider:  provider,
			Code:      CodeNetwork,
			Message:   "connection failed",
			Retryable: true,
			Err:       err,
		}, true
	}

	return nil, false
}

// FromStatus builds an UpstreamError from an HTTP status returned by the
// provider. Only server-side failures are retryable; 4xx never is.
func FromStatus(provider string, status int, message string, err error) *UpstreamError {
	upErr := &UpstreamError{
		Provider:   provider,
		StatusCode: status,
		Message:    message,
		Retryable:  status >= 500,
		Err:        err,
	}
	switch {
	case status == 401 || status == 403:
		upErr.Code = CodeAuthentication
	case status == 429:
		upErr.Code = CodeRateLimited
	case status == 413:
		upErr.Code = CodeTooLarge
	case status >= 500:
		upErr.Code = CodeServerError
	case status >= 400:
		upErr.Code = CodeInvalidRequest
	default:
		upErr.Code = CodeUnknown
	}
	if upErr.Message == "" {
		upErr.Message = fmt.Sprintf("upstream returned status %d", status)
	}
	return upErr
}
