package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind groups error codes by HTTP status family
type ErrorKind string

const (
	KindBadRequest      ErrorKind = "bad_request"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
	KindNotFound        ErrorKind = "not_found"
	KindUnprocessable   ErrorKind = "unprocessable"
	KindInternal        ErrorKind = "internal"
	KindBadGateway      ErrorKind = "bad_gateway"
	KindGatewayTimeout  ErrorKind = "gateway_timeout"
	KindCanceled        ErrorKind = "canceled"
)

// StatusClientClosedRequest is the non-standard status logged when the
// client went away before the response was ready
const StatusClientClosedRequest = 499

// Error codes exposed to clients
const (
	CodeMissingFile               = "MissingFile"
	CodeInvalidArgument           = "InvalidArgument"
	CodePayloadTooLarge           = "PayloadTooLarge"
	CodeNotFound                  = "NotFound"
	CodeMediaDecodeError          = "MediaDecodeError"
	CodeNoAudioTrackError         = "NoAudioTrackError"
	CodeIOError                   = "IOError"
	CodeTranscriptionServiceError = "TranscriptionServiceError"
	CodeSummarizationServiceError = "SummarizationServiceError"
	CodeExtractionTimeout         = "ExtractionTimeout"
	CodeRequestCanceled           = "RequestCanceled"
	CodeInternal                  = "InternalError"
)

// Messages the original endpoints return for missing input
const (
	MsgNoVideo = "No video uploaded"
	MsgNoAudio = "No audio uploaded"
	MsgNoText  = "No text provided"
)

// APIError represents a structured API error response. Message is served
// under "error" so clients of the plain {error} contract keep working.
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindBadGateway:
		return http.StatusBadGateway
	case KindGatewayTimeout:
		return http.StatusGatewayTimeout
	case KindCanceled:
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// WithDetail returns the error with one more detail entry
func (e *APIError) WithDetail(key, value string) *APIError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// NewMissingFileError reports an absent required input
func NewMissingFileError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Code:    CodeMissingFile,
		Message: message,
	}
}

// NewInvalidArgumentError creates a bad request error with field details
func NewInvalidArgumentError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Code:    CodeInvalidArgument,
		Message: message,
		Details: fields,
	}
}

// NewPayloadTooLargeError creates a 413 error
func NewPayloadTooLargeError(message string) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Code:    CodePayloadTooLarge,
		Message: message,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewMediaDecodeError reports input ffmpeg could not read
func NewMediaDecodeError(message string) *APIError {
	return &APIError{
		Kind:    KindUnprocessable,
		Code:    CodeMediaDecodeError,
		Message: message,
	}
}

// NewNoAudioTrackError reports a decodable input without audio
func NewNoAudioTrackError(message string) *APIError {
	return &APIError{
		Kind:    KindUnprocessable,
		Code:    CodeNoAudioTrackError,
		Message: message,
	}
}

// NewIOError reports a local filesystem or tooling failure
func NewIOError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Code:    CodeIOError,
		Message: message,
	}
}

// NewUpstreamError reports a failed hosted-model call. Timeouts are 504,
// everything else 502.
func NewUpstreamError(code, message string, timeout bool) *APIError {
	kind := KindBadGateway
	if timeout {
		kind = KindGatewayTimeout
	}
	return &APIError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewExtractionTimeoutError reports an ffmpeg run that outlived its deadline
func NewExtractionTimeoutError(message string) *APIError {
	return &APIError{
		Kind:    KindGatewayTimeout,
		Code:    CodeExtractionTimeout,
		Message: message,
	}
}

// NewCanceledError reports a request abandoned by the client
func NewCanceledError() *APIError {
	return &APIError{
		Kind:    KindCanceled,
		Code:    CodeRequestCanceled,
		Message: "Request canceled",
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Code:    CodeInternal,
		Message: message,
	}
}
