package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *APIError
		status int
		code   string
	}{
		{"missing file", NewMissingFileError(MsgNoVideo), http.StatusBadRequest, CodeMissingFile},
		{"invalid argument", NewInvalidArgumentError("bad", nil), http.StatusBadRequest, CodeInvalidArgument},
		{"too large", NewPayloadTooLargeError("big"), http.StatusRequestEntityTooLarge, CodePayloadTooLarge},
		{"not found", NewNotFoundError("Artifact"), http.StatusNotFound, CodeNotFound},
		{"decode", NewMediaDecodeError("bad media"), http.StatusUnprocessableEntity, CodeMediaDecodeError},
		{"no audio", NewNoAudioTrackError("silent film"), http.StatusUnprocessableEntity, CodeNoAudioTrackError},
		{"io", NewIOError("disk"), http.StatusInternalServerError, CodeIOError},
		{"upstream", NewUpstreamError(CodeTranscriptionServiceError, "down", false), http.StatusBadGateway, CodeTranscriptionServiceError},
		{"upstream timeout", NewUpstreamError(CodeSummarizationServiceError, "slow", true), http.StatusGatewayTimeout, CodeSummarizationServiceError},
		{"extraction timeout", NewExtractionTimeoutError("slow ffmpeg"), http.StatusGatewayTimeout, CodeExtractionTimeout},
		{"canceled", NewCanceledError(), StatusClientClosedRequest, CodeRequestCanceled},
		{"internal", NewInternalError("oops"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAPIError_JSON(t *testing.T) {
	err := NewMissingFileError(MsgNoAudio)
	err.RequestID = "req-1"

	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "No audio uploaded", body["error"])
	assert.Equal(t, "bad_request", body["kind"])
	assert.Equal(t, "MissingFile", body["code"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.NotContains(t, body, "details")
}

func TestAPIError_WithDetail(t *testing.T) {
	err := NewNotFoundError("Artifact").WithDetail("id", "abc")
	assert.Equal(t, "Artifact not found", err.Error())
	assert.Equal(t, map[string]string{"id": "abc"}, err.Details)
}
