package services

import (
	"context"
	stderrors "errors"
	"strconv"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/app/api"
	apperrors "meeting-digest/internal/app/errors"
)

// toAPIError maps domain and upstream failures onto the client taxonomy.
// missingMsg is the message for an absent or empty upload; upstreamCode
// names the hosted service the operation depends on, or is CodeIOError for
// local media work.
func toAPIError(err error, missingMsg, upstreamCode string) error {
	if err == nil {
		return nil
	}

	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.NewCanceledError()
	}

	var upErr *api.UpstreamError
	if stderrors.As(err, &upErr) {
		return upstreamAPIError(upErr, upstreamCode)
	}

	switch {
	case stderrors.Is(err, apperrors.ErrMissingFile):
		return errors.NewMissingFileError(missingMsg)
	case stderrors.Is(err, apperrors.ErrUnsafeFilename):
		return errors.NewInvalidArgumentError("Unsafe filename", map[string]string{"filename": err.Error()})
	case stderrors.Is(err, apperrors.ErrUnsupportedMedia):
		return errors.NewInvalidArgumentError("Unsupported media type", map[string]string{"file": err.Error()})
	case stderrors.Is(err, apperrors.ErrTooLarge):
		return errors.NewPayloadTooLargeError("Upload exceeds the size limit")
	case stderrors.Is(err, apperrors.ErrArtifactNotFound):
		return errors.NewNotFoundError("Audio")
	case stderrors.Is(err, apperrors.ErrNoAudioTrack):
		return errors.NewNoAudioTrackError("Video has no audio track")
	case stderrors.Is(err, apperrors.ErrMediaDecode):
		return errors.NewMediaDecodeError("Could not decode media file")
	case stderrors.Is(err, apperrors.ErrIO):
		return errors.NewIOError("Failed to process file")
	case stderrors.Is(err, context.DeadlineExceeded) && upstreamCode == errors.CodeIOError:
		return errors.NewExtractionTimeoutError("Audio extraction timed out")
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewUpstreamError(upstreamCode, "Request timed out", true)
	}
	return err
}

func upstreamAPIError(upErr *api.UpstreamError, code string) *errors.APIError {
	message := "Transcription service failed"
	if code == errors.CodeSummarizationServiceError {
		message = "Summarization service failed"
	}
	if upErr.Timeout {
		message += ": timed out"
	} else if upErr.Message != "" {
		message += ": " + upErr.Message
	}

	apiErr := errors.NewUpstreamError(code, message, upErr.Timeout).
		WithDetail("provider", upErr.Provider).
		WithDetail("upstream_code", upErr.Code)
	if upErr.StatusCode != 0 {
		apiErr.WithDetail("upstream_status", strconv.Itoa(upErr.StatusCode))
	}
	return apiErr
}
