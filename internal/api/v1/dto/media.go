package dto

import (
	"io"
	"time"
)

// Upload is a client file handed from a handler to a service. Filename is
// the untrusted client name.
type Upload struct {
	Filename string
	Content  io.Reader
}

// ExtractAudioResponse is returned by POST /extract-audio
type ExtractAudioResponse struct {
	AudioFilename string    `json:"audio_filename"`
	AudioID       string    `json:"audio_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// PipelineResponse is returned by POST /process
type PipelineResponse struct {
	AudioID       string `json:"audio_id"`
	AudioFilename string `json:"audio_filename"`
	Transcription string `json:"transcription"`
	Summary       string `json:"summary"`
}
