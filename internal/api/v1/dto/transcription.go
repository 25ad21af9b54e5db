package dto

// TranscribeForm carries the optional reference to previously extracted audio
type TranscribeForm struct {
	AudioID string `form:"audio_id" json:"audio_id" binding:"omitempty,uuid"`
}

// TranscriptionResponse is returned by POST /transcribe
type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}
