package api

import "context"

// Transcriber converts an audio file to text using a hosted speech-to-text service.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Summarizer condenses a transcript using a hosted language model.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
