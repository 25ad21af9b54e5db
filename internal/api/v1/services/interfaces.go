package services

import (
	"context"
	"io"

	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/app/model"
)

// MediaService defines the interface for audio extraction
type MediaService interface {
	ExtractAudio(ctx context.Context, upload dto.Upload) (*dto.ExtractAudioResponse, error)
}

// TranscriptionService defines the interface for transcription operations
type TranscriptionService interface {
	TranscribeUpload(ctx context.Context, upload dto.Upload) (*dto.TranscriptionResponse, error)
	TranscribeArtifact(ctx context.Context, audioID string) (*dto.TranscriptionResponse, error)
}

// SummaryService defines the interface for summarization
type SummaryService interface {
	Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummaryResponse, error)
}

// PipelineService chains extraction, transcription and summarization
type PipelineService interface {
	Process(ctx context.Context, upload dto.Upload) (*dto.PipelineResponse, error)
}

// ArtifactService defines the interface for derived file downloads
type ArtifactService interface {
	GetAudio(ctx context.Context, id string) (*model.Artifact, error)
}

// ArtifactStore is the part of artifact.Store the services rely on
type ArtifactStore interface {
	Save(ctx context.Context, kind model.ArtifactKind, originalName string, r io.Reader) (*model.Artifact, error)
	Reserve(kind model.ArtifactKind, parentID, ext string) *model.Artifact
	Commit(ctx context.Context, a *model.Artifact, mimeType string) error
	Get(ctx context.Context, id string) (*model.Artifact, error)
	Release(a *model.Artifact)
}

// AudioExtractor is the part of audio.Extractor the services rely on
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}
