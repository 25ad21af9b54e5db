package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/api/v1/services"
	"meeting-digest/internal/app/model"
)

// MockServices bundles a mock for every v1 service
type MockServices struct {
	MediaService         *MockMediaService
	TranscriptionService *MockTranscriptionService
	SummaryService       *MockSummaryService
	PipelineService      *MockPipelineService
	ArtifactService      *MockArtifactService
}

func NewMockServices(t *testing.T) *MockServices {
	ms := &MockServices{
		MediaService:         &MockMediaService{},
		TranscriptionService: &MockTranscriptionService{},
		SummaryService:       &MockSummaryService{},
		PipelineService:      &MockPipelineService{},
		ArtifactService:      &MockArtifactService{},
	}
	ms.MediaService.Test(t)
	ms.TranscriptionService.Test(t)
	ms.SummaryService.Test(t)
	ms.PipelineService.Test(t)
	ms.ArtifactService.Test(t)
	return ms
}

// AssertExpectations checks every mock
func (ms *MockServices) AssertExpectations(t *testing.T) {
	ms.MediaService.AssertExpectations(t)
	ms.TranscriptionService.AssertExpectations(t)
	ms.SummaryService.AssertExpectations(t)
	ms.PipelineService.AssertExpectations(t)
	ms.ArtifactService.AssertExpectations(t)
}

type MockMediaService struct {
	mock.Mock
}

var _ services.MediaService = (*MockMediaService)(nil)

func (m *MockMediaService) ExtractAudio(ctx context.Context, upload dto.Upload) (*dto.ExtractAudioResponse, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExtractAudioResponse), args.Error(1)
}

type MockTranscriptionService struct {
	mock.Mock
}

var _ services.TranscriptionService = (*MockTranscriptionService)(nil)

func (m *MockTranscriptionService) TranscribeUpload(ctx context.Context, upload dto.Upload) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptionResponse), args.Error(1)
}

func (m *MockTranscriptionService) TranscribeArtifact(ctx context.Context, audioID string) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx, audioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptionResponse), args.Error(1)
}

type MockSummaryService struct {
	mock.Mock
}

var _ services.SummaryService = (*MockSummaryService)(nil)

func (m *MockSummaryService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummaryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SummaryResponse), args.Error(1)
}

type MockPipelineService struct {
	mock.Mock
}

var _ services.PipelineService = (*MockPipelineService)(nil)

func (m *MockPipelineService) Process(ctx context.Context, upload dto.Upload) (*dto.PipelineResponse, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PipelineResponse), args.Error(1)
}

type MockArtifactService struct {
	mock.Mock
}

var _ services.ArtifactService = (*MockArtifactService)(nil)

func (m *MockArtifactService) GetAudio(ctx context.Context, id string) (*model.Artifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artifact), args.Error(1)
}
