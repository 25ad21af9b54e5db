package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"meeting-digest/internal/app/api"
)

// MockTranscriber is a testify mock of api.Transcriber
type MockTranscriber struct {
	mock.Mock
}

var _ api.Transcriber = (*MockTranscriber)(nil)

func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{}
	m.Test(t)
	return m
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	args := m.Called(ctx, audioPath)
	return args.String(0), args.Error(1)
}

// MockSummarizer is a testify mock of api.Summarizer
type MockSummarizer struct {
	mock.Mock
}

var _ api.Summarizer = (*MockSummarizer)(nil)

func NewMockSummarizer(t *testing.T) *MockSummarizer {
	m := &MockSummarizer{}
	m.Test(t)
	return m
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
