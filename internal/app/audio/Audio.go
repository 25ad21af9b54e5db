package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	apperrors "meeting-digest/internal/app/errors"
	"meeting-digest/internal/app/metrics"
	"meeting-digest/internal/app/model"
	"meeting-digest/internal/app/util/executor"
)

// MimeType of every extracted file
const MimeType = "audio/mpeg"

// stderr fragments that point at the output side rather than the input
var ioFailureHints = []string{
	"no space left on device",
	"permission denied",
	"read-only file system",
	"disk quota exceeded",
	"error opening output",
	"could not open file",
}

// Options configure the extractor
type Options struct {
	FFmpegPath    string
	FFprobePath   string
	Bitrate       string
	MaxConcurrent int
}

// Extractor pulls the audio track out of media files with ffprobe and ffmpeg
type Extractor struct {
	exec    executor.Executor
	opts    Options
	slots   *semaphore.Weighted
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewExtractor(exec executor.Executor, opts Options, m *metrics.Metrics, logger *zap.Logger) *Extractor {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.FFprobePath == "" {
		opts.FFprobePath = "ffprobe"
	}
	if opts.Bitrate == "" {
		opts.Bitrate = "128k"
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	return &Extractor{
		exec:    exec,
		opts:    opts,
		slots:   semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		metrics: m,
		logger:  logger.With(zap.String("component", "audio_extractor")),
	}
}

// Probe runs ffprobe on path. Any failure means the file is not decodable
// media.
func (e *Extractor) Probe(ctx context.Context, path string) (*model.FFProbeOutput, error) {
	output, err := e.exec.Execute(ctx, e.opts.FFprobePath,
		"-v", "error", "-print_format", "json", "-show_streams", "-show_format", path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrIO, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrMediaDecode, err)
	}

	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal([]byte(output), &probeOutput); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrMediaDecode, "unreadable ffprobe output: %v", err)
	}
	return &probeOutput, nil
}

// ExtractAudio encodes the first audio stream of videoPath to an MP3 at
// audioPath. audioPath does not exist when an error is returned.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath, audioPath string) (err error) {
	if err := e.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.slots.Release(1)

	start := time.Now()
	defer func() {
		e.metrics.ObserveExtraction(start, err)
		if err != nil {
			e.removePartial(audioPath)
		}
	}()

	probe, err := e.Probe(ctx, videoPath)
	if err != nil {
		return err
	}
	if len(probe.AudioStreams()) == 0 {
		return apperrors.Wrapf(apperrors.ErrNoAudioTrack, "%d streams, none audio", len(probe.Streams))
	}

	_, err = e.exec.Execute(ctx, e.opts.FFmpegPath,
		"-y", "-v", "error",
		"-i", videoPath,
		"-vn", "-map", "0:a:0",
		"-acodec", "libmp3lame", "-b:a", e.opts.Bitrate,
		audioPath)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return classifyFFmpegError(err)
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrIO, err)
	}
	if info.Size() == 0 {
		return apperrors.Wrapf(apperrors.ErrIO, "ffmpeg wrote an empty file")
	}

	e.logger.Debug("Audio extracted",
		zap.Float64("duration_sec", probe.DurationSeconds()),
		zap.Int64("bytes", info.Size()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func classifyFFmpegError(err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return apperrors.Wrap(apperrors.ErrIO, err)
	}
	var exitErr *executor.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.ToLower(exitErr.Stderr)
		for _, hint := range ioFailureHints {
			if strings.Contains(stderr, hint) {
				return apperrors.Wrap(apperrors.ErrIO, err)
			}
		}
		return apperrors.Wrap(apperrors.ErrMediaDecode, err)
	}
	return apperrors.Wrap(apperrors.ErrIO, fmt.Errorf("run ffmpeg: %w", err))
}

func (e *Extractor) removePartial(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.logger.Warn("Failed to remove partial audio", zap.String("path", path), zap.Error(err))
	}
}
