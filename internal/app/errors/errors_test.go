package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapMatchesSentinelAndCause(t *testing.T) {
	err := Wrap(ErrIO, fs.ErrPermission)

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrMediaDecode)
	assert.Equal(t, "storage I/O failed: permission denied", err.Error())
}

func TestWrapNilCause(t *testing.T) {
	assert.Same(t, ErrNoAudioTrack, Wrap(ErrNoAudioTrack, nil))
}

func TestWrapf(t *testing.T) {
	err := Wrapf(ErrUnsafeFilename, "name %q", "../x")

	assert.ErrorIs(t, err, ErrUnsafeFilename)
	assert.Contains(t, err.Error(), `name "../x"`)

	var target *Error
	assert.True(t, stderrors.As(err, &target))
}
