package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sha256("hello world")
const helloWorldSHA = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func TestCalculateFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	sum, size, err := CalculateFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, helloWorldSHA, sum)
	assert.Equal(t, int64(11), size)

	_, _, err = CalculateFileHash(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestHashingWriter(t *testing.T) {
	var buf bytes.Buffer
	hw := NewHashingWriter(&buf)

	_, err := hw.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = hw.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, "hello world", buf.String())
	assert.Equal(t, helloWorldSHA, hw.Sum())
	assert.Equal(t, int64(11), hw.Written())
}
