package artifact

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"

	apperrors "meeting-digest/internal/app/errors"
)

const maxFilenameLength = 255

var extPattern = regexp.MustCompile(`^[a-z0-9]{1,8}$`)

// extensions for sniffed types when the client name carries none
var mimeExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/avi":       ".avi",
	"audio/mpeg":      ".mp3",
	"audio/wave":      ".wav",
	"audio/aiff":      ".aiff",
	"audio/mp4":       ".m4a",
	"audio/basic":     ".au",
	"application/ogg": ".ogg",
}

// types that http.DetectContentType reports for containers it cannot name
var opaqueMediaTypes = []string{"application/octet-stream", "application/ogg"}

// SanitizeFilename validates a client supplied filename. Names that could
// address anything outside a single directory entry are rejected. An empty
// name is allowed; the stored path never uses it.
func SanitizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", nil
	case len(name) > maxFilenameLength:
		return "", apperrors.Wrapf(apperrors.ErrUnsafeFilename, "name longer than %d bytes", maxFilenameLength)
	case strings.ContainsAny(name, "/\\\x00"):
		return "", apperrors.Wrapf(apperrors.ErrUnsafeFilename, "%q contains a path separator", name)
	case name == "." || name == "..":
		return "", apperrors.Wrapf(apperrors.ErrUnsafeFilename, "%q is a directory reference", name)
	}
	return name, nil
}

// IsMediaType reports whether a sniffed content type may hold audio or video
func IsMediaType(mimeType string) bool {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.TrimSpace(base)
	return strings.HasPrefix(base, "video/") ||
		strings.HasPrefix(base, "audio/") ||
		lo.Contains(opaqueMediaTypes, base)
}

// extensionFor keeps the client extension when it is plain alphanumerics,
// otherwise derives one from the sniffed type.
func extensionFor(name, mimeType string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if extPattern.MatchString(ext) {
		return "." + ext
	}
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	return ".bin"
}
