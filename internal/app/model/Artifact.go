package model

import "time"

type ArtifactKind string

const (
	KindVideoUpload  ArtifactKind = "video_upload"
	KindAudioUpload  ArtifactKind = "audio_upload"
	KindDerivedAudio ArtifactKind = "derived_audio"
)

// Artifact is a file held in temporary storage. StoredPath is always built
// from ID; OriginalName is metadata only.
type Artifact struct {
	ID           string
	Kind         ArtifactKind
	OriginalName string
	StoredPath   string
	MimeType     string
	Size         int64
	SHA256       string
	ParentID     string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the artifact is past its expiry at now
func (a *Artifact) Expired(now time.Time) bool {
	return !a.ExpiresAt.After(now)
}
