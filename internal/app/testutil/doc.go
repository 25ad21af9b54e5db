// Package testutil provides test doubles and fixtures shared across packages.
//
//   - MemoryArtifactDAO: in-memory repository.ArtifactDAO with error injection
//   - MockTranscriber / MockSummarizer: testify mocks of the upstream ports
//   - Media fixtures: byte payloads that sniff as MP4/MP3, multipart builders
package testutil
