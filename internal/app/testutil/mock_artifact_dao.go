package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"meeting-digest/internal/app/model"
	"meeting-digest/internal/app/repository"
)

// MemoryArtifactDAO is an in-memory repository.ArtifactDAO. Set an entry in
// ErrorMap (keyed by method name) to make that method fail.
type MemoryArtifactDAO struct {
	mu        sync.RWMutex
	artifacts map[string]model.Artifact
	ErrorMap  map[string]error
}

var _ repository.ArtifactDAO = (*MemoryArtifactDAO)(nil)

func NewMemoryArtifactDAO() *MemoryArtifactDAO {
	return &MemoryArtifactDAO{
		artifacts: make(map[string]model.Artifact),
		ErrorMap:  make(map[string]error),
	}
}

func (d *MemoryArtifactDAO) Insert(_ context.Context, a *model.Artifact) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ErrorMap["Insert"]; err != nil {
		return err
	}
	d.artifacts[a.ID] = *a
	return nil
}

func (d *MemoryArtifactDAO) Get(_ context.Context, id string) (*model.Artifact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err := d.ErrorMap["Get"]; err != nil {
		return nil, err
	}
	a, ok := d.artifacts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (d *MemoryArtifactDAO) ListExpired(_ context.Context, now time.Time) ([]model.Artifact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err := d.ErrorMap["ListExpired"]; err != nil {
		return nil, err
	}
	expired := make([]model.Artifact, 0)
	for _, a := range d.artifacts {
		if a.Expired(now) {
			expired = append(expired, a)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].ExpiresAt.Before(expired[j].ExpiresAt) })
	return expired, nil
}

func (d *MemoryArtifactDAO) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ErrorMap["Delete"]; err != nil {
		return err
	}
	delete(d.artifacts, id)
	return nil
}

// Len returns the number of indexed artifacts
func (d *MemoryArtifactDAO) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.artifacts)
}

// Put inserts or replaces an artifact directly
func (d *MemoryArtifactDAO) Put(a model.Artifact) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.artifacts[a.ID] = a
}
