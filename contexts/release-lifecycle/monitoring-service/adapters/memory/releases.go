package memory

import (
	"context"
	"strings"
	"sync"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
)

// ReleaseCatalog is a fixed set of release snapshots for standalone runs.
type ReleaseCatalog struct {
	mu       sync.RWMutex
	releases map[string]entities.ReleaseSnapshot
}

func NewReleaseCatalog(seed ...entities.ReleaseSnapshot) *ReleaseCatalog {
	c := &ReleaseCatalog{releases: make(map[string]entities.ReleaseSnapshot, len(seed))}
	for _, item := range seed {
		c.Put(item)
	}
	return c
}

func (c *ReleaseCatalog) Put(release entities.ReleaseSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releases[strings.TrimSpace(release.ReleaseID)] = release
}

func (c *ReleaseCatalog) LookupRelease(_ context.Context, releaseID string) (entities.ReleaseSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.releases[strings.TrimSpace(releaseID)]
	if !ok {
		return entities.ReleaseSnapshot{}, domainerrors.ErrReleaseNotFound
	}
	return item, nil
}
