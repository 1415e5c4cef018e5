package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	releases map[string]entities.Release
	actions  map[string][]entities.ModerationAction
	order    map[string]int64
	nextSeq  int64
	now      func() time.Time
}

func NewStore(seed []entities.Release) *Store {
	s := &Store{
		releases: make(map[string]entities.Release, len(seed)),
		actions:  make(map[string][]entities.ModerationAction),
		order:    make(map[string]int64, len(seed)),
	}
	for _, item := range seed {
		if item.Version == 0 {
			item.Version = 1
		}
		s.actions[item.ReleaseID] = append([]entities.ModerationAction(nil), item.ModerationHistory...)
		item.ModerationHistory = nil
		s.releases[item.ReleaseID] = item
		s.order[item.ReleaseID] = s.nextSeq
		s.nextSeq++
	}
	return s
}

// SetNow overrides the store clock.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) CreateRelease(_ context.Context, release entities.Release) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.releases[release.ReleaseID]; exists {
		return fmt.Errorf("%w: release %s already exists", domainerrors.ErrConflict, release.ReleaseID)
	}
	release.ModerationHistory = nil
	s.releases[release.ReleaseID] = release
	s.order[release.ReleaseID] = s.nextSeq
	s.nextSeq++
	return nil
}

func (s *Store) GetRelease(_ context.Context, releaseID string) (entities.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.releases[strings.TrimSpace(releaseID)]
	if !exists {
		return entities.Release{}, domainerrors.ErrReleaseNotFound
	}
	return s.withHistory(item), nil
}

func (s *Store) ListReleases(_ context.Context, filter ports.ReleaseFilter) ([]entities.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	items := make([]entities.Release, 0, len(s.releases))
	for _, item := range s.releases {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.ClientType != "" && item.ClientType != filter.ClientType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Title), search) &&
			!strings.Contains(strings.ToLower(item.ClientName), search) {
			continue
		}
		items = append(items, s.withHistory(item))
	}
	sort.Slice(items, func(i, j int) bool {
		return s.before(items[i], items[j])
	})
	return items, nil
}

func (s *Store) CountReleases(_ context.Context, status entities.ReleaseStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.releases {
		if status == "" || item.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *Store) UpdateRelease(
	_ context.Context,
	release entities.Release,
	expectedVersion int64,
	actions ...entities.ModerationAction,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.releases[release.ReleaseID]
	if !exists {
		return domainerrors.ErrReleaseNotFound
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("%w: release %s is at version %d, expected %d",
			domainerrors.ErrConflict, release.ReleaseID, current.Version, expectedVersion)
	}
	release.Version = expectedVersion + 1
	release.ModerationHistory = nil
	release.CreatedAt = current.CreatedAt
	s.releases[release.ReleaseID] = release
	s.actions[release.ReleaseID] = append(s.actions[release.ReleaseID], actions...)
	return nil
}

func (s *Store) AppendModerationAction(_ context.Context, action entities.ModerationAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.releases[action.ReleaseID]; !exists {
		return domainerrors.ErrReleaseNotFound
	}
	s.actions[action.ReleaseID] = append(s.actions[action.ReleaseID], action)
	return nil
}

func (s *Store) ListModerationActions(_ context.Context, releaseID string) ([]entities.ModerationAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.ModerationAction(nil), s.actions[strings.TrimSpace(releaseID)]...), nil
}

func (s *Store) ListDueScheduled(_ context.Context, now time.Time, limit int) ([]entities.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Release, 0)
	for _, item := range s.releases {
		if item.Status != entities.ReleaseStatusScheduled || item.PublicationDate == nil {
			continue
		}
		if item.PublicationDate.After(now) {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PublicationDate.Before(*items[j].PublicationDate)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) PruneModerationActions(_ context.Context, olderThan time.Time, statuses []entities.ReleaseStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed := make(map[entities.ReleaseStatus]struct{}, len(statuses))
	for _, status := range statuses {
		allowed[status] = struct{}{}
	}

	var removed int64
	for releaseID, actions := range s.actions {
		release, ok := s.releases[releaseID]
		if !ok {
			continue
		}
		if _, ok := allowed[release.Status]; !ok {
			continue
		}
		kept := actions[:0:0]
		for _, action := range actions {
			if action.CreatedAt.Before(olderThan) {
				removed++
				continue
			}
			kept = append(kept, action)
		}
		s.actions[releaseID] = kept
	}
	return removed, nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	now := s.now
	s.mu.RUnlock()
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) withHistory(item entities.Release) entities.Release {
	item.ModerationHistory = append([]entities.ModerationAction(nil), s.actions[item.ReleaseID]...)
	item.TargetJournalists = append([]string(nil), item.TargetJournalists...)
	return item
}

func (s *Store) before(a entities.Release, b entities.Release) bool {
	aSubmitted, bSubmitted := submittedOrCreated(a), submittedOrCreated(b)
	if !aSubmitted.Equal(bSubmitted) {
		return aSubmitted.Before(bSubmitted)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return s.order[a.ReleaseID] < s.order[b.ReleaseID]
}

func submittedOrCreated(release entities.Release) time.Time {
	if release.SubmittedAt != nil {
		return *release.SubmittedAt
	}
	return release.CreatedAt
}
