package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	monitorings map[string]entities.Monitoring
	byRelease   map[string]string
	results     map[string][]entities.MonitoringResult
	cycles      map[string][]entities.CheckCycle
}

func NewStore(seed []entities.Monitoring) *Store {
	s := &Store{
		monitorings: make(map[string]entities.Monitoring, len(seed)),
		byRelease:   make(map[string]string, len(seed)),
		results:     make(map[string][]entities.MonitoringResult),
		cycles:      make(map[string][]entities.CheckCycle),
	}
	for _, item := range seed {
		if item.Version == 0 {
			item.Version = 1
		}
		s.results[item.MonitoringID] = append([]entities.MonitoringResult(nil), item.Results...)
		item.Results = nil
		s.monitorings[item.MonitoringID] = item
		s.byRelease[item.ReleaseID] = item.MonitoringID
	}
	return s
}

func (s *Store) CreateMonitoring(_ context.Context, monitoring entities.Monitoring) (entities.Monitoring, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.byRelease[monitoring.ReleaseID]; ok {
		return s.withResults(s.monitorings[existingID]), false, nil
	}
	if _, ok := s.monitorings[monitoring.MonitoringID]; ok {
		return entities.Monitoring{}, false, fmt.Errorf("%w: monitoring %s already exists", domainerrors.ErrConflict, monitoring.MonitoringID)
	}
	monitoring.Results = nil
	s.monitorings[monitoring.MonitoringID] = monitoring
	s.byRelease[monitoring.ReleaseID] = monitoring.MonitoringID
	return s.withResults(monitoring), true, nil
}

func (s *Store) GetMonitoring(_ context.Context, monitoringID string) (entities.Monitoring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.monitorings[strings.TrimSpace(monitoringID)]
	if !ok {
		return entities.Monitoring{}, domainerrors.ErrMonitoringNotFound
	}
	return s.withResults(item), nil
}

func (s *Store) GetMonitoringByRelease(_ context.Context, releaseID string) (entities.Monitoring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byRelease[strings.TrimSpace(releaseID)]
	if !ok {
		return entities.Monitoring{}, domainerrors.ErrMonitoringNotFound
	}
	return s.withResults(s.monitorings[id]), nil
}

func (s *Store) ListMonitorings(_ context.Context, filter ports.MonitoringFilter) ([]entities.Monitoring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Monitoring, 0, len(s.monitorings))
	for _, item := range s.monitorings {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, s.withResults(item))
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].MonitoringID < items[j].MonitoringID
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) UpdateMonitoring(_ context.Context, monitoring entities.Monitoring, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.monitorings[monitoring.MonitoringID]
	if !ok {
		return domainerrors.ErrMonitoringNotFound
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("%w: monitoring %s changed since version %d", domainerrors.ErrConflict, monitoring.MonitoringID, expectedVersion)
	}
	monitoring.ReleaseID = current.ReleaseID
	monitoring.CreatedAt = current.CreatedAt
	monitoring.Version = expectedVersion + 1
	monitoring.Results = nil
	s.monitorings[monitoring.MonitoringID] = monitoring
	return nil
}

func (s *Store) AppendResult(_ context.Context, result entities.MonitoringResult) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.monitorings[result.MonitoringID]; !ok {
		return false, domainerrors.ErrMonitoringNotFound
	}
	for _, existing := range s.results[result.MonitoringID] {
		if existing.FoundURL == result.FoundURL {
			return false, nil
		}
	}
	s.results[result.MonitoringID] = append(s.results[result.MonitoringID], result)
	return true, nil
}

func (s *Store) GetResult(_ context.Context, resultID string) (entities.MonitoringResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, items := range s.results {
		for _, item := range items {
			if item.ResultID == resultID {
				return item, nil
			}
		}
	}
	return entities.MonitoringResult{}, domainerrors.ErrResultNotFound
}

func (s *Store) ListResults(_ context.Context, monitoringID string) ([]entities.MonitoringResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.monitorings[monitoringID]; !ok {
		return nil, domainerrors.ErrMonitoringNotFound
	}
	return append([]entities.MonitoringResult{}, s.results[monitoringID]...), nil
}

func (s *Store) SetResultVerified(_ context.Context, resultID string, verified entities.Verified) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for monitoringID, items := range s.results {
		for i := range items {
			if items[i].ResultID == resultID {
				s.results[monitoringID][i].Verified = verified
				return nil
			}
		}
	}
	return domainerrors.ErrResultNotFound
}

func (s *Store) SaveCycle(_ context.Context, cycle entities.CheckCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles[cycle.MonitoringID] = append(s.cycles[cycle.MonitoringID], cycle)
	return nil
}

// ListCycles returns the newest cycles first.
func (s *Store) ListCycles(_ context.Context, monitoringID string, limit int) ([]entities.CheckCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.cycles[monitoringID]
	items := make([]entities.CheckCycle, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		items = append(items, stored[i])
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) PruneHistory(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, monitoring := range s.monitorings {
		if monitoring.Status != entities.MonitoringStatusComplete {
			continue
		}
		kept := s.results[id][:0]
		for _, result := range s.results[id] {
			if result.Verified == entities.VerifiedFalse && result.CreatedAt.Before(olderThan) {
				removed++
				continue
			}
			kept = append(kept, result)
		}
		s.results[id] = kept

		keptCycles := s.cycles[id][:0]
		for _, cycle := range s.cycles[id] {
			if cycle.StartedAt.Before(olderThan) {
				removed++
				continue
			}
			keptCycles = append(keptCycles, cycle)
		}
		s.cycles[id] = keptCycles
	}
	return removed, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) withResults(item entities.Monitoring) entities.Monitoring {
	item.TargetWebsites = append([]string(nil), item.TargetWebsites...)
	item.Keywords = append([]string(nil), item.Keywords...)
	item.Results = append([]entities.MonitoringResult{}, s.results[item.MonitoringID]...)
	return item
}
