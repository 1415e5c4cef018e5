package analyzer

import (
	"context"
	"sync"
	"time"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
)

// Static returns canned analyses keyed by title, for local runs and tests.
type Static struct {
	mu       sync.Mutex
	byTitle  map[string]entities.Analysis
	fallback *entities.Analysis
	delay    time.Duration
	down     bool
	calls    int
}

func NewStatic() *Static {
	return &Static{byTitle: make(map[string]entities.Analysis)}
}

func (s *Static) Set(title string, analysis entities.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTitle[title] = analysis
}

func (s *Static) SetFallback(analysis entities.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = &analysis
}

// SetDown makes every call fail as unavailable.
func (s *Static) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// SetDelay makes every call block for d or until the context ends.
func (s *Static) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Static) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Static) Analyze(ctx context.Context, title string, _ string) (entities.Analysis, error) {
	s.mu.Lock()
	s.calls++
	delay, down := s.delay, s.down
	analysis, ok := s.byTitle[title]
	if !ok && s.fallback != nil {
		analysis, ok = *s.fallback, true
	}
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return entities.Analysis{}, ctx.Err()
		}
	}
	if down || !ok {
		return entities.Analysis{}, domainerrors.ErrAnalyzerUnavailable
	}
	return analysis, nil
}
