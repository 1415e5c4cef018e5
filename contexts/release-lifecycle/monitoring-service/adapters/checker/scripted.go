package checker

import (
	"context"
	"sync"
	"time"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
)

type scriptedStep struct {
	candidates []entities.Candidate
	err        error
}

// Scripted replays queued responses in order, then returns no candidates.
// It replaces the random results a demo checker would produce.
type Scripted struct {
	mu      sync.Mutex
	steps   []scriptedStep
	delay   time.Duration
	calls   int
	targets [][]string
	started chan struct{}
}

func NewScripted() *Scripted {
	return &Scripted{started: make(chan struct{}, 64)}
}

func (s *Scripted) Enqueue(candidates []entities.Candidate, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, scriptedStep{candidates: candidates, err: err})
}

// SetDelay makes each call block for d or until its context ends.
func (s *Scripted) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Scripted) Targets() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.targets...)
}

// Started receives one value per call, before any delay.
func (s *Scripted) Started() <-chan struct{} {
	return s.started
}

func (s *Scripted) Check(ctx context.Context, targets []string, _ entities.Fingerprint) ([]entities.Candidate, error) {
	s.mu.Lock()
	s.calls++
	s.targets = append(s.targets, append([]string(nil), targets...))
	delay := s.delay
	var step scriptedStep
	if len(s.steps) > 0 {
		step = s.steps[0]
		s.steps = s.steps[1:]
	}
	s.mu.Unlock()

	select {
	case s.started <- struct{}{}:
	default:
	}
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if step.err != nil {
		return nil, step.err
	}
	return append([]entities.Candidate{}, step.candidates...), nil
}
