package application

import (
	"sync"

	"pressroom/contexts/release-lifecycle/release-service/domain/services"
)

// ModerationSettings holds the tunables read on every queue evaluation so
// operators can adjust thresholds at runtime.
type ModerationSettings struct {
	mu         sync.RWMutex
	thresholds services.Thresholds
	priority   services.PriorityPolicy
}

func NewModerationSettings(thresholds services.Thresholds, keywords []string) *ModerationSettings {
	return &ModerationSettings{
		thresholds: thresholds,
		priority:   services.NewPriorityPolicy(keywords),
	}
}

func (s *ModerationSettings) Thresholds() services.Thresholds {
	if s == nil {
		return services.DefaultThresholds()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

func (s *ModerationSettings) SetThresholds(thresholds services.Thresholds) error {
	if err := thresholds.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.thresholds = thresholds
	s.mu.Unlock()
	return nil
}

func (s *ModerationSettings) Priority() services.PriorityPolicy {
	if s == nil {
		return services.NewPriorityPolicy(nil)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.priority
}
