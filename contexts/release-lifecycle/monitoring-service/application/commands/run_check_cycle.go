package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "pressroom/contexts/release-lifecycle/monitoring-service/application"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/services"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

const (
	defaultCheckerTimeout = 20 * time.Second
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 10 * time.Second
)

type RetryPolicy struct {
	// Attempts counts retries after the first call.
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration
	// PauseAfter is the consecutive failed cycles that pause a monitoring;
	// zero means Attempts+1.
	PauseAfter int
}

func (p RetryPolicy) pauseThreshold() int {
	if p.PauseAfter > 0 {
		return p.PauseAfter
	}
	return p.Attempts + 1
}

type CycleResult struct {
	Cycle      entities.CheckCycle
	Monitoring entities.Monitoring
	NewResults []entities.MonitoringResult
	Paused     bool
}

// RunCheckCycleUseCase is the unit of work a timer invokes per monitoring.
type RunCheckCycleUseCase struct {
	Repository ports.Repository
	Checker    ports.PublicationChecker
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Locks      *application.KeyedLocks
	Cycles     *application.CycleRegistry
	Observers  ports.MonitoringObserver
	Metrics    ports.Metrics
	Policy     RetryPolicy
	Logger     *slog.Logger
}

func (uc RunCheckCycleUseCase) Execute(ctx context.Context, monitoringID string) (CycleResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	monitoringID = strings.TrimSpace(monitoringID)
	if uc.Locks != nil {
		unlock := uc.Locks.Lock(monitoringID)
		defer unlock()
	}

	monitoring, err := uc.Repository.GetMonitoring(ctx, monitoringID)
	if err != nil {
		return CycleResult{}, err
	}
	if monitoring.Status != entities.MonitoringStatusActive {
		return CycleResult{}, domainerrors.ErrMonitoringNotActive
	}

	startedAt := uc.Clock.Now().UTC()
	cycleCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if uc.Cycles != nil {
		token := uc.Cycles.Register(monitoringID, cancel)
		defer uc.Cycles.Release(monitoringID, token)
	}

	candidates, attempts, checkErr := uc.check(cycleCtx, monitoring)
	added := make([]entities.MonitoringResult, 0, len(candidates))
	if checkErr == nil {
		added, checkErr = uc.appendResults(ctx, cycleCtx, monitoring, candidates, startedAt)
	}

	outcome := entities.CycleOutcomeSucceeded
	switch {
	case checkErr == nil:
	case cycleCtx.Err() != nil:
		outcome = entities.CycleOutcomeCancelled
	default:
		outcome = entities.CycleOutcomeFailed
	}

	threshold := uc.Policy.pauseThreshold()
	pausedNow := false
	updated, err := mutate(ctx, uc.Repository, monitoringID, func(m *entities.Monitoring) error {
		pausedNow = false
		m.LastChecked = &startedAt
		m.UpdatedAt = uc.Clock.Now().UTC()
		switch outcome {
		case entities.CycleOutcomeSucceeded:
			m.ConsecutiveFailures = 0
		case entities.CycleOutcomeFailed:
			m.ConsecutiveFailures++
			if services.ShouldPause(*m, threshold) {
				m.Status = entities.MonitoringStatusPaused
				pausedNow = true
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("monitoring cycle bookkeeping failed",
			"event", "monitoring_cycle_update_failed",
			"module", "release-lifecycle/monitoring-service",
			"layer", "application",
			"monitoring_id", monitoringID,
			"error", err.Error(),
		)
		// Appended results are durable; their publications still get announced.
		uc.notifyFound(ctx, monitoring, added)
		return CycleResult{NewResults: added}, err
	}

	cycle := entities.CheckCycle{
		MonitoringID: monitoringID,
		StartedAt:    startedAt,
		FinishedAt:   uc.Clock.Now().UTC(),
		Attempts:     attempts,
		Outcome:      outcome,
		NewResults:   len(added),
	}
	if checkErr != nil {
		cycle.Error = checkErr.Error()
	}
	if id, err := uc.IDGen.NewID(ctx); err == nil {
		cycle.CycleID = id
		if err := uc.Repository.SaveCycle(ctx, cycle); err != nil {
			logger.Warn("monitoring cycle record failed",
				"event", "monitoring_cycle_record_failed",
				"module", "release-lifecycle/monitoring-service",
				"layer", "application",
				"monitoring_id", monitoringID,
				"error", err.Error(),
			)
		}
	}
	if uc.Metrics != nil {
		uc.Metrics.ObserveCheckCycle(string(outcome), len(added), cycle.FinishedAt.Sub(startedAt))
	}

	logger.Info("monitoring check cycle finished",
		"event", "monitoring_cycle_finished",
		"module", "release-lifecycle/monitoring-service",
		"layer", "application",
		"monitoring_id", monitoringID,
		"outcome", string(outcome),
		"attempts", attempts,
		"new_results", len(added),
		"consecutive_failures", updated.ConsecutiveFailures,
	)

	uc.notifyFound(ctx, updated, added)
	if uc.Observers != nil && pausedNow {
		uc.Observers.MonitoringPaused(ctx, updated, fmt.Sprintf("%d consecutive failed check cycles", updated.ConsecutiveFailures))
	}
	if pausedNow {
		logger.Warn("monitoring paused after repeated failures",
			"event", "monitoring_auto_paused",
			"module", "release-lifecycle/monitoring-service",
			"layer", "application",
			"monitoring_id", monitoringID,
			"consecutive_failures", updated.ConsecutiveFailures,
		)
	}

	return CycleResult{
		Cycle:      cycle,
		Monitoring: updated,
		NewResults: added,
		Paused:     pausedNow,
	}, nil
}

func (uc RunCheckCycleUseCase) notifyFound(ctx context.Context, monitoring entities.Monitoring, added []entities.MonitoringResult) {
	if uc.Observers == nil {
		return
	}
	for _, result := range added {
		uc.Observers.PublicationFound(ctx, monitoring, result)
	}
}

func (uc RunCheckCycleUseCase) check(
	ctx context.Context,
	monitoring entities.Monitoring,
) ([]entities.Candidate, int, error) {
	if uc.Checker == nil {
		return nil, 0, domainerrors.ErrCheckerUnavailable
	}
	timeout := uc.Policy.Timeout
	if timeout <= 0 {
		timeout = defaultCheckerTimeout
	}
	initial := uc.Policy.InitialBackoff
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	maxBackoff := uc.Policy.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = defaultMaxBackoff
	}
	fingerprint := services.FingerprintFor(monitoring)

	attempts := 0
	var candidates []entities.Candidate
	err := application.Retry(ctx, uc.Policy.Attempts+1, initial, maxBackoff, func() error {
		attempts++
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		found, err := uc.Checker.Check(callCtx, monitoring.TargetWebsites, fingerprint)
		if err != nil {
			if errors.Is(err, domainerrors.ErrCheckerUnavailable) {
				return err
			}
			return fmt.Errorf("%w: %v", domainerrors.ErrCheckerUnavailable, err)
		}
		candidates = found
		return nil
	})
	return candidates, attempts, err
}

// appendResults stops at cancellation; results appended before it stay.
func (uc RunCheckCycleUseCase) appendResults(
	ctx context.Context,
	cycleCtx context.Context,
	monitoring entities.Monitoring,
	candidates []entities.Candidate,
	startedAt time.Time,
) ([]entities.MonitoringResult, error) {
	added := make([]entities.MonitoringResult, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if err := cycleCtx.Err(); err != nil {
			return added, err
		}
		foundURL := services.NormalizeFoundURL(candidate.URL)
		if foundURL == "" {
			continue
		}
		if _, dup := seen[foundURL]; dup {
			continue
		}
		seen[foundURL] = struct{}{}

		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return added, err
		}
		foundAt := candidate.FoundAt.UTC()
		if candidate.FoundAt.IsZero() {
			foundAt = startedAt
		}
		website := strings.TrimSpace(candidate.WebsiteName)
		if website == "" {
			website = services.NormalizeSite(foundURL)
		}
		result := entities.MonitoringResult{
			ResultID:     id,
			MonitoringID: monitoring.MonitoringID,
			FoundURL:     foundURL,
			FoundAt:      foundAt,
			WebsiteName:  website,
			Excerpt:      strings.TrimSpace(candidate.Excerpt),
			Verified:     entities.VerifiedUnset,
			CreatedAt:    startedAt,
		}
		appended, err := uc.Repository.AppendResult(ctx, result)
		if err != nil {
			return added, err
		}
		if appended {
			added = append(added, result)
		}
	}
	return added, nil
}
