package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/monitoring-service/application"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/services"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

// ChangeStatusUseCase handles operator pause, resume and completion.
type ChangeStatusUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Cycles     *application.CycleRegistry
	Observers  ports.MonitoringObserver
	Logger     *slog.Logger
}

// Pause stops future cycles and cancels one in flight. Results it already
// appended are kept. Pausing a paused monitoring is a no-op.
func (uc ChangeStatusUseCase) Pause(ctx context.Context, monitoringID string) (entities.Monitoring, error) {
	monitoring, changed, err := uc.change(ctx, monitoringID, entities.MonitoringStatusPaused, false)
	if err != nil {
		return entities.Monitoring{}, err
	}
	if uc.Cycles != nil && uc.Cycles.Cancel(monitoring.MonitoringID) {
		application.ResolveLogger(uc.Logger).Info("running check cycle cancelled",
			"event", "monitoring_cycle_cancel_requested",
			"module", "release-lifecycle/monitoring-service",
			"layer", "application",
			"monitoring_id", monitoring.MonitoringID,
		)
	}
	if changed && uc.Observers != nil {
		uc.Observers.MonitoringPaused(ctx, monitoring, "paused by operator")
	}
	return monitoring, nil
}

// Resume reactivates a paused monitoring and clears its failure streak.
func (uc ChangeStatusUseCase) Resume(ctx context.Context, monitoringID string) (entities.Monitoring, error) {
	monitoring, _, err := uc.change(ctx, monitoringID, entities.MonitoringStatusActive, true)
	return monitoring, err
}

func (uc ChangeStatusUseCase) Complete(ctx context.Context, monitoringID string) (entities.Monitoring, error) {
	monitoring, _, err := uc.change(ctx, monitoringID, entities.MonitoringStatusComplete, false)
	if err != nil {
		return entities.Monitoring{}, err
	}
	if uc.Cycles != nil {
		uc.Cycles.Cancel(monitoring.MonitoringID)
	}
	return monitoring, nil
}

func (uc ChangeStatusUseCase) change(
	ctx context.Context,
	monitoringID string,
	target entities.MonitoringStatus,
	resetFailures bool,
) (entities.Monitoring, bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	var previous entities.MonitoringStatus
	changed := false
	monitoring, err := mutate(ctx, uc.Repository, strings.TrimSpace(monitoringID), func(m *entities.Monitoring) error {
		previous = m.Status
		changed = false
		if m.Status == target {
			return errSkipWrite
		}
		if !services.CanTransition(m.Status, target) {
			return fmt.Errorf("%w: %s to %s", domainerrors.ErrInvalidTransition, m.Status, target)
		}
		m.Status = target
		if resetFailures {
			m.ConsecutiveFailures = 0
		}
		m.UpdatedAt = uc.Clock.Now().UTC()
		changed = true
		return nil
	})
	if err != nil {
		return entities.Monitoring{}, false, err
	}
	if changed {
		logger.Info("monitoring status changed",
			"event", "monitoring_status_changed",
			"module", "release-lifecycle/monitoring-service",
			"layer", "application",
			"monitoring_id", monitoring.MonitoringID,
			"from", string(previous),
			"to", string(target),
		)
	}
	return monitoring, changed, nil
}
