package workers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	application "pressroom/contexts/release-lifecycle/monitoring-service/application"
	"pressroom/contexts/release-lifecycle/monitoring-service/application/commands"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/services"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

// CheckDispatcherJob runs a check cycle for every active monitoring whose
// frequency interval has elapsed, on a bounded pool.
type CheckDispatcherJob struct {
	Repository  ports.Repository
	Cycle       commands.RunCheckCycleUseCase
	Clock       ports.Clock
	BatchSize   int
	Concurrency int
	Disabled    bool
	Logger      *slog.Logger
}

func (j CheckDispatcherJob) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	if j.Disabled {
		logger.Info("monitoring check dispatcher disabled by feature flag",
			"event", "monitoring_dispatch_disabled",
			"module", "release-lifecycle/monitoring-service",
			"layer", "worker",
		)
		return nil
	}
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}
	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}
	concurrency := j.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	active, err := j.Repository.ListMonitorings(ctx, ports.MonitoringFilter{Status: entities.MonitoringStatusActive})
	if err != nil {
		logger.Error("monitoring dispatch list failed",
			"event", "monitoring_dispatch_list_failed",
			"module", "release-lifecycle/monitoring-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	due := make([]entities.Monitoring, 0, len(active))
	for _, monitoring := range active {
		if services.IsDue(monitoring, now) {
			due = append(due, monitoring)
		}
		if len(due) == limit {
			break
		}
	}

	var failed, found int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for _, monitoring := range due {
		monitoringID := monitoring.MonitoringID
		group.Go(func() error {
			result, err := j.Cycle.Execute(groupCtx, monitoringID)
			if err != nil {
				if errors.Is(err, domainerrors.ErrMonitoringNotActive) {
					return nil
				}
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				logger.Error("monitoring check cycle errored",
					"event", "monitoring_dispatch_cycle_failed",
					"module", "release-lifecycle/monitoring-service",
					"layer", "worker",
					"monitoring_id", monitoringID,
					"error", err.Error(),
				)
				atomic.AddInt64(&failed, 1)
				return nil
			}
			if result.Cycle.Outcome == entities.CycleOutcomeFailed {
				atomic.AddInt64(&failed, 1)
			}
			atomic.AddInt64(&found, int64(len(result.NewResults)))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if len(due) > 0 {
		logger.Info("monitoring dispatch completed",
			"event", "monitoring_dispatch_completed",
			"module", "release-lifecycle/monitoring-service",
			"layer", "worker",
			"dispatched_count", len(due),
			"failed_count", failed,
			"new_results", found,
		)
	}
	return nil
}
