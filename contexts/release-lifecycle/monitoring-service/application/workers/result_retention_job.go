package workers

import (
	"context"
	"log/slog"
	"time"

	application "pressroom/contexts/release-lifecycle/monitoring-service/application"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

// ResultRetentionJob drops rejected results and old cycle records of
// completed monitorings.
type ResultRetentionJob struct {
	Repository ports.Repository
	Clock      ports.Clock
	Retention  time.Duration
	Disabled   bool
	Logger     *slog.Logger
}

func (j ResultRetentionJob) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	if j.Disabled || j.Retention <= 0 {
		return nil
	}
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	removed, err := j.Repository.PruneHistory(ctx, now.Add(-j.Retention))
	if err != nil {
		logger.Error("monitoring history prune failed",
			"event", "monitoring_history_prune_failed",
			"module", "release-lifecycle/monitoring-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if removed > 0 {
		logger.Info("monitoring history pruned",
			"event", "monitoring_history_pruned",
			"module", "release-lifecycle/monitoring-service",
			"layer", "worker",
			"removed_count", removed,
		)
	}
	return nil
}
