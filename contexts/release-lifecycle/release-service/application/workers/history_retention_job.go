package workers

import (
	"context"
	"log/slog"
	"time"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

// HistoryRetentionJob prunes moderation actions of finished releases once they
// are older than the retention window. Releases still in flight keep their history.
type HistoryRetentionJob struct {
	Repository ports.Repository
	Clock      ports.Clock
	Retention  time.Duration
	Disabled   bool
	Logger     *slog.Logger
}

func (j HistoryRetentionJob) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	if j.Disabled || j.Retention <= 0 {
		return nil
	}
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	removed, err := j.Repository.PruneModerationActions(ctx, now.Add(-j.Retention), []entities.ReleaseStatus{
		entities.ReleaseStatusPublished,
		entities.ReleaseStatusRejected,
	})
	if err != nil {
		logger.Error("moderation history prune failed",
			"event", "release_history_prune_failed",
			"module", "release-lifecycle/release-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if removed > 0 {
		logger.Info("moderation history pruned",
			"event", "release_history_pruned",
			"module", "release-lifecycle/release-service",
			"layer", "worker",
			"removed_count", removed,
		)
	}
	return nil
}
