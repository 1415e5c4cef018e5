package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/application/commands"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

// ScheduledPublishJob publishes scheduled releases whose publication date has passed.
type ScheduledPublishJob struct {
	Repository ports.Repository
	Transition commands.TransitionReleaseUseCase
	Clock      ports.Clock
	BatchSize  int
	Disabled   bool
	Logger     *slog.Logger
}

func (j ScheduledPublishJob) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	if j.Disabled {
		logger.Info("scheduled publish job disabled by feature flag",
			"event", "release_scheduled_publish_disabled",
			"module", "release-lifecycle/release-service",
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

	items, err := j.Repository.ListDueScheduled(ctx, now, limit)
	if err != nil {
		logger.Error("scheduled publish list failed",
			"event", "release_scheduled_publish_list_failed",
			"module", "release-lifecycle/release-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	published := 0
	for _, release := range items {
		_, err := j.Transition.Execute(ctx, commands.TransitionReleaseCommand{
			ReleaseID:      release.ReleaseID,
			Target:         entities.ReleaseStatusPublished,
			ModeratorID:    "system",
			ExpectedStatus: entities.ReleaseStatusScheduled,
		})
		if errors.Is(err, domainerrors.ErrConflict) {
			continue
		}
		if err != nil {
			logger.Error("scheduled publish failed",
				"event", "release_scheduled_publish_failed",
				"module", "release-lifecycle/release-service",
				"layer", "worker",
				"release_id", release.ReleaseID,
				"error", err.Error(),
			)
			return err
		}
		published++
	}

	if published > 0 {
		logger.Info("scheduled publish cycle completed",
			"event", "release_scheduled_publish_cycle_completed",
			"module", "release-lifecycle/release-service",
			"layer", "worker",
			"processed_count", published,
		)
	}
	return nil
}
