package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

const targetJournalistsMaxAttempts = 3

type SetTargetJournalistsCommand struct {
	ReleaseID  string
	ContactIDs []string
}

type SetTargetJournalistsUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute re-reads and retries on version conflicts; the target list does not
// depend on any other release field.
func (uc SetTargetJournalistsUseCase) Execute(ctx context.Context, cmd SetTargetJournalistsCommand) (entities.Release, error) {
	logger := application.ResolveLogger(uc.Logger)

	contactIDs := make([]string, 0, len(cmd.ContactIDs))
	seen := make(map[string]struct{}, len(cmd.ContactIDs))
	for _, id := range cmd.ContactIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		contactIDs = append(contactIDs, id)
	}

	var lastErr error
	for attempt := 0; attempt < targetJournalistsMaxAttempts; attempt++ {
		release, err := uc.Repository.GetRelease(ctx, strings.TrimSpace(cmd.ReleaseID))
		if err != nil {
			return entities.Release{}, err
		}
		expectedVersion := release.Version
		release.TargetJournalists = contactIDs
		release.UpdatedAt = uc.Clock.Now().UTC()

		err = uc.Repository.UpdateRelease(ctx, release, expectedVersion)
		if err == nil {
			release.Version = expectedVersion + 1
			logger.Info("release target journalists updated",
				"event", "release_targets_updated",
				"module", "release-lifecycle/release-service",
				"layer", "application",
				"release_id", release.ReleaseID,
				"target_count", len(contactIDs),
			)
			return release, nil
		}
		if !errors.Is(err, domainerrors.ErrConflict) {
			return entities.Release{}, err
		}
		lastErr = err
	}
	return entities.Release{}, lastErr
}
