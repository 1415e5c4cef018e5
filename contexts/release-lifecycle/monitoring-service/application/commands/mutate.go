package commands

import (
	"context"
	"errors"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

const maxMutateAttempts = 3

// mutate reloads and reapplies change when another writer bumped the version.
// change may return errSkipWrite to leave the record untouched.
func mutate(
	ctx context.Context,
	repo ports.Repository,
	monitoringID string,
	change func(*entities.Monitoring) error,
) (entities.Monitoring, error) {
	var lastErr error
	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		monitoring, err := repo.GetMonitoring(ctx, monitoringID)
		if err != nil {
			return entities.Monitoring{}, err
		}
		if err := change(&monitoring); err != nil {
			if errors.Is(err, errSkipWrite) {
				return monitoring, nil
			}
			return entities.Monitoring{}, err
		}
		expected := monitoring.Version
		if err := repo.UpdateMonitoring(ctx, monitoring, expected); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				lastErr = err
				continue
			}
			return entities.Monitoring{}, err
		}
		monitoring.Version = expected + 1
		return monitoring, nil
	}
	return entities.Monitoring{}, lastErr
}

var errSkipWrite = errors.New("no change")
