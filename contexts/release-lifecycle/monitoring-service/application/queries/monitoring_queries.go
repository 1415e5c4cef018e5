package queries

import (
	"context"
	"strings"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

const defaultCycleLimit = 50

type QueryUseCase struct {
	Repository ports.Repository
}

func (uc QueryUseCase) GetMonitoring(ctx context.Context, monitoringID string) (entities.Monitoring, error) {
	return uc.Repository.GetMonitoring(ctx, strings.TrimSpace(monitoringID))
}

func (uc QueryUseCase) GetMonitoringByRelease(ctx context.Context, releaseID string) (entities.Monitoring, error) {
	return uc.Repository.GetMonitoringByRelease(ctx, strings.TrimSpace(releaseID))
}

// ListMonitorings ignores an unknown status filter.
func (uc QueryUseCase) ListMonitorings(ctx context.Context, status string) ([]entities.Monitoring, error) {
	filter := ports.MonitoringFilter{}
	if parsed, ok := entities.ParseMonitoringStatus(status); ok {
		filter.Status = parsed
	}
	return uc.Repository.ListMonitorings(ctx, filter)
}

func (uc QueryUseCase) ListCycles(ctx context.Context, monitoringID string, limit int) ([]entities.CheckCycle, error) {
	if _, err := uc.Repository.GetMonitoring(ctx, strings.TrimSpace(monitoringID)); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultCycleLimit {
		limit = defaultCycleLimit
	}
	return uc.Repository.ListCycles(ctx, strings.TrimSpace(monitoringID), limit)
}
