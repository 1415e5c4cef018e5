package queries

import (
	"context"
	"log/slog"
	"strings"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

type ListReleasesQuery struct {
	Status     string
	ClientType string
	Search     string
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetRelease(ctx context.Context, releaseID string) (entities.Release, error) {
	return uc.Repository.GetRelease(ctx, strings.TrimSpace(releaseID))
}

func (uc QueryUseCase) ListReleases(ctx context.Context, query ListReleasesQuery) ([]entities.Release, error) {
	filter := ports.ReleaseFilter{Search: strings.TrimSpace(query.Search)}
	if status, ok := entities.ParseReleaseStatus(query.Status); ok {
		filter.Status = status
	}
	if clientType, ok := entities.ParseClientType(query.ClientType); ok {
		filter.ClientType = clientType
	}
	return uc.Repository.ListReleases(ctx, filter)
}

func (uc QueryUseCase) ListModerationActions(ctx context.Context, releaseID string) ([]entities.ModerationAction, error) {
	if _, err := uc.Repository.GetRelease(ctx, strings.TrimSpace(releaseID)); err != nil {
		return nil, err
	}
	return uc.Repository.ListModerationActions(ctx, strings.TrimSpace(releaseID))
}

func (uc QueryUseCase) CountPending(ctx context.Context) (int, error) {
	return uc.Repository.CountReleases(ctx, entities.ReleaseStatusPending)
}
