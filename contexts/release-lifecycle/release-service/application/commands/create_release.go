package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

type CreateReleaseCommand struct {
	Title           string
	Subtitle        string
	Content         string
	Author          string
	ClientName      string
	ClientType      string
	MediaOutlet     string
	PublicationURL  string
	PublicationDate *time.Time
	Category        string
	Region          string
}

type CreateReleaseUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateReleaseUseCase) Execute(ctx context.Context, cmd CreateReleaseCommand) (entities.Release, error) {
	logger := application.ResolveLogger(uc.Logger)

	clientType, _ := entities.ParseClientType(cmd.ClientType)
	release := entities.Release{
		Title:           strings.TrimSpace(cmd.Title),
		Subtitle:        strings.TrimSpace(cmd.Subtitle),
		Content:         cmd.Content,
		Author:          strings.TrimSpace(cmd.Author),
		ClientName:      strings.TrimSpace(cmd.ClientName),
		ClientType:      clientType,
		MediaOutlet:     strings.TrimSpace(cmd.MediaOutlet),
		PublicationURL:  strings.TrimSpace(cmd.PublicationURL),
		PublicationDate: cmd.PublicationDate,
		Category:        strings.TrimSpace(cmd.Category),
		Region:          strings.TrimSpace(cmd.Region),
		Status:          entities.ReleaseStatusDraft,
		Version:         1,
	}
	if !release.ValidateCreate() {
		logger.Warn("release create rejected",
			"event", "release_create_invalid",
			"module", "release-lifecycle/release-service",
			"layer", "application",
			"client_type", cmd.ClientType,
		)
		return entities.Release{}, domainerrors.ErrValidation
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Release{}, err
	}
	now := uc.Clock.Now().UTC()
	release.ReleaseID = id
	release.CreatedAt = now
	release.UpdatedAt = now

	if err := uc.Repository.CreateRelease(ctx, release); err != nil {
		logger.Error("release create failed",
			"event", "release_create_failed",
			"module", "release-lifecycle/release-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Release{}, err
	}

	logger.Info("release created",
		"event", "release_created",
		"module", "release-lifecycle/release-service",
		"layer", "application",
		"release_id", release.ReleaseID,
		"client_type", string(release.ClientType),
	)
	return release, nil
}
