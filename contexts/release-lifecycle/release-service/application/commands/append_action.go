package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

type AppendModerationActionCommand struct {
	ReleaseID     string
	ModeratorID   string
	ModeratorName string
	Action        string
	Comments      string
	EditedContent string
}

// AppendModerationActionUseCase records an action without touching status.
type AppendModerationActionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc AppendModerationActionUseCase) Execute(
	ctx context.Context,
	cmd AppendModerationActionCommand,
) (entities.ModerationAction, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ModeratorID) == "" {
		return entities.ModerationAction{}, domainerrors.ErrUnauthorizedActor
	}
	actionType := entities.ModerationActionType(strings.ToLower(strings.TrimSpace(cmd.Action)))
	if !actionType.Valid() {
		return entities.ModerationAction{}, domainerrors.ErrValidation
	}

	release, err := uc.Repository.GetRelease(ctx, strings.TrimSpace(cmd.ReleaseID))
	if err != nil {
		return entities.ModerationAction{}, err
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ModerationAction{}, err
	}
	action := entities.ModerationAction{
		ActionID:      id,
		ReleaseID:     release.ReleaseID,
		ModeratorID:   strings.TrimSpace(cmd.ModeratorID),
		ModeratorName: strings.TrimSpace(cmd.ModeratorName),
		Action:        actionType,
		Comments:      strings.TrimSpace(cmd.Comments),
		EditedContent: cmd.EditedContent,
		CreatedAt:     uc.Clock.Now().UTC(),
	}
	if err := uc.Repository.AppendModerationAction(ctx, action); err != nil {
		return entities.ModerationAction{}, err
	}

	logger.Info("moderation action appended",
		"event", "moderation_action_appended",
		"module", "release-lifecycle/release-service",
		"layer", "application",
		"release_id", release.ReleaseID,
		"action", string(action.Action),
	)
	return action, nil
}
