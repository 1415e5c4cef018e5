package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/domain/services"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

type SubmitReleaseCommand struct {
	ReleaseID string
	ActorID   string
}

type ApproveReleaseCommand struct {
	ReleaseID     string
	ModeratorID   string
	ModeratorName string
	Comments      string
}

type RejectReleaseCommand struct {
	ReleaseID     string
	ModeratorID   string
	ModeratorName string
	Feedback      string
	Templates     []string
	Highlight     string
}

type EditReleaseCommand struct {
	ReleaseID     string
	ModeratorID   string
	ModeratorName string
	Title         string
	EditedContent string
	Comments      string
}

// ModerateReleaseUseCase pairs status changes with their moderation log entry.
type ModerateReleaseUseCase struct {
	Transition TransitionReleaseUseCase
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ModerateReleaseUseCase) Submit(ctx context.Context, cmd SubmitReleaseCommand) (entities.Release, error) {
	release, err := uc.Repository.GetRelease(ctx, strings.TrimSpace(cmd.ReleaseID))
	if err != nil {
		return entities.Release{}, err
	}
	return uc.Transition.Execute(ctx, TransitionReleaseCommand{
		ReleaseID:      release.ReleaseID,
		Target:         entities.ReleaseStatusPending,
		ModeratorID:    strings.TrimSpace(cmd.ActorID),
		ExpectedStatus: release.Status,
	})
}

func (uc ModerateReleaseUseCase) Approve(ctx context.Context, cmd ApproveReleaseCommand) (entities.Release, error) {
	if strings.TrimSpace(cmd.ModeratorID) == "" {
		return entities.Release{}, domainerrors.ErrUnauthorizedActor
	}
	return uc.Transition.execute(ctx, TransitionReleaseCommand{
		ReleaseID:      cmd.ReleaseID,
		Target:         entities.ReleaseStatusApproved,
		ModeratorID:    cmd.ModeratorID,
		ModeratorName:  cmd.ModeratorName,
		ExpectedStatus: entities.ReleaseStatusPending,
	}, &actionSpec{
		Type:     entities.ModerationActionApprove,
		Comments: strings.TrimSpace(cmd.Comments),
	})
}

func (uc ModerateReleaseUseCase) Reject(ctx context.Context, cmd RejectReleaseCommand) (entities.Release, error) {
	if strings.TrimSpace(cmd.ModeratorID) == "" {
		return entities.Release{}, domainerrors.ErrUnauthorizedActor
	}
	templates := make([]services.FeedbackTemplate, 0, len(cmd.Templates))
	for _, raw := range cmd.Templates {
		templates = append(templates, services.FeedbackTemplate(strings.ToLower(strings.TrimSpace(raw))))
	}
	feedback, err := services.ComposeFeedback(cmd.Feedback, templates, cmd.Highlight)
	if err != nil {
		return entities.Release{}, err
	}
	return uc.Transition.execute(ctx, TransitionReleaseCommand{
		ReleaseID:      cmd.ReleaseID,
		Target:         entities.ReleaseStatusRejected,
		ModeratorID:    cmd.ModeratorID,
		ModeratorName:  cmd.ModeratorName,
		ExpectedStatus: entities.ReleaseStatusPending,
	}, &actionSpec{
		Type:     entities.ModerationActionReject,
		Comments: feedback,
	})
}

// Edit rewrites content while the release is still under moderation.
// Status is left unchanged.
func (uc ModerateReleaseUseCase) Edit(ctx context.Context, cmd EditReleaseCommand) (entities.Release, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ModeratorID) == "" {
		return entities.Release{}, domainerrors.ErrUnauthorizedActor
	}
	if strings.TrimSpace(cmd.EditedContent) == "" && strings.TrimSpace(cmd.Title) == "" {
		return entities.Release{}, fmt.Errorf("%w: edited content or title is required", domainerrors.ErrValidation)
	}

	release, err := uc.Repository.GetRelease(ctx, strings.TrimSpace(cmd.ReleaseID))
	if err != nil {
		return entities.Release{}, err
	}
	switch release.Status {
	case entities.ReleaseStatusPending, entities.ReleaseStatusRejected:
	default:
		return entities.Release{}, fmt.Errorf("%w: cannot edit a %s release", domainerrors.ErrInvalidTransition, release.Status)
	}

	now := uc.Clock.Now().UTC()
	if title := strings.TrimSpace(cmd.Title); title != "" {
		release.Title = title
	}
	if strings.TrimSpace(cmd.EditedContent) != "" {
		release.Content = cmd.EditedContent
	}
	release.UpdatedAt = now
	expectedVersion := release.Version

	action, err := uc.Transition.newAction(ctx, release.ReleaseID, cmd.ModeratorID, cmd.ModeratorName, actionSpec{
		Type:          entities.ModerationActionEdit,
		Comments:      strings.TrimSpace(cmd.Comments),
		EditedContent: cmd.EditedContent,
	}, now)
	if err != nil {
		return entities.Release{}, err
	}
	if err := uc.Repository.UpdateRelease(ctx, release, expectedVersion, action); err != nil {
		return entities.Release{}, err
	}
	release.Version = expectedVersion + 1
	release.ModerationHistory = append(release.ModerationHistory, action)

	logger.Info("release edited by moderator",
		"event", "release_edited",
		"module", "release-lifecycle/release-service",
		"layer", "application",
		"release_id", release.ReleaseID,
		"moderator_id", cmd.ModeratorID,
	)
	return release, nil
}
