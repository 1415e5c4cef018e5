package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/domain/services"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

type TransitionReleaseCommand struct {
	ReleaseID     string
	Target        entities.ReleaseStatus
	ModeratorID   string
	ModeratorName string
	// ExpectedStatus, when set, is the status the caller last observed.
	// A mismatch is reported as ErrConflict instead of re-validating against
	// whatever status a concurrent writer left behind.
	ExpectedStatus  entities.ReleaseStatus
	PublicationDate *time.Time
}

type actionSpec struct {
	Type          entities.ModerationActionType
	Comments      string
	EditedContent string
}

type TransitionReleaseUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Observers  []ports.TransitionObserver
	Metrics    ports.Metrics
	Logger     *slog.Logger
}

func (uc TransitionReleaseUseCase) Execute(ctx context.Context, cmd TransitionReleaseCommand) (entities.Release, error) {
	return uc.execute(ctx, cmd, nil)
}

func (uc TransitionReleaseUseCase) execute(
	ctx context.Context,
	cmd TransitionReleaseCommand,
	spec *actionSpec,
) (entities.Release, error) {
	logger := application.ResolveLogger(uc.Logger)

	target, ok := entities.ParseReleaseStatus(string(cmd.Target))
	if !ok {
		return entities.Release{}, fmt.Errorf("%w: unknown target status %q", domainerrors.ErrInvalidTransition, cmd.Target)
	}

	release, err := uc.Repository.GetRelease(ctx, strings.TrimSpace(cmd.ReleaseID))
	if err != nil {
		return entities.Release{}, err
	}
	if cmd.ExpectedStatus != "" && release.Status != cmd.ExpectedStatus {
		logger.Warn("release transition lost race",
			"event", "release_transition_conflict",
			"module", "release-lifecycle/release-service",
			"layer", "application",
			"release_id", release.ReleaseID,
			"expected_status", string(cmd.ExpectedStatus),
			"actual_status", string(release.Status),
		)
		return entities.Release{}, fmt.Errorf("%w: expected status %s, found %s",
			domainerrors.ErrConflict, cmd.ExpectedStatus, release.Status)
	}
	if !services.CanTransition(release.Status, target) {
		if cmd.ExpectedStatus == "" && services.Superseded(release.Status, target) {
			logger.Warn("release transition lost race",
				"event", "release_transition_conflict",
				"module", "release-lifecycle/release-service",
				"layer", "application",
				"release_id", release.ReleaseID,
				"target_status", string(target),
				"actual_status", string(release.Status),
			)
			return entities.Release{}, fmt.Errorf("%w: %s was already left for %s",
				domainerrors.ErrConflict, joinStatuses(services.Predecessors(target)), release.Status)
		}
		return entities.Release{}, fmt.Errorf("%w: %s -> %s", domainerrors.ErrInvalidTransition, release.Status, target)
	}

	now := uc.Clock.Now().UTC()
	switch target {
	case entities.ReleaseStatusPending:
		if release.SubmittedAt == nil {
			release.SubmittedAt = &now
		}
	case entities.ReleaseStatusScheduled:
		date := cmd.PublicationDate
		if date == nil {
			date = release.PublicationDate
		}
		if date == nil || !date.After(now) {
			return entities.Release{}, fmt.Errorf("%w: scheduling requires a future publication date", domainerrors.ErrValidation)
		}
		scheduled := date.UTC()
		release.PublicationDate = &scheduled
	case entities.ReleaseStatusPublished:
		if release.PublicationDate == nil || release.PublicationDate.After(now) {
			release.PublicationDate = &now
		}
	}

	from := release.Status
	expectedVersion := release.Version
	release.Status = target
	release.UpdatedAt = now

	var actions []entities.ModerationAction
	if spec != nil {
		action, err := uc.newAction(ctx, release.ReleaseID, cmd.ModeratorID, cmd.ModeratorName, *spec, now)
		if err != nil {
			return entities.Release{}, err
		}
		actions = append(actions, action)
	}

	if err := uc.Repository.UpdateRelease(ctx, release, expectedVersion, actions...); err != nil {
		event := "release_transition_failed"
		if errors.Is(err, domainerrors.ErrConflict) {
			event = "release_transition_conflict"
		}
		logger.Warn("release transition not stored",
			"event", event,
			"module", "release-lifecycle/release-service",
			"layer", "application",
			"release_id", release.ReleaseID,
			"from", string(from),
			"to", string(target),
			"error", err.Error(),
		)
		return entities.Release{}, err
	}
	release.Version = expectedVersion + 1
	release.ModerationHistory = append(release.ModerationHistory, actions...)

	if uc.Metrics != nil {
		uc.Metrics.ObserveTransition(string(from), string(target))
	}
	logger.Info("release transitioned",
		"event", "release_transitioned",
		"module", "release-lifecycle/release-service",
		"layer", "application",
		"release_id", release.ReleaseID,
		"from", string(from),
		"to", string(target),
		"moderator_id", cmd.ModeratorID,
	)

	transition := ports.TransitionEvent{
		Release:     release,
		From:        from,
		To:          target,
		ModeratorID: cmd.ModeratorID,
		OccurredAt:  now,
	}
	for _, observer := range uc.Observers {
		observer.ReleaseTransitioned(ctx, transition)
	}
	return release, nil
}

func (uc TransitionReleaseUseCase) newAction(
	ctx context.Context,
	releaseID string,
	moderatorID string,
	moderatorName string,
	spec actionSpec,
	now time.Time,
) (entities.ModerationAction, error) {
	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ModerationAction{}, err
	}
	return entities.ModerationAction{
		ActionID:      id,
		ReleaseID:     releaseID,
		ModeratorID:   strings.TrimSpace(moderatorID),
		ModeratorName: strings.TrimSpace(moderatorName),
		Action:        spec.Type,
		Comments:      spec.Comments,
		EditedContent: spec.EditedContent,
		CreatedAt:     now,
	}, nil
}

func joinStatuses(statuses []entities.ReleaseStatus) string {
	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, string(status))
	}
	return strings.Join(parts, "|")
}
