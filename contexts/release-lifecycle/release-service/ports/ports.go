package ports

import (
	"context"
	"time"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
)

type ReleaseFilter struct {
	Status     entities.ReleaseStatus
	ClientType entities.ClientType
	Search     string
}

// Repository is the authoritative release store.
// Lists come back in submission order: SubmittedAt, then CreatedAt, then id.
type Repository interface {
	CreateRelease(ctx context.Context, release entities.Release) error
	GetRelease(ctx context.Context, releaseID string) (entities.Release, error)
	ListReleases(ctx context.Context, filter ReleaseFilter) ([]entities.Release, error)
	CountReleases(ctx context.Context, status entities.ReleaseStatus) (int, error)
	// UpdateRelease stores release when the stored version equals expectedVersion,
	// bumping it by one, and appends actions in the same unit of work.
	UpdateRelease(ctx context.Context, release entities.Release, expectedVersion int64, actions ...entities.ModerationAction) error
	AppendModerationAction(ctx context.Context, action entities.ModerationAction) error
	ListModerationActions(ctx context.Context, releaseID string) ([]entities.ModerationAction, error)
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]entities.Release, error)
	PruneModerationActions(ctx context.Context, olderThan time.Time, statuses []entities.ReleaseStatus) (int64, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ContentAnalyzer scores a release. Implementations return
// ErrAnalyzerUnavailable-wrapped errors on transport failures.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, title string, content string) (entities.Analysis, error)
}

type TransitionEvent struct {
	Release     entities.Release
	From        entities.ReleaseStatus
	To          entities.ReleaseStatus
	ModeratorID string
	OccurredAt  time.Time
}

// TransitionObserver is notified after a status change is stored.
type TransitionObserver interface {
	ReleaseTransitioned(ctx context.Context, event TransitionEvent)
}

type Metrics interface {
	ObserveTransition(from string, to string)
	ObserveAnalysis(outcome string)
}
