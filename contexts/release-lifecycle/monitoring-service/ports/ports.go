package ports

import (
	"context"
	"time"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
)

type MonitoringFilter struct {
	Status entities.MonitoringStatus
	Limit  int
}

type Repository interface {
	// CreateMonitoring returns the existing record and false when the release
	// already has a monitoring.
	CreateMonitoring(ctx context.Context, monitoring entities.Monitoring) (entities.Monitoring, bool, error)
	GetMonitoring(ctx context.Context, monitoringID string) (entities.Monitoring, error)
	GetMonitoringByRelease(ctx context.Context, releaseID string) (entities.Monitoring, error)
	ListMonitorings(ctx context.Context, filter MonitoringFilter) ([]entities.Monitoring, error)
	UpdateMonitoring(ctx context.Context, monitoring entities.Monitoring, expectedVersion int64) error

	// AppendResult is atomic per result and returns false when the found URL
	// is already recorded for the monitoring.
	AppendResult(ctx context.Context, result entities.MonitoringResult) (bool, error)
	GetResult(ctx context.Context, resultID string) (entities.MonitoringResult, error)
	ListResults(ctx context.Context, monitoringID string) ([]entities.MonitoringResult, error)
	SetResultVerified(ctx context.Context, resultID string, verified entities.Verified) error

	SaveCycle(ctx context.Context, cycle entities.CheckCycle) error
	ListCycles(ctx context.Context, monitoringID string, limit int) ([]entities.CheckCycle, error)

	PruneHistory(ctx context.Context, olderThan time.Time) (int64, error)
}

// ReleaseLookup resolves the release a monitoring is requested for. It
// returns ErrReleaseNotFound for unknown ids.
type ReleaseLookup interface {
	LookupRelease(ctx context.Context, releaseID string) (entities.ReleaseSnapshot, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PublicationChecker looks for the fingerprint on the target sites.
// It may return an empty slice; failures are retried by the caller.
type PublicationChecker interface {
	Check(ctx context.Context, targets []string, fingerprint entities.Fingerprint) ([]entities.Candidate, error)
}

type MonitoringObserver interface {
	PublicationFound(ctx context.Context, monitoring entities.Monitoring, result entities.MonitoringResult)
	MonitoringPaused(ctx context.Context, monitoring entities.Monitoring, reason string)
}

type Metrics interface {
	ObserveCheckCycle(outcome string, newResults int, elapsed time.Duration)
}
