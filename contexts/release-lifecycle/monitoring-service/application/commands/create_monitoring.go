package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/monitoring-service/application"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/services"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

// EligibleRelease is the release snapshot handed over once it is approved or published.
type EligibleRelease struct {
	ReleaseID   string
	Title       string
	MediaOutlet string
	ExtraSites  []string
	Keywords    []string
	Frequency   string
}

// CreateMonitoringCommand requests a monitoring for a stored release. Title and
// media outlet always come from the release itself.
type CreateMonitoringCommand struct {
	ReleaseID  string
	ExtraSites []string
	Keywords   []string
	Frequency  string
}

type CreateMonitoringUseCase struct {
	Repository       ports.Repository
	Releases         ports.ReleaseLookup
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	DefaultFrequency entities.Frequency
	Logger           *slog.Logger
}

// Create resolves the release first and refuses unknown or not yet approved
// releases.
func (uc CreateMonitoringUseCase) Create(
	ctx context.Context,
	cmd CreateMonitoringCommand,
) (entities.Monitoring, bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	releaseID := strings.TrimSpace(cmd.ReleaseID)
	if releaseID == "" {
		return entities.Monitoring{}, false, fmt.Errorf("%w: release id is required", domainerrors.ErrValidation)
	}
	if uc.Releases == nil {
		return entities.Monitoring{}, false, fmt.Errorf("%w: no release catalog configured", domainerrors.ErrReleaseNotFound)
	}
	release, err := uc.Releases.LookupRelease(ctx, releaseID)
	if err != nil {
		return entities.Monitoring{}, false, err
	}
	if !release.Eligible {
		logger.Warn("monitoring requested for ineligible release",
			"event", "monitoring_release_not_eligible",
			"module", "release-lifecycle/monitoring-service",
			"layer", "application",
			"release_id", releaseID,
		)
		return entities.Monitoring{}, false, fmt.Errorf("%w: %s", domainerrors.ErrReleaseNotEligible, releaseID)
	}

	extra := append([]string(nil), cmd.ExtraSites...)
	if url := strings.TrimSpace(release.PublicationURL); url != "" {
		extra = append(extra, url)
	}
	return uc.OnReleaseEligible(ctx, EligibleRelease{
		ReleaseID:   releaseID,
		Title:       release.Title,
		MediaOutlet: release.MediaOutlet,
		ExtraSites:  extra,
		Keywords:    cmd.Keywords,
		Frequency:   cmd.Frequency,
	})
}

// OnReleaseEligible creates the release's monitoring once. A second call
// returns the existing record with created=false.
func (uc CreateMonitoringUseCase) OnReleaseEligible(
	ctx context.Context,
	release EligibleRelease,
) (entities.Monitoring, bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	releaseID := strings.TrimSpace(release.ReleaseID)
	if releaseID == "" {
		return entities.Monitoring{}, false, fmt.Errorf("%w: release id is required", domainerrors.ErrValidation)
	}

	if existing, err := uc.Repository.GetMonitoringByRelease(ctx, releaseID); err == nil {
		return existing, false, nil
	}

	targets := services.NormalizeTargets(append([]string{release.MediaOutlet}, release.ExtraSites...))
	if len(targets) == 0 {
		return entities.Monitoring{}, false, fmt.Errorf("%w: at least one target website is required", domainerrors.ErrValidation)
	}
	frequency := uc.DefaultFrequency
	if parsed, ok := entities.ParseFrequency(release.Frequency); ok {
		frequency = parsed
	} else if strings.TrimSpace(release.Frequency) != "" {
		return entities.Monitoring{}, false, fmt.Errorf("%w: unknown frequency %q", domainerrors.ErrValidation, release.Frequency)
	}
	if frequency == "" {
		frequency = entities.FrequencyDaily
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Monitoring{}, false, err
	}
	now := uc.Clock.Now().UTC()
	monitoring := entities.Monitoring{
		MonitoringID:   id,
		ReleaseID:      releaseID,
		ReleaseTitle:   strings.TrimSpace(release.Title),
		TargetWebsites: targets,
		Frequency:      frequency,
		Status:         entities.MonitoringStatusActive,
		Keywords:       cleanKeywords(release.Keywords),
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
		Results:        []entities.MonitoringResult{},
	}

	stored, created, err := uc.Repository.CreateMonitoring(ctx, monitoring)
	if err != nil {
		logger.Error("monitoring create failed",
			"event", "monitoring_create_failed",
			"module", "release-lifecycle/monitoring-service",
			"layer", "application",
			"release_id", releaseID,
			"error", err.Error(),
		)
		return entities.Monitoring{}, false, err
	}
	if created {
		logger.Info("monitoring created",
			"event", "monitoring_created",
			"module", "release-lifecycle/monitoring-service",
			"layer", "application",
			"monitoring_id", stored.MonitoringID,
			"release_id", releaseID,
			"targets", strings.Join(stored.TargetWebsites, ","),
		)
	}
	return stored, created, nil
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		key := strings.ToLower(keyword)
		if keyword == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, keyword)
	}
	return out
}
