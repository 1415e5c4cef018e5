package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	alertcommands "pressroom/contexts/release-lifecycle/alert-dispatcher/application/commands"
	alertentities "pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	journalistqueries "pressroom/contexts/release-lifecycle/journalist-directory/application/queries"
	journalistentities "pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	monitoringcommands "pressroom/contexts/release-lifecycle/monitoring-service/application/commands"
	monitoringentities "pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	monitoringerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	releasecommands "pressroom/contexts/release-lifecycle/release-service/application/commands"
	releasequeries "pressroom/contexts/release-lifecycle/release-service/application/queries"
	releaseentities "pressroom/contexts/release-lifecycle/release-service/domain/entities"
	releaseerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	releaseports "pressroom/contexts/release-lifecycle/release-service/ports"
	"pressroom/internal/shared/events"

	"github.com/google/uuid"
)

type eventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// registerBridges connects the modules. Modules never import each other;
// every cross-module reaction lives here.
func registerBridges(platform Platform, logger *slog.Logger) {
	platform.Releases.Observers.Register(releaseBridge{
		matcher:    platform.Journalists.Matcher,
		targets:    platform.Releases.Targets,
		monitoring: platform.Monitoring.Create,
		releases:   platform.Releases.Queries,
		alerts:     platform.Alerts.Dispatcher,
		bus:        platform.Bus,
		logger:     logger,
	})
	platform.Monitoring.Observers.Register(monitoringBridge{
		alerts: platform.Alerts.Dispatcher,
		logger: logger,
	})
}

type transitionPayload struct {
	ReleaseID   string    `json:"release_id"`
	Title       string    `json:"title"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ModeratorID string    `json:"moderator_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type releaseBridge struct {
	matcher    journalistqueries.MatchUseCase
	targets    releasecommands.SetTargetJournalistsUseCase
	monitoring monitoringcommands.CreateMonitoringUseCase
	releases   releasequeries.QueryUseCase
	alerts     alertcommands.Dispatcher
	bus        eventPublisher
	logger     *slog.Logger
}

func (b releaseBridge) ReleaseTransitioned(ctx context.Context, event releaseports.TransitionEvent) {
	b.publish(ctx, event)
	switch event.To {
	case releaseentities.ReleaseStatusPending:
		b.evaluateQueue(ctx)
	case releaseentities.ReleaseStatusApproved, releaseentities.ReleaseStatusPublished:
		b.assignJournalists(ctx, event.Release)
		b.startMonitoring(ctx, event.Release)
	}
}

func (b releaseBridge) publish(ctx context.Context, event releaseports.TransitionEvent) {
	if b.bus == nil {
		return
	}
	envelope := events.New(
		uuid.NewString(),
		"release.transitioned",
		"release-service",
		"release",
		event.Release.ReleaseID,
		event.OccurredAt,
		transitionPayload{
			ReleaseID:   event.Release.ReleaseID,
			Title:       event.Release.Title,
			From:        string(event.From),
			To:          string(event.To),
			ModeratorID: event.ModeratorID,
			OccurredAt:  event.OccurredAt,
		},
	)
	if err := b.bus.Publish(ctx, events.TopicReleaseTransitioned, envelope); err != nil {
		b.fail("release transition publish failed", "bridge_release_publish_failed", event.Release.ReleaseID, err)
	}
}

func (b releaseBridge) evaluateQueue(ctx context.Context) {
	pending, err := b.releases.CountPending(ctx)
	if err != nil {
		b.fail("pending count failed", "bridge_queue_count_failed", "", err)
		return
	}
	if _, _, err := b.alerts.EvaluateQueue(ctx, pending); err != nil {
		b.fail("queue backlog alert failed", "bridge_queue_alert_failed", "", err)
	}
}

func (b releaseBridge) assignJournalists(ctx context.Context, release releaseentities.Release) {
	if len(release.TargetJournalists) > 0 {
		return
	}
	ranked, err := b.matcher.Match(ctx, journalistentities.ReleaseProfile{
		ReleaseID:   release.ReleaseID,
		MediaOutlet: release.MediaOutlet,
		Category:    release.Category,
		Region:      release.Region,
	})
	if err != nil {
		b.fail("journalist match failed", "bridge_journalist_match_failed", release.ReleaseID, err)
		return
	}
	if len(ranked) == 0 {
		return
	}
	contactIDs := make([]string, 0, len(ranked))
	for _, item := range ranked {
		contactIDs = append(contactIDs, item.Contact.ContactID)
	}
	if _, err := b.targets.Execute(ctx, releasecommands.SetTargetJournalistsCommand{
		ReleaseID:  release.ReleaseID,
		ContactIDs: contactIDs,
	}); err != nil {
		b.fail("target journalists update failed", "bridge_targets_failed", release.ReleaseID, err)
	}
}

func (b releaseBridge) startMonitoring(ctx context.Context, release releaseentities.Release) {
	var extra []string
	if release.PublicationURL != "" {
		extra = append(extra, release.PublicationURL)
	}
	if _, _, err := b.monitoring.OnReleaseEligible(ctx, monitoringcommands.EligibleRelease{
		ReleaseID:   release.ReleaseID,
		Title:       release.Title,
		MediaOutlet: release.MediaOutlet,
		ExtraSites:  extra,
	}); err != nil {
		b.fail("monitoring creation failed", "bridge_monitoring_create_failed", release.ReleaseID, err)
	}
}

func (b releaseBridge) fail(message string, event string, releaseID string, err error) {
	b.logger.Error(message,
		"event", event,
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"release_id", releaseID,
		"error", err.Error(),
	)
}

type monitoringBridge struct {
	alerts alertcommands.Dispatcher
	logger *slog.Logger
}

func (b monitoringBridge) PublicationFound(ctx context.Context, monitoring monitoringentities.Monitoring, result monitoringentities.MonitoringResult) {
	if result.Verified != monitoringentities.VerifiedUnset {
		return
	}
	if _, err := b.alerts.PublicationFound(ctx, alertentities.PublicationInfo{
		MonitoringID: monitoring.MonitoringID,
		ReleaseID:    monitoring.ReleaseID,
		ReleaseTitle: monitoring.ReleaseTitle,
		ResultID:     result.ResultID,
		FoundURL:     result.FoundURL,
		WebsiteName:  result.WebsiteName,
	}); err != nil {
		b.logger.Error("publication alert failed",
			"event", "bridge_publication_alert_failed",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"monitoring_id", monitoring.MonitoringID,
			"error", err.Error(),
		)
	}
}

func (b monitoringBridge) MonitoringPaused(ctx context.Context, monitoring monitoringentities.Monitoring, reason string) {
	if _, err := b.alerts.MonitoringPaused(ctx, alertentities.PausedInfo{
		MonitoringID:        monitoring.MonitoringID,
		ReleaseID:           monitoring.ReleaseID,
		ReleaseTitle:        monitoring.ReleaseTitle,
		ConsecutiveFailures: monitoring.ConsecutiveFailures,
		Reason:              reason,
	}); err != nil {
		b.logger.Error("pause alert failed",
			"event", "bridge_pause_alert_failed",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"monitoring_id", monitoring.MonitoringID,
			"error", err.Error(),
		)
	}
}

// releaseLookup lets the monitoring service resolve stored releases for
// manually requested monitorings.
type releaseLookup struct {
	releases releasequeries.QueryUseCase
}

func (l releaseLookup) LookupRelease(ctx context.Context, releaseID string) (monitoringentities.ReleaseSnapshot, error) {
	release, err := l.releases.GetRelease(ctx, releaseID)
	if err != nil {
		if errors.Is(err, releaseerrors.ErrReleaseNotFound) {
			return monitoringentities.ReleaseSnapshot{}, fmt.Errorf("%w: %s", monitoringerrors.ErrReleaseNotFound, releaseID)
		}
		return monitoringentities.ReleaseSnapshot{}, err
	}
	eligible := release.Status == releaseentities.ReleaseStatusApproved ||
		release.Status == releaseentities.ReleaseStatusPublished
	return monitoringentities.ReleaseSnapshot{
		ReleaseID:      release.ReleaseID,
		Title:          release.Title,
		MediaOutlet:    release.MediaOutlet,
		PublicationURL: release.PublicationURL,
		Eligible:       eligible,
	}, nil
}
