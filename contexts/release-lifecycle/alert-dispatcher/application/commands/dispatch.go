package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	application "pressroom/contexts/release-lifecycle/alert-dispatcher/application"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/alert-dispatcher/domain/errors"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/ports"
)

const DefaultBacklogThreshold = 20

// Dispatcher builds alerts and fans them out to every sink. It keeps no
// state between calls and never retries a sink.
type Dispatcher struct {
	Sinks            []ports.Sink
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	Metrics          ports.Metrics
	BacklogThreshold int
	Logger           *slog.Logger
}

// EvaluateQueue raises a backlog alert when more releases wait for review
// than the threshold allows.
func (d Dispatcher) EvaluateQueue(ctx context.Context, pendingCount int) (entities.Alert, bool, error) {
	if pendingCount < 0 {
		return entities.Alert{}, false, fmt.Errorf("%w: pending count must be >= 0", domainerrors.ErrValidation)
	}
	threshold := d.BacklogThreshold
	if threshold <= 0 {
		threshold = DefaultBacklogThreshold
	}
	if pendingCount <= threshold {
		return entities.Alert{}, false, nil
	}

	severity := entities.SeverityMedium
	if pendingCount > 2*threshold {
		severity = entities.SeverityHigh
	}
	alert, err := d.Raise(ctx, entities.Alert{
		Type:     entities.AlertTypeQueueBacklog,
		Title:    "Moderation queue backlog",
		Message:  fmt.Sprintf("%d releases are waiting for moderation (threshold %d)", pendingCount, threshold),
		Severity: severity,
		Source:   "release-service",
		Metadata: map[string]string{
			"pending_count": strconv.Itoa(pendingCount),
			"threshold":     strconv.Itoa(threshold),
		},
	})
	return alert, true, err
}

func (d Dispatcher) PublicationFound(ctx context.Context, info entities.PublicationInfo) (entities.Alert, error) {
	if strings.TrimSpace(info.FoundURL) == "" {
		return entities.Alert{}, fmt.Errorf("%w: found url is required", domainerrors.ErrValidation)
	}
	title := strings.TrimSpace(info.ReleaseTitle)
	if title == "" {
		title = info.ReleaseID
	}
	website := info.WebsiteName
	if website == "" {
		website = "a monitored site"
	}
	return d.Raise(ctx, entities.Alert{
		Type:             entities.AlertTypePublicationFound,
		Title:            "Publication found",
		Message:          fmt.Sprintf("%q appeared on %s: %s", title, website, info.FoundURL),
		Severity:         entities.SeverityMedium,
		Source:           "monitoring-service",
		RelatedReleaseID: info.ReleaseID,
		Metadata: map[string]string{
			"monitoring_id": info.MonitoringID,
			"result_id":     info.ResultID,
			"found_url":     info.FoundURL,
		},
	})
}

func (d Dispatcher) MonitoringPaused(ctx context.Context, info entities.PausedInfo) (entities.Alert, error) {
	if strings.TrimSpace(info.MonitoringID) == "" {
		return entities.Alert{}, fmt.Errorf("%w: monitoring id is required", domainerrors.ErrValidation)
	}
	reason := strings.TrimSpace(info.Reason)
	if reason == "" {
		reason = "paused"
	}
	title := strings.TrimSpace(info.ReleaseTitle)
	if title == "" {
		title = info.ReleaseID
	}
	return d.Raise(ctx, entities.Alert{
		Type:             entities.AlertTypeMonitoringPaused,
		Title:            "Monitoring paused",
		Message:          fmt.Sprintf("Monitoring of %q stopped: %s", title, reason),
		Severity:         entities.SeverityHigh,
		Source:           "monitoring-service",
		RelatedReleaseID: info.ReleaseID,
		Metadata: map[string]string{
			"monitoring_id":        info.MonitoringID,
			"consecutive_failures": strconv.Itoa(info.ConsecutiveFailures),
		},
	})
}

// Raise stamps the alert and delivers it to each sink in order. Failed
// sinks are logged and reported together; the rest still receive it.
func (d Dispatcher) Raise(ctx context.Context, alert entities.Alert) (entities.Alert, error) {
	logger := application.ResolveLogger(d.Logger)
	if alert.Type == "" || strings.TrimSpace(alert.Title) == "" {
		return entities.Alert{}, fmt.Errorf("%w: type and title are required", domainerrors.ErrValidation)
	}
	if alert.Severity == "" {
		alert.Severity = entities.SeverityLow
	}
	if alert.AlertID == "" && d.IDGen != nil {
		id, err := d.IDGen.NewID(ctx)
		if err != nil {
			return entities.Alert{}, err
		}
		alert.AlertID = id
	}
	if alert.CreatedAt.IsZero() && d.Clock != nil {
		alert.CreatedAt = d.Clock.Now().UTC()
	}

	var errs []error
	for _, sink := range d.Sinks {
		if err := sink.Deliver(ctx, alert); err != nil {
			logger.Error("alert sink delivery failed",
				"event", "alert_sink_failed",
				"module", "release-lifecycle/alert-dispatcher",
				"layer", "application",
				"alert_id", alert.AlertID,
				"alert_type", string(alert.Type),
				"sink", sink.Name(),
				"error", err.Error(),
			)
			errs = append(errs, fmt.Errorf("%w: %s: %v", domainerrors.ErrSinkFailed, sink.Name(), err))
		}
	}
	if d.Metrics != nil {
		d.Metrics.ObserveAlert(string(alert.Type), string(alert.Severity))
	}
	logger.Info("alert raised",
		"event", "alert_raised",
		"module", "release-lifecycle/alert-dispatcher",
		"layer", "application",
		"alert_id", alert.AlertID,
		"alert_type", string(alert.Type),
		"severity", string(alert.Severity),
		"sinks", len(d.Sinks),
		"failed_sinks", len(errs),
	)
	return alert, errors.Join(errs...)
}
