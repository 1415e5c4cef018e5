package sinks

import (
	"context"
	"log/slog"

	application "pressroom/contexts/release-lifecycle/alert-dispatcher/application"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
)

type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Name() string {
	return "log"
}

func (s LogSink) Deliver(ctx context.Context, alert entities.Alert) error {
	level := slog.LevelInfo
	if alert.Severity == entities.SeverityHigh {
		level = slog.LevelWarn
	}
	application.ResolveLogger(s.Logger).Log(ctx, level, alert.Title,
		"event", "alert_delivered",
		"module", "release-lifecycle/alert-dispatcher",
		"layer", "adapter",
		"alert_id", alert.AlertID,
		"alert_type", string(alert.Type),
		"severity", string(alert.Severity),
		"related_release_id", alert.RelatedReleaseID,
		"message", alert.Message,
	)
	return nil
}
