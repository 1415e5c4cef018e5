package sinks

import (
	"context"
	"fmt"

	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	"pressroom/internal/shared/events"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// BusSink publishes each alert as an alert.raised envelope.
type BusSink struct {
	Publisher Publisher
	Topic     string
}

func (s BusSink) Name() string {
	return "bus"
}

func (s BusSink) Deliver(ctx context.Context, alert entities.Alert) error {
	if s.Publisher == nil {
		return fmt.Errorf("bus publisher is not configured")
	}
	topic := s.Topic
	if topic == "" {
		topic = events.TopicAlertRaised
	}
	envelope := events.New(
		alert.AlertID,
		"alert.raised",
		"alert-dispatcher",
		"alert",
		alert.AlertID,
		alert.CreatedAt,
		alert.Payload(),
	)
	envelope.CorrelationID = alert.RelatedReleaseID
	return s.Publisher.Publish(ctx, topic, envelope)
}
