package bootstrap

import (
	"context"
	"log/slog"

	"pressroom/internal/shared/events"
)

const auditConsumerGroup = "pressroom-event-audit"

// StartConsumers subscribes the process to its own bus topics until ctx
// ends. Every release transition and raised alert gets an audit log line and
// a consumed-events sample.
func (p Platform) StartConsumers(ctx context.Context, logger *slog.Logger) error {
	if p.Bus == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, topic := range []string{events.TopicReleaseTransitioned, events.TopicAlertRaised} {
		topic := topic
		if err := p.Bus.Subscribe(ctx, topic, auditConsumerGroup, func(_ context.Context, event events.Envelope) error {
			p.Metrics.ObserveBusEvent(topic, event.EventType)
			logger.Info("bus event consumed",
				"event", "bus_event_audited",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"topic", topic,
				"event_id", event.EventID,
				"event_type", event.EventType,
				"entity_type", event.EntityType,
				"entity_id", event.EntityID,
				"correlation_id", event.CorrelationID,
				"occurred_at", event.OccurredAtUTC,
			)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
