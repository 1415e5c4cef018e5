package ports

import (
	"context"
	"time"

	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
)

// Sink delivers one alert to one destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, alert entities.Alert) error
}

type AlertFilter struct {
	Type  entities.AlertType
	Limit int
}

// AlertLog is the read side of the recording sink.
type AlertLog interface {
	ListAlerts(ctx context.Context, filter AlertFilter) ([]entities.Alert, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Metrics interface {
	ObserveAlert(alertType string, severity string)
}
