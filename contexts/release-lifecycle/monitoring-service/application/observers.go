package application

import (
	"context"
	"sync"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

// Observers fans monitoring events out to observers registered after wiring.
type Observers struct {
	mu    sync.RWMutex
	items []ports.MonitoringObserver
}

func (o *Observers) Register(observer ports.MonitoringObserver) {
	if observer == nil {
		return
	}
	o.mu.Lock()
	o.items = append(o.items, observer)
	o.mu.Unlock()
}

func (o *Observers) snapshot() []ports.MonitoringObserver {
	if o == nil {
		return nil
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]ports.MonitoringObserver(nil), o.items...)
}

func (o *Observers) PublicationFound(ctx context.Context, monitoring entities.Monitoring, result entities.MonitoringResult) {
	for _, observer := range o.snapshot() {
		observer.PublicationFound(ctx, monitoring, result)
	}
}

func (o *Observers) MonitoringPaused(ctx context.Context, monitoring entities.Monitoring, reason string) {
	for _, observer := range o.snapshot() {
		observer.MonitoringPaused(ctx, monitoring, reason)
	}
}
