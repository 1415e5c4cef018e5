package application

import (
	"context"
	"sync"

	"pressroom/contexts/release-lifecycle/release-service/ports"
)

// Observers fans a transition out to observers registered after wiring.
type Observers struct {
	mu    sync.RWMutex
	items []ports.TransitionObserver
}

func (o *Observers) Register(observer ports.TransitionObserver) {
	if observer == nil {
		return
	}
	o.mu.Lock()
	o.items = append(o.items, observer)
	o.mu.Unlock()
}

func (o *Observers) ReleaseTransitioned(ctx context.Context, event ports.TransitionEvent) {
	o.mu.RLock()
	items := append([]ports.TransitionObserver(nil), o.items...)
	o.mu.RUnlock()

	for _, observer := range items {
		observer.ReleaseTransitioned(ctx, event)
	}
}
