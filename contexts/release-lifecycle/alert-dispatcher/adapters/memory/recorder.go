package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/ports"
)

const defaultCapacity = 1000

// Recorder is a sink that keeps the most recent alerts in memory.
type Recorder struct {
	mu       sync.RWMutex
	items    []entities.Alert
	capacity int
}

func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Recorder{capacity: capacity}
}

func (r *Recorder) Name() string {
	return "memory"
}

func (r *Recorder) Deliver(_ context.Context, alert entities.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, cloneAlert(alert))
	if overflow := len(r.items) - r.capacity; overflow > 0 {
		r.items = append([]entities.Alert(nil), r.items[overflow:]...)
	}
	return nil
}

func (r *Recorder) ListAlerts(_ context.Context, filter ports.AlertFilter) ([]entities.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Alert, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		item := r.items[i]
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		out = append(out, cloneAlert(item))
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Recorder) Now() time.Time {
	return time.Now().UTC()
}

func (r *Recorder) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneAlert(alert entities.Alert) entities.Alert {
	if alert.Metadata != nil {
		metadata := make(map[string]string, len(alert.Metadata))
		for key, value := range alert.Metadata {
			metadata[key] = value
		}
		alert.Metadata = metadata
	}
	return alert
}
