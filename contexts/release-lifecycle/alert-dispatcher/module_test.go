package alertdispatcher

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/alert-dispatcher/domain/errors"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/ports"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type failingSink struct{}

func (failingSink) Name() string { return "broken" }

func (failingSink) Deliver(context.Context, entities.Alert) error {
	return errors.New("connection refused")
}

type countingSink struct {
	mu    sync.Mutex
	items []entities.Alert
}

func (s *countingSink) Name() string { return "counting" }

func (s *countingSink) Deliver(_ context.Context, alert entities.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, alert)
	return nil
}

type alertCounter struct {
	seen map[string]int
}

func (c *alertCounter) ObserveAlert(alertType string, severity string) {
	c.seen[alertType+"/"+severity]++
}

func TestEvaluateQueueThresholds(t *testing.T) {
	metrics := &alertCounter{seen: map[string]int{}}
	module := NewModule(Dependencies{
		Clock:            fixedClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		Metrics:          metrics,
		BacklogThreshold: 20,
	})
	ctx := context.Background()

	if _, raised, err := module.Dispatcher.EvaluateQueue(ctx, 20); raised || err != nil {
		t.Fatalf("count at threshold must not alert, raised=%v err=%v", raised, err)
	}
	alert, raised, err := module.Dispatcher.EvaluateQueue(ctx, 21)
	if err != nil || !raised {
		t.Fatalf("expected alert above threshold, raised=%v err=%v", raised, err)
	}
	if alert.Type != entities.AlertTypeQueueBacklog || alert.Severity != entities.SeverityMedium || alert.AlertID == "" {
		t.Fatalf("unexpected alert %+v", alert)
	}
	if !alert.CreatedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected clock timestamp, got %s", alert.CreatedAt)
	}
	high, _, _ := module.Dispatcher.EvaluateQueue(ctx, 41)
	if high.Severity != entities.SeverityHigh {
		t.Fatalf("expected high severity for a doubled backlog, got %s", high.Severity)
	}
	if _, _, err := module.Dispatcher.EvaluateQueue(ctx, -1); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if metrics.seen["queue_backlog/medium"] != 1 || metrics.seen["queue_backlog/high"] != 1 {
		t.Fatalf("unexpected metrics %+v", metrics.seen)
	}
	if module.Recorder.Len() != 2 {
		t.Fatalf("expected two recorded alerts, got %d", module.Recorder.Len())
	}
}

func TestSinkFailureDoesNotStopOtherSinks(t *testing.T) {
	counting := &countingSink{}
	module := NewModule(Dependencies{Sinks: []ports.Sink{failingSink{}, counting}})

	alert, err := module.Dispatcher.MonitoringPaused(context.Background(), entities.PausedInfo{
		MonitoringID:        "m-1",
		ReleaseID:           "r-1",
		ReleaseTitle:        "Novo programa ambiental",
		ConsecutiveFailures: 4,
		Reason:              "4 consecutive failed check cycles",
	})
	if !errors.Is(err, domainerrors.ErrSinkFailed) || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected joined sink error, got %v", err)
	}
	if alert.Severity != entities.SeverityHigh || alert.RelatedReleaseID != "r-1" {
		t.Fatalf("unexpected alert %+v", alert)
	}
	if len(counting.items) != 1 || module.Recorder.Len() != 1 {
		t.Fatalf("healthy sinks must still receive the alert")
	}
}

func TestPublicationFoundAlertAndListing(t *testing.T) {
	module := NewInMemoryModule(20, nil)
	ctx := context.Background()

	if _, err := module.Dispatcher.PublicationFound(ctx, entities.PublicationInfo{ReleaseID: "r-1"}); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error without url, got %v", err)
	}
	for _, url := range []string{"https://site/a", "https://site/b"} {
		if _, err := module.Dispatcher.PublicationFound(ctx, entities.PublicationInfo{
			MonitoringID: "m-1",
			ReleaseID:    "r-1",
			ReleaseTitle: "Novo programa ambiental",
			ResultID:     "res-" + url[len(url)-1:],
			FoundURL:     url,
			WebsiteName:  "site",
		}); err != nil {
			t.Fatalf("publication alert failed: %v", err)
		}
	}
	if _, _, err := module.Dispatcher.EvaluateQueue(ctx, 30); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	all, err := module.Handler.ListAlertsHandler(ctx, "", 0)
	if err != nil || len(all.Items) != 3 || all.Items[0].Type != "queue_backlog" {
		t.Fatalf("expected newest first listing, got %+v (%v)", all.Items, err)
	}
	found, err := module.Handler.ListAlertsHandler(ctx, "publication_found", 1)
	if err != nil || len(found.Items) != 1 || found.Items[0].Metadata["found_url"] != "https://site/b" {
		t.Fatalf("unexpected filtered listing %+v (%v)", found.Items, err)
	}
	if _, err := module.Handler.ListAlertsHandler(ctx, "spike", 0); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}
