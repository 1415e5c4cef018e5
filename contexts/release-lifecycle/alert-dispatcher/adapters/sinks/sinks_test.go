package sinks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	"pressroom/internal/shared/events"
)

func sampleAlert() entities.Alert {
	return entities.Alert{
		AlertID:          "a-1",
		Type:             entities.AlertTypePublicationFound,
		Title:            "Publication found",
		Message:          "found on site",
		Severity:         entities.SeverityMedium,
		RelatedReleaseID: "r-1",
		CreatedAt:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestWebhookSinkPostsPayload(t *testing.T) {
	var received entities.Payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL, time.Second)
	if err := sink.Deliver(context.Background(), sampleAlert()); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if received.ID != "a-1" || received.Title != "Publication found" || received.Message != "found on site" || received.Severity != "medium" {
		t.Fatalf("unexpected payload %+v", received)
	}
}

func TestWebhookSinkRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	if err := NewWebhookSink(server.URL, time.Second).Deliver(context.Background(), sampleAlert()); err == nil {
		t.Fatalf("expected error for 502 answer")
	}
}

type capturingPublisher struct {
	topic    string
	envelope events.Envelope
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event events.Envelope) error {
	p.topic = topic
	p.envelope = event
	return nil
}

func TestBusSinkPublishesEnvelope(t *testing.T) {
	publisher := &capturingPublisher{}
	if err := (BusSink{Publisher: publisher}).Deliver(context.Background(), sampleAlert()); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if publisher.topic != events.TopicAlertRaised {
		t.Fatalf("unexpected topic %s", publisher.topic)
	}
	if publisher.envelope.EventID != "a-1" || publisher.envelope.CorrelationID != "r-1" {
		t.Fatalf("unexpected envelope %+v", publisher.envelope)
	}
	payload, ok := publisher.envelope.Payload.(entities.Payload)
	if !ok || payload.Severity != "medium" {
		t.Fatalf("unexpected payload %#v", publisher.envelope.Payload)
	}
	if err := (BusSink{}).Deliver(context.Background(), sampleAlert()); err == nil {
		t.Fatalf("expected error without publisher")
	}
}
