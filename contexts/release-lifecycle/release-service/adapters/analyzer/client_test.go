package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
)

func TestClientDecodesAnalysis(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["title"] != "Nota" {
			t.Errorf("unexpected title %q", body["title"])
		}
		_, _ = w.Write([]byte(`{"similarityScore":12,"riskScore":140,"engagementPrediction":-3,
			"flaggedTerms":[{"term":"melhor","position":4,"severity":"HIGH"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "", time.Second)
	analysis, err := client.Analyze(context.Background(), "Nota", "o melhor")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if analysis.RiskScore != 100 || analysis.EngagementPrediction != 0 || analysis.SimilarityScore != 12 {
		t.Fatalf("scores not clamped: %+v", analysis)
	}
	if len(analysis.FlaggedTerms) != 1 || analysis.FlaggedTerms[0].Severity != entities.SeverityHigh {
		t.Fatalf("unexpected flagged terms: %+v", analysis.FlaggedTerms)
	}
}

func TestClientMapsFailuresToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "key", time.Second).Analyze(context.Background(), "t", "c")
	if !errors.Is(err, domainerrors.ErrAnalyzerUnavailable) {
		t.Fatalf("expected analyzer unavailable, got %v", err)
	}
}
