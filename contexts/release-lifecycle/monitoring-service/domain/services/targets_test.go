package services

import (
	"testing"
	"time"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
)

func TestNormalizeTargets(t *testing.T) {
	got := NormalizeTargets([]string{"Folha", "https://www.Folha.com/politica", "folha", " ", "www.folha.com/x"})
	want := []string{"folha", "www.folha.com"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNormalizeFoundURL(t *testing.T) {
	cases := map[string]string{
		"https://Site.com/x/":       "https://site.com/x",
		"HTTPS://site.com/x#top":    "https://site.com/x",
		"https://site.com/":         "https://site.com",
		"  https://site.com/a?b=1 ": "https://site.com/a?b=1",
	}
	for in, want := range cases {
		if got := NormalizeFoundURL(in); got != want {
			t.Fatalf("NormalizeFoundURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsDueByFrequency(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	recent := now.Add(-2 * time.Hour)

	cases := []struct {
		name string
		m    entities.Monitoring
		want bool
	}{
		{"never checked", entities.Monitoring{Status: entities.MonitoringStatusActive, Frequency: entities.FrequencyDaily}, true},
		{"daily elapsed", entities.Monitoring{Status: entities.MonitoringStatusActive, Frequency: entities.FrequencyDaily, LastChecked: &yesterday}, true},
		{"daily recent", entities.Monitoring{Status: entities.MonitoringStatusActive, Frequency: entities.FrequencyDaily, LastChecked: &recent}, false},
		{"weekly not elapsed", entities.Monitoring{Status: entities.MonitoringStatusActive, Frequency: entities.FrequencyWeekly, LastChecked: &yesterday}, false},
		{"paused", entities.Monitoring{Status: entities.MonitoringStatusPaused, Frequency: entities.FrequencyDaily}, false},
	}
	for _, tc := range cases {
		if got := IsDue(tc.m, now); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestShouldPauseOnlyOnce(t *testing.T) {
	m := entities.Monitoring{Status: entities.MonitoringStatusActive, ConsecutiveFailures: 3}
	if ShouldPause(m, 4) {
		t.Fatalf("must not pause below threshold")
	}
	m.ConsecutiveFailures = 4
	if !ShouldPause(m, 4) {
		t.Fatalf("must pause at threshold")
	}
	m.Status = entities.MonitoringStatusPaused
	m.ConsecutiveFailures = 5
	if ShouldPause(m, 4) {
		t.Fatalf("paused monitoring must not pause again")
	}
}

func TestFingerprintMatches(t *testing.T) {
	fp := entities.Fingerprint{Title: "Novo programa ambiental", Keywords: []string{"Cerrado"}}
	if !fp.Matches("Governo lança NOVO PROGRAMA AMBIENTAL no estado") {
		t.Fatalf("expected title match")
	}
	if !fp.Matches("Queimadas no cerrado") {
		t.Fatalf("expected keyword match")
	}
	if fp.Matches("Economia em alta") {
		t.Fatalf("unexpected match")
	}
	if fp.String() != "Novo programa ambiental | Cerrado" {
		t.Fatalf("unexpected fingerprint string %q", fp.String())
	}
}
