package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	alertentities "pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	alertports "pressroom/contexts/release-lifecycle/alert-dispatcher/ports"
	journalistcommands "pressroom/contexts/release-lifecycle/journalist-directory/application/commands"
	monitoringchecker "pressroom/contexts/release-lifecycle/monitoring-service/adapters/checker"
	monitoringcommands "pressroom/contexts/release-lifecycle/monitoring-service/application/commands"
	monitoringentities "pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	monitoringerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	releaseanalyzer "pressroom/contexts/release-lifecycle/release-service/adapters/analyzer"
	releasecommands "pressroom/contexts/release-lifecycle/release-service/application/commands"
	releaseentities "pressroom/contexts/release-lifecycle/release-service/domain/entities"
	releaseerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/internal/platform/config"
	"pressroom/internal/shared/events"
)

type testPlatform struct {
	Platform
	checker *monitoringchecker.Scripted
}

func newTestPlatform(t *testing.T) testPlatform {
	t.Helper()
	cfg := config.Default()
	cfg.Monitoring.RetryAttempts = 0
	cfg.Monitoring.RetryInitialBackoff = time.Millisecond
	cfg.Monitoring.RetryMaxBackoff = time.Millisecond
	cfg.Monitoring.CheckerTimeout = time.Second
	cfg.Monitoring.PauseAfterFailures = 2
	cfg.Alerts.QueueBacklogThreshold = 1

	checker := monitoringchecker.NewScripted()
	analyzer := releaseanalyzer.NewStatic()
	analyzer.SetFallback(releaseentities.Analysis{RiskScore: 10, SimilarityScore: 5, EngagementPrediction: 80, Scored: true})

	platform, err := NewPlatform(cfg, Adapters{Analyzer: analyzer, Checker: checker}, nil)
	if err != nil {
		t.Fatalf("new platform: %v", err)
	}
	return testPlatform{Platform: platform, checker: checker}
}

func (p testPlatform) pendingRelease(t *testing.T, title string) releaseentities.Release {
	t.Helper()
	ctx := context.Background()
	release, err := p.Releases.Handler.CreateRelease.Execute(ctx, releasecommands.CreateReleaseCommand{
		Title:       title,
		Content:     "O observatório divulga o novo levantamento sobre o cerrado.",
		ClientName:  "Observatório do Clima",
		ClientType:  "observatory",
		MediaOutlet: "Folha",
		Category:    "meio ambiente",
	})
	if err != nil {
		t.Fatalf("create release: %v", err)
	}
	release, err = p.Releases.Handler.Moderate.Submit(ctx, releasecommands.SubmitReleaseCommand{
		ReleaseID: release.ReleaseID,
		ActorID:   "client-1",
	})
	if err != nil {
		t.Fatalf("submit release: %v", err)
	}
	return release
}

func (p testPlatform) alerts(t *testing.T, alertType alertentities.AlertType) []alertentities.Alert {
	t.Helper()
	items, err := p.Alerts.Recorder.ListAlerts(context.Background(), alertports.AlertFilter{Type: alertType})
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	return items
}

func TestApprovalStartsMonitoringAndAssignsJournalists(t *testing.T) {
	platform := newTestPlatform(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transitions := make(chan events.Envelope, 16)
	if err := platform.Bus.Subscribe(ctx, events.TopicReleaseTransitioned, "bootstrap-test", func(_ context.Context, event events.Envelope) error {
		transitions <- event
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	contact, err := platform.Journalists.Handler.Upsert.Execute(ctx, journalistcommands.UpsertContactCommand{
		Name:        "Ana Souza",
		Email:       "ana@folha.com",
		MediaOutlet: "folha",
		Category:    "meio ambiente",
	})
	if err != nil {
		t.Fatalf("upsert contact: %v", err)
	}
	if _, err := platform.Journalists.Handler.Upsert.Execute(ctx, journalistcommands.UpsertContactCommand{
		Name:        "Bruno Lima",
		MediaOutlet: "Estadão",
	}); err != nil {
		t.Fatalf("upsert contact: %v", err)
	}

	release := platform.pendingRelease(t, "Novo programa ambiental")
	approved, err := platform.Releases.Handler.Moderate.Approve(ctx, releasecommands.ApproveReleaseCommand{
		ReleaseID:     release.ReleaseID,
		ModeratorID:   "mod-1",
		ModeratorName: "Carla",
	})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != releaseentities.ReleaseStatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	monitoring, err := platform.Monitoring.Handler.Queries.GetMonitoringByRelease(ctx, release.ReleaseID)
	if err != nil {
		t.Fatalf("expected monitoring for approved release: %v", err)
	}
	if monitoring.Status != monitoringentities.MonitoringStatusActive {
		t.Fatalf("expected active monitoring, got %s", monitoring.Status)
	}
	if len(monitoring.TargetWebsites) != 1 || monitoring.TargetWebsites[0] != "folha" {
		t.Fatalf("expected folha target, got %v", monitoring.TargetWebsites)
	}
	if len(monitoring.Results) != 0 {
		t.Fatalf("expected no results yet, got %d", len(monitoring.Results))
	}

	stored, err := platform.Releases.Queries.GetRelease(ctx, release.ReleaseID)
	if err != nil {
		t.Fatalf("get release: %v", err)
	}
	if len(stored.TargetJournalists) != 1 || stored.TargetJournalists[0] != contact.ContactID {
		t.Fatalf("expected %s as target journalist, got %v", contact.ContactID, stored.TargetJournalists)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-transitions:
			payload, ok := event.Payload.(transitionPayload)
			if !ok {
				t.Fatalf("unexpected payload type %T", event.Payload)
			}
			if payload.To != string(releaseentities.ReleaseStatusApproved) {
				continue
			}
			if event.EntityID != release.ReleaseID || payload.ModeratorID != "mod-1" {
				t.Fatalf("unexpected approval event: %+v", event)
			}
			return
		case <-timeout:
			t.Fatal("approval event was not published")
		}
	}
}

func TestConcurrentApproveAndRejectHaveOneWinner(t *testing.T) {
	platform := newTestPlatform(t)
	release := platform.pendingRelease(t, "Relatório anual")
	ctx := context.Background()

	var (
		wg         sync.WaitGroup
		approveErr error
		rejectErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, approveErr = platform.Releases.Handler.Moderate.Approve(ctx, releasecommands.ApproveReleaseCommand{
			ReleaseID:   release.ReleaseID,
			ModeratorID: "mod-1",
		})
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = platform.Releases.Handler.Moderate.Reject(ctx, releasecommands.RejectReleaseCommand{
			ReleaseID:   release.ReleaseID,
			ModeratorID: "mod-2",
			Feedback:    "Faltam fontes.",
		})
	}()
	wg.Wait()

	if (approveErr == nil) == (rejectErr == nil) {
		t.Fatalf("expected exactly one winner, approve=%v reject=%v", approveErr, rejectErr)
	}
	loser := approveErr
	if loser == nil {
		loser = rejectErr
	}
	if !errors.Is(loser, releaseerrors.ErrConflict) {
		t.Fatalf("unexpected loser error: %v", loser)
	}

	stored, err := platform.Releases.Queries.GetRelease(ctx, release.ReleaseID)
	if err != nil {
		t.Fatalf("get release: %v", err)
	}
	_, monitorErr := platform.Monitoring.Handler.Queries.GetMonitoringByRelease(ctx, release.ReleaseID)
	switch stored.Status {
	case releaseentities.ReleaseStatusApproved:
		if monitorErr != nil {
			t.Fatalf("approved release must be monitored: %v", monitorErr)
		}
	case releaseentities.ReleaseStatusRejected:
		if monitorErr == nil {
			t.Fatal("rejected release must not be monitored")
		}
	default:
		t.Fatalf("unexpected final status %s", stored.Status)
	}
}

func TestManualMonitoringRequiresApprovedRelease(t *testing.T) {
	platform := newTestPlatform(t)
	ctx := context.Background()
	create := platform.Monitoring.Handler.Create

	_, _, err := create.Create(ctx, monitoringcommands.CreateMonitoringCommand{ReleaseID: "missing"})
	if !errors.Is(err, monitoringerrors.ErrReleaseNotFound) {
		t.Fatalf("expected not found for unknown release, got %v", err)
	}

	release := platform.pendingRelease(t, "Nova pesquisa")
	_, _, err = create.Create(ctx, monitoringcommands.CreateMonitoringCommand{
		ReleaseID:  release.ReleaseID,
		ExtraSites: []string{"bogus.example"},
	})
	if !errors.Is(err, monitoringerrors.ErrReleaseNotEligible) {
		t.Fatalf("expected pending release to be ineligible, got %v", err)
	}

	if _, err := platform.Releases.Handler.Moderate.Approve(ctx, releasecommands.ApproveReleaseCommand{
		ReleaseID:   release.ReleaseID,
		ModeratorID: "mod-1",
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	monitoring, created, err := create.Create(ctx, monitoringcommands.CreateMonitoringCommand{ReleaseID: release.ReleaseID})
	if err != nil {
		t.Fatalf("create after approval: %v", err)
	}
	if created {
		t.Fatal("approval already started monitoring; manual create must return it")
	}
	if monitoring.ReleaseTitle != "Nova pesquisa" || len(monitoring.TargetWebsites) != 1 || monitoring.TargetWebsites[0] != "folha" {
		t.Fatalf("monitoring must carry the stored release data, got %+v", monitoring)
	}
}

func TestConsumersAuditBusEvents(t *testing.T) {
	platform := newTestPlatform(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := platform.StartConsumers(ctx, nil); err != nil {
		t.Fatalf("start consumers: %v", err)
	}

	platform.pendingRelease(t, "Primeiro")
	platform.pendingRelease(t, "Segundo")

	want := []string{
		`pressroom_bus_events_consumed_total{event_type="release.transitioned",topic="pressroom.release.transitioned"} 2`,
		`pressroom_bus_events_consumed_total{event_type="alert.raised",topic="pressroom.alert.raised"} 1`,
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		rr := httptest.NewRecorder()
		platform.Metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		body := rr.Body.String()
		missing := ""
		for _, line := range want {
			if !strings.Contains(body, line) {
				missing = line
				break
			}
		}
		if missing == "" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("consumer did not record %q\n%s", missing, body)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBuildWorkerRequiresDatabase(t *testing.T) {
	t.Setenv("PRESSROOM_CONFIG", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("DB_DRIVER", "")

	worker, err := BuildWorker()
	if !errors.Is(err, ErrWorkerNeedsDatabase) {
		t.Fatalf("expected worker to refuse in-memory stores, got %v", err)
	}
	if worker != nil {
		t.Fatal("expected no worker app")
	}
}

func TestPendingBacklogRaisesAlert(t *testing.T) {
	platform := newTestPlatform(t)

	platform.pendingRelease(t, "Primeiro")
	if got := platform.alerts(t, alertentities.AlertTypeQueueBacklog); len(got) != 0 {
		t.Fatalf("one pending release is within threshold, got %d alerts", len(got))
	}

	platform.pendingRelease(t, "Segundo")
	got := platform.alerts(t, alertentities.AlertTypeQueueBacklog)
	if len(got) != 1 {
		t.Fatalf("expected one backlog alert, got %d", len(got))
	}
	if got[0].Severity != alertentities.SeverityMedium {
		t.Fatalf("expected medium severity, got %s", got[0].Severity)
	}
}

func TestCycleResultsAndPauseRaiseAlerts(t *testing.T) {
	platform := newTestPlatform(t)
	ctx := context.Background()

	release := platform.pendingRelease(t, "Nova pesquisa")
	if _, err := platform.Releases.Handler.Moderate.Approve(ctx, releasecommands.ApproveReleaseCommand{
		ReleaseID:   release.ReleaseID,
		ModeratorID: "mod-1",
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	monitoring, err := platform.Monitoring.Handler.Queries.GetMonitoringByRelease(ctx, release.ReleaseID)
	if err != nil {
		t.Fatalf("get monitoring: %v", err)
	}

	platform.checker.Enqueue([]monitoringentities.Candidate{{
		URL:         "https://folha.com/ambiente/nova-pesquisa",
		WebsiteName: "folha",
	}}, nil)
	if _, err := platform.Monitoring.Handler.Cycle.Execute(ctx, monitoring.MonitoringID); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	found := platform.alerts(t, alertentities.AlertTypePublicationFound)
	if len(found) != 1 || found[0].RelatedReleaseID != release.ReleaseID {
		t.Fatalf("expected one publication alert for release, got %+v", found)
	}

	failure := errors.New("search page unavailable")
	for i := 0; i < 2; i++ {
		platform.checker.Enqueue(nil, failure)
		if _, err := platform.Monitoring.Handler.Cycle.Execute(ctx, monitoring.MonitoringID); err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
	}
	paused := platform.alerts(t, alertentities.AlertTypeMonitoringPaused)
	if len(paused) != 1 || paused[0].Severity != alertentities.SeverityHigh {
		t.Fatalf("expected one high severity pause alert, got %+v", paused)
	}
	stored, err := platform.Monitoring.Handler.Queries.GetMonitoring(ctx, monitoring.MonitoringID)
	if err != nil {
		t.Fatalf("get monitoring: %v", err)
	}
	if stored.Status != monitoringentities.MonitoringStatusPaused {
		t.Fatalf("expected paused monitoring, got %s", stored.Status)
	}
}

func TestWorkerRunOnceSkipsDisabledJobs(t *testing.T) {
	platform := newTestPlatform(t)
	platform.Monitoring.Dispatcher.Disabled = true
	platform.Releases.Publisher.Disabled = true

	worker := &WorkerApp{platform: platform.Platform, pollInterval: time.Minute}
	if err := worker.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if calls := platform.checker.Calls(); calls != 0 {
		t.Fatalf("disabled dispatcher must not check, got %d calls", calls)
	}
}

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9090": ":9090", ":7000": ":7000", " 81 ": ":81"}
	for input, want := range cases {
		if got := normalizeAddr(input); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", input, got, want)
		}
	}
}
