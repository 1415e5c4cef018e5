package monitoringservice

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pressroom/contexts/release-lifecycle/monitoring-service/adapters/checker"
	"pressroom/contexts/release-lifecycle/monitoring-service/adapters/memory"
	"pressroom/contexts/release-lifecycle/monitoring-service/application/commands"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
	httptransport "pressroom/contexts/release-lifecycle/monitoring-service/transport/http"
)

type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func (c *stepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type recordingObserver struct {
	mu     sync.Mutex
	found  []entities.MonitoringResult
	paused []string
}

func (o *recordingObserver) PublicationFound(_ context.Context, _ entities.Monitoring, result entities.MonitoringResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.found = append(o.found, result)
}

func (o *recordingObserver) MonitoringPaused(_ context.Context, monitoring entities.Monitoring, _ string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paused = append(o.paused, monitoring.MonitoringID)
}

func (o *recordingObserver) counts() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.found), len(o.paused)
}

type failingChecker struct {
	calls int32
}

func (c *failingChecker) Check(context.Context, []string, entities.Fingerprint) ([]entities.Candidate, error) {
	atomic.AddInt32(&c.calls, 1)
	return nil, errors.New("site unreachable")
}

type fixture struct {
	module   Module
	store    *memory.Store
	releases *memory.ReleaseCatalog
	clock    *stepClock
	observer *recordingObserver
}

func newFixture(t *testing.T, pc ports.PublicationChecker, seed []entities.Monitoring) fixture {
	t.Helper()
	clock := &stepClock{now: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC), step: time.Second}
	store := memory.NewStore(seed)
	releases := memory.NewReleaseCatalog(
		entities.ReleaseSnapshot{ReleaseID: "r-1", Title: "Novo programa ambiental", MediaOutlet: "Folha", Eligible: true},
		entities.ReleaseSnapshot{ReleaseID: "r-draft", Title: "Rascunho", MediaOutlet: "Folha"},
	)
	module := NewModule(Dependencies{
		Repository: store,
		Releases:   releases,
		Checker:    pc,
		Clock:      clock,
		IDGen:      store,
		Policy: commands.RetryPolicy{
			Attempts:       3,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
			Timeout:        200 * time.Millisecond,
		},
		DefaultFrequency: entities.FrequencyDaily,
		Concurrency:      2,
		HistoryRetention: 24 * time.Hour,
	})
	module.Store = store
	observer := &recordingObserver{}
	module.Observers.Register(observer)
	return fixture{module: module, store: store, releases: releases, clock: clock, observer: observer}
}

func (f fixture) create(t *testing.T, releaseID string) httptransport.MonitoringDTO {
	t.Helper()
	resp, err := f.module.Handler.CreateMonitoringHandler(context.Background(), httptransport.CreateMonitoringRequest{
		ReleaseID: releaseID,
	})
	if err != nil {
		t.Fatalf("create monitoring failed: %v", err)
	}
	return resp.Monitoring
}

func TestMonitoringCreatedOncePerRelease(t *testing.T) {
	f := newFixture(t, checker.NewScripted(), nil)
	first := f.create(t, "r-1")
	if first.Status != "active" || len(first.Results) != 0 || first.Frequency != "daily" {
		t.Fatalf("unexpected new monitoring: %+v", first)
	}
	if len(first.TargetWebsites) != 1 || first.TargetWebsites[0] != "folha" {
		t.Fatalf("expected media outlet target, got %v", first.TargetWebsites)
	}
	if first.ReleaseTitle != "Novo programa ambiental" {
		t.Fatalf("expected stored release title, got %q", first.ReleaseTitle)
	}

	again, err := f.module.Handler.CreateMonitoringHandler(context.Background(), httptransport.CreateMonitoringRequest{
		ReleaseID:  "r-1",
		ExtraSites: []string{"Estadão"},
	})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if again.Created || again.Monitoring.MonitoringID != first.MonitoringID {
		t.Fatalf("expected existing monitoring, got %+v", again)
	}
}

func TestCreateRejectsUnknownAndIneligibleReleases(t *testing.T) {
	f := newFixture(t, checker.NewScripted(), nil)
	ctx := context.Background()
	f.releases.Put(entities.ReleaseSnapshot{ReleaseID: "r-no-outlet", Title: "Sem veículo", Eligible: true})

	cases := []struct {
		releaseID string
		want      error
	}{
		{"", domainerrors.ErrValidation},
		{"r-unknown", domainerrors.ErrReleaseNotFound},
		{"r-draft", domainerrors.ErrReleaseNotEligible},
		{"r-no-outlet", domainerrors.ErrValidation},
	}
	for _, tc := range cases {
		_, err := f.module.Handler.CreateMonitoringHandler(ctx, httptransport.CreateMonitoringRequest{ReleaseID: tc.releaseID})
		if !errors.Is(err, tc.want) {
			t.Fatalf("release %q: expected %v, got %v", tc.releaseID, tc.want, err)
		}
		if tc.releaseID == "" {
			continue
		}
		if _, err := f.module.Handler.GetMonitoringByReleaseHandler(ctx, tc.releaseID); !errors.Is(err, domainerrors.ErrMonitoringNotFound) {
			t.Fatalf("release %q: rejected create must not store a monitoring, got %v", tc.releaseID, err)
		}
	}

	// Once the release is approved the same request succeeds with stored data.
	f.releases.Put(entities.ReleaseSnapshot{ReleaseID: "r-draft", Title: "Aprovado", MediaOutlet: "Globo", Eligible: true})
	resp, err := f.module.Handler.CreateMonitoringHandler(ctx, httptransport.CreateMonitoringRequest{ReleaseID: "r-draft"})
	if err != nil {
		t.Fatalf("create after approval failed: %v", err)
	}
	if !resp.Created || resp.Monitoring.ReleaseTitle != "Aprovado" || resp.Monitoring.TargetWebsites[0] != "globo" {
		t.Fatalf("expected monitoring from the stored release, got %+v", resp)
	}
}

func TestCreateWithoutReleaseCatalogIsNotFound(t *testing.T) {
	module := NewInMemoryModule(nil, checker.NewScripted(), nil, nil)
	_, err := module.Handler.CreateMonitoringHandler(context.Background(), httptransport.CreateMonitoringRequest{ReleaseID: "r-1"})
	if !errors.Is(err, domainerrors.ErrReleaseNotFound) {
		t.Fatalf("expected not found without a catalog, got %v", err)
	}
}

func TestThreeCyclesFindOnePublication(t *testing.T) {
	scripted := checker.NewScripted()
	scripted.Enqueue(nil, nil)
	scripted.Enqueue([]entities.Candidate{}, nil)
	scripted.Enqueue([]entities.Candidate{{URL: "https://site/x", WebsiteName: "site", Excerpt: "novo programa"}}, nil)
	f := newFixture(t, scripted, nil)
	monitoring := f.create(t, "r-1")

	var previous time.Time
	for i := 0; i < 3; i++ {
		resp, err := f.module.Handler.RunCheckCycleHandler(context.Background(), monitoring.MonitoringID)
		if err != nil {
			t.Fatalf("cycle %d failed: %v", i+1, err)
		}
		if resp.Cycle.Outcome != "succeeded" {
			t.Fatalf("cycle %d: unexpected outcome %s", i+1, resp.Cycle.Outcome)
		}
		checked := *resp.Monitoring.LastChecked
		if !checked.After(previous) {
			t.Fatalf("cycle %d: lastChecked %s did not advance past %s", i+1, checked, previous)
		}
		previous = checked
	}

	stored, err := f.module.Handler.GetMonitoringHandler(context.Background(), monitoring.MonitoringID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Monitoring.Results) != 1 {
		t.Fatalf("expected exactly one result, got %d", len(stored.Monitoring.Results))
	}
	if stored.Monitoring.Results[0].Verified != nil || stored.Monitoring.Results[0].FoundURL != "https://site/x" {
		t.Fatalf("unexpected result %+v", stored.Monitoring.Results[0])
	}
	if found, _ := f.observer.counts(); found != 1 {
		t.Fatalf("expected one publication alert, got %d", found)
	}
}

type brokenUpdates struct {
	*memory.Store
}

func (brokenUpdates) UpdateMonitoring(context.Context, entities.Monitoring, int64) error {
	return errors.New("disk full")
}

func TestPublicationAnnouncedWhenBookkeepingFails(t *testing.T) {
	scripted := checker.NewScripted()
	scripted.Enqueue([]entities.Candidate{{URL: "https://site/x", WebsiteName: "site"}}, nil)
	f := newFixture(t, scripted, nil)
	monitoring := f.create(t, "r-1")

	module := NewModule(Dependencies{
		Repository: brokenUpdates{Store: f.store},
		Checker:    scripted,
		Clock:      f.clock,
		IDGen:      f.store,
		Policy:     commands.RetryPolicy{InitialBackoff: time.Millisecond, Timeout: time.Second},
	})
	observer := &recordingObserver{}
	module.Observers.Register(observer)

	if _, err := module.Handler.RunCheckCycleHandler(context.Background(), monitoring.MonitoringID); err == nil {
		t.Fatalf("expected bookkeeping failure to surface")
	}
	results, err := f.store.ListResults(context.Background(), monitoring.MonitoringID)
	if err != nil || len(results) != 1 {
		t.Fatalf("expected the appended result to stay, got %d (%v)", len(results), err)
	}
	if found, _ := observer.counts(); found != 1 {
		t.Fatalf("stored publication must still be announced, got %d", found)
	}
}

func TestFoundURLsStayUnique(t *testing.T) {
	scripted := checker.NewScripted()
	scripted.Enqueue([]entities.Candidate{{URL: "https://site/x"}, {URL: "https://SITE/x/"}}, nil)
	scripted.Enqueue([]entities.Candidate{{URL: "https://site/x#comments"}, {URL: "https://site/y"}}, nil)
	f := newFixture(t, scripted, nil)
	monitoring := f.create(t, "r-1")

	first, err := f.module.Handler.RunCheckCycleHandler(context.Background(), monitoring.MonitoringID)
	if err != nil || len(first.NewResults) != 1 {
		t.Fatalf("expected one new result, got %+v (%v)", first.NewResults, err)
	}
	second, err := f.module.Handler.RunCheckCycleHandler(context.Background(), monitoring.MonitoringID)
	if err != nil || len(second.NewResults) != 1 || second.NewResults[0].FoundURL != "https://site/y" {
		t.Fatalf("expected only site/y to be new, got %+v (%v)", second.NewResults, err)
	}
	if len(second.Monitoring.Results) != 2 {
		t.Fatalf("expected two stored results, got %d", len(second.Monitoring.Results))
	}
}

func TestRetriesWithinOneCycle(t *testing.T) {
	scripted := checker.NewScripted()
	scripted.Enqueue(nil, errors.New("timeout"))
	scripted.Enqueue(nil, errors.New("timeout"))
	scripted.Enqueue([]entities.Candidate{{URL: "https://site/x"}}, nil)
	f := newFixture(t, scripted, nil)
	monitoring := f.create(t, "r-1")

	resp, err := f.module.Handler.RunCheckCycleHandler(context.Background(), monitoring.MonitoringID)
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}
	if resp.Cycle.Outcome != "succeeded" || resp.Cycle.Attempts != 3 || len(resp.NewResults) != 1 {
		t.Fatalf("unexpected cycle %+v", resp.Cycle)
	}
}

func TestCheckerTimeoutIsRetried(t *testing.T) {
	scripted := checker.NewScripted()
	scripted.SetDelay(time.Second)
	f := newFixture(t, scripted, nil)
	f.module.Handler.Cycle.Policy.Timeout = 5 * time.Millisecond
	monitoring := f.create(t, "r-1")

	resp, err := f.module.Handler.RunCheckCycleHandler(context.Background(), monitoring.MonitoringID)
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}
	if resp.Cycle.Outcome != "failed" || resp.Cycle.Attempts != 4 {
		t.Fatalf("expected 4 timed out attempts, got %+v", resp.Cycle)
	}
	if resp.Monitoring.Status != "active" || resp.Monitoring.ConsecutiveFailures != 1 {
		t.Fatalf("one failed cycle must keep the monitoring active: %+v", resp.Monitoring)
	}
}

func TestPausedExactlyOnceAfterRepeatedFailures(t *testing.T) {
	failing := &failingChecker{}
	f := newFixture(t, failing, nil)
	monitoring := f.create(t, "r-1")
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		resp, err := f.module.Handler.RunCheckCycleHandler(ctx, monitoring.MonitoringID)
		if err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		if resp.Paused || resp.Monitoring.Status != "active" || resp.Monitoring.ConsecutiveFailures != i {
			t.Fatalf("cycle %d: unexpected state %+v", i, resp.Monitoring)
		}
	}
	fourth, err := f.module.Handler.RunCheckCycleHandler(ctx, monitoring.MonitoringID)
	if err != nil {
		t.Fatalf("cycle 4: %v", err)
	}
	if !fourth.Paused || fourth.Monitoring.Status != "paused" {
		t.Fatalf("expected pause on the fourth failed cycle, got %+v", fourth.Monitoring)
	}
	if atomic.LoadInt32(&failing.calls) != 16 {
		t.Fatalf("expected 4 attempts per cycle, got %d calls", failing.calls)
	}

	if _, err := f.module.Handler.RunCheckCycleHandler(ctx, monitoring.MonitoringID); !errors.Is(err, domainerrors.ErrMonitoringNotActive) {
		t.Fatalf("paused monitoring must not run, got %v", err)
	}
	if _, err := f.module.Handler.PauseMonitoringHandler(ctx, monitoring.MonitoringID); err != nil {
		t.Fatalf("repeat pause must be a no-op: %v", err)
	}
	if _, paused := f.observer.counts(); paused != 1 {
		t.Fatalf("expected exactly one pause alert, got %d", paused)
	}

	resumed, err := f.module.Handler.ResumeMonitoringHandler(ctx, monitoring.MonitoringID)
	if err != nil || resumed.Monitoring.Status != "active" || resumed.Monitoring.ConsecutiveFailures != 0 {
		t.Fatalf("expected reset after resume, got %+v (%v)", resumed.Monitoring, err)
	}
}

func TestPauseCancelsRunningCycle(t *testing.T) {
	scripted := checker.NewScripted()
	scripted.SetDelay(5 * time.Second)
	f := newFixture(t, scripted, nil)
	f.module.Handler.Cycle.Policy.Timeout = 10 * time.Second
	monitoring := f.create(t, "r-1")
	ctx := context.Background()

	done := make(chan httptransport.CheckCycleResponse, 1)
	errs := make(chan error, 1)
	go func() {
		resp, err := f.module.Handler.RunCheckCycleHandler(ctx, monitoring.MonitoringID)
		done <- resp
		errs <- err
	}()

	select {
	case <-scripted.Started():
	case <-time.After(2 * time.Second):
		t.Fatalf("cycle never reached the checker")
	}
	if _, err := f.module.Handler.PauseMonitoringHandler(ctx, monitoring.MonitoringID); err != nil {
		t.Fatalf("pause failed: %v", err)
	}

	select {
	case resp := <-done:
		if err := <-errs; err != nil {
			t.Fatalf("cancelled cycle returned error: %v", err)
		}
		if resp.Cycle.Outcome != "cancelled" {
			t.Fatalf("expected cancelled cycle, got %s", resp.Cycle.Outcome)
		}
		if resp.Monitoring.Status != "paused" || resp.Monitoring.ConsecutiveFailures != 0 || resp.Monitoring.LastChecked == nil {
			t.Fatalf("unexpected monitoring after cancel: %+v", resp.Monitoring)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pause did not cancel the running cycle")
	}
}

type overlapCounter struct {
	inflight int32
	maxSeen  int32
}

func (c *overlapCounter) Check(context.Context, []string, entities.Fingerprint) ([]entities.Candidate, error) {
	now := atomic.AddInt32(&c.inflight, 1)
	for {
		seen := atomic.LoadInt32(&c.maxSeen)
		if now <= seen || atomic.CompareAndSwapInt32(&c.maxSeen, seen, now) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&c.inflight, -1)
	return nil, nil
}

func TestCyclesForOneMonitoringNeverOverlap(t *testing.T) {
	counter := &overlapCounter{}
	f := newFixture(t, counter, nil)
	monitoring := f.create(t, "r-1")

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.module.Handler.RunCheckCycleHandler(context.Background(), monitoring.MonitoringID); err != nil {
				t.Errorf("cycle failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if counter.maxSeen != 1 {
		t.Fatalf("expected serialized cycles, saw %d at once", counter.maxSeen)
	}
}

func TestVerifyResultIsIdempotent(t *testing.T) {
	scripted := checker.NewScripted()
	scripted.Enqueue([]entities.Candidate{{URL: "https://site/x"}}, nil)
	f := newFixture(t, scripted, nil)
	monitoring := f.create(t, "r-1")
	cycle, err := f.module.Handler.RunCheckCycleHandler(context.Background(), monitoring.MonitoringID)
	if err != nil || len(cycle.NewResults) != 1 {
		t.Fatalf("expected a result, got %+v (%v)", cycle.NewResults, err)
	}
	resultID := cycle.NewResults[0].ResultID

	for i := 0; i < 2; i++ {
		resp, err := f.module.Handler.VerifyResultHandler(context.Background(), resultID, httptransport.VerifyResultRequest{Verified: true})
		if err != nil || resp.Result.Verified == nil || !*resp.Result.Verified {
			t.Fatalf("verify %d: unexpected %+v (%v)", i, resp.Result, err)
		}
	}
	resp, err := f.module.Handler.VerifyResultHandler(context.Background(), resultID, httptransport.VerifyResultRequest{Verified: false})
	if err != nil || resp.Result.Verified == nil || *resp.Result.Verified {
		t.Fatalf("expected false verdict, got %+v (%v)", resp.Result, err)
	}
	if _, err := f.module.Handler.VerifyResultHandler(context.Background(), "missing", httptransport.VerifyResultRequest{}); !errors.Is(err, domainerrors.ErrResultNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDispatcherRunsOnlyDueMonitorings(t *testing.T) {
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	recent := base.Add(-time.Hour)
	old := base.Add(-25 * time.Hour)
	weekly := base.Add(-48 * time.Hour)
	seed := []entities.Monitoring{
		{MonitoringID: "m-new", ReleaseID: "r-1", TargetWebsites: []string{"a"}, Frequency: entities.FrequencyDaily, Status: entities.MonitoringStatusActive},
		{MonitoringID: "m-old", ReleaseID: "r-2", TargetWebsites: []string{"b"}, Frequency: entities.FrequencyDaily, Status: entities.MonitoringStatusActive, LastChecked: &old},
		{MonitoringID: "m-recent", ReleaseID: "r-3", TargetWebsites: []string{"c"}, Frequency: entities.FrequencyDaily, Status: entities.MonitoringStatusActive, LastChecked: &recent},
		{MonitoringID: "m-weekly", ReleaseID: "r-4", TargetWebsites: []string{"d"}, Frequency: entities.FrequencyWeekly, Status: entities.MonitoringStatusActive, LastChecked: &weekly},
		{MonitoringID: "m-paused", ReleaseID: "r-5", TargetWebsites: []string{"e"}, Frequency: entities.FrequencyDaily, Status: entities.MonitoringStatusPaused},
	}
	scripted := checker.NewScripted()
	f := newFixture(t, scripted, seed)
	f.clock.Set(base)

	if err := f.module.Dispatcher.RunOnce(context.Background()); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if scripted.Calls() != 2 {
		t.Fatalf("expected 2 due monitorings checked, got %d", scripted.Calls())
	}
	for _, targets := range scripted.Targets() {
		if targets[0] != "a" && targets[0] != "b" {
			t.Fatalf("unexpected monitoring checked: %v", targets)
		}
	}

	disabled := f.module.Dispatcher
	disabled.Disabled = true
	if err := disabled.RunOnce(context.Background()); err != nil || scripted.Calls() != 2 {
		t.Fatalf("disabled dispatcher must not run cycles")
	}
}

func TestUpdateTargetsAndComplete(t *testing.T) {
	f := newFixture(t, checker.NewScripted(), nil)
	monitoring := f.create(t, "r-1")
	ctx := context.Background()

	if _, err := f.module.Handler.UpdateTargetsHandler(ctx, monitoring.MonitoringID, httptransport.UpdateTargetsRequest{}); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for empty targets, got %v", err)
	}
	updated, err := f.module.Handler.UpdateTargetsHandler(ctx, monitoring.MonitoringID, httptransport.UpdateTargetsRequest{
		TargetWebsites: []string{"https://www.folha.com/", "g1.globo.com", "G1.globo.com"},
		Frequency:      "weekly",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Monitoring.TargetWebsites) != 2 || updated.Monitoring.Frequency != "weekly" {
		t.Fatalf("unexpected targets %+v", updated.Monitoring)
	}

	completed, err := f.module.Handler.CompleteMonitoringHandler(ctx, monitoring.MonitoringID)
	if err != nil || completed.Monitoring.Status != "complete" {
		t.Fatalf("expected complete, got %+v (%v)", completed.Monitoring, err)
	}
	if _, err := f.module.Handler.ResumeMonitoringHandler(ctx, monitoring.MonitoringID); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("complete monitoring must not resume, got %v", err)
	}
}

func TestRetentionPrunesCompletedHistory(t *testing.T) {
	scripted := checker.NewScripted()
	scripted.Enqueue([]entities.Candidate{{URL: "https://site/x"}, {URL: "https://site/y"}}, nil)
	f := newFixture(t, scripted, nil)
	monitoring := f.create(t, "r-1")
	ctx := context.Background()

	cycle, err := f.module.Handler.RunCheckCycleHandler(ctx, monitoring.MonitoringID)
	if err != nil || len(cycle.NewResults) != 2 {
		t.Fatalf("expected two results, got %+v (%v)", cycle.NewResults, err)
	}
	if _, err := f.module.Handler.VerifyResultHandler(ctx, cycle.NewResults[0].ResultID, httptransport.VerifyResultRequest{Verified: false}); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if _, err := f.module.Handler.CompleteMonitoringHandler(ctx, monitoring.MonitoringID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	f.clock.Set(f.clock.Now().Add(48 * time.Hour))
	if err := f.module.Retention.RunOnce(ctx); err != nil {
		t.Fatalf("retention failed: %v", err)
	}
	stored, _ := f.module.Handler.GetMonitoringHandler(ctx, monitoring.MonitoringID)
	if len(stored.Monitoring.Results) != 1 || stored.Monitoring.Results[0].ResultID != cycle.NewResults[1].ResultID {
		t.Fatalf("expected only the unreviewed result kept, got %+v", stored.Monitoring.Results)
	}
	cycles, _ := f.module.Handler.ListCyclesHandler(ctx, monitoring.MonitoringID, 0)
	if len(cycles.Items) != 0 {
		t.Fatalf("expected cycle records pruned, got %d", len(cycles.Items))
	}
}
