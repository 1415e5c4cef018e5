package releaseservice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"pressroom/contexts/release-lifecycle/release-service/adapters/analyzer"
	"pressroom/contexts/release-lifecycle/release-service/adapters/memory"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/ports"
	httptransport "pressroom/contexts/release-lifecycle/release-service/transport/http"
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

func newTestModule(t *testing.T, az ports.ContentAnalyzer) (Module, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), step: time.Second}
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Repository:       store,
		Clock:            clock,
		IDGen:            store,
		Analyzer:         az,
		AnalyzerTimeout:  50 * time.Millisecond,
		HistoryRetention: 30 * 24 * time.Hour,
	})
	module.Store = store
	return module, clock
}

func createRelease(t *testing.T, module Module, title string, clientType string) httptransport.ReleaseDTO {
	t.Helper()
	resp, err := module.Handler.CreateReleaseHandler(context.Background(), httptransport.CreateReleaseRequest{
		Title:       title,
		Content:     "Corpo do release",
		ClientName:  "Cliente",
		ClientType:  clientType,
		MediaOutlet: "Folha",
	})
	if err != nil {
		t.Fatalf("create release failed: %v", err)
	}
	return resp.Release
}

func submit(t *testing.T, module Module, releaseID string) {
	t.Helper()
	if _, err := module.Handler.SubmitReleaseHandler(context.Background(), "client-1", releaseID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
}

func TestCreateReleaseValidation(t *testing.T) {
	module, _ := newTestModule(t, nil)
	cases := []httptransport.CreateReleaseRequest{
		{Title: "", ClientName: "c", ClientType: "researcher"},
		{Title: "t", ClientName: "  ", ClientType: "researcher"},
		{Title: "t", ClientName: "c", ClientType: "alien"},
	}
	for _, req := range cases {
		if _, err := module.Handler.CreateReleaseHandler(context.Background(), req); !errors.Is(err, domainerrors.ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}

	created := createRelease(t, module, "Relatório", "researcher")
	if created.Status != "draft" || created.Version != 1 {
		t.Fatalf("expected draft v1, got %s v%d", created.Status, created.Version)
	}
}

func TestLifecycleWalkToPublished(t *testing.T) {
	module, _ := newTestModule(t, nil)
	ctx := context.Background()
	release := createRelease(t, module, "Relatório anual", "observatory")
	submit(t, module, release.ReleaseID)

	approved, err := module.Handler.ApproveReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.ApproveReleaseRequest{Comments: "ok"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Release.Status != "approved" || len(approved.Release.ModerationHistory) != 1 {
		t.Fatalf("unexpected approved release: %+v", approved.Release)
	}

	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	scheduled, err := module.Handler.TransitionReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.TransitionReleaseRequest{
		TargetStatus:    "scheduled",
		PublicationDate: &future,
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if scheduled.Release.PublicationDate == nil || !scheduled.Release.PublicationDate.Equal(future) {
		t.Fatalf("expected publication date %s, got %v", future, scheduled.Release.PublicationDate)
	}

	published, err := module.Handler.TransitionReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.TransitionReleaseRequest{TargetStatus: "published"})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.Release.Status != "published" {
		t.Fatalf("expected published, got %s", published.Release.Status)
	}

	_, err = module.Handler.TransitionReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.TransitionReleaseRequest{TargetStatus: "pending"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("published must be terminal, got %v", err)
	}
}

func TestInvalidTransitionsAndUnknownRelease(t *testing.T) {
	module, _ := newTestModule(t, nil)
	ctx := context.Background()
	release := createRelease(t, module, "Relatório", "researcher")

	_, err := module.Handler.TransitionReleaseHandler(ctx, "mod-1", "", release.ReleaseID, httptransport.TransitionReleaseRequest{TargetStatus: "approved"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	_, err = module.Handler.TransitionReleaseHandler(ctx, "mod-1", "", release.ReleaseID, httptransport.TransitionReleaseRequest{TargetStatus: "archived"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for unknown target, got %v", err)
	}
	_, err = module.Handler.TransitionReleaseHandler(ctx, "mod-1", "", "missing", httptransport.TransitionReleaseRequest{TargetStatus: "pending"})
	if !errors.Is(err, domainerrors.ErrReleaseNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	submit(t, module, release.ReleaseID)
	if _, err := module.Handler.ApproveReleaseHandler(ctx, "mod-1", "", release.ReleaseID, httptransport.ApproveReleaseRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = module.Handler.TransitionReleaseHandler(ctx, "mod-1", "", release.ReleaseID, httptransport.TransitionReleaseRequest{
		TargetStatus:    "scheduled",
		PublicationDate: &past,
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for past schedule, got %v", err)
	}
}

func TestApproveRequiresModerator(t *testing.T) {
	module, _ := newTestModule(t, nil)
	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)

	_, err := module.Handler.ApproveReleaseHandler(context.Background(), "", "", release.ReleaseID, httptransport.ApproveReleaseRequest{})
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("expected unauthorized actor, got %v", err)
	}
}

func TestRejectedReleaseCanBeResubmitted(t *testing.T) {
	module, _ := newTestModule(t, nil)
	ctx := context.Background()
	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)

	if _, err := module.Handler.RejectReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.RejectReleaseRequest{Feedback: "Revise"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	edited, err := module.Handler.EditReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.EditReleaseRequest{
		EditedContent: "Novo corpo com fontes",
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if edited.Release.Status != "rejected" || edited.Release.Content != "Novo corpo com fontes" {
		t.Fatalf("edit must keep status and change content: %+v", edited.Release)
	}

	resubmitted, err := module.Handler.SubmitReleaseHandler(ctx, "client-1", release.ReleaseID)
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resubmitted.Release.Status != "pending" {
		t.Fatalf("expected pending, got %s", resubmitted.Release.Status)
	}
}

func TestRejectFeedbackKeepsTextThenTemplate(t *testing.T) {
	module, _ := newTestModule(t, nil)
	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)

	resp, err := module.Handler.RejectReleaseHandler(context.Background(), "mod-1", "Ana", release.ReleaseID, httptransport.RejectReleaseRequest{
		Feedback:  "Faltam referências.",
		Templates: []string{"claims"},
	})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	history := resp.Release.ModerationHistory
	if len(history) != 1 || history[0].Action != "reject" {
		t.Fatalf("expected one reject action, got %+v", history)
	}
	comments := history[0].Comments
	textAt := strings.Index(comments, "Faltam referências.")
	templateAt := strings.Index(strings.ToLower(comments), "afirmações sem embasamento")
	if textAt != 0 || templateAt <= textAt {
		t.Fatalf("expected text then template, got %q", comments)
	}
}

func TestConcurrentDecisionsOnlyOneWins(t *testing.T) {
	for round := 0; round < 25; round++ {
		module, _ := newTestModule(t, nil)
		release := createRelease(t, module, "Relatório", "researcher")
		submit(t, module, release.ReleaseID)

		var (
			start   = make(chan struct{})
			wg      sync.WaitGroup
			results = make([]error, 2)
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, results[0] = module.Handler.ApproveReleaseHandler(context.Background(), "mod-1", "", release.ReleaseID, httptransport.ApproveReleaseRequest{})
		}()
		go func() {
			defer wg.Done()
			<-start
			_, results[1] = module.Handler.RejectReleaseHandler(context.Background(), "mod-2", "", release.ReleaseID, httptransport.RejectReleaseRequest{Feedback: "não"})
		}()
		close(start)
		wg.Wait()

		successes := 0
		for _, err := range results {
			switch {
			case err == nil:
				successes++
			case !errors.Is(err, domainerrors.ErrConflict):
				t.Fatalf("loser must fail with conflict, got %v", err)
			}
		}
		if successes != 1 {
			t.Fatalf("expected exactly one winner, got %d (%v)", successes, results)
		}

		final, err := module.Handler.GetReleaseHandler(context.Background(), release.ReleaseID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if final.Release.Status != "approved" && final.Release.Status != "rejected" {
			t.Fatalf("unexpected final status %s", final.Release.Status)
		}
		if len(final.Release.ModerationHistory) != 1 {
			t.Fatalf("loser must not log an action, got %d", len(final.Release.ModerationHistory))
		}
	}
}

func TestConcurrentGenericTransitionsReportConflict(t *testing.T) {
	for round := 0; round < 25; round++ {
		module, _ := newTestModule(t, nil)
		release := createRelease(t, module, "Relatório", "researcher")
		submit(t, module, release.ReleaseID)

		var (
			start   = make(chan struct{})
			wg      sync.WaitGroup
			targets = []string{"approved", "rejected"}
			results = make([]error, len(targets))
		)
		for i, target := range targets {
			wg.Add(1)
			go func(i int, target string) {
				defer wg.Done()
				<-start
				_, results[i] = module.Handler.TransitionReleaseHandler(context.Background(), "mod-1", "", release.ReleaseID,
					httptransport.TransitionReleaseRequest{TargetStatus: target})
			}(i, target)
		}
		close(start)
		wg.Wait()

		successes := 0
		for _, err := range results {
			switch {
			case err == nil:
				successes++
			case !errors.Is(err, domainerrors.ErrConflict):
				t.Fatalf("loser must fail with conflict, got %v", err)
			}
		}
		if successes != 1 {
			t.Fatalf("expected exactly one winner, got %d (%v)", successes, results)
		}
	}
}

func TestTransitionAfterDecisionIsConflictButIllegalMoveIsNot(t *testing.T) {
	module, _ := newTestModule(t, nil)
	ctx := context.Background()
	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)

	if _, err := module.Handler.TransitionReleaseHandler(ctx, "mod-1", "", release.ReleaseID, httptransport.TransitionReleaseRequest{TargetStatus: "approved"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	_, err := module.Handler.TransitionReleaseHandler(ctx, "mod-2", "", release.ReleaseID, httptransport.TransitionReleaseRequest{TargetStatus: "rejected"})
	if !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("late rejection must be a conflict, got %v", err)
	}
	_, err = module.Handler.TransitionReleaseHandler(ctx, "mod-2", "", release.ReleaseID, httptransport.TransitionReleaseRequest{TargetStatus: "pending"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("approved -> pending must stay invalid, got %v", err)
	}
}

func TestEditOnlyDuringModeration(t *testing.T) {
	module, _ := newTestModule(t, nil)
	ctx := context.Background()
	release := createRelease(t, module, "Relatório", "researcher")

	_, err := module.Handler.EditReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.EditReleaseRequest{EditedContent: "Outro corpo"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("moderators must not edit drafts, got %v", err)
	}

	submit(t, module, release.ReleaseID)
	if _, err := module.Handler.EditReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.EditReleaseRequest{EditedContent: "Outro corpo"}); err != nil {
		t.Fatalf("edit of pending release failed: %v", err)
	}
	if _, err := module.Handler.ApproveReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.ApproveReleaseRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	_, err = module.Handler.EditReleaseHandler(ctx, "mod-1", "Ana", release.ReleaseID, httptransport.EditReleaseRequest{EditedContent: "Tarde demais"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("moderators must not edit approved releases, got %v", err)
	}
}

func TestAppendModerationActionLeavesStatus(t *testing.T) {
	module, _ := newTestModule(t, nil)
	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)

	if _, err := module.Handler.AppendModerationActionHandler(context.Background(), "mod-1", "Ana", release.ReleaseID, httptransport.ModerationActionRequest{
		Action:   "comment",
		Comments: "aguardando dados",
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	_, err := module.Handler.AppendModerationActionHandler(context.Background(), "mod-1", "Ana", release.ReleaseID, httptransport.ModerationActionRequest{Action: "escalate"})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown action, got %v", err)
	}

	fetched, _ := module.Handler.GetReleaseHandler(context.Background(), release.ReleaseID)
	if fetched.Release.Status != "pending" || len(fetched.Release.ModerationHistory) != 1 {
		t.Fatalf("append must not change status: %+v", fetched.Release)
	}
}

func TestModerationQueueOrdersByTierThenSubmission(t *testing.T) {
	az := analyzer.NewStatic()
	az.SetFallback(entities.Analysis{RiskScore: 10, SimilarityScore: 10, EngagementPrediction: 80})
	module, _ := newTestModule(t, az)

	low1 := createRelease(t, module, "Boletim mensal", "researcher")
	medium := createRelease(t, module, "Nota institucional", "institution")
	high1 := createRelease(t, module, "Programa ambiental", "politician")
	low2 := createRelease(t, module, "Boletim semanal", "observatory")
	high2 := createRelease(t, module, "Lançamento do estudo", "researcher")
	for _, id := range []string{low1.ReleaseID, medium.ReleaseID, high1.ReleaseID, low2.ReleaseID, high2.ReleaseID} {
		submit(t, module, id)
	}
	createRelease(t, module, "Rascunho urgente", "politician")

	queue, err := module.Handler.ModerationQueueHandler(context.Background(), "", "")
	if err != nil {
		t.Fatalf("queue failed: %v", err)
	}
	want := []string{high1.ReleaseID, high2.ReleaseID, medium.ReleaseID, low1.ReleaseID, low2.ReleaseID}
	if len(queue.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(queue.Items))
	}
	for i, id := range want {
		if queue.Items[i].Release.ReleaseID != id {
			t.Fatalf("position %d: expected %s, got %s (%s)", i, id, queue.Items[i].Release.ReleaseID, queue.Items[i].Release.Title)
		}
		if queue.Items[i].Analysis.SuggestedAction != "approve" || !queue.Items[i].Analysis.Scored {
			t.Fatalf("expected scored approve suggestion, got %+v", queue.Items[i].Analysis)
		}
	}

	onlyHigh, err := module.Handler.ModerationQueueHandler(context.Background(), "", "high")
	if err != nil || onlyHigh.Total != 2 {
		t.Fatalf("expected 2 high items, got %d (%v)", onlyHigh.Total, err)
	}
	searched, err := module.Handler.ModerationQueueHandler(context.Background(), "boletim", "")
	if err != nil || searched.Total != 2 {
		t.Fatalf("expected 2 searched items, got %d (%v)", searched.Total, err)
	}
}

func TestModerationQueueDegradesWhenAnalyzerFails(t *testing.T) {
	az := analyzer.NewStatic()
	az.SetDown(true)
	module, _ := newTestModule(t, az)
	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)

	queue, err := module.Handler.ModerationQueueHandler(context.Background(), "", "")
	if err != nil {
		t.Fatalf("queue must not fail when analyzer is down: %v", err)
	}
	if queue.Items[0].Analysis.SuggestedAction != "review" || queue.Items[0].Analysis.Scored {
		t.Fatalf("expected unscored review, got %+v", queue.Items[0].Analysis)
	}

	az.SetDown(false)
	az.SetFallback(entities.Analysis{RiskScore: 90})
	az.SetDelay(time.Second)
	queue, err = module.Handler.ModerationQueueHandler(context.Background(), "", "")
	if err != nil {
		t.Fatalf("queue must not fail on analyzer timeout: %v", err)
	}
	if queue.Items[0].Analysis.SuggestedAction != "review" || queue.Items[0].Analysis.Scored {
		t.Fatalf("timeout must degrade to review, got %+v", queue.Items[0].Analysis)
	}

	if _, err := module.Handler.ApproveReleaseHandler(context.Background(), "mod-1", "", release.ReleaseID, httptransport.ApproveReleaseRequest{}); err != nil {
		t.Fatalf("manual approval must not depend on the analyzer: %v", err)
	}
}

func TestThresholdUpdateChangesSuggestion(t *testing.T) {
	az := analyzer.NewStatic()
	az.SetFallback(entities.Analysis{RiskScore: 60, SimilarityScore: 10, EngagementPrediction: 80})
	module, _ := newTestModule(t, az)
	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)

	item, err := module.Handler.AnalyzeReleaseHandler(context.Background(), release.ReleaseID)
	if err != nil || item.Analysis.SuggestedAction != "review" {
		t.Fatalf("expected review before update, got %+v (%v)", item.Analysis, err)
	}

	if _, err := module.Handler.UpdateThresholdsHandler(httptransport.ThresholdsDTO{RiskHigh: 50, RiskLow: 20, SimilarityMax: 50, EngagementMin: 40}); err != nil {
		t.Fatalf("update thresholds failed: %v", err)
	}
	item, err = module.Handler.AnalyzeReleaseHandler(context.Background(), release.ReleaseID)
	if err != nil || item.Analysis.SuggestedAction != "reject" {
		t.Fatalf("expected reject after update, got %+v (%v)", item.Analysis, err)
	}

	if _, err := module.Handler.UpdateThresholdsHandler(httptransport.ThresholdsDTO{RiskHigh: 10, RiskLow: 20}); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScheduledPublishJob(t *testing.T) {
	module, clock := newTestModule(t, nil)
	ctx := context.Background()
	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)
	if _, err := module.Handler.ApproveReleaseHandler(ctx, "mod-1", "", release.ReleaseID, httptransport.ApproveReleaseRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	when := clock.Now().Add(time.Hour)
	if _, err := module.Handler.TransitionReleaseHandler(ctx, "mod-1", "", release.ReleaseID, httptransport.TransitionReleaseRequest{
		TargetStatus:    "scheduled",
		PublicationDate: &when,
	}); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	if err := module.Publisher.RunOnce(ctx); err != nil {
		t.Fatalf("publish job failed: %v", err)
	}
	fetched, _ := module.Handler.GetReleaseHandler(ctx, release.ReleaseID)
	if fetched.Release.Status != "scheduled" {
		t.Fatalf("release must wait for its date, got %s", fetched.Release.Status)
	}

	clock.mu.Lock()
	clock.now = when.Add(time.Minute)
	clock.mu.Unlock()
	if err := module.Publisher.RunOnce(ctx); err != nil {
		t.Fatalf("publish job failed: %v", err)
	}
	fetched, _ = module.Handler.GetReleaseHandler(ctx, release.ReleaseID)
	if fetched.Release.Status != "published" {
		t.Fatalf("expected published, got %s", fetched.Release.Status)
	}
}

func TestHistoryRetentionPrunesOnlyFinishedReleases(t *testing.T) {
	module, clock := newTestModule(t, nil)
	ctx := context.Background()
	finished := createRelease(t, module, "Antigo", "researcher")
	submit(t, module, finished.ReleaseID)
	if _, err := module.Handler.RejectReleaseHandler(ctx, "mod-1", "", finished.ReleaseID, httptransport.RejectReleaseRequest{Feedback: "x"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	open := createRelease(t, module, "Em análise", "researcher")
	submit(t, module, open.ReleaseID)
	if _, err := module.Handler.AppendModerationActionHandler(ctx, "mod-1", "", open.ReleaseID, httptransport.ModerationActionRequest{Action: "comment"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	clock.mu.Lock()
	clock.now = clock.now.Add(31 * 24 * time.Hour)
	clock.mu.Unlock()
	if err := module.Retention.RunOnce(ctx); err != nil {
		t.Fatalf("retention failed: %v", err)
	}

	finishedActions, _ := module.Handler.ListModerationActionsHandler(ctx, finished.ReleaseID)
	openActions, _ := module.Handler.ListModerationActionsHandler(ctx, open.ReleaseID)
	if len(finishedActions.Items) != 0 {
		t.Fatalf("expected finished history pruned, got %d", len(finishedActions.Items))
	}
	if len(openActions.Items) != 1 {
		t.Fatalf("open release history must be kept, got %d", len(openActions.Items))
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []ports.TransitionEvent
}

func (o *recordingObserver) ReleaseTransitioned(_ context.Context, event ports.TransitionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func TestObserversSeeEveryTransition(t *testing.T) {
	module, _ := newTestModule(t, nil)
	observer := &recordingObserver{}
	module.Observers.Register(observer)

	release := createRelease(t, module, "Relatório", "researcher")
	submit(t, module, release.ReleaseID)
	if _, err := module.Handler.ApproveReleaseHandler(context.Background(), "mod-1", "", release.ReleaseID, httptransport.ApproveReleaseRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if len(observer.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(observer.events))
	}
	last := observer.events[1]
	if last.From != entities.ReleaseStatusPending || last.To != entities.ReleaseStatusApproved || last.Release.MediaOutlet != "Folha" {
		t.Fatalf("unexpected event %+v", last)
	}
}
