package queries

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/domain/services"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

const defaultAnalyzerTimeout = 5 * time.Second

type ModerationQueueQuery struct {
	Search   string
	Priority string
}

// ModerationQueueUseCase orders pending releases and attaches a machine suggestion.
type ModerationQueueUseCase struct {
	Repository  ports.Repository
	Analyzer    ports.ContentAnalyzer
	Settings    *application.ModerationSettings
	Timeout     time.Duration
	Concurrency int
	Metrics     ports.Metrics
	Logger      *slog.Logger
}

func (uc ModerationQueueUseCase) Queue(ctx context.Context, query ModerationQueueQuery) ([]entities.QueueItem, error) {
	releases, err := uc.Repository.ListReleases(ctx, ports.ReleaseFilter{
		Status: entities.ReleaseStatusPending,
		Search: strings.TrimSpace(query.Search),
	})
	if err != nil {
		return nil, err
	}

	policy := uc.Settings.Priority()
	wantPriority := entities.PriorityTier(strings.ToLower(strings.TrimSpace(query.Priority)))
	items := make([]entities.QueueItem, 0, len(releases))
	for _, release := range releases {
		tier := policy.Tier(release.Title, release.Content, release.ClientType)
		if wantPriority != "" && tier != wantPriority {
			continue
		}
		items = append(items, entities.QueueItem{Release: release, Priority: tier})
	}

	// Releases arrive in submission order; the stable sort keeps it within a tier.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.Rank() < items[j].Priority.Rank()
	})

	limit := uc.Concurrency
	if limit <= 0 {
		limit = 4
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i := range items {
		i := i
		group.Go(func() error {
			items[i].Analysis = uc.analyze(groupCtx, items[i].Release)
			return nil
		})
	}
	_ = group.Wait()
	return items, nil
}

// Analyze scores one release on demand.
func (uc ModerationQueueUseCase) Analyze(ctx context.Context, releaseID string) (entities.QueueItem, error) {
	release, err := uc.Repository.GetRelease(ctx, strings.TrimSpace(releaseID))
	if err != nil {
		return entities.QueueItem{}, err
	}
	return entities.QueueItem{
		Release:  release,
		Priority: uc.Settings.Priority().Tier(release.Title, release.Content, release.ClientType),
		Analysis: uc.analyze(ctx, release),
	}, nil
}

// analyze never fails: an unreachable analyzer yields an unscored review suggestion.
func (uc ModerationQueueUseCase) analyze(ctx context.Context, release entities.Release) entities.Analysis {
	logger := application.ResolveLogger(uc.Logger)
	thresholds := uc.Settings.Thresholds()

	if uc.Analyzer == nil {
		return unscored(thresholds)
	}

	timeout := uc.Timeout
	if timeout <= 0 {
		timeout = defaultAnalyzerTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	analysis, err := uc.Analyzer.Analyze(callCtx, release.Title, release.Content)
	if err == nil && callCtx.Err() != nil {
		err = callCtx.Err()
	}
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.ObserveAnalysis("unavailable")
		}
		logger.Warn("content analyzer unavailable",
			"event", "moderation_analysis_unavailable",
			"module", "release-lifecycle/release-service",
			"layer", "application",
			"release_id", release.ReleaseID,
			"error", fmt.Errorf("%w: %v", domainerrors.ErrAnalyzerUnavailable, err).Error(),
		)
		return unscored(thresholds)
	}

	analysis.Scored = true
	analysis.SuggestedAction, analysis.Reasoning = services.Suggest(analysis, thresholds)
	if uc.Metrics != nil {
		uc.Metrics.ObserveAnalysis("scored")
	}
	return analysis
}

func unscored(thresholds services.Thresholds) entities.Analysis {
	analysis := entities.Analysis{}
	analysis.SuggestedAction, analysis.Reasoning = services.Suggest(analysis, thresholds)
	return analysis
}
