package queries

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/journalist-directory/application"
	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	"pressroom/contexts/release-lifecycle/journalist-directory/domain/services"
	"pressroom/contexts/release-lifecycle/journalist-directory/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListContactsQuery struct {
	Name        string
	MediaOutlet string
	Category    string
	Region      string
	Limit       int
	Offset      int
}

type ContactPage struct {
	Items  []entities.JournalistContact
	Total  int
	Limit  int
	Offset int
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetContact(ctx context.Context, contactID string) (entities.JournalistContact, error) {
	return uc.Repository.GetContact(ctx, strings.TrimSpace(contactID))
}

func (uc QueryUseCase) ListContacts(ctx context.Context, query ListContactsQuery) (ContactPage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := uc.Repository.ListContacts(ctx, ports.ContactFilter{
		Name:        strings.TrimSpace(query.Name),
		MediaOutlet: strings.TrimSpace(query.MediaOutlet),
		Category:    strings.TrimSpace(query.Category),
		Region:      strings.TrimSpace(query.Region),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return ContactPage{}, err
	}
	return ContactPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// MatchUseCase selects the contacts a release should be routed to.
type MatchUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc MatchUseCase) Match(ctx context.Context, release entities.ReleaseProfile) ([]entities.RankedContact, error) {
	logger := application.ResolveLogger(uc.Logger)
	outlet := services.NormalizeOutlet(release.MediaOutlet)
	if outlet == "" {
		return []entities.RankedContact{}, nil
	}

	candidates, err := uc.Repository.ListByOutlet(ctx, outlet)
	if err != nil {
		logger.Error("journalist lookup failed",
			"event", "journalist_match_lookup_failed",
			"module", "release-lifecycle/journalist-directory",
			"layer", "application",
			"release_id", release.ReleaseID,
			"error", err.Error(),
		)
		return nil, err
	}
	matches := services.Match(release, candidates)
	logger.Info("journalists matched",
		"event", "journalist_match_completed",
		"module", "release-lifecycle/journalist-directory",
		"layer", "application",
		"release_id", release.ReleaseID,
		"match_count", len(matches),
	)
	return matches, nil
}
