package httpadapter

import (
	"context"

	"pressroom/contexts/release-lifecycle/journalist-directory/application/commands"
	"pressroom/contexts/release-lifecycle/journalist-directory/application/queries"
	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	httptransport "pressroom/contexts/release-lifecycle/journalist-directory/transport/http"
)

type Handler struct {
	Upsert  commands.UpsertContactUseCase
	Queries queries.QueryUseCase
	Matcher queries.MatchUseCase
}

func (h Handler) ListContactsHandler(
	ctx context.Context,
	query queries.ListContactsQuery,
) (httptransport.ListContactsResponse, error) {
	page, err := h.Queries.ListContacts(ctx, query)
	if err != nil {
		return httptransport.ListContactsResponse{}, err
	}
	resp := httptransport.ListContactsResponse{
		Items:  make([]httptransport.ContactDTO, 0, len(page.Items)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, item := range page.Items {
		resp.Items = append(resp.Items, mapContact(item))
	}
	return resp, nil
}

func (h Handler) GetContactHandler(ctx context.Context, contactID string) (httptransport.ContactResponse, error) {
	item, err := h.Queries.GetContact(ctx, contactID)
	if err != nil {
		return httptransport.ContactResponse{}, err
	}
	return httptransport.ContactResponse{Contact: mapContact(item)}, nil
}

func (h Handler) UpsertContactHandler(
	ctx context.Context,
	contactID string,
	req httptransport.UpsertContactRequest,
) (httptransport.ContactResponse, error) {
	item, err := h.Upsert.Execute(ctx, commands.UpsertContactCommand{
		ContactID:   contactID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		SocialMedia: req.SocialMedia,
		MediaOutlet: req.MediaOutlet,
		Category:    req.Category,
		Region:      req.Region,
	})
	if err != nil {
		return httptransport.ContactResponse{}, err
	}
	return httptransport.ContactResponse{Contact: mapContact(item)}, nil
}

func (h Handler) MatchHandler(ctx context.Context, req httptransport.MatchRequest) (httptransport.MatchResponse, error) {
	items, err := h.Matcher.Match(ctx, entities.ReleaseProfile{
		ReleaseID:   req.ReleaseID,
		MediaOutlet: req.MediaOutlet,
		Category:    req.Category,
		Region:      req.Region,
	})
	if err != nil {
		return httptransport.MatchResponse{}, err
	}
	resp := httptransport.MatchResponse{Items: make([]httptransport.RankedContactDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, httptransport.RankedContactDTO{
			Contact: mapContact(item.Contact),
			Overlap: item.Overlap,
		})
	}
	return resp, nil
}

func mapContact(item entities.JournalistContact) httptransport.ContactDTO {
	return httptransport.ContactDTO{
		ContactID:   item.ContactID,
		Name:        item.Name,
		Email:       item.Email,
		Phone:       item.Phone,
		Website:     item.Website,
		SocialMedia: item.SocialMedia,
		MediaOutlet: item.MediaOutlet,
		Category:    item.Category,
		Region:      item.Region,
	}
}
