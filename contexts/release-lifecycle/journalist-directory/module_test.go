package journalistdirectory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pressroom/contexts/release-lifecycle/journalist-directory/application/queries"
	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/journalist-directory/domain/errors"
	httptransport "pressroom/contexts/release-lifecycle/journalist-directory/transport/http"
)

func TestUpsertContactValidatesAndAssignsID(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()

	if _, err := module.Handler.UpsertContactHandler(ctx, "", httptransport.UpsertContactRequest{Name: "Ana"}); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error without outlet, got %v", err)
	}

	created, err := module.Handler.UpsertContactHandler(ctx, "", httptransport.UpsertContactRequest{
		Name:        "Ana Souza",
		MediaOutlet: "Folha",
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if created.Contact.ContactID == "" {
		t.Fatalf("expected generated contact id")
	}

	updated, err := module.Handler.UpsertContactHandler(ctx, created.Contact.ContactID, httptransport.UpsertContactRequest{
		Name:        "Ana Souza",
		MediaOutlet: "Folha",
		Region:      "Sudeste",
	})
	if err != nil || updated.Contact.Region != "Sudeste" {
		t.Fatalf("expected region update, got %+v (%v)", updated.Contact, err)
	}
}

func TestListContactsPaginates(t *testing.T) {
	seed := make([]entities.JournalistContact, 0, 130)
	for i := 0; i < 130; i++ {
		seed = append(seed, entities.JournalistContact{
			ContactID:   fmt.Sprintf("c-%03d", i),
			Name:        fmt.Sprintf("Jornalista %03d", i),
			MediaOutlet: "Folha",
		})
	}
	module := NewInMemoryModule(seed, nil)
	ctx := context.Background()

	first, err := module.Handler.ListContactsHandler(ctx, queries.ListContactsQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first.Items) != 20 || first.Total != 130 || first.Items[0].ContactID != "c-000" {
		t.Fatalf("unexpected default page: len=%d total=%d", len(first.Items), first.Total)
	}

	capped, err := module.Handler.ListContactsHandler(ctx, queries.ListContactsQuery{Limit: 500, Offset: 100})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if capped.Limit != 100 || len(capped.Items) != 30 || capped.Items[0].ContactID != "c-100" {
		t.Fatalf("unexpected capped page: limit=%d len=%d", capped.Limit, len(capped.Items))
	}

	searched, err := module.Handler.ListContactsHandler(ctx, queries.ListContactsQuery{Name: "jornalista 12"})
	if err != nil || searched.Total != 10 {
		t.Fatalf("expected 10 name matches, got %d (%v)", searched.Total, err)
	}
}

func TestMatchHandlerRoutesByOutlet(t *testing.T) {
	module := NewInMemoryModule([]entities.JournalistContact{
		{ContactID: "c-2", Name: "Bruno", MediaOutlet: "folha", Category: "Política"},
		{ContactID: "c-1", Name: "Ana", MediaOutlet: "Folha"},
		{ContactID: "c-3", Name: "Carla", MediaOutlet: "Estadão", Category: "Política"},
	}, nil)

	resp, err := module.Handler.MatchHandler(context.Background(), httptransport.MatchRequest{
		ReleaseID:   "r-1",
		MediaOutlet: "FOLHA ",
		Category:    "política",
	})
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0].Contact.ContactID != "c-2" || resp.Items[1].Contact.ContactID != "c-1" {
		t.Fatalf("unexpected match order: %+v", resp.Items)
	}

	empty, err := module.Handler.MatchHandler(context.Background(), httptransport.MatchRequest{MediaOutlet: "Valor"})
	if err != nil || len(empty.Items) != 0 {
		t.Fatalf("expected no matches without error, got %+v (%v)", empty.Items, err)
	}
}
