package services

import (
	"testing"

	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
)

func directory() []entities.JournalistContact {
	return []entities.JournalistContact{
		{ContactID: "c-3", Name: "Carla", MediaOutlet: "Folha", Category: "Meio Ambiente", Region: "Sudeste"},
		{ContactID: "c-1", Name: "Bruno", MediaOutlet: " folha ", Category: "Política"},
		{ContactID: "c-2", Name: "Ana", MediaOutlet: "FOLHA", Region: "sudeste"},
		{ContactID: "c-4", Name: "Davi", MediaOutlet: "Estadão", Category: "Meio Ambiente", Region: "Sudeste"},
		{ContactID: "c-5", Name: "Eva", MediaOutlet: "Folha de Minas"},
	}
}

func TestMatchOnlyReturnsSameOutlet(t *testing.T) {
	got := Match(entities.ReleaseProfile{MediaOutlet: "Folha"}, directory())
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	for _, item := range got {
		if NormalizeOutlet(item.Contact.MediaOutlet) != "folha" {
			t.Fatalf("matched contact from another outlet: %+v", item.Contact)
		}
	}
}

func TestMatchRanksByOverlapThenID(t *testing.T) {
	got := Match(entities.ReleaseProfile{
		MediaOutlet: "folha",
		Category:    "meio ambiente",
		Region:      "Sudeste",
	}, directory())

	want := []string{"c-3", "c-2", "c-1"}
	for i, id := range want {
		if got[i].Contact.ContactID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].Contact.ContactID)
		}
	}
	if got[0].Overlap != 2 || got[1].Overlap != 1 || got[2].Overlap != 0 {
		t.Fatalf("unexpected overlaps: %+v", got)
	}
}

func TestMatchWithoutOutletOrCandidatesIsEmpty(t *testing.T) {
	if got := Match(entities.ReleaseProfile{}, directory()); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
	if got := Match(entities.ReleaseProfile{MediaOutlet: "O Globo"}, directory()); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}
