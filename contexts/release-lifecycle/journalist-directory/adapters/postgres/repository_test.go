package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/journalist-directory/domain/errors"
	"pressroom/contexts/release-lifecycle/journalist-directory/ports"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(db, nil)
}

func TestRepositoryUpsertAndFilter(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seed := []entities.JournalistContact{
		{ContactID: "c-2", Name: "Bruno Lima", MediaOutlet: "Folha", Category: "Política"},
		{ContactID: "c-1", Name: "Ana Souza", MediaOutlet: " FOLHA", Region: "Sudeste"},
		{ContactID: "c-3", Name: "Carla Dias", MediaOutlet: "Estadão", Region: "Sudeste"},
	}
	for _, item := range seed {
		if err := repo.UpsertContact(ctx, item); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	updated := seed[0]
	updated.Email = "bruno@folha.example"
	if err := repo.UpsertContact(ctx, updated); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	stored, err := repo.GetContact(ctx, "c-2")
	if err != nil || stored.Email != "bruno@folha.example" {
		t.Fatalf("expected updated email, got %+v (%v)", stored, err)
	}
	if _, err := repo.GetContact(ctx, "nope"); !errors.Is(err, domainerrors.ErrContactNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	byOutlet, err := repo.ListByOutlet(ctx, "folha")
	if err != nil || len(byOutlet) != 2 || byOutlet[0].ContactID != "c-1" {
		t.Fatalf("unexpected outlet lookup: %+v (%v)", byOutlet, err)
	}

	page, total, err := repo.ListContacts(ctx, ports.ContactFilter{Region: "sudeste", Limit: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(page) != 1 || page[0].Name != "Ana Souza" {
		t.Fatalf("unexpected page: total=%d items=%+v", total, page)
	}
	page, _, err = repo.ListContacts(ctx, ports.ContactFilter{Name: "lima"})
	if err != nil || len(page) != 1 || page[0].ContactID != "c-2" {
		t.Fatalf("unexpected name search: %+v (%v)", page, err)
	}
}
