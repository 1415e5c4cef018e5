package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/journalist-directory/domain/errors"
	"pressroom/contexts/release-lifecycle/journalist-directory/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// AutoMigrate creates or updates the journalist directory table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&contactModel{})
}

func (r *Repository) GetContact(ctx context.Context, contactID string) (entities.JournalistContact, error) {
	var row contactModel
	err := r.db.WithContext(ctx).Where("contact_id = ?", strings.TrimSpace(contactID)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.JournalistContact{}, domainerrors.ErrContactNotFound
		}
		return entities.JournalistContact{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListContacts(ctx context.Context, filter ports.ContactFilter) ([]entities.JournalistContact, int, error) {
	tx := r.db.WithContext(ctx).Model(&contactModel{})
	if name := strings.ToLower(strings.TrimSpace(filter.Name)); name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+name+"%")
	}
	if outlet := outletKey(filter.MediaOutlet); outlet != "" {
		tx = tx.Where("outlet_key = ?", outlet)
	}
	if category := strings.ToLower(strings.TrimSpace(filter.Category)); category != "" {
		tx = tx.Where("LOWER(category) = ?", category)
	}
	if region := strings.ToLower(strings.TrimSpace(filter.Region)); region != "" {
		tx = tx.Where("LOWER(region) = ?", region)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []contactModel
	query := tx.Session(&gorm.Session{}).Order("name ASC").Order("contact_id ASC").Offset(filter.Offset)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	items := make([]entities.JournalistContact, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, int(total), nil
}

func (r *Repository) ListByOutlet(ctx context.Context, mediaOutlet string) ([]entities.JournalistContact, error) {
	var rows []contactModel
	if err := r.db.WithContext(ctx).
		Where("outlet_key = ?", outletKey(mediaOutlet)).
		Order("contact_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.JournalistContact, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpsertContact(ctx context.Context, contact entities.JournalistContact) error {
	row := contactModelFromEntity(contact)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contact_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "phone", "website", "social_media",
			"media_outlet", "outlet_key", "category", "region",
		}),
	}).Create(&row).Error
}

func outletKey(outlet string) string {
	return strings.ToLower(strings.TrimSpace(outlet))
}
