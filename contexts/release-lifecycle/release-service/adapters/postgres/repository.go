package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates or updates the release tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&releaseModel{}, &moderationActionModel{})
}

func (r *Repository) CreateRelease(ctx context.Context, release entities.Release) error {
	row := releaseModelFromEntity(release)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: release %s already exists", domainerrors.ErrConflict, release.ReleaseID)
		}
		return err
	}
	return nil
}

func (r *Repository) GetRelease(ctx context.Context, releaseID string) (entities.Release, error) {
	var row releaseModel
	err := r.db.WithContext(ctx).
		Where("release_id = ?", strings.TrimSpace(releaseID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Release{}, domainerrors.ErrReleaseNotFound
		}
		return entities.Release{}, err
	}
	release := row.toEntity()
	history, err := r.ListModerationActions(ctx, release.ReleaseID)
	if err != nil {
		return entities.Release{}, err
	}
	release.ModerationHistory = history
	return release, nil
}

func (r *Repository) ListReleases(ctx context.Context, filter ports.ReleaseFilter) ([]entities.Release, error) {
	tx := r.db.WithContext(ctx).Model(&releaseModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.ClientType != "" {
		tx = tx.Where("client_type = ?", string(filter.ClientType))
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + search + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(client_name) LIKE ?", pattern, pattern)
	}

	var rows []releaseModel
	if err := tx.
		Order("COALESCE(submitted_at, created_at) ASC").
		Order("created_at ASC").
		Order("release_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ReleaseID)
	}
	history, err := r.historyByRelease(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]entities.Release, 0, len(rows))
	for _, row := range rows {
		release := row.toEntity()
		release.ModerationHistory = history[release.ReleaseID]
		items = append(items, release)
	}
	return items, nil
}

// historyByRelease loads the moderation log of several releases in one query.
func (r *Repository) historyByRelease(ctx context.Context, releaseIDs []string) (map[string][]entities.ModerationAction, error) {
	out := make(map[string][]entities.ModerationAction, len(releaseIDs))
	if len(releaseIDs) == 0 {
		return out, nil
	}
	var rows []moderationActionModel
	if err := r.db.WithContext(ctx).
		Where("release_id IN ?", releaseIDs).
		Order("created_at ASC").
		Order("action_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ReleaseID] = append(out[row.ReleaseID], row.toEntity())
	}
	return out, nil
}

func (r *Repository) CountReleases(ctx context.Context, status entities.ReleaseStatus) (int, error) {
	tx := r.db.WithContext(ctx).Model(&releaseModel{})
	if status != "" {
		tx = tx.Where("status = ?", string(status))
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) UpdateRelease(
	ctx context.Context,
	release entities.Release,
	expectedVersion int64,
	actions ...entities.ModerationAction,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&releaseModel{}).
			Where("release_id = ?", strings.TrimSpace(release.ReleaseID)).
			Where("version = ?", expectedVersion).
			Updates(releaseUpdatesFromEntity(release, expectedVersion+1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&releaseModel{}).
				Where("release_id = ?", strings.TrimSpace(release.ReleaseID)).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerrors.ErrReleaseNotFound
			}
			r.logger.Warn("release version mismatch",
				"event", "release_update_conflict",
				"module", "release-lifecycle/release-service",
				"layer", "adapter",
				"release_id", release.ReleaseID,
				"expected_version", expectedVersion,
			)
			return fmt.Errorf("%w: release %s changed since version %d",
				domainerrors.ErrConflict, release.ReleaseID, expectedVersion)
		}
		for _, action := range actions {
			row := actionModelFromEntity(action)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) AppendModerationAction(ctx context.Context, action entities.ModerationAction) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&releaseModel{}).
		Where("release_id = ?", strings.TrimSpace(action.ReleaseID)).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrReleaseNotFound
	}
	row := actionModelFromEntity(action)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListModerationActions(ctx context.Context, releaseID string) ([]entities.ModerationAction, error) {
	var rows []moderationActionModel
	if err := r.db.WithContext(ctx).
		Where("release_id = ?", strings.TrimSpace(releaseID)).
		Order("created_at ASC").
		Order("action_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.ModerationAction, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]entities.Release, error) {
	var rows []releaseModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(entities.ReleaseStatusScheduled)).
		Where("publication_date IS NOT NULL").
		Where("publication_date <= ?", now.UTC()).
		Order("publication_date ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Release, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) PruneModerationActions(
	ctx context.Context,
	olderThan time.Time,
	statuses []entities.ReleaseStatus,
) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	finished := r.db.Model(&releaseModel{}).Select("release_id").Where("status IN ?", values)
	result := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan.UTC()).
		Where("release_id IN (?)", finished).
		Delete(&moderationActionModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
