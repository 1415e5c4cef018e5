package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
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

// AutoMigrate creates or updates the monitoring tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&monitoringModel{}, &resultModel{}, &cycleModel{})
}

func (r *Repository) CreateMonitoring(ctx context.Context, monitoring entities.Monitoring) (entities.Monitoring, bool, error) {
	row := monitoringModelFromEntity(monitoring)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "release_id"}}, DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entities.Monitoring{}, false, fmt.Errorf("%w: monitoring %s already exists", domainerrors.ErrConflict, monitoring.MonitoringID)
		}
		return entities.Monitoring{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		existing, err := r.GetMonitoringByRelease(ctx, monitoring.ReleaseID)
		return existing, false, err
	}
	created := row.toEntity()
	created.Results = []entities.MonitoringResult{}
	return created, true, nil
}

func (r *Repository) GetMonitoring(ctx context.Context, monitoringID string) (entities.Monitoring, error) {
	return r.first(ctx, "monitoring_id = ?", strings.TrimSpace(monitoringID))
}

func (r *Repository) GetMonitoringByRelease(ctx context.Context, releaseID string) (entities.Monitoring, error) {
	return r.first(ctx, "release_id = ?", strings.TrimSpace(releaseID))
}

func (r *Repository) first(ctx context.Context, condition string, value string) (entities.Monitoring, error) {
	var row monitoringModel
	if err := r.db.WithContext(ctx).Where(condition, value).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Monitoring{}, domainerrors.ErrMonitoringNotFound
		}
		return entities.Monitoring{}, err
	}
	monitoring := row.toEntity()
	results, err := r.ListResults(ctx, monitoring.MonitoringID)
	if err != nil {
		return entities.Monitoring{}, err
	}
	monitoring.Results = results
	return monitoring, nil
}

// ListMonitorings does not load results.
func (r *Repository) ListMonitorings(ctx context.Context, filter ports.MonitoringFilter) ([]entities.Monitoring, error) {
	tx := r.db.WithContext(ctx).Model(&monitoringModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	var rows []monitoringModel
	if err := tx.Order("created_at ASC").Order("monitoring_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Monitoring, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateMonitoring(ctx context.Context, monitoring entities.Monitoring, expectedVersion int64) error {
	result := r.db.WithContext(ctx).
		Model(&monitoringModel{}).
		Where("monitoring_id = ?", monitoring.MonitoringID).
		Where("version = ?", expectedVersion).
		Updates(monitoringUpdates(monitoring, expectedVersion+1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&monitoringModel{}).
		Where("monitoring_id = ?", monitoring.MonitoringID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrMonitoringNotFound
	}
	r.logger.Warn("monitoring version mismatch",
		"event", "monitoring_update_conflict",
		"module", "release-lifecycle/monitoring-service",
		"layer", "adapter",
		"monitoring_id", monitoring.MonitoringID,
		"expected_version", expectedVersion,
	)
	return fmt.Errorf("%w: monitoring %s changed since version %d", domainerrors.ErrConflict, monitoring.MonitoringID, expectedVersion)
}

func (r *Repository) AppendResult(ctx context.Context, result entities.MonitoringResult) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&monitoringModel{}).
		Where("monitoring_id = ?", result.MonitoringID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, domainerrors.ErrMonitoringNotFound
	}
	if result.ResultID == "" {
		result.ResultID = uuid.NewString()
	}

	row := resultModelFromEntity(result)
	created := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "monitoring_id"}, {Name: "found_url"}},
			DoNothing: true,
		}).
		Create(&row)
	if created.Error != nil {
		if isUniqueViolation(created.Error) {
			return false, nil
		}
		return false, created.Error
	}
	return created.RowsAffected == 1, nil
}

func (r *Repository) GetResult(ctx context.Context, resultID string) (entities.MonitoringResult, error) {
	var row resultModel
	if err := r.db.WithContext(ctx).Where("result_id = ?", strings.TrimSpace(resultID)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.MonitoringResult{}, domainerrors.ErrResultNotFound
		}
		return entities.MonitoringResult{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListResults(ctx context.Context, monitoringID string) ([]entities.MonitoringResult, error) {
	var rows []resultModel
	if err := r.db.WithContext(ctx).
		Where("monitoring_id = ?", strings.TrimSpace(monitoringID)).
		Order("created_at ASC").
		Order("found_url ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.MonitoringResult, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SetResultVerified(ctx context.Context, resultID string, verified entities.Verified) error {
	result := r.db.WithContext(ctx).
		Model(&resultModel{}).
		Where("result_id = ?", strings.TrimSpace(resultID)).
		Update("verified", int8(verified))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrResultNotFound
	}
	return nil
}

func (r *Repository) SaveCycle(ctx context.Context, cycle entities.CheckCycle) error {
	row := cycleModelFromEntity(cycle)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListCycles(ctx context.Context, monitoringID string, limit int) ([]entities.CheckCycle, error) {
	tx := r.db.WithContext(ctx).
		Where("monitoring_id = ?", strings.TrimSpace(monitoringID)).
		Order("started_at DESC").
		Order("cycle_id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []cycleModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.CheckCycle, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) PruneHistory(ctx context.Context, olderThan time.Time) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		completed := func() *gorm.DB {
			return tx.Model(&monitoringModel{}).
				Select("monitoring_id").
				Where("status = ?", string(entities.MonitoringStatusComplete))
		}

		results := tx.
			Where("monitoring_id IN (?)", completed()).
			Where("verified = ?", int8(entities.VerifiedFalse)).
			Where("created_at < ?", olderThan.UTC()).
			Delete(&resultModel{})
		if results.Error != nil {
			return results.Error
		}
		cycles := tx.
			Where("monitoring_id IN (?)", completed()).
			Where("started_at < ?", olderThan.UTC()).
			Delete(&cycleModel{})
		if cycles.Error != nil {
			return cycles.Error
		}
		removed = results.RowsAffected + cycles.RowsAffected
		return nil
	})
	return removed, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
