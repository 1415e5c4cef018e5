package queries

import (
	"context"
	"fmt"

	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/alert-dispatcher/domain/errors"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type QueryUseCase struct {
	Log ports.AlertLog
}

// ListAlerts returns recorded alerts newest first.
func (uc QueryUseCase) ListAlerts(ctx context.Context, alertType string, limit int) ([]entities.Alert, error) {
	filter := ports.AlertFilter{Limit: limit}
	if alertType != "" {
		parsed, ok := entities.ParseAlertType(alertType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown alert type %q", domainerrors.ErrValidation, alertType)
		}
		filter.Type = parsed
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if uc.Log == nil {
		return []entities.Alert{}, nil
	}
	return uc.Log.ListAlerts(ctx, filter)
}
