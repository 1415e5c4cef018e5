package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/monitoring-service/application"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

type VerifyResultUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// Execute records a human verdict. Repeating the same verdict changes nothing.
func (uc VerifyResultUseCase) Execute(ctx context.Context, resultID string, verified bool) (entities.MonitoringResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	result, err := uc.Repository.GetResult(ctx, strings.TrimSpace(resultID))
	if err != nil {
		return entities.MonitoringResult{}, err
	}
	target := entities.VerifiedFromBool(verified)
	if result.Verified == target {
		return result, nil
	}
	if err := uc.Repository.SetResultVerified(ctx, result.ResultID, target); err != nil {
		return entities.MonitoringResult{}, err
	}
	result.Verified = target
	logger.Info("monitoring result verified",
		"event", "monitoring_result_verified",
		"module", "release-lifecycle/monitoring-service",
		"layer", "application",
		"result_id", result.ResultID,
		"monitoring_id", result.MonitoringID,
		"verified", target.String(),
	)
	return result, nil
}
