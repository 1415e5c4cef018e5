package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/monitoring-service/application"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/services"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

type UpdateTargetsCommand struct {
	MonitoringID   string
	TargetWebsites []string
	Frequency      string
	Keywords       []string
}

type UpdateTargetsUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute replaces targets; empty frequency or nil keywords keep the current values.
func (uc UpdateTargetsUseCase) Execute(ctx context.Context, cmd UpdateTargetsCommand) (entities.Monitoring, error) {
	logger := application.ResolveLogger(uc.Logger)
	targets := services.NormalizeTargets(cmd.TargetWebsites)
	if len(targets) == 0 {
		return entities.Monitoring{}, fmt.Errorf("%w: at least one target website is required", domainerrors.ErrValidation)
	}
	var frequency entities.Frequency
	if strings.TrimSpace(cmd.Frequency) != "" {
		parsed, ok := entities.ParseFrequency(cmd.Frequency)
		if !ok {
			return entities.Monitoring{}, fmt.Errorf("%w: unknown frequency %q", domainerrors.ErrValidation, cmd.Frequency)
		}
		frequency = parsed
	}

	monitoring, err := mutate(ctx, uc.Repository, strings.TrimSpace(cmd.MonitoringID), func(m *entities.Monitoring) error {
		if m.Status == entities.MonitoringStatusComplete {
			return fmt.Errorf("%w: monitoring is complete", domainerrors.ErrInvalidTransition)
		}
		m.TargetWebsites = targets
		if frequency != "" {
			m.Frequency = frequency
		}
		if cmd.Keywords != nil {
			m.Keywords = cleanKeywords(cmd.Keywords)
		}
		m.UpdatedAt = uc.Clock.Now().UTC()
		return nil
	})
	if err != nil {
		return entities.Monitoring{}, err
	}
	logger.Info("monitoring targets updated",
		"event", "monitoring_targets_updated",
		"module", "release-lifecycle/monitoring-service",
		"layer", "application",
		"monitoring_id", monitoring.MonitoringID,
		"targets", strings.Join(monitoring.TargetWebsites, ","),
		"frequency", string(monitoring.Frequency),
	)
	return monitoring, nil
}
