package httpadapter

import (
	"context"

	"pressroom/contexts/release-lifecycle/alert-dispatcher/application/commands"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/application/queries"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/domain/entities"
	httptransport "pressroom/contexts/release-lifecycle/alert-dispatcher/transport/http"
)

type Handler struct {
	Dispatcher commands.Dispatcher
	Queries    queries.QueryUseCase
}

func (h Handler) ListAlertsHandler(ctx context.Context, alertType string, limit int) (httptransport.ListAlertsResponse, error) {
	items, err := h.Queries.ListAlerts(ctx, alertType, limit)
	if err != nil {
		return httptransport.ListAlertsResponse{}, err
	}
	resp := httptransport.ListAlertsResponse{Items: make([]httptransport.AlertDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapAlert(item))
	}
	return resp, nil
}

func (h Handler) EvaluateQueueHandler(
	ctx context.Context,
	req httptransport.EvaluateQueueRequest,
) (httptransport.EvaluateQueueResponse, error) {
	alert, raised, err := h.Dispatcher.EvaluateQueue(ctx, req.PendingCount)
	if !raised {
		return httptransport.EvaluateQueueResponse{}, err
	}
	dto := mapAlert(alert)
	return httptransport.EvaluateQueueResponse{Raised: true, Alert: &dto}, err
}

func mapAlert(item entities.Alert) httptransport.AlertDTO {
	return httptransport.AlertDTO{
		AlertID:          item.AlertID,
		Type:             string(item.Type),
		Title:            item.Title,
		Message:          item.Message,
		Severity:         string(item.Severity),
		Source:           item.Source,
		RelatedReleaseID: item.RelatedReleaseID,
		Metadata:         item.Metadata,
		CreatedAt:        item.CreatedAt,
	}
}
