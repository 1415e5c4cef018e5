package httpadapter

import (
	"context"

	"pressroom/contexts/release-lifecycle/monitoring-service/application/commands"
	"pressroom/contexts/release-lifecycle/monitoring-service/application/queries"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	httptransport "pressroom/contexts/release-lifecycle/monitoring-service/transport/http"
)

type Handler struct {
	Create  commands.CreateMonitoringUseCase
	Cycle   commands.RunCheckCycleUseCase
	Status  commands.ChangeStatusUseCase
	Verify  commands.VerifyResultUseCase
	Targets commands.UpdateTargetsUseCase
	Queries queries.QueryUseCase
}

func (h Handler) CreateMonitoringHandler(
	ctx context.Context,
	req httptransport.CreateMonitoringRequest,
) (httptransport.MonitoringResponse, error) {
	item, created, err := h.Create.Create(ctx, commands.CreateMonitoringCommand{
		ReleaseID:  req.ReleaseID,
		ExtraSites: req.ExtraSites,
		Keywords:   req.Keywords,
		Frequency:  req.Frequency,
	})
	if err != nil {
		return httptransport.MonitoringResponse{}, err
	}
	return httptransport.MonitoringResponse{Monitoring: mapMonitoring(item), Created: created}, nil
}

func (h Handler) GetMonitoringHandler(ctx context.Context, monitoringID string) (httptransport.MonitoringResponse, error) {
	item, err := h.Queries.GetMonitoring(ctx, monitoringID)
	if err != nil {
		return httptransport.MonitoringResponse{}, err
	}
	return httptransport.MonitoringResponse{Monitoring: mapMonitoring(item)}, nil
}

func (h Handler) GetMonitoringByReleaseHandler(ctx context.Context, releaseID string) (httptransport.MonitoringResponse, error) {
	item, err := h.Queries.GetMonitoringByRelease(ctx, releaseID)
	if err != nil {
		return httptransport.MonitoringResponse{}, err
	}
	return httptransport.MonitoringResponse{Monitoring: mapMonitoring(item)}, nil
}

func (h Handler) ListMonitoringsHandler(ctx context.Context, status string) (httptransport.ListMonitoringsResponse, error) {
	items, err := h.Queries.ListMonitorings(ctx, status)
	if err != nil {
		return httptransport.ListMonitoringsResponse{}, err
	}
	resp := httptransport.ListMonitoringsResponse{Items: make([]httptransport.MonitoringDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapMonitoring(item))
	}
	return resp, nil
}

func (h Handler) RunCheckCycleHandler(ctx context.Context, monitoringID string) (httptransport.CheckCycleResponse, error) {
	result, err := h.Cycle.Execute(ctx, monitoringID)
	if err != nil {
		return httptransport.CheckCycleResponse{}, err
	}
	resp := httptransport.CheckCycleResponse{
		Cycle:      mapCycle(result.Cycle),
		Monitoring: mapMonitoring(result.Monitoring),
		NewResults: make([]httptransport.MonitoringResultDTO, 0, len(result.NewResults)),
		Paused:     result.Paused,
	}
	for _, item := range result.NewResults {
		resp.NewResults = append(resp.NewResults, mapResult(item))
	}
	return resp, nil
}

func (h Handler) PauseMonitoringHandler(ctx context.Context, monitoringID string) (httptransport.MonitoringResponse, error) {
	return h.statusResponse(h.Status.Pause(ctx, monitoringID))
}

func (h Handler) ResumeMonitoringHandler(ctx context.Context, monitoringID string) (httptransport.MonitoringResponse, error) {
	return h.statusResponse(h.Status.Resume(ctx, monitoringID))
}

func (h Handler) CompleteMonitoringHandler(ctx context.Context, monitoringID string) (httptransport.MonitoringResponse, error) {
	return h.statusResponse(h.Status.Complete(ctx, monitoringID))
}

func (h Handler) UpdateTargetsHandler(
	ctx context.Context,
	monitoringID string,
	req httptransport.UpdateTargetsRequest,
) (httptransport.MonitoringResponse, error) {
	item, err := h.Targets.Execute(ctx, commands.UpdateTargetsCommand{
		MonitoringID:   monitoringID,
		TargetWebsites: req.TargetWebsites,
		Frequency:      req.Frequency,
		Keywords:       req.Keywords,
	})
	if err != nil {
		return httptransport.MonitoringResponse{}, err
	}
	return httptransport.MonitoringResponse{Monitoring: mapMonitoring(item)}, nil
}

func (h Handler) VerifyResultHandler(
	ctx context.Context,
	resultID string,
	req httptransport.VerifyResultRequest,
) (httptransport.MonitoringResultResponse, error) {
	item, err := h.Verify.Execute(ctx, resultID, req.Verified)
	if err != nil {
		return httptransport.MonitoringResultResponse{}, err
	}
	return httptransport.MonitoringResultResponse{Result: mapResult(item)}, nil
}

func (h Handler) ListCyclesHandler(ctx context.Context, monitoringID string, limit int) (httptransport.ListCyclesResponse, error) {
	items, err := h.Queries.ListCycles(ctx, monitoringID, limit)
	if err != nil {
		return httptransport.ListCyclesResponse{}, err
	}
	resp := httptransport.ListCyclesResponse{Items: make([]httptransport.CheckCycleDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapCycle(item))
	}
	return resp, nil
}

func (h Handler) statusResponse(item entities.Monitoring, err error) (httptransport.MonitoringResponse, error) {
	if err != nil {
		return httptransport.MonitoringResponse{}, err
	}
	return httptransport.MonitoringResponse{Monitoring: mapMonitoring(item)}, nil
}

func mapMonitoring(item entities.Monitoring) httptransport.MonitoringDTO {
	dto := httptransport.MonitoringDTO{
		MonitoringID:        item.MonitoringID,
		ReleaseID:           item.ReleaseID,
		ReleaseTitle:        item.ReleaseTitle,
		TargetWebsites:      append([]string{}, item.TargetWebsites...),
		Frequency:           string(item.Frequency),
		LastChecked:         item.LastChecked,
		Status:              string(item.Status),
		ConsecutiveFailures: item.ConsecutiveFailures,
		Keywords:            append([]string{}, item.Keywords...),
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
		Results:             make([]httptransport.MonitoringResultDTO, 0, len(item.Results)),
	}
	for _, result := range item.Results {
		dto.Results = append(dto.Results, mapResult(result))
	}
	return dto
}

func mapResult(item entities.MonitoringResult) httptransport.MonitoringResultDTO {
	return httptransport.MonitoringResultDTO{
		ResultID:     item.ResultID,
		MonitoringID: item.MonitoringID,
		FoundURL:     item.FoundURL,
		FoundAt:      item.FoundAt,
		WebsiteName:  item.WebsiteName,
		Excerpt:      item.Excerpt,
		Verified:     item.Verified.Bool(),
	}
}

func mapCycle(item entities.CheckCycle) httptransport.CheckCycleDTO {
	return httptransport.CheckCycleDTO{
		CycleID:    item.CycleID,
		StartedAt:  item.StartedAt,
		FinishedAt: item.FinishedAt,
		Attempts:   item.Attempts,
		Outcome:    string(item.Outcome),
		NewResults: item.NewResults,
		Error:      item.Error,
	}
}
