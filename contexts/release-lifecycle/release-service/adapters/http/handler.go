package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/application/commands"
	"pressroom/contexts/release-lifecycle/release-service/application/queries"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	"pressroom/contexts/release-lifecycle/release-service/domain/services"
	httptransport "pressroom/contexts/release-lifecycle/release-service/transport/http"
)

type Handler struct {
	CreateRelease     commands.CreateReleaseUseCase
	TransitionRelease commands.TransitionReleaseUseCase
	Moderate          commands.ModerateReleaseUseCase
	AppendAction      commands.AppendModerationActionUseCase
	Queries           queries.QueryUseCase
	Queue             queries.ModerationQueueUseCase
	Settings          *application.ModerationSettings
	Logger            *slog.Logger
}

func (h Handler) CreateReleaseHandler(
	ctx context.Context,
	req httptransport.CreateReleaseRequest,
) (httptransport.ReleaseResponse, error) {
	item, err := h.CreateRelease.Execute(ctx, commands.CreateReleaseCommand{
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Content:         req.Content,
		Author:          req.Author,
		ClientName:      req.ClientName,
		ClientType:      req.ClientType,
		MediaOutlet:     req.MediaOutlet,
		PublicationURL:  req.PublicationURL,
		PublicationDate: req.PublicationDate,
		Category:        req.Category,
		Region:          req.Region,
	})
	if err != nil {
		return httptransport.ReleaseResponse{}, err
	}
	return httptransport.ReleaseResponse{Release: h.mapRelease(item)}, nil
}

func (h Handler) GetReleaseHandler(ctx context.Context, releaseID string) (httptransport.ReleaseResponse, error) {
	item, err := h.Queries.GetRelease(ctx, releaseID)
	if err != nil {
		return httptransport.ReleaseResponse{}, err
	}
	return httptransport.ReleaseResponse{Release: h.mapRelease(item)}, nil
}

func (h Handler) ListReleasesHandler(
	ctx context.Context,
	status string,
	clientType string,
	search string,
) (httptransport.ListReleasesResponse, error) {
	items, err := h.Queries.ListReleases(ctx, queries.ListReleasesQuery{
		Status:     status,
		ClientType: clientType,
		Search:     search,
	})
	if err != nil {
		return httptransport.ListReleasesResponse{}, err
	}
	resp := httptransport.ListReleasesResponse{Items: make([]httptransport.ReleaseDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, h.mapRelease(item))
	}
	return resp, nil
}

func (h Handler) SubmitReleaseHandler(ctx context.Context, actorID string, releaseID string) (httptransport.ReleaseResponse, error) {
	item, err := h.Moderate.Submit(ctx, commands.SubmitReleaseCommand{ReleaseID: releaseID, ActorID: actorID})
	if err != nil {
		return httptransport.ReleaseResponse{}, err
	}
	return httptransport.ReleaseResponse{Release: h.mapRelease(item)}, nil
}

func (h Handler) TransitionReleaseHandler(
	ctx context.Context,
	moderatorID string,
	moderatorName string,
	releaseID string,
	req httptransport.TransitionReleaseRequest,
) (httptransport.ReleaseResponse, error) {
	cmd := commands.TransitionReleaseCommand{
		ReleaseID:       releaseID,
		Target:          entities.ReleaseStatus(strings.ToLower(strings.TrimSpace(req.TargetStatus))),
		ModeratorID:     moderatorID,
		ModeratorName:   moderatorName,
		PublicationDate: req.PublicationDate,
	}
	if expected, ok := entities.ParseReleaseStatus(req.ExpectedStatus); ok {
		cmd.ExpectedStatus = expected
	}
	item, err := h.TransitionRelease.Execute(ctx, cmd)
	if err != nil {
		return httptransport.ReleaseResponse{}, err
	}
	return httptransport.ReleaseResponse{Release: h.mapRelease(item)}, nil
}

func (h Handler) ApproveReleaseHandler(
	ctx context.Context,
	moderatorID string,
	moderatorName string,
	releaseID string,
	req httptransport.ApproveReleaseRequest,
) (httptransport.ReleaseResponse, error) {
	item, err := h.Moderate.Approve(ctx, commands.ApproveReleaseCommand{
		ReleaseID:     releaseID,
		ModeratorID:   moderatorID,
		ModeratorName: moderatorName,
		Comments:      req.Comments,
	})
	if err != nil {
		return httptransport.ReleaseResponse{}, err
	}
	return httptransport.ReleaseResponse{Release: h.mapRelease(item)}, nil
}

func (h Handler) RejectReleaseHandler(
	ctx context.Context,
	moderatorID string,
	moderatorName string,
	releaseID string,
	req httptransport.RejectReleaseRequest,
) (httptransport.ReleaseResponse, error) {
	item, err := h.Moderate.Reject(ctx, commands.RejectReleaseCommand{
		ReleaseID:     releaseID,
		ModeratorID:   moderatorID,
		ModeratorName: moderatorName,
		Feedback:      req.Feedback,
		Templates:     req.Templates,
		Highlight:     req.Highlight,
	})
	if err != nil {
		return httptransport.ReleaseResponse{}, err
	}
	return httptransport.ReleaseResponse{Release: h.mapRelease(item)}, nil
}

func (h Handler) EditReleaseHandler(
	ctx context.Context,
	moderatorID string,
	moderatorName string,
	releaseID string,
	req httptransport.EditReleaseRequest,
) (httptransport.ReleaseResponse, error) {
	item, err := h.Moderate.Edit(ctx, commands.EditReleaseCommand{
		ReleaseID:     releaseID,
		ModeratorID:   moderatorID,
		ModeratorName: moderatorName,
		Title:         req.Title,
		EditedContent: req.EditedContent,
		Comments:      req.Comments,
	})
	if err != nil {
		return httptransport.ReleaseResponse{}, err
	}
	return httptransport.ReleaseResponse{Release: h.mapRelease(item)}, nil
}

func (h Handler) AppendModerationActionHandler(
	ctx context.Context,
	moderatorID string,
	moderatorName string,
	releaseID string,
	req httptransport.ModerationActionRequest,
) (httptransport.ModerationActionResponse, error) {
	action, err := h.AppendAction.Execute(ctx, commands.AppendModerationActionCommand{
		ReleaseID:     releaseID,
		ModeratorID:   moderatorID,
		ModeratorName: moderatorName,
		Action:        req.Action,
		Comments:      req.Comments,
		EditedContent: req.EditedContent,
	})
	if err != nil {
		return httptransport.ModerationActionResponse{}, err
	}
	return httptransport.ModerationActionResponse{Action: mapAction(action)}, nil
}

func (h Handler) ListModerationActionsHandler(
	ctx context.Context,
	releaseID string,
) (httptransport.ListModerationActionsResponse, error) {
	items, err := h.Queries.ListModerationActions(ctx, releaseID)
	if err != nil {
		return httptransport.ListModerationActionsResponse{}, err
	}
	resp := httptransport.ListModerationActionsResponse{Items: make([]httptransport.ModerationActionDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapAction(item))
	}
	return resp, nil
}

func (h Handler) ModerationQueueHandler(
	ctx context.Context,
	search string,
	priority string,
) (httptransport.QueueResponse, error) {
	items, err := h.Queue.Queue(ctx, queries.ModerationQueueQuery{Search: search, Priority: priority})
	if err != nil {
		return httptransport.QueueResponse{}, err
	}
	resp := httptransport.QueueResponse{Items: make([]httptransport.QueueItemDTO, 0, len(items)), Total: len(items)}
	for _, item := range items {
		resp.Items = append(resp.Items, mapQueueItem(h.mapRelease(item.Release), item))
	}
	return resp, nil
}

func (h Handler) AnalyzeReleaseHandler(ctx context.Context, releaseID string) (httptransport.QueueItemDTO, error) {
	item, err := h.Queue.Analyze(ctx, releaseID)
	if err != nil {
		return httptransport.QueueItemDTO{}, err
	}
	return mapQueueItem(h.mapRelease(item.Release), item), nil
}

func (h Handler) GetThresholdsHandler() httptransport.ThresholdsResponse {
	return httptransport.ThresholdsResponse{Thresholds: mapThresholds(h.Settings.Thresholds())}
}

func (h Handler) UpdateThresholdsHandler(req httptransport.ThresholdsDTO) (httptransport.ThresholdsResponse, error) {
	thresholds := services.Thresholds{
		RiskHigh:      req.RiskHigh,
		RiskLow:       req.RiskLow,
		SimilarityMax: req.SimilarityMax,
		EngagementMin: req.EngagementMin,
	}
	if err := h.Settings.SetThresholds(thresholds); err != nil {
		return httptransport.ThresholdsResponse{}, err
	}
	application.ResolveLogger(h.Logger).Info("moderation thresholds updated",
		"event", "moderation_thresholds_updated",
		"module", "release-lifecycle/release-service",
		"layer", "transport",
		"risk_high", thresholds.RiskHigh,
		"risk_low", thresholds.RiskLow,
	)
	return httptransport.ThresholdsResponse{Thresholds: mapThresholds(thresholds)}, nil
}

func (h Handler) mapRelease(item entities.Release) httptransport.ReleaseDTO {
	dto := httptransport.ReleaseDTO{
		ReleaseID:         item.ReleaseID,
		Title:             item.Title,
		Subtitle:          item.Subtitle,
		Content:           item.Content,
		Author:            item.Author,
		ClientName:        item.ClientName,
		ClientType:        string(item.ClientType),
		MediaOutlet:       item.MediaOutlet,
		PublicationURL:    item.PublicationURL,
		PublicationDate:   item.PublicationDate,
		Category:          item.Category,
		Region:            item.Region,
		Status:            string(item.Status),
		Priority:          string(h.Settings.Priority().Tier(item.Title, item.Content, item.ClientType)),
		TargetJournalists: append([]string{}, item.TargetJournalists...),
		Version:           item.Version,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
		ModerationHistory: make([]httptransport.ModerationActionDTO, 0, len(item.ModerationHistory)),
	}
	for _, action := range item.ModerationHistory {
		dto.ModerationHistory = append(dto.ModerationHistory, mapAction(action))
	}
	return dto
}

func mapAction(item entities.ModerationAction) httptransport.ModerationActionDTO {
	return httptransport.ModerationActionDTO{
		ActionID:      item.ActionID,
		ReleaseID:     item.ReleaseID,
		ModeratorID:   item.ModeratorID,
		ModeratorName: item.ModeratorName,
		Action:        string(item.Action),
		Comments:      item.Comments,
		EditedContent: item.EditedContent,
		CreatedAt:     item.CreatedAt,
	}
}

func mapQueueItem(release httptransport.ReleaseDTO, item entities.QueueItem) httptransport.QueueItemDTO {
	analysis := httptransport.AnalysisDTO{
		SimilarityScore:      item.Analysis.SimilarityScore,
		RiskScore:            item.Analysis.RiskScore,
		EngagementPrediction: item.Analysis.EngagementPrediction,
		FlaggedTerms:         make([]httptransport.FlaggedTermDTO, 0, len(item.Analysis.FlaggedTerms)),
		SuggestedAction:      string(item.Analysis.SuggestedAction),
		Reasoning:            item.Analysis.Reasoning,
		Scored:               item.Analysis.Scored,
	}
	for _, term := range item.Analysis.FlaggedTerms {
		analysis.FlaggedTerms = append(analysis.FlaggedTerms, httptransport.FlaggedTermDTO{
			Term:     term.Term,
			Position: term.Position,
			Severity: string(term.Severity),
		})
	}
	return httptransport.QueueItemDTO{
		Release:  release,
		Priority: string(item.Priority),
		Analysis: analysis,
	}
}

func mapThresholds(t services.Thresholds) httptransport.ThresholdsDTO {
	return httptransport.ThresholdsDTO{
		RiskHigh:      t.RiskHigh,
		RiskLow:       t.RiskLow,
		SimilarityMax: t.SimilarityMax,
		EngagementMin: t.EngagementMin,
	}
}
