package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	releaseerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	releasehttp "pressroom/contexts/release-lifecycle/release-service/transport/http"
)

func writeReleaseError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, releasehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeReleaseDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, releaseerrors.ErrValidation),
		errors.Is(err, releaseerrors.ErrUnknownFeedbackTemplate):
		writeReleaseError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, releaseerrors.ErrUnauthorizedActor):
		writeReleaseError(w, http.StatusUnauthorized, "MODERATOR_REQUIRED", err.Error())
	case errors.Is(err, releaseerrors.ErrReleaseNotFound):
		writeReleaseError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, releaseerrors.ErrInvalidTransition):
		writeReleaseError(w, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, releaseerrors.ErrConflict):
		writeReleaseError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, releaseerrors.ErrAnalyzerUnavailable):
		writeReleaseError(w, http.StatusServiceUnavailable, "ANALYZER_UNAVAILABLE", err.Error())
	default:
		writeReleaseError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) handleCreateRelease(w http.ResponseWriter, r *http.Request) {
	var req releasehttp.CreateReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReleaseError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	resp, err := s.releases.Handler.CreateReleaseHandler(r.Context(), req)
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListReleases(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.releases.Handler.ListReleasesHandler(
		r.Context(),
		query.Get("status"),
		query.Get("client_type"),
		query.Get("search"),
	)
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRelease(w http.ResponseWriter, r *http.Request) {
	resp, err := s.releases.Handler.GetReleaseHandler(r.Context(), r.PathValue("release_id"))
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitRelease(w http.ResponseWriter, r *http.Request) {
	actorID, _ := moderatorFromHeaders(r)
	resp, err := s.releases.Handler.SubmitReleaseHandler(r.Context(), actorID, r.PathValue("release_id"))
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransitionRelease(w http.ResponseWriter, r *http.Request) {
	var req releasehttp.TransitionReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReleaseError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	moderatorID, moderatorName := moderatorFromHeaders(r)
	resp, err := s.releases.Handler.TransitionReleaseHandler(r.Context(), moderatorID, moderatorName, r.PathValue("release_id"), req)
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveRelease(w http.ResponseWriter, r *http.Request) {
	var req releasehttp.ApproveReleaseRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeReleaseError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
			return
		}
	}
	moderatorID, moderatorName := moderatorFromHeaders(r)
	resp, err := s.releases.Handler.ApproveReleaseHandler(r.Context(), moderatorID, moderatorName, r.PathValue("release_id"), req)
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectRelease(w http.ResponseWriter, r *http.Request) {
	var req releasehttp.RejectReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReleaseError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	moderatorID, moderatorName := moderatorFromHeaders(r)
	resp, err := s.releases.Handler.RejectReleaseHandler(r.Context(), moderatorID, moderatorName, r.PathValue("release_id"), req)
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEditRelease(w http.ResponseWriter, r *http.Request) {
	var req releasehttp.EditReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReleaseError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	moderatorID, moderatorName := moderatorFromHeaders(r)
	resp, err := s.releases.Handler.EditReleaseHandler(r.Context(), moderatorID, moderatorName, r.PathValue("release_id"), req)
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAppendModerationAction(w http.ResponseWriter, r *http.Request) {
	var req releasehttp.ModerationActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReleaseError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	moderatorID, moderatorName := moderatorFromHeaders(r)
	resp, err := s.releases.Handler.AppendModerationActionHandler(r.Context(), moderatorID, moderatorName, r.PathValue("release_id"), req)
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListModerationActions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.releases.Handler.ListModerationActionsHandler(r.Context(), r.PathValue("release_id"))
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyzeRelease(w http.ResponseWriter, r *http.Request) {
	resp, err := s.releases.Handler.AnalyzeReleaseHandler(r.Context(), r.PathValue("release_id"))
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModerationQueue(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.releases.Handler.ModerationQueueHandler(r.Context(), query.Get("search"), query.Get("priority"))
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetThresholds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.releases.Handler.GetThresholdsHandler())
}

func (s *Server) handleUpdateThresholds(w http.ResponseWriter, r *http.Request) {
	var req releasehttp.ThresholdsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReleaseError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	resp, err := s.releases.Handler.UpdateThresholdsHandler(req)
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
