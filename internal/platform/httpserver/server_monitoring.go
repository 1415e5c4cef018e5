package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	monitoringerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
	monitoringhttp "pressroom/contexts/release-lifecycle/monitoring-service/transport/http"
)

func writeMonitoringError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, monitoringhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeMonitoringDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, monitoringerrors.ErrValidation):
		writeMonitoringError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, monitoringerrors.ErrMonitoringNotFound),
		errors.Is(err, monitoringerrors.ErrResultNotFound),
		errors.Is(err, monitoringerrors.ErrReleaseNotFound):
		writeMonitoringError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, monitoringerrors.ErrInvalidTransition):
		writeMonitoringError(w, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, monitoringerrors.ErrReleaseNotEligible):
		writeMonitoringError(w, http.StatusConflict, "RELEASE_NOT_ELIGIBLE", err.Error())
	case errors.Is(err, monitoringerrors.ErrMonitoringNotActive):
		writeMonitoringError(w, http.StatusConflict, "MONITORING_NOT_ACTIVE", err.Error())
	case errors.Is(err, monitoringerrors.ErrConflict):
		writeMonitoringError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, monitoringerrors.ErrCheckerUnavailable):
		writeMonitoringError(w, http.StatusServiceUnavailable, "CHECKER_UNAVAILABLE", err.Error())
	default:
		writeMonitoringError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) handleCreateMonitoring(w http.ResponseWriter, r *http.Request) {
	var req monitoringhttp.CreateMonitoringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMonitoringError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	resp, err := s.monitoring.Handler.CreateMonitoringHandler(r.Context(), req)
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleListMonitorings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.monitoring.Handler.ListMonitoringsHandler(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMonitoring(w http.ResponseWriter, r *http.Request) {
	resp, err := s.monitoring.Handler.GetMonitoringHandler(r.Context(), r.PathValue("monitoring_id"))
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMonitoringByRelease(w http.ResponseWriter, r *http.Request) {
	resp, err := s.monitoring.Handler.GetMonitoringByReleaseHandler(r.Context(), r.PathValue("release_id"))
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRunCheckCycle(w http.ResponseWriter, r *http.Request) {
	resp, err := s.monitoring.Handler.RunCheckCycleHandler(r.Context(), r.PathValue("monitoring_id"))
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePauseMonitoring(w http.ResponseWriter, r *http.Request) {
	resp, err := s.monitoring.Handler.PauseMonitoringHandler(r.Context(), r.PathValue("monitoring_id"))
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResumeMonitoring(w http.ResponseWriter, r *http.Request) {
	resp, err := s.monitoring.Handler.ResumeMonitoringHandler(r.Context(), r.PathValue("monitoring_id"))
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteMonitoring(w http.ResponseWriter, r *http.Request) {
	resp, err := s.monitoring.Handler.CompleteMonitoringHandler(r.Context(), r.PathValue("monitoring_id"))
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTargets(w http.ResponseWriter, r *http.Request) {
	var req monitoringhttp.UpdateTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMonitoringError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	resp, err := s.monitoring.Handler.UpdateTargetsHandler(r.Context(), r.PathValue("monitoring_id"), req)
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCycles(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeMonitoringError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
		return
	}
	resp, err := s.monitoring.Handler.ListCyclesHandler(r.Context(), r.PathValue("monitoring_id"), limit)
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyResult(w http.ResponseWriter, r *http.Request) {
	var req monitoringhttp.VerifyResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMonitoringError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	resp, err := s.monitoring.Handler.VerifyResultHandler(r.Context(), r.PathValue("result_id"), req)
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
