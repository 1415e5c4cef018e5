package httpserver

import (
	"errors"
	"net/http"

	alerterrors "pressroom/contexts/release-lifecycle/alert-dispatcher/domain/errors"
	alerthttp "pressroom/contexts/release-lifecycle/alert-dispatcher/transport/http"
)

func writeAlertError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, alerthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeAlertDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, alerterrors.ErrValidation):
		writeAlertError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, alerterrors.ErrSinkFailed):
		writeAlertError(w, http.StatusBadGateway, "SINK_FAILED", err.Error())
	default:
		writeAlertError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeAlertError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
		return
	}
	resp, err := s.alerts.Handler.ListAlertsHandler(r.Context(), r.URL.Query().Get("type"), limit)
	if err != nil {
		writeAlertDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleQueueCheck evaluates the current moderation backlog on demand.
func (s *Server) handleQueueCheck(w http.ResponseWriter, r *http.Request) {
	pending, err := s.releases.Queries.CountPending(r.Context())
	if err != nil {
		writeReleaseDomainError(w, err)
		return
	}
	resp, err := s.alerts.Handler.EvaluateQueueHandler(r.Context(), alerthttp.EvaluateQueueRequest{PendingCount: pending})
	if err != nil {
		writeAlertDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
