package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	journalistqueries "pressroom/contexts/release-lifecycle/journalist-directory/application/queries"
	journalisterrors "pressroom/contexts/release-lifecycle/journalist-directory/domain/errors"
	journalisthttp "pressroom/contexts/release-lifecycle/journalist-directory/transport/http"
)

func writeJournalistError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, journalisthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJournalistDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, journalisterrors.ErrValidation):
		writeJournalistError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, journalisterrors.ErrContactNotFound):
		writeJournalistError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, journalisterrors.ErrConflict):
		writeJournalistError(w, http.StatusConflict, "CONFLICT", err.Error())
	default:
		writeJournalistError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeJournalistError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
		return
	}
	offset, ok := queryInt(r, "offset")
	if !ok {
		writeJournalistError(w, http.StatusBadRequest, "INVALID_OFFSET", "offset must be a non-negative integer")
		return
	}
	query := r.URL.Query()
	resp, err := s.journalists.Handler.ListContactsHandler(r.Context(), journalistqueries.ListContactsQuery{
		Name:        query.Get("name"),
		MediaOutlet: query.Get("media_outlet"),
		Category:    query.Get("category"),
		Region:      query.Get("region"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		writeJournalistDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	resp, err := s.journalists.Handler.GetContactHandler(r.Context(), r.PathValue("contact_id"))
	if err != nil {
		writeJournalistDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	s.upsertContact(w, r, "", http.StatusCreated)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	s.upsertContact(w, r, r.PathValue("contact_id"), http.StatusOK)
}

func (s *Server) upsertContact(w http.ResponseWriter, r *http.Request, contactID string, status int) {
	var req journalisthttp.UpsertContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJournalistError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	resp, err := s.journalists.Handler.UpsertContactHandler(r.Context(), contactID, req)
	if err != nil {
		writeJournalistDomainError(w, err)
		return
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleMatchJournalists(w http.ResponseWriter, r *http.Request) {
	var req journalisthttp.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJournalistError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	resp, err := s.journalists.Handler.MatchHandler(r.Context(), req)
	if err != nil {
		writeJournalistDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
