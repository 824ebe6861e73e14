package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/clinic"
)

func submitContactHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		c, err := svc.SubmitContact(r.Context(), req.Name, req.Email, req.Message)
		if err != nil {
			handleClinicError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toContactResponse(c))
	}
}

func listContactsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := svc.ListContacts(r.Context())
		if err != nil {
			handleClinicError(w, err)
			return
		}

		out := make([]ContactResponse, 0, len(cs))
		for i := range cs {
			out = append(out, toContactResponse(&cs[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteContactHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clinicID(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteContact(r.Context(), id); err != nil {
			handleClinicError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addTeamMemberHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		m, err := svc.AddTeamMember(r.Context(), req.Name, req.Role, req.Bio, req.ImageURL)
		if err != nil {
			handleClinicError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTeamMemberResponse(m))
	}
}

func listTeamHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := svc.ListTeam(r.Context())
		if err != nil {
			handleClinicError(w, err)
			return
		}

		out := make([]TeamMemberResponse, 0, len(ms))
		for i := range ms {
			out = append(out, toTeamMemberResponse(&ms[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateTeamMemberHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clinicID(w, r)
		if !ok {
			return
		}

		var req TeamMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		m, err := svc.UpdateTeamMember(r.Context(), id, req.Name, req.Role, req.Bio, req.ImageURL)
		if err != nil {
			handleClinicError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTeamMemberResponse(m))
	}
}

func deleteTeamMemberHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clinicID(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteTeamMember(r.Context(), id); err != nil {
			handleClinicError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func clinicID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func handleClinicError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrContactNotFound):
		writeError(w, http.StatusNotFound, "contact_not_found", err.Error())
	case errors.Is(err, clinic.ErrTeamMemberNotFound):
		writeError(w, http.StatusNotFound, "team_member_not_found", err.Error())
	case errors.Is(err, clinic.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "missing_fields", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
