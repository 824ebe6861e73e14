package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/identity"
)

func stageClientHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StageClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		staged, err := svc.StageClient(r.Context(), identity.StageClientParams{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Age:      req.Age,
			Location: req.Location,
			Password: req.Password,
		})
		if err != nil {
			handleIdentityError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toStagedClientResponse(staged))
	}
}

func listStagedClientsHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staged, err := svc.ListStagedClients(r.Context())
		if err != nil {
			handleIdentityError(w, err)
			return
		}

		out := make([]StagedClientResponse, 0, len(staged))
		for i := range staged {
			out = append(out, toStagedClientResponse(&staged[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func promoteClientHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(w, r)
		if !ok {
			return
		}

		user, err := svc.Promote(r.Context(), id)
		if err != nil {
			handleIdentityError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toUserResponse(user))
	}
}

func deleteStagedClientHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteStagedClient(r.Context(), id); err != nil {
			handleIdentityError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listUsersHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			handleIdentityError(w, err)
			return
		}

		out := make([]UserResponse, 0, len(users))
		for i := range users {
			out = append(out, toUserResponse(&users[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteUserHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteUser(r.Context(), id); err != nil {
			handleIdentityError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func clientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
