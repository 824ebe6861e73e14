package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/profbkmurage/physiocare/internal/identity"
)

func registerHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		user, token, err := svc.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			handleIdentityError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
	}
}

func loginHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		user, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			handleIdentityError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
	}
}

func requestPasswordResetHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		// Always 202: the response must not reveal whether the email exists.
		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "reset_requested"})
	}
}

func completePasswordResetHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompleteResetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if err := svc.CompletePasswordReset(r.Context(), req.Token, req.NewPassword); err != nil {
			handleIdentityError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "password_updated"})
	}
}

func changePasswordHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if err := svc.ChangePassword(r.Context(), ident.ID, req.OldPassword, req.NewPassword); err != nil {
			handleIdentityError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "password_updated"})
	}
}

func handleIdentityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, identity.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, identity.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, "weak_password", err.Error())
	case errors.Is(err, identity.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, identity.ErrInvalidPhone):
		writeError(w, http.StatusBadRequest, "invalid_phone", err.Error())
	case errors.Is(err, identity.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, identity.ErrStagedClientNotFound):
		writeError(w, http.StatusNotFound, "staged_client_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
