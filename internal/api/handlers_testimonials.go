package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/testimonial"
)

func submitTestimonialHandler(svc *testimonial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
			return
		}

		var req TestimonialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		t, err := svc.Submit(r.Context(), ident.ID, req.Name, testimonial.Category(req.Category), req.Message)
		if err != nil {
			handleTestimonialError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTestimonialResponse(t))
	}
}

func listPublicTestimonialsHandler(svc *testimonial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := svc.ListPublic(r.Context())
		if err != nil {
			handleTestimonialError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTestimonialList(ts))
	}
}

func listMyTestimonialsHandler(svc *testimonial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
			return
		}

		ts, err := svc.ListMine(r.Context(), ident.ID)
		if err != nil {
			handleTestimonialError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTestimonialList(ts))
	}
}

func listAllTestimonialsHandler(svc *testimonial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := svc.ListAll(r.Context())
		if err != nil {
			handleTestimonialError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTestimonialList(ts))
	}
}

func editTestimonialHandler(svc *testimonial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
			return
		}
		id, ok := testimonialID(w, r)
		if !ok {
			return
		}

		var req TestimonialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		t, err := svc.Edit(r.Context(), ident.ID, id, req.Name, testimonial.Category(req.Category), req.Message)
		if err != nil {
			handleTestimonialError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTestimonialResponse(t))
	}
}

func deleteTestimonialHandler(svc *testimonial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
			return
		}
		id, ok := testimonialID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), ident.ID, ident.Role.Privileged(), id); err != nil {
			handleTestimonialError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func approveTestimonialHandler(svc *testimonial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := testimonialID(w, r)
		if !ok {
			return
		}

		t, err := svc.Approve(r.Context(), id)
		if err != nil {
			handleTestimonialError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTestimonialResponse(t))
	}
}

func unapproveTestimonialHandler(svc *testimonial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := testimonialID(w, r)
		if !ok {
			return
		}

		t, err := svc.Unapprove(r.Context(), id)
		if err != nil {
			handleTestimonialError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTestimonialResponse(t))
	}
}

func toTestimonialList(in []testimonial.Testimonial) []TestimonialResponse {
	out := make([]TestimonialResponse, 0, len(in))
	for i := range in {
		out = append(out, toTestimonialResponse(&in[i]))
	}
	return out
}

func testimonialID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_testimonial_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func handleTestimonialError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, testimonial.ErrTestimonialNotFound):
		writeError(w, http.StatusNotFound, "testimonial_not_found", err.Error())
	case errors.Is(err, testimonial.ErrNotOwner):
		writeError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, testimonial.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, testimonial.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "invalid_category", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
