package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/blog"
)

func createBlogHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.CreatePost(r.Context(), req.Title, req.Content, req.ImageURL)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBlogResponse(p))
	}
}

func listBlogsHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListPosts(r.Context())
		if err != nil {
			handleBlogError(w, err)
			return
		}

		out := make([]BlogResponse, 0, len(posts))
		for i := range posts {
			out = append(out, toBlogResponse(&posts[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getBlogHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogID(w, r)
		if !ok {
			return
		}

		p, err := svc.GetPost(r.Context(), id)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBlogResponse(p))
	}
}

func updateBlogHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogID(w, r)
		if !ok {
			return
		}

		var req BlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.UpdatePost(r.Context(), id, req.Title, req.Content, req.ImageURL)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBlogResponse(p))
	}
}

func deleteBlogHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogID(w, r)
		if !ok {
			return
		}

		if err := svc.DeletePost(r.Context(), id); err != nil {
			handleBlogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func likeBlogHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogID(w, r)
		if !ok {
			return
		}

		n, err := svc.Like(r.Context(), id)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, CounterResponse{Count: n})
	}
}

func shareBlogHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogID(w, r)
		if !ok {
			return
		}

		n, err := svc.Share(r.Context(), id)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, CounterResponse{Count: n})
	}
}

func addBlogCommentHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
			return
		}
		id, ok := blogID(w, r)
		if !ok {
			return
		}

		var req BlogCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		c, err := svc.AddComment(r.Context(), id, ident.ID, req.Name, req.Message)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBlogCommentResponse(c))
	}
}

func listBlogCommentsHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogID(w, r)
		if !ok {
			return
		}

		cs, err := svc.PublicComments(r.Context(), id)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBlogCommentList(cs))
	}
}

func listAllBlogCommentsHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := svc.AllComments(r.Context())
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBlogCommentList(cs))
	}
}

func approveBlogCommentHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogCommentID(w, r)
		if !ok {
			return
		}

		c, err := svc.ApproveComment(r.Context(), id)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBlogCommentResponse(c))
	}
}

func unapproveBlogCommentHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogCommentID(w, r)
		if !ok {
			return
		}

		c, err := svc.UnapproveComment(r.Context(), id)
		if err != nil {
			handleBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBlogCommentResponse(c))
	}
}

func deleteBlogCommentHandler(svc *blog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := blogCommentID(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteComment(r.Context(), id); err != nil {
			handleBlogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toBlogCommentList(in []blog.Comment) []BlogCommentResponse {
	out := make([]BlogCommentResponse, 0, len(in))
	for i := range in {
		out = append(out, toBlogCommentResponse(&in[i]))
	}
	return out
}

func blogID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_blog_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func blogCommentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_comment_id", "commentID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func handleBlogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blog.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "blog_not_found", err.Error())
	case errors.Is(err, blog.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, "comment_not_found", err.Error())
	case errors.Is(err, blog.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "missing_fields", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
