package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/profbkmurage/physiocare/internal/appointment"
	"github.com/profbkmurage/physiocare/internal/blog"
	"github.com/profbkmurage/physiocare/internal/clinic"
	"github.com/profbkmurage/physiocare/internal/identity"
	redisclient "github.com/profbkmurage/physiocare/internal/redis"
	"github.com/profbkmurage/physiocare/internal/testimonial"
)

type RouterConfig struct {
	Identity     *identity.Service
	Appointments *appointment.Service
	Testimonials *testimonial.Service
	Blogs        *blog.Service
	Clinic       *clinic.Service
	Bus          redisclient.Bus
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	JWTSecret    string
	AuthLimiter  *RateLimiter
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	authed := Authenticated(cfg.Identity, cfg.JWTSecret)

	r.Route("/api/v1", func(r chi.Router) {
		// Public: marketing pages, registration staging, auth.
		r.Group(func(r chi.Router) {
			if cfg.AuthLimiter != nil {
				r.Use(cfg.AuthLimiter.Limit)
			}
			r.Post("/auth/register", registerHandler(cfg.Identity))
			r.Post("/auth/login", loginHandler(cfg.Identity))
			r.Post("/auth/reset-password", requestPasswordResetHandler(cfg.Identity))
			r.Post("/auth/reset-password/complete", completePasswordResetHandler(cfg.Identity))
			r.Post("/clients", stageClientHandler(cfg.Identity))
		})

		r.Get("/testimonials", listPublicTestimonialsHandler(cfg.Testimonials))
		r.Get("/blogs", listBlogsHandler(cfg.Blogs))
		r.Get("/blogs/{id}", getBlogHandler(cfg.Blogs))
		r.Get("/blogs/{id}/comments", listBlogCommentsHandler(cfg.Blogs))
		r.Post("/blogs/{id}/like", likeBlogHandler(cfg.Blogs))
		r.Post("/blogs/{id}/share", shareBlogHandler(cfg.Blogs))
		r.Post("/contacts", submitContactHandler(cfg.Clinic))
		r.Get("/team", listTeamHandler(cfg.Clinic))

		// Signed-in clients.
		r.Group(func(r chi.Router) {
			r.Use(authed)

			r.Post("/auth/change-password", changePasswordHandler(cfg.Identity))

			r.Post("/appointments", bookAppointmentHandler(cfg.Appointments))
			r.Get("/appointments", listMyAppointmentsHandler(cfg.Appointments))
			r.Get("/appointments/watch", watchAppointmentsHandler(cfg.Appointments, cfg.Bus))
			r.Post("/appointments/{id}/reschedule", rescheduleAppointmentHandler(cfg.Appointments))
			r.Post("/appointments/{id}/accept-proposal", acceptProposalHandler(cfg.Appointments))
			r.Post("/appointments/{id}/decline-proposal", declineProposalHandler(cfg.Appointments))
			r.Post("/appointments/{id}/revoke", revokeAppointmentHandler(cfg.Appointments))
			r.Delete("/appointments/{id}", deleteAppointmentHandler(cfg.Appointments))

			r.Post("/testimonials", submitTestimonialHandler(cfg.Testimonials))
			r.Get("/testimonials/mine", listMyTestimonialsHandler(cfg.Testimonials))
			r.Put("/testimonials/{id}", editTestimonialHandler(cfg.Testimonials))
			r.Delete("/testimonials/{id}", deleteTestimonialHandler(cfg.Testimonials))

			r.Post("/blogs/{id}/comments", addBlogCommentHandler(cfg.Blogs))
		})

		// Admin console.
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Use(AdminOnly)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/appointments", listAppointmentsHandler(cfg.Appointments))
				r.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments))
				r.Post("/appointments/{id}/approve", approveAppointmentHandler(cfg.Appointments))
				r.Post("/appointments/{id}/propose-reschedule", proposeRescheduleHandler(cfg.Appointments))
				r.Post("/appointments/{id}/comment", commentAppointmentHandler(cfg.Appointments))
				r.Get("/appointments/{id}/outreach", appointmentOutreachHandler(cfg.Appointments))

				r.Get("/clients", listStagedClientsHandler(cfg.Identity))
				r.Post("/clients/{id}/promote", promoteClientHandler(cfg.Identity))
				r.Delete("/clients/{id}", deleteStagedClientHandler(cfg.Identity))
				r.Get("/users", listUsersHandler(cfg.Identity))
				r.Delete("/users/{id}", deleteUserHandler(cfg.Identity))

				r.Get("/testimonials", listAllTestimonialsHandler(cfg.Testimonials))
				r.Post("/testimonials/{id}/approve", approveTestimonialHandler(cfg.Testimonials))
				r.Post("/testimonials/{id}/unapprove", unapproveTestimonialHandler(cfg.Testimonials))

				r.Post("/blogs", createBlogHandler(cfg.Blogs))
				r.Put("/blogs/{id}", updateBlogHandler(cfg.Blogs))
				r.Delete("/blogs/{id}", deleteBlogHandler(cfg.Blogs))
				r.Get("/comments", listAllBlogCommentsHandler(cfg.Blogs))
				r.Post("/comments/{commentID}/approve", approveBlogCommentHandler(cfg.Blogs))
				r.Post("/comments/{commentID}/unapprove", unapproveBlogCommentHandler(cfg.Blogs))
				r.Delete("/comments/{commentID}", deleteBlogCommentHandler(cfg.Blogs))

				r.Get("/contacts", listContactsHandler(cfg.Clinic))
				r.Delete("/contacts/{id}", deleteContactHandler(cfg.Clinic))
				r.Post("/team", addTeamMemberHandler(cfg.Clinic))
				r.Put("/team/{id}", updateTeamMemberHandler(cfg.Clinic))
				r.Delete("/team/{id}", deleteTeamMemberHandler(cfg.Clinic))
			})
		})
	})

	return r
}
