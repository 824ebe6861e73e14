package testimonial

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

type Repository interface {
	Create(ctx context.Context, t *Testimonial) error
	GetByID(ctx context.Context, id uuid.UUID) (*Testimonial, error)
	// ListByStatus with an empty status returns everything (admin view).
	ListByStatus(ctx context.Context, status Status) ([]Testimonial, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Testimonial, error)
	Update(ctx context.Context, t *Testimonial) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
