package testimonial

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotOwner        = errors.New("testimonial belongs to another user")
	ErrMissingFields   = errors.New("missing required testimonial fields")
	ErrInvalidCategory = errors.New("unknown testimonial category")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit records a client testimonial. Everything enters moderation as
// pending and becomes publicly visible only once an admin approves it.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, name string, category Category, message string) (*Testimonial, error) {
	if name == "" || message == "" {
		return nil, ErrMissingFields
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	t := &Testimonial{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Category: category,
		Message:  message,
		Status:   StatusPending,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return t, nil
}

// ListPublic returns only approved testimonials.
func (s *Service) ListPublic(ctx context.Context) ([]Testimonial, error) {
	return s.repo.ListByStatus(ctx, StatusApproved)
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]Testimonial, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Testimonial, error) {
	return s.repo.ListByStatus(ctx, "")
}

// Edit lets the owner revise their testimonial; any edit drops it back to
// pending so the revised text goes through moderation again.
func (s *Service) Edit(ctx context.Context, requester uuid.UUID, id uuid.UUID, name string, category Category, message string) (*Testimonial, error) {
	if name == "" || message == "" {
		return nil, ErrMissingFields
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != requester {
		return nil, ErrNotOwner
	}

	t.Name = name
	t.Category = category
	t.Message = message
	t.Status = StatusPending
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, requester uuid.UUID, admin bool, id uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !admin && t.UserID != requester {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	return s.repo.SetStatus(ctx, id, StatusApproved)
}

func (s *Service) Unapprove(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	return s.repo.SetStatus(ctx, id, StatusPending)
}
