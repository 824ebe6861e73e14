package clinic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrMissingFields = errors.New("missing required fields")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) SubmitContact(ctx context.Context, name, email, message string) (*Contact, error) {
	if name == "" || email == "" || message == "" {
		return nil, ErrMissingFields
	}
	c := &Contact{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return c, nil
}

func (s *Service) ListContacts(ctx context.Context) ([]Contact, error) {
	return s.repo.ListContacts(ctx)
}

func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, id)
}

func (s *Service) AddTeamMember(ctx context.Context, name, role, bio, imageURL string) (*TeamMember, error) {
	if name == "" || role == "" {
		return nil, ErrMissingFields
	}
	m := &TeamMember{
		ID:       uuid.New(),
		Name:     name,
		Role:     role,
		Bio:      bio,
		ImageURL: imageURL,
	}
	if err := s.repo.CreateTeamMember(ctx, m); err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return m, nil
}

func (s *Service) ListTeam(ctx context.Context) ([]TeamMember, error) {
	return s.repo.ListTeam(ctx)
}

func (s *Service) UpdateTeamMember(ctx context.Context, id uuid.UUID, name, role, bio, imageURL string) (*TeamMember, error) {
	if name == "" || role == "" {
		return nil, ErrMissingFields
	}
	m := &TeamMember{
		ID:       id,
		Name:     name,
		Role:     role,
		Bio:      bio,
		ImageURL: imageURL,
	}
	if err := s.repo.UpdateTeamMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTeamMember(ctx, id)
}
