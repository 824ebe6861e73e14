package clinic

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrContactNotFound    = errors.New("contact message not found")
	ErrTeamMemberNotFound = errors.New("team member not found")
)

type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	ListContacts(ctx context.Context) ([]Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error

	CreateTeamMember(ctx context.Context, m *TeamMember) error
	ListTeam(ctx context.Context) ([]TeamMember, error)
	UpdateTeamMember(ctx context.Context, m *TeamMember) error
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error
}
