package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrStagedClientNotFound = errors.New("staged client not found")
	ErrEmailTaken           = errors.New("email already registered")
)

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	CreateStagedClient(ctx context.Context, c *StagedClient) error
	GetStagedClient(ctx context.Context, id uuid.UUID) (*StagedClient, error)
	ListStagedClients(ctx context.Context) ([]StagedClient, error)
	DeleteStagedClient(ctx context.Context, id uuid.UUID) error
}
