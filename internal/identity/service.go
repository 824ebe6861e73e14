package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/auth"
	"github.com/profbkmurage/physiocare/internal/config"
	"github.com/profbkmurage/physiocare/internal/mail"
	"github.com/profbkmurage/physiocare/internal/phone"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidPhone       = errors.New("phone number must be a valid contact number")
)

type Service struct {
	repo   Repository
	mailer mail.Sender
	cfg    config.Config
}

func NewService(repo Repository, mailer mail.Sender, cfg config.Config) *Service {
	if mailer == nil {
		mailer = mail.Discard{}
	}
	return &Service{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
	}
}

// Register creates a self-service account with the default unprivileged role
// and returns a session token.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" {
		return nil, "", ErrMissingFields
	}
	if len(password) < 6 {
		return nil, "", ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         RoleNormal,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := auth.MakeToken(u.ID.String(), u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("mint token: %w", err)
	}
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.MakeToken(u.ID.String(), u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("mint token: %w", err)
	}
	return u, token, nil
}

// Resolve augments a verified token identity with the stored role. A missing
// record or a failed lookup resolves to the unprivileged default so access
// checks fail closed; the failure is logged, never surfaced.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, email string) Resolved {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Printf("role lookup failed for %s: %v", id, err)
		}
		return Resolved{ID: id, Email: email, Role: RoleNormal}
	}

	role := u.Role
	if !role.Valid() {
		role = RoleNormal
	}
	return Resolved{ID: u.ID, Email: u.Email, Role: role}
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// RequestPasswordReset sends a recovery token when the address is known.
// It reports success either way so the endpoint cannot be used to probe
// for registered addresses.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Printf("password reset lookup failed for %s: %v", email, err)
		}
		return nil
	}

	token, err := auth.MakeResetToken(u.ID.String(), u.Email, s.cfg.JWTSecret, u.PasswordHash, resetTokenTTL)
	if err != nil {
		return fmt.Errorf("mint reset token: %w", err)
	}
	if err := s.mailer.SendCredentialReset(ctx, u.Email, u.Name, token); err != nil {
		log.Printf("credential reset mail to %s failed: %v", u.Email, err)
	}
	return nil
}

const resetTokenTTL = time.Hour

// CompletePasswordReset consumes a reset token and stores the new password.
// Only tokens minted with the reset purpose are accepted, and the token's
// fingerprint must still match the stored password hash, so a session token
// cannot reset a password and a used reset token cannot be replayed.
func (s *Service) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	claims, err := auth.ParseToken(token, s.cfg.JWTSecret)
	if err != nil {
		return ErrInvalidCredentials
	}
	if claims.Purpose != auth.PurposeReset {
		return ErrInvalidCredentials
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ErrInvalidCredentials
	}

	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("load user: %w", err)
	}
	if claims.Fingerprint != auth.PasswordFingerprint(u.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

type StageClientParams struct {
	Name     string
	Email    string
	Phone    string
	Age      int
	Location string
	Password string
}

// StageClient records a public registration for later admin promotion.
func (s *Service) StageClient(ctx context.Context, p StageClientParams) (*StagedClient, error) {
	if p.Name == "" || p.Email == "" || p.Phone == "" {
		return nil, ErrMissingFields
	}

	normalized, err := phone.Normalize(p.Phone, s.cfg.CountryCallingCode)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	c := &StagedClient{
		ID:       uuid.New(),
		Name:     p.Name,
		Email:    strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:    normalized,
		Age:      p.Age,
		Location: p.Location,
		Password: p.Password,
	}
	if err := s.repo.CreateStagedClient(ctx, c); err != nil {
		return nil, fmt.Errorf("stage client: %w", err)
	}
	return c, nil
}

func (s *Service) ListStagedClients(ctx context.Context) ([]StagedClient, error) {
	return s.repo.ListStagedClients(ctx)
}

func (s *Service) DeleteStagedClient(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteStagedClient(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}

// Promote converts a staged client into a real account with role client.
// Ordering matters: the durable user record is written first, the staging
// record is deleted last, so a failure part-way never strands the client
// without a retry path. The staged plaintext password is discarded; the
// client sets their own through the credential-reset mail.
func (s *Service) Promote(ctx context.Context, stagedID uuid.UUID) (*User, error) {
	c, err := s.repo.GetStagedClient(ctx, stagedID)
	if err != nil {
		return nil, err
	}

	secret, err := auth.TempSecret()
	if err != nil {
		return nil, fmt.Errorf("generate temp secret: %w", err)
	}
	hash, err := auth.HashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("hash temp secret: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        c.Email,
		PasswordHash: hash,
		Name:         c.Name,
		Phone:        c.Phone,
		Role:         RoleClient,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// a previous promotion wrote the account but failed before the
			// staging delete; resume from there
			existing, lookupErr := s.repo.GetUserByEmail(ctx, c.Email)
			if lookupErr != nil {
				return nil, fmt.Errorf("resume promotion: %w", lookupErr)
			}
			u = existing
		} else {
			return nil, fmt.Errorf("create promoted user: %w", err)
		}
	}

	if err := s.repo.DeleteStagedClient(ctx, stagedID); err != nil {
		return nil, fmt.Errorf("remove staged client: %w", err)
	}

	token, err := auth.MakeResetToken(u.ID.String(), u.Email, s.cfg.JWTSecret, u.PasswordHash, resetTokenTTL)
	if err != nil {
		log.Printf("mint credential reset token for %s failed: %v", u.Email, err)
		return u, nil
	}
	if err := s.mailer.SendCredentialReset(ctx, u.Email, u.Name, token); err != nil {
		log.Printf("credential reset mail to %s failed: %v", u.Email, err)
	}

	return u, nil
}
