package clinic

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) CreateContact(ctx context.Context, c *Contact) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING created_at
	`, c.ID, c.Name, c.Email, c.Message)
	return row.Scan(&c.CreatedAt)
}

func (r *PgRepository) ListContacts(ctx context.Context) ([]Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, message, created_at
		FROM contacts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PgRepository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func scanTeamMember(row pgx.Row) (*TeamMember, error) {
	var m TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PgRepository) CreateTeamMember(ctx context.Context, m *TeamMember) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO team (id, name, role, bio, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at
	`, m.ID, m.Name, m.Role, m.Bio, m.ImageURL)
	return row.Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *PgRepository) ListTeam(ctx context.Context) ([]TeamMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, role, bio, image_url, created_at, updated_at
		FROM team ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *PgRepository) UpdateTeamMember(ctx context.Context, m *TeamMember) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE team SET name = $2, role = $3, bio = $4, image_url = $5, updated_at = now()
		WHERE id = $1
	`, m.ID, m.Name, m.Role, m.Bio, m.ImageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamMemberNotFound
	}
	return nil
}

func (r *PgRepository) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamMemberNotFound
	}
	return nil
}
