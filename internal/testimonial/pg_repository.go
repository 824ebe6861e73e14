package testimonial

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

const columns = `id, user_id, name, category, message, status, created_at, updated_at`

func scanTestimonial(row pgx.Row) (*Testimonial, error) {
	var t Testimonial

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.Category,
		&t.Message,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *PgRepository) Create(ctx context.Context, t *Testimonial) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO testimonials (id, user_id, name, category, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`, t.ID, t.UserID, t.Name, t.Category, t.Message, t.Status)
	return row.Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM testimonials WHERE id = $1`, id)
	return scanTestimonial(row)
}

func (r *PgRepository) ListByStatus(ctx context.Context, status Status) ([]Testimonial, error) {
	q := `SELECT ` + columns + ` FROM testimonials`
	args := []any{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PgRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Testimonial, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+columns+` FROM testimonials WHERE user_id = $1 ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Testimonial, error) {
	var out []Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *PgRepository) Update(ctx context.Context, t *Testimonial) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE testimonials
		SET name = $2, category = $3, message = $4, status = $5, updated_at = now()
		WHERE id = $1
	`, t.ID, t.Name, t.Category, t.Message, t.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

func (r *PgRepository) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Testimonial, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE testimonials SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+columns+`
	`, id, status)
	return scanTestimonial(row)
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}
