package blog

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

const postColumns = `id, title, content, image_url, likes, shares, created_at, updated_at`

func scanPost(row pgx.Row) (*Post, error) {
	var p Post

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.ImageURL,
		&p.Likes,
		&p.Shares,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) CreatePost(ctx context.Context, p *Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (id, title, content, image_url, likes, shares, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, now(), now())
		RETURNING created_at, updated_at
	`, p.ID, p.Title, p.Content, p.ImageURL)
	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PgRepository) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blogs WHERE id = $1`, id)
	return scanPost(row)
}

func (r *PgRepository) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+` FROM blogs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PgRepository) UpdatePost(ctx context.Context, p *Post) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE blogs SET title = $2, content = $3, image_url = $4, updated_at = now()
		WHERE id = $1
	`, p.ID, p.Title, p.Content, p.ImageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PgRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PgRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	return r.increment(ctx, id, "likes")
}

func (r *PgRepository) IncrementShares(ctx context.Context, id uuid.UUID) (int, error) {
	return r.increment(ctx, id, "shares")
}

func (r *PgRepository) increment(ctx context.Context, id uuid.UUID, column string) (int, error) {
	// column is one of the two fixed counter names, never user input
	var n int
	err := r.pool.QueryRow(ctx, `
		UPDATE blogs SET `+column+` = `+column+` + 1, updated_at = now()
		WHERE id = $1
		RETURNING `+column+`
	`, id).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return n, nil
}

const commentColumns = `id, blog_id, user_id, name, message, status, created_at`

func scanComment(row pgx.Row) (*Comment, error) {
	var c Comment

	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.UserID,
		&c.Name,
		&c.Message,
		&c.Status,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *PgRepository) CreateComment(ctx context.Context, c *Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blog_comments (id, blog_id, user_id, name, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING created_at
	`, c.ID, c.PostID, c.UserID, c.Name, c.Message, c.Status)
	return row.Scan(&c.CreatedAt)
}

func (r *PgRepository) ListComments(ctx context.Context, postID uuid.UUID, status CommentStatus) ([]Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM blog_comments WHERE blog_id = $1`
	args := []any{postID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

func (r *PgRepository) ListAllComments(ctx context.Context) ([]Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+` FROM blog_comments ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

func collectComments(rows pgx.Rows) ([]Comment, error) {
	var out []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PgRepository) SetCommentStatus(ctx context.Context, id uuid.UUID, status CommentStatus) (*Comment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE blog_comments SET status = $2
		WHERE id = $1
		RETURNING `+commentColumns+`
	`, id, status)
	return scanComment(row)
}

func (r *PgRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}
