package blog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound    = errors.New("blog post not found")
	ErrCommentNotFound = errors.New("blog comment not found")
)

type Repository interface {
	CreatePost(ctx context.Context, p *Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	UpdatePost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error

	// IncrementLikes / IncrementShares are atomic counter bumps; they return
	// the new value.
	IncrementLikes(ctx context.Context, id uuid.UUID) (int, error)
	IncrementShares(ctx context.Context, id uuid.UUID) (int, error)

	CreateComment(ctx context.Context, c *Comment) error
	// ListComments with an empty status returns all comments for the post.
	ListComments(ctx context.Context, postID uuid.UUID, status CommentStatus) ([]Comment, error)
	ListAllComments(ctx context.Context) ([]Comment, error)
	SetCommentStatus(ctx context.Context, id uuid.UUID, status CommentStatus) (*Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}
