package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrMissingFields = errors.New("missing required blog fields")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePost(ctx context.Context, title, content, imageURL string) (*Post, error) {
	if title == "" || content == "" {
		return nil, ErrMissingFields
	}
	p := &Post{
		ID:       uuid.New(),
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.repo.GetPost(ctx, id)
}

func (s *Service) ListPosts(ctx context.Context) ([]Post, error) {
	return s.repo.ListPosts(ctx)
}

func (s *Service) UpdatePost(ctx context.Context, id uuid.UUID, title, content, imageURL string) (*Post, error) {
	if title == "" || content == "" {
		return nil, ErrMissingFields
	}
	p, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Title = title
	p.Content = content
	p.ImageURL = imageURL
	if err := s.repo.UpdatePost(ctx, p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

func (s *Service) DeletePost(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePost(ctx, id)
}

func (s *Service) Like(ctx context.Context, id uuid.UUID) (int, error) {
	return s.repo.IncrementLikes(ctx, id)
}

func (s *Service) Share(ctx context.Context, id uuid.UUID) (int, error) {
	return s.repo.IncrementShares(ctx, id)
}

// AddComment files a reader comment under moderation.
func (s *Service) AddComment(ctx context.Context, postID, userID uuid.UUID, name, message string) (*Comment, error) {
	if name == "" || message == "" {
		return nil, ErrMissingFields
	}
	// reject comments on posts that do not exist
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:      uuid.New(),
		PostID:  postID,
		UserID:  userID,
		Name:    name,
		Message: message,
		Status:  CommentPending,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// PublicComments returns only approved comments for a post, oldest first.
func (s *Service) PublicComments(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	return s.repo.ListComments(ctx, postID, CommentApproved)
}

func (s *Service) AllComments(ctx context.Context) ([]Comment, error) {
	return s.repo.ListAllComments(ctx)
}

func (s *Service) ApproveComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	return s.repo.SetCommentStatus(ctx, id, CommentApproved)
}

func (s *Service) UnapproveComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	return s.repo.SetCommentStatus(ctx, id, CommentPending)
}

func (s *Service) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteComment(ctx, id)
}
