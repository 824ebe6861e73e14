package blog

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID
	Title     string
	Content   string
	ImageURL  string
	Likes     int
	Shares    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
)

type Comment struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	UserID    uuid.UUID
	Name      string
	Message   string
	Status    CommentStatus
	CreatedAt time.Time
}
