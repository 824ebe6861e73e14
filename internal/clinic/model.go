// Package clinic holds the simple clinic directory records: public contact
// messages and the team roster shown on the marketing pages.
package clinic

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

type TeamMember struct {
	ID        uuid.UUID
	Name      string
	Role      string
	Bio       string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
