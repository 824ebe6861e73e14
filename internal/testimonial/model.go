package testimonial

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

type Category string

const (
	CategoryPatient Category = "Patient"
	CategoryWitness Category = "Witness"
	CategoryGeneral Category = "General"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPatient, CategoryWitness, CategoryGeneral:
		return true
	}
	return false
}

type Testimonial struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Category  Category
	Message   string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
