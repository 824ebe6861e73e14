package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Repository contains all DB interactions needed by the service.
// Transition-applying methods are guarded by the expected current status:
// they return ErrAppointmentNotFound when the row is gone or its status no
// longer matches, so a racing writer cannot push a record off the table.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// ListByUser orders by scheduled date then time ascending (client view).
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Appointment, error)
	// List orders by creation time descending (admin view). An empty status
	// means no filter.
	List(ctx context.Context, status Status) ([]Appointment, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error)
	// SetSchedule archives the current date/time pair into previous_* and
	// writes the new pair.
	SetSchedule(ctx context.Context, id uuid.UUID, from Status, date, tm string, to Status) (*Appointment, error)
	// SetSuggested writes a proposed pair and moves to pending_reschedule,
	// leaving the primary pair untouched.
	SetSuggested(ctx context.Context, id uuid.UUID, from Status, date, tm string) (*Appointment, error)
	// AdoptSuggested copies the suggested pair into the primary pair,
	// archives the prior schedule, clears the suggestion and approves.
	AdoptSuggested(ctx context.Context, id uuid.UUID, from Status) (*Appointment, error)
	SetComment(ctx context.Context, id uuid.UUID, comment string) (*Appointment, error)

	Delete(ctx context.Context, id uuid.UUID) error

	InsertEvent(ctx context.Context, ev EventLog) error
}
