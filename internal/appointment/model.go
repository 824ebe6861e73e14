package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPendingApproval   Status = "pending_approval"
	StatusApproved          Status = "approved"
	StatusRescheduled       Status = "rescheduled"
	StatusPendingReschedule Status = "pending_reschedule"
	StatusRevoked           Status = "revoked"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusRescheduled,
		StatusPendingReschedule, StatusRevoked:
		return true
	}
	return false
}

// transitions reachable through the exposed actions. Revoking an already
// revoked appointment is handled as a no-op, not a transition.
var allowedTransitions = map[Status][]Status{
	StatusPendingApproval:   {StatusApproved, StatusRevoked},
	StatusApproved:          {StatusRescheduled, StatusPendingReschedule, StatusRevoked},
	StatusRescheduled:       {StatusApproved, StatusPendingReschedule, StatusRevoked},
	StatusPendingReschedule: {StatusApproved, StatusRevoked},
	StatusRevoked:           {},
}

func CanTransition(from, to Status) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	PatientName   string
	WhatsApp      string // normalized, e.g. 2547XXXXXXXX
	Date          string // YYYY-MM-DD
	Time          string // HH:MM
	Service       string
	DoctorName    string
	Status        Status
	SuggestedDate *string // set only while status is pending_reschedule
	SuggestedTime *string
	PreviousDate  *string // schedule before the most recent reschedule
	PreviousTime  *string
	AdminComment  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID *uuid.UUID
	Payload       []byte
	CreatedAt     time.Time
}
