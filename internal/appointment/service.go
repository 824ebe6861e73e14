package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/config"
	"github.com/profbkmurage/physiocare/internal/phone"
	redisclient "github.com/profbkmurage/physiocare/internal/redis"
)

const (
	EventBooked           = "APPOINTMENT_BOOKED"
	EventApproved         = "APPOINTMENT_APPROVED"
	EventRescheduled      = "APPOINTMENT_RESCHEDULED"
	EventProposalMade     = "RESCHEDULE_PROPOSED"
	EventProposalAccepted = "RESCHEDULE_ACCEPTED"
	EventProposalDeclined = "RESCHEDULE_DECLINED"
	EventRevoked          = "APPOINTMENT_REVOKED"
	EventDeleted          = "APPOINTMENT_DELETED"
	EventCommented        = "APPOINTMENT_COMMENTED"

	// collection name used on the live-subscription bus
	Collection = "appointments"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrNotOwner                = errors.New("appointment belongs to another user")
	ErrInvalidContactNumber    = errors.New("contact number must be a valid WhatsApp number")
	ErrMissingFields           = errors.New("missing required appointment fields")
	ErrNoSuggestedSchedule     = errors.New("appointment has no suggested schedule")
)

type Service struct {
	repo Repository
	bus  redisclient.Bus
	cfg  config.Config
}

// NewService wires the lifecycle manager. bus may be nil when live
// subscriptions are not needed (seed tooling, tests).
func NewService(repo Repository, bus redisclient.Bus, cfg config.Config) *Service {
	return &Service{
		repo: repo,
		bus:  bus,
		cfg:  cfg,
	}
}

type BookParams struct {
	UserID      uuid.UUID
	PatientName string
	WhatsApp    string
	Date        string
	Time        string
	Service     string
}

// Book creates a new appointment for the calling client. The starting status
// is approved unless the deployment requires admin sign-off, in which case
// bookings open in pending_approval.
func (s *Service) Book(ctx context.Context, p BookParams) (*Appointment, error) {
	if p.PatientName == "" || p.WhatsApp == "" || p.Date == "" || p.Time == "" || p.Service == "" {
		return nil, ErrMissingFields
	}

	normalized, err := phone.Normalize(p.WhatsApp, s.cfg.CountryCallingCode)
	if err != nil {
		return nil, ErrInvalidContactNumber
	}
	if len(normalized) != len(s.cfg.CountryCallingCode)+9 {
		return nil, ErrInvalidContactNumber
	}

	status := StatusApproved
	if s.cfg.RequireApproval {
		status = StatusPendingApproval
	}

	a := &Appointment{
		ID:          uuid.New(),
		UserID:      p.UserID,
		PatientName: p.PatientName,
		WhatsApp:    normalized,
		Date:        p.Date,
		Time:        p.Time,
		Service:     p.Service,
		DoctorName:  s.cfg.DoctorName,
		Status:      status,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logEvent(ctx, a.ID, a.UserID, EventBooked, map[string]any{
		"user_id": p.UserID.String(),
		"date":    p.Date,
		"time":    p.Time,
		"service": p.Service,
		"status":  string(status),
	})

	return a, nil
}

// Reschedule is the client-initiated immediate reschedule: the prior schedule
// is archived and the appointment moves to rescheduled.
func (s *Service) Reschedule(ctx context.Context, requester uuid.UUID, id uuid.UUID, date, tm string) (*Appointment, error) {
	if date == "" || tm == "" {
		return nil, ErrMissingFields
	}

	appt, err := s.ownedBy(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(appt.Status, StatusRescheduled) {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.repo.SetSchedule(ctx, id, appt.Status, date, tm, StatusRescheduled)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			// lost a race with another writer
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("reschedule appointment: %w", err)
	}

	s.logEvent(ctx, id, appt.UserID, EventRescheduled, map[string]any{
		"date": date, "time": tm,
		"previous_date": appt.Date, "previous_time": appt.Time,
	})

	return updated, nil
}

// Approve is the admin sign-off. An optional comment is attached first so a
// failed status write never leaves a comment-only approval.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, comment string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(appt.Status, StatusApproved) {
		return nil, ErrInvalidStatusTransition
	}

	if comment != "" {
		if _, err := s.repo.SetComment(ctx, id, comment); err != nil {
			return nil, fmt.Errorf("set comment: %w", err)
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, id, appt.Status, StatusApproved)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("approve appointment: %w", err)
	}

	s.logEvent(ctx, id, appt.UserID, EventApproved, map[string]any{"comment": comment})

	return updated, nil
}

// ProposeReschedule records an admin suggestion. The primary schedule stays
// untouched until the client decides.
func (s *Service) ProposeReschedule(ctx context.Context, id uuid.UUID, date, tm string) (*Appointment, error) {
	if date == "" || tm == "" {
		return nil, ErrMissingFields
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(appt.Status, StatusPendingReschedule) {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.repo.SetSuggested(ctx, id, appt.Status, date, tm)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("propose reschedule: %w", err)
	}

	s.logEvent(ctx, id, appt.UserID, EventProposalMade, map[string]any{
		"suggested_date": date, "suggested_time": tm,
	})

	return updated, nil
}

// AcceptProposal adopts the suggested schedule into the primary one and
// approves the appointment.
func (s *Service) AcceptProposal(ctx context.Context, requester uuid.UUID, id uuid.UUID) (*Appointment, error) {
	appt, err := s.ownedBy(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != StatusPendingReschedule {
		return nil, ErrInvalidStatusTransition
	}
	if appt.SuggestedDate == nil || appt.SuggestedTime == nil {
		return nil, ErrNoSuggestedSchedule
	}

	updated, err := s.repo.AdoptSuggested(ctx, id, StatusPendingReschedule)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("accept proposal: %w", err)
	}

	s.logEvent(ctx, id, appt.UserID, EventProposalAccepted, map[string]any{
		"date": updated.Date, "time": updated.Time,
	})

	return updated, nil
}

// DeclineProposal removes the appointment entirely; the client rebooks.
func (s *Service) DeclineProposal(ctx context.Context, requester uuid.UUID, id uuid.UUID) error {
	appt, err := s.ownedBy(ctx, requester, id)
	if err != nil {
		return err
	}
	if appt.Status != StatusPendingReschedule {
		return ErrInvalidStatusTransition
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("decline proposal: %w", err)
	}

	s.logEvent(ctx, id, appt.UserID, EventProposalDeclined, map[string]any{})

	return nil
}

// Revoke terminates an appointment. Revoking an already revoked appointment
// is a no-op, not an error.
func (s *Service) Revoke(ctx context.Context, requester uuid.UUID, admin bool, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && appt.UserID != requester {
		return nil, ErrNotOwner
	}
	if appt.Status == StatusRevoked {
		return appt, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, appt.Status, StatusRevoked)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("revoke appointment: %w", err)
	}

	s.logEvent(ctx, id, appt.UserID, EventRevoked, map[string]any{"by_admin": admin})

	return updated, nil
}

// Comment attaches or replaces the admin note on an appointment.
func (s *Service) Comment(ctx context.Context, id uuid.UUID, comment string) (*Appointment, error) {
	if comment == "" {
		return nil, ErrMissingFields
	}
	updated, err := s.repo.SetComment(ctx, id, comment)
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, id, updated.UserID, EventCommented, map[string]any{"comment": comment})

	return updated, nil
}

// Delete removes the record permanently.
func (s *Service) Delete(ctx context.Context, requester uuid.UUID, admin bool, id uuid.UUID) error {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !admin && appt.UserID != requester {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	s.logEvent(ctx, id, appt.UserID, EventDeleted, map[string]any{"by_admin": admin})

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForUser returns the caller's own appointments, soonest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]Appointment, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}

// ListAll returns every appointment for the admin console, newest booking
// first, optionally filtered by status.
func (s *Service) ListAll(ctx context.Context, status Status) ([]Appointment, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	out, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}

// OutreachLinks builds the WhatsApp and dialer deep links for an appointment's
// contact number.
func (s *Service) OutreachLinks(ctx context.Context, id uuid.UUID, from string) (whatsapp, dial string, err error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}

	normalized, err := phone.Normalize(appt.WhatsApp, s.cfg.CountryCallingCode)
	if err != nil {
		return "", "", fmt.Errorf("normalize contact number: %w", err)
	}

	msg := fmt.Sprintf("Hello %s, this is %s from our clinic. Your appointment for %s on %s at %s.",
		appt.PatientName, from, appt.Service, appt.Date, appt.Time)

	return phone.WhatsAppLink(normalized, msg), phone.DialLink(normalized), nil
}

func (s *Service) ownedBy(ctx context.Context, requester uuid.UUID, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.UserID != requester {
		return nil, ErrNotOwner
	}
	return appt, nil
}

func (s *Service) logEvent(ctx context.Context, appointmentID, ownerID uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal event payload for %s: %v", eventType, err)
		data = nil
	}

	apptID := appointmentID

	ev := EventLog{
		EventType:     eventType,
		AppointmentID: &apptID,
		Payload:       data,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		log.Printf("failed to insert event log %s for appointment %s: %v", eventType, appointmentID, err)
	}

	if s.bus == nil {
		return
	}
	busErr := s.bus.Publish(ctx, redisclient.Event{
		Type:       eventType,
		Collection: Collection,
		RecordID:   appointmentID.String(),
		UserID:     ownerID.String(),
		Payload:    payload,
	})
	if busErr != nil {
		log.Printf("failed to publish event %s for appointment %s: %v", eventType, appointmentID, busErr)
	}
}
