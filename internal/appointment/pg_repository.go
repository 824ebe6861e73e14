package appointment

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

const apptColumns = `id, user_id, patient_name, whatsapp, date, time, service, doctor_name,
	status, suggested_date, suggested_time, previous_date, previous_time, admin_comment,
	created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.PatientName,
		&a.WhatsApp,
		&a.Date,
		&a.Time,
		&a.Service,
		&a.DoctorName,
		&a.Status,
		&a.SuggestedDate,
		&a.SuggestedTime,
		&a.PreviousDate,
		&a.PreviousTime,
		&a.AdminComment,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *PgRepository) Create(ctx context.Context, a *Appointment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, user_id, patient_name, whatsapp, date, time, service, doctor_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING created_at, updated_at
	`, a.ID, a.UserID, a.PatientName, a.WhatsApp, a.Date, a.Time, a.Service, a.DoctorName, a.Status)

	return row.Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE user_id = $1
		ORDER BY date ASC, time ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) List(ctx context.Context, status Status) ([]Appointment, error) {
	q := `
		SELECT ` + apptColumns + `
		FROM appointments`
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

	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *PgRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+apptColumns+`
	`, id, from, to)
	return scanAppointment(row)
}

func (r *PgRepository) SetSchedule(ctx context.Context, id uuid.UUID, from Status, date, tm string, to Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET previous_date = date,
		    previous_time = time,
		    date = $3,
		    time = $4,
		    status = $5,
		    updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+apptColumns+`
	`, id, from, date, tm, to)
	return scanAppointment(row)
}

func (r *PgRepository) SetSuggested(ctx context.Context, id uuid.UUID, from Status, date, tm string) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET suggested_date = $3,
		    suggested_time = $4,
		    status = $5,
		    updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+apptColumns+`
	`, id, from, date, tm, StatusPendingReschedule)
	return scanAppointment(row)
}

func (r *PgRepository) AdoptSuggested(ctx context.Context, id uuid.UUID, from Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET previous_date = date,
		    previous_time = time,
		    date = suggested_date,
		    time = suggested_time,
		    suggested_date = NULL,
		    suggested_time = NULL,
		    status = $3,
		    updated_at = now()
		WHERE id = $1 AND status = $2 AND suggested_date IS NOT NULL
		RETURNING `+apptColumns+`
	`, id, from, StatusApproved)
	return scanAppointment(row)
}

func (r *PgRepository) SetComment(ctx context.Context, id uuid.UUID, comment string) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET admin_comment = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+apptColumns+`
	`, id, comment)
	return scanAppointment(row)
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PgRepository) InsertEvent(ctx context.Context, ev EventLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment_events (event_type, appointment_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, ev.EventType, ev.AppointmentID, ev.Payload, ev.CreatedAt)
	return err
}
