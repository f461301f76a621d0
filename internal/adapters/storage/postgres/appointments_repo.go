package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"equimanage-server/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, req appointments.Request) error {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO appointment_requests (
			id, owner_id, vet_id,
			payload, status,
			scheduled_date, vet_response_at, owner_confirmed_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		req.ID,
		req.OwnerID,
		req.VetID,
		payload,
		string(req.Status),
		toNullTime(req.ScheduledDate),
		toNullTime(req.VetResponseAt),
		toNullTime(req.OwnerConfirmedAt),
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, req appointments.Request) error {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE appointment_requests
		SET
			payload = $2,
			status = $3,
			scheduled_date = $4,
			vet_response_at = $5,
			owner_confirmed_at = $6,
			updated_at = $7
		WHERE id = $1
	`,
		req.ID,
		payload,
		string(req.Status),
		toNullTime(req.ScheduledDate),
		toNullTime(req.VetResponseAt),
		toNullTime(req.OwnerConfirmedAt),
		req.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointment_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const appointmentColumns = `
	id, owner_id, vet_id,
	payload, status,
	scheduled_date, vet_response_at, owner_confirmed_at,
	created_at, updated_at
`

func scanAppointment(row interface{ Scan(dest ...any) error }) (appointments.Request, error) {
	var req appointments.Request
	var payload []byte
	var status string
	var scheduled, vetResp, confirmed sql.NullTime

	if err := row.Scan(
		&req.ID,
		&req.OwnerID,
		&req.VetID,
		&payload,
		&status,
		&scheduled,
		&vetResp,
		&confirmed,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return appointments.Request{}, err
	}

	if err := json.Unmarshal(payload, &req.Payload); err != nil {
		return appointments.Request{}, err
	}
	req.Status = appointments.Status(status)
	if scheduled.Valid {
		t := scheduled.Time
		req.ScheduledDate = &t
	}
	if vetResp.Valid {
		t := vetResp.Time
		req.VetResponseAt = &t
	}
	if confirmed.Valid {
		t := confirmed.Time
		req.OwnerConfirmedAt = &t
	}
	return req, nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Request{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointment_requests WHERE id = $1`, id)
	req, err := scanAppointment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return appointments.Request{}, ErrNotFound
		}
		return appointments.Request{}, err
	}
	return req, nil
}

func (r *AppointmentsRepo) ListByVet(ctx context.Context, vetID string) ([]appointments.Request, error) {
	return r.list(ctx, `vet_id = $1`, vetID)
}

func (r *AppointmentsRepo) ListByOwner(ctx context.Context, ownerID string) ([]appointments.Request, error) {
	return r.list(ctx, `owner_id = $1`, ownerID)
}

func (r *AppointmentsRepo) list(ctx context.Context, where string, arg string) ([]appointments.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointment_requests
		WHERE `+where+`
		ORDER BY created_at ASC
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Request, 0)
	for rows.Next() {
		req, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) GetPending(ctx context.Context, ownerID, vetID string) (appointments.Request, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointment_requests
		WHERE owner_id = $1 AND vet_id = $2 AND status = 'pending'
		LIMIT 1
	`, ownerID, vetID)

	req, err := scanAppointment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return appointments.Request{}, ErrNotFound
		}
		return appointments.Request{}, err
	}
	return req, nil
}

// scheduled_date es DATE y los *_at son TIMESTAMPTZ; ambos viajan
// como NullTime.
func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
