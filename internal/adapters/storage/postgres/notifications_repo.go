package postgres

import (
	"context"
	"database/sql"

	"equimanage-server/internal/domain/notifications"
)

// NotificationsRepo persiste las condiciones ya notificadas. La clave
// primaria compuesta hace el insert condicional: ON CONFLICT DO
// NOTHING deja RowsAffected en 0 para todo llamador menos el primero,
// también entre procesos concurrentes.
type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) InsertVaccIfAbsent(ctx context.Context, k notifications.VaccKey) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccination_due_notifications (owner_id, horse_id, vacc_type, vacc_sequence)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`, k.OwnerID, k.HorseID, string(k.Type), string(k.Sequence))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *NotificationsRepo) InsertHoofIfAbsent(ctx context.Context, k notifications.HoofKey) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO hoof_due_notifications (owner_id, horse_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, k.OwnerID, k.HorseID, string(k.Status))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
