package postgres

import (
	"context"
	"database/sql"
	"strings"

	"equimanage-server/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			id, role,
			first_name, last_name, stall_name, practice_name, zip,
			notify_vaccination, notify_hoof,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			role = EXCLUDED.role,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			stall_name = EXCLUDED.stall_name,
			practice_name = EXCLUDED.practice_name,
			zip = EXCLUDED.zip,
			notify_vaccination = EXCLUDED.notify_vaccination,
			notify_hoof = EXCLUDED.notify_hoof,
			updated_at = EXCLUDED.updated_at
	`,
		p.ID,
		string(p.Role),
		p.FirstName,
		p.LastName,
		p.StallName,
		p.PracticeName,
		p.Zip,
		p.NotifyVaccination,
		p.NotifyHoof,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

const profileColumns = `
	id, role,
	first_name, last_name, stall_name, practice_name, zip,
	notify_vaccination, notify_hoof,
	created_at, updated_at
`

func scanProfile(row interface{ Scan(dest ...any) error }) (profiles.Profile, error) {
	var p profiles.Profile
	var role string
	if err := row.Scan(
		&p.ID,
		&role,
		&p.FirstName,
		&p.LastName,
		&p.StallName,
		&p.PracticeName,
		&p.Zip,
		&p.NotifyVaccination,
		&p.NotifyHoof,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return profiles.Profile{}, err
	}
	p.Role = profiles.Role(role)
	return p, nil
}

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profiles.Profile{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return profiles.Profile{}, ErrNotFound
		}
		return profiles.Profile{}, err
	}
	return p, nil
}

func (r *ProfilesRepo) ListVetsByZip(ctx context.Context, zip string) ([]profiles.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE role = 'vet' AND ($1 = '' OR zip LIKE $1 || '%')
		ORDER BY id ASC
	`, strings.TrimSpace(zip))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func (r *ProfilesRepo) ListOwnersWithNotifications(ctx context.Context) ([]profiles.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE role = 'owner' AND (notify_vaccination OR notify_hoof)
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func collectProfiles(rows *sql.Rows) ([]profiles.Profile, error) {
	out := make([]profiles.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
