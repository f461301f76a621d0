package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"equimanage-server/internal/domain/horses"
)

type HorsesRepo struct {
	db *sql.DB
}

func NewHorsesRepo(db *sql.DB) *HorsesRepo {
	return &HorsesRepo{db: db}
}

// Las colecciones embebidas del agregado (vacunas e historial de
// servicios) se guardan como JSONB: se leen y escriben siempre juntas
// con el caballo, no hay consultas por filas individuales.
type vaccRow struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Date           string `json:"date"`
	Sequence       string `json:"sequence,omitempty"`
	IsBooster      bool   `json:"isBooster"`
	AdministeredBy string `json:"administeredBy,omitempty"`
	Status         string `json:"status"`
}

type serviceRow struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Provider string `json:"provider,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

const jsonDateLayout = "2006-01-02"

func encodeVaccinations(vaccs []horses.Vaccination) ([]byte, error) {
	rows := make([]vaccRow, 0, len(vaccs))
	for _, v := range vaccs {
		rows = append(rows, vaccRow{
			ID:             v.ID,
			Type:           string(v.Type),
			Date:           v.Date.Format(jsonDateLayout),
			Sequence:       string(v.Sequence),
			IsBooster:      v.IsBooster,
			AdministeredBy: v.AdministeredBy,
			Status:         string(v.Status),
		})
	}
	return json.Marshal(rows)
}

func decodeVaccinations(raw []byte) ([]horses.Vaccination, error) {
	var rows []vaccRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	out := make([]horses.Vaccination, 0, len(rows))
	for _, r := range rows {
		d, err := time.Parse(jsonDateLayout, r.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, horses.Vaccination{
			ID:             r.ID,
			Type:           horses.VaccCategory(r.Type),
			Date:           d,
			Sequence:       horses.VaccSequence(r.Sequence),
			IsBooster:      r.IsBooster,
			AdministeredBy: r.AdministeredBy,
			Status:         horses.VaccStatus(r.Status),
		})
	}
	return out, nil
}

func encodeServices(records []horses.ServiceRecord) ([]byte, error) {
	rows := make([]serviceRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, serviceRow{
			ID:       rec.ID,
			Type:     string(rec.Type),
			Date:     rec.Date.Format(jsonDateLayout),
			Provider: rec.Provider,
			Notes:    rec.Notes,
		})
	}
	return json.Marshal(rows)
}

func decodeServices(raw []byte) ([]horses.ServiceRecord, error) {
	var rows []serviceRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	out := make([]horses.ServiceRecord, 0, len(rows))
	for _, r := range rows {
		d, err := time.Parse(jsonDateLayout, r.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, horses.ServiceRecord{
			ID:       r.ID,
			Type:     horses.ServiceType(r.Type),
			Date:     d,
			Provider: r.Provider,
			Notes:    r.Notes,
		})
	}
	return out, nil
}

func (r *HorsesRepo) Create(ctx context.Context, h horses.Horse) error {
	vaccs, err := encodeVaccinations(h.Vaccinations)
	if err != nil {
		return err
	}
	services, err := encodeServices(h.ServiceHistory)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO horses (
			id, owner_user_id,
			name, breed, birth_year,
			iso_nr, fei_nr, chip_id,
			gender, color, breeding_association, image_url, weight_kg,
			vaccinations, service_history,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		h.ID,
		h.OwnerUserID,
		h.Name,
		h.Breed,
		h.BirthYear,
		h.IsoNr,
		h.FeiNr,
		h.ChipID,
		string(h.Gender),
		h.Color,
		h.BreedingAssociation,
		h.ImageURL,
		toNullFloat(h.WeightKg),
		vaccs,
		services,
		h.CreatedAt,
		h.UpdatedAt,
	)
	return err
}

func (r *HorsesRepo) Update(ctx context.Context, h horses.Horse) error {
	vaccs, err := encodeVaccinations(h.Vaccinations)
	if err != nil {
		return err
	}
	services, err := encodeServices(h.ServiceHistory)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE horses
		SET
			name = $2,
			breed = $3,
			birth_year = $4,
			iso_nr = $5,
			fei_nr = $6,
			chip_id = $7,
			gender = $8,
			color = $9,
			breeding_association = $10,
			image_url = $11,
			weight_kg = $12,
			vaccinations = $13,
			service_history = $14,
			updated_at = $15
		WHERE id = $1
	`,
		h.ID,
		h.Name,
		h.Breed,
		h.BirthYear,
		h.IsoNr,
		h.FeiNr,
		h.ChipID,
		string(h.Gender),
		h.Color,
		h.BreedingAssociation,
		h.ImageURL,
		toNullFloat(h.WeightKg),
		vaccs,
		services,
		h.UpdatedAt,
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

func (r *HorsesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM horses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const horseColumns = `
	id, owner_user_id,
	name, breed, birth_year,
	iso_nr, fei_nr, chip_id,
	gender, color, breeding_association, image_url, weight_kg,
	vaccinations, service_history,
	created_at, updated_at
`

func scanHorse(row interface{ Scan(dest ...any) error }) (horses.Horse, error) {
	var h horses.Horse
	var gender string
	var weight sql.NullFloat64
	var vaccs, services []byte

	if err := row.Scan(
		&h.ID,
		&h.OwnerUserID,
		&h.Name,
		&h.Breed,
		&h.BirthYear,
		&h.IsoNr,
		&h.FeiNr,
		&h.ChipID,
		&gender,
		&h.Color,
		&h.BreedingAssociation,
		&h.ImageURL,
		&weight,
		&vaccs,
		&services,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return horses.Horse{}, err
	}

	h.Gender = horses.Gender(gender)
	if weight.Valid {
		w := weight.Float64
		h.WeightKg = &w
	}

	var err error
	if h.Vaccinations, err = decodeVaccinations(vaccs); err != nil {
		return horses.Horse{}, err
	}
	if h.ServiceHistory, err = decodeServices(services); err != nil {
		return horses.Horse{}, err
	}
	return h, nil
}

func (r *HorsesRepo) GetByID(ctx context.Context, id string) (horses.Horse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return horses.Horse{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+horseColumns+` FROM horses WHERE id = $1`, id)
	h, err := scanHorse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return horses.Horse{}, ErrNotFound
		}
		return horses.Horse{}, err
	}
	return h, nil
}

func (r *HorsesRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]horses.Horse, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+horseColumns+`
		FROM horses
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]horses.Horse, 0)
	for rows.Next() {
		h, err := scanHorse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
