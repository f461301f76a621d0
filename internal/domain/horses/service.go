package horses

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name                string
	Breed               string
	BirthYear           int
	IsoNr               string
	FeiNr               string
	ChipID              string
	Gender              string
	Color               string
	BreedingAssociation string
	ImageURL            string
	WeightKg            *float64
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Horse, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Horse{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Horse{}, ErrInvalidInput
	}
	if err := s.validateIdentity(in); err != nil {
		return Horse{}, err
	}

	now := s.now()
	h := Horse{
		ID:                  uuid.NewString(),
		OwnerUserID:         ownerUserID,
		Name:                strings.TrimSpace(in.Name),
		Breed:               strings.TrimSpace(in.Breed),
		BirthYear:           in.BirthYear,
		IsoNr:               strings.TrimSpace(in.IsoNr),
		FeiNr:               strings.TrimSpace(in.FeiNr),
		ChipID:              strings.TrimSpace(in.ChipID),
		Gender:              Gender(strings.TrimSpace(in.Gender)),
		Color:               strings.TrimSpace(in.Color),
		BreedingAssociation: strings.TrimSpace(in.BreedingAssociation),
		ImageURL:            strings.TrimSpace(in.ImageURL),
		WeightKg:            in.WeightKg,
		Vaccinations:        []Vaccination{},
		ServiceHistory:      []ServiceRecord{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) validateIdentity(in CreateInput) error {
	if v := strings.TrimSpace(in.IsoNr); v != "" && !ValidIsoNr(v) {
		return ErrInvalidInput
	}
	if v := strings.TrimSpace(in.FeiNr); v != "" && !ValidFeiNr(v) {
		return ErrInvalidInput
	}
	if v := strings.TrimSpace(in.ChipID); v != "" && !ValidChipID(v) {
		return ErrInvalidInput
	}
	if in.BirthYear != 0 && !ValidBirthYear(in.BirthYear, s.now()) {
		return ErrInvalidInput
	}
	if in.WeightKg != nil && !ValidWeightKg(*in.WeightKg) {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Horse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Horse{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Horse, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// UpdateProfile actualiza los datos descriptivos del caballo.
// Solo el dueño puede mutar; los veterinarios nunca escriben aquí.
func (s *Service) UpdateProfile(ctx context.Context, ownerUserID, horseID string, in CreateInput) (Horse, error) {
	h, err := s.ownedHorse(ctx, ownerUserID, horseID)
	if err != nil {
		return Horse{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Horse{}, ErrInvalidInput
	}
	if err := s.validateIdentity(in); err != nil {
		return Horse{}, err
	}

	h.Name = strings.TrimSpace(in.Name)
	h.Breed = strings.TrimSpace(in.Breed)
	h.BirthYear = in.BirthYear
	h.IsoNr = strings.TrimSpace(in.IsoNr)
	h.FeiNr = strings.TrimSpace(in.FeiNr)
	h.ChipID = strings.TrimSpace(in.ChipID)
	h.Gender = Gender(strings.TrimSpace(in.Gender))
	h.Color = strings.TrimSpace(in.Color)
	h.BreedingAssociation = strings.TrimSpace(in.BreedingAssociation)
	h.ImageURL = strings.TrimSpace(in.ImageURL)
	h.WeightKg = in.WeightKg
	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) Delete(ctx context.Context, ownerUserID, horseID string) error {
	if _, err := s.ownedHorse(ctx, ownerUserID, horseID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, horseID)
}

type VaccinationInput struct {
	Type           VaccCategory
	Date           time.Time
	Sequence       VaccSequence
	IsBooster      bool
	AdministeredBy string
	Status         VaccStatus
}

// AddVaccination agrega un registro de vacuna. La fecha no puede estar
// en el futuro: esa regla se aplica aquí, en la frontera, nunca en el
// motor de conformidad.
func (s *Service) AddVaccination(ctx context.Context, ownerUserID, horseID string, in VaccinationInput) (Horse, error) {
	h, err := s.ownedHorse(ctx, ownerUserID, horseID)
	if err != nil {
		return Horse{}, err
	}
	v, err := s.buildVaccination(in)
	if err != nil {
		return Horse{}, err
	}

	// Nunca mutamos la colección devuelta por el repo: el repo en memoria
	// comparte el backing array entre lecturas.
	h.Vaccinations = append(cloneVaccinations(h.Vaccinations), v)
	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) UpdateVaccination(ctx context.Context, ownerUserID, horseID, vaccID string, in VaccinationInput) (Horse, error) {
	h, err := s.ownedHorse(ctx, ownerUserID, horseID)
	if err != nil {
		return Horse{}, err
	}
	v, err := s.buildVaccination(in)
	if err != nil {
		return Horse{}, err
	}

	vaccs := cloneVaccinations(h.Vaccinations)
	found := false
	for i := range vaccs {
		if vaccs[i].ID == vaccID {
			v.ID = vaccID
			vaccs[i] = v
			found = true
			break
		}
	}
	if !found {
		return Horse{}, ErrInvalidInput
	}
	h.Vaccinations = vaccs
	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) DeleteVaccination(ctx context.Context, ownerUserID, horseID, vaccID string) (Horse, error) {
	h, err := s.ownedHorse(ctx, ownerUserID, horseID)
	if err != nil {
		return Horse{}, err
	}

	kept := make([]Vaccination, 0, len(h.Vaccinations))
	for _, v := range h.Vaccinations {
		if v.ID != vaccID {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(h.Vaccinations) {
		return Horse{}, ErrInvalidInput
	}
	h.Vaccinations = kept
	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

type ServiceRecordInput struct {
	Type     ServiceType
	Date     time.Time
	Provider string
	Notes    string
}

func (s *Service) AddServiceRecord(ctx context.Context, ownerUserID, horseID string, in ServiceRecordInput) (Horse, error) {
	h, err := s.ownedHorse(ctx, ownerUserID, horseID)
	if err != nil {
		return Horse{}, err
	}
	if !ValidServiceType(in.Type) {
		return Horse{}, ErrInvalidInput
	}
	if in.Date.IsZero() || in.Date.After(s.now()) {
		return Horse{}, ErrInvalidInput
	}

	h.ServiceHistory = append(cloneServiceHistory(h.ServiceHistory), ServiceRecord{
		ID:       uuid.NewString(),
		Type:     in.Type,
		Date:     in.Date,
		Provider: strings.TrimSpace(in.Provider),
		Notes:    strings.TrimSpace(in.Notes),
	})
	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) DeleteServiceRecord(ctx context.Context, ownerUserID, horseID, recordID string) (Horse, error) {
	h, err := s.ownedHorse(ctx, ownerUserID, horseID)
	if err != nil {
		return Horse{}, err
	}

	kept := make([]ServiceRecord, 0, len(h.ServiceHistory))
	for _, r := range h.ServiceHistory {
		if r.ID != recordID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(h.ServiceHistory) {
		return Horse{}, ErrInvalidInput
	}
	h.ServiceHistory = kept
	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) buildVaccination(in VaccinationInput) (Vaccination, error) {
	if !ValidCategory(in.Type) {
		return Vaccination{}, ErrInvalidInput
	}
	if in.Sequence != "" && !ValidSequence(in.Sequence) {
		return Vaccination{}, ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = VaccStatusVerified
	}
	switch status {
	case VaccStatusVerified, VaccStatusPending, VaccStatusPlanned:
	default:
		return Vaccination{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Vaccination{}, ErrInvalidInput
	}
	// Las citas planificadas sí pueden estar en el futuro.
	if status != VaccStatusPlanned && in.Date.After(s.now()) {
		return Vaccination{}, ErrInvalidInput
	}

	return Vaccination{
		ID:             uuid.NewString(),
		Type:           in.Type,
		Date:           in.Date,
		Sequence:       in.Sequence,
		IsBooster:      in.IsBooster,
		AdministeredBy: strings.TrimSpace(in.AdministeredBy),
		Status:         status,
	}, nil
}

func cloneVaccinations(in []Vaccination) []Vaccination {
	out := make([]Vaccination, len(in))
	copy(out, in)
	return out
}

func cloneServiceHistory(in []ServiceRecord) []ServiceRecord {
	out := make([]ServiceRecord, len(in))
	copy(out, in)
	return out
}

func (s *Service) ownedHorse(ctx context.Context, ownerUserID, horseID string) (Horse, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(horseID) == "" {
		return Horse{}, ErrInvalidInput
	}
	h, err := s.repo.GetByID(ctx, horseID)
	if err != nil {
		return Horse{}, err
	}
	if h.OwnerUserID != ownerUserID {
		return Horse{}, ErrForbidden
	}
	return h, nil
}
