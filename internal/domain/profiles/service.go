package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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

type UpsertInput struct {
	Role         Role
	FirstName    string
	LastName     string
	StallName    string
	PracticeName string
	Zip          string

	NotifyVaccination bool
	NotifyHoof        bool
}

// Upsert crea o reemplaza el perfil del usuario autenticado.
func (s *Service) Upsert(ctx context.Context, userID string, in UpsertInput) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, ErrInvalidInput
	}
	if in.Role != RoleOwner && in.Role != RoleVet {
		return Profile{}, ErrInvalidInput
	}

	now := s.now()
	p := Profile{
		ID:                userID,
		Role:              in.Role,
		FirstName:         strings.TrimSpace(in.FirstName),
		LastName:          strings.TrimSpace(in.LastName),
		StallName:         strings.TrimSpace(in.StallName),
		PracticeName:      strings.TrimSpace(in.PracticeName),
		Zip:               strings.TrimSpace(in.Zip),
		NotifyVaccination: in.NotifyVaccination,
		NotifyHoof:        in.NotifyHoof,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if existing, err := s.repo.GetByID(ctx, userID); err == nil {
		p.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListVetsByZip(ctx context.Context, zip string) ([]Profile, error) {
	return s.repo.ListVetsByZip(ctx, strings.TrimSpace(zip))
}

func (s *Service) ListOwnersWithNotifications(ctx context.Context) ([]Profile, error) {
	return s.repo.ListOwnersWithNotifications(ctx)
}

// SetNotifyFlags actualiza solo los avisos por correo del perfil.
func (s *Service) SetNotifyFlags(ctx context.Context, userID string, vaccination, hoof bool) (Profile, error) {
	p, err := s.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	p.NotifyVaccination = vaccination
	p.NotifyHoof = hoof
	p.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
