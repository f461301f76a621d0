package appointments

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
	ErrInvalidState = errors.New("invalid state")
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

// Create registra una solicitud de cita. Si ya hay una pendiente para
// el mismo par dueño/vet, se actualiza su payload en lugar de crear
// otra (una solicitud abierta por par).
func (s *Service) Create(ctx context.Context, ownerID, vetID string, payload Payload) (Request, error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(vetID) == "" {
		return Request{}, ErrInvalidInput
	}
	if len(payload.Horses) == 0 {
		return Request{}, ErrInvalidInput
	}

	now := s.now()

	if existing, err := s.repo.GetPending(ctx, ownerID, vetID); err == nil {
		existing.Payload = payload
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return Request{}, err
		}
		return existing, nil
	}

	req := Request{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		VetID:     vetID,
		Payload:   payload,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) ListForVet(ctx context.Context, vetID string) ([]Request, error) {
	return s.repo.ListByVet(ctx, vetID)
}

func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]Request, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Accept responde la solicitud con una fecha propuesta. Solo el vet
// destinatario, y solo en estado pending.
func (s *Service) Accept(ctx context.Context, vetID, requestID string, scheduledDate time.Time) (Request, error) {
	req, err := s.vetRequest(ctx, vetID, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusPending {
		return Request{}, ErrInvalidState
	}
	if scheduledDate.IsZero() {
		return Request{}, ErrInvalidInput
	}

	now := s.now()
	req.Status = StatusAccepted
	req.ScheduledDate = &scheduledDate
	req.VetResponseAt = &now
	req.UpdatedAt = now

	if err := s.repo.Update(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) Reject(ctx context.Context, vetID, requestID string) (Request, error) {
	req, err := s.vetRequest(ctx, vetID, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusPending {
		return Request{}, ErrInvalidState
	}

	now := s.now()
	req.Status = StatusRejected
	req.VetResponseAt = &now
	req.UpdatedAt = now

	if err := s.repo.Update(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ConfirmSchedule marca la fecha propuesta como confirmada por el
// dueño. Solo tras accepted; confirmar dos veces es idempotente.
func (s *Service) ConfirmSchedule(ctx context.Context, ownerID, requestID string) (Request, error) {
	req, err := s.ownerRequest(ctx, ownerID, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusAccepted {
		return Request{}, ErrInvalidState
	}
	if req.OwnerConfirmedAt != nil {
		return req, nil
	}

	now := s.now()
	req.OwnerConfirmedAt = &now
	req.UpdatedAt = now

	if err := s.repo.Update(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Cancel retira una solicitud aún pendiente.
func (s *Service) Cancel(ctx context.Context, ownerID, requestID string) error {
	req, err := s.ownerRequest(ctx, ownerID, requestID)
	if err != nil {
		return err
	}
	if req.Status != StatusPending {
		return ErrInvalidState
	}
	return s.repo.Delete(ctx, req.ID)
}

func (s *Service) vetRequest(ctx context.Context, vetID, requestID string) (Request, error) {
	if strings.TrimSpace(vetID) == "" || strings.TrimSpace(requestID) == "" {
		return Request{}, ErrInvalidInput
	}
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.VetID != vetID {
		return Request{}, ErrForbidden
	}
	return req, nil
}

func (s *Service) ownerRequest(ctx context.Context, ownerID, requestID string) (Request, error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(requestID) == "" {
		return Request{}, ErrInvalidInput
	}
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.OwnerID != ownerID {
		return Request{}, ErrForbidden
	}
	return req, nil
}
