package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"equimanage-server/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Request
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Request),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, req appointments.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.byID[req.ID]; exists {
		return errors.New("request already exists")
	}
	r.byID[req.ID] = req
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, req appointments.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[req.ID]; !exists {
		return ErrNotFound
	}
	r.byID[req.ID] = req
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return appointments.Request{}, ErrNotFound
	}
	return req, nil
}

func (r *appointmentRepo) ListByVet(ctx context.Context, vetID string) ([]appointments.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Request, 0)
	for _, req := range r.byID {
		if req.VetID == vetID {
			out = append(out, req)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *appointmentRepo) ListByOwner(ctx context.Context, ownerID string) ([]appointments.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Request, 0)
	for _, req := range r.byID {
		if req.OwnerID == ownerID {
			out = append(out, req)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *appointmentRepo) GetPending(ctx context.Context, ownerID, vetID string) (appointments.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.byID {
		if req.OwnerID == ownerID && req.VetID == vetID && req.Status == appointments.StatusPending {
			return req, nil
		}
	}
	return appointments.Request{}, ErrNotFound
}

func sortByCreated(list []appointments.Request) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
