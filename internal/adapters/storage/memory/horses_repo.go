package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"equimanage-server/internal/domain/horses"
)

var (
	ErrNotFound = errors.New("not found")
)

type horseRepo struct {
	mu   sync.RWMutex
	byID map[string]horses.Horse
}

func NewHorseRepo() horses.Repository {
	return &horseRepo{
		byID: make(map[string]horses.Horse),
	}
}

func (r *horseRepo) Create(ctx context.Context, h horses.Horse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(h.ID) == "" {
		return errors.New("horse id required")
	}
	if _, exists := r.byID[h.ID]; exists {
		return errors.New("horse already exists")
	}
	r.byID[h.ID] = h
	return nil
}

func (r *horseRepo) Update(ctx context.Context, h horses.Horse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(h.ID) == "" {
		return errors.New("horse id required")
	}
	if _, exists := r.byID[h.ID]; !exists {
		return ErrNotFound
	}
	r.byID[h.ID] = h
	return nil
}

func (r *horseRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *horseRepo) GetByID(ctx context.Context, id string) (horses.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byID[id]
	if !ok {
		return horses.Horse{}, ErrNotFound
	}
	return h, nil
}

func (r *horseRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]horses.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]horses.Horse, 0)
	for _, h := range r.byID {
		if h.OwnerUserID == ownerUserID {
			out = append(out, h)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
