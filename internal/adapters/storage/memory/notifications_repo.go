package memory

import (
	"context"
	"sync"

	"equimanage-server/internal/domain/notifications"
)

// notificationRepo guarda las claves ya notificadas en sets en memoria.
// El mutex hace atómico el test-and-set, igual que la clave primaria
// en la variante postgres.
type notificationRepo struct {
	mu   sync.Mutex
	vacc map[notifications.VaccKey]struct{}
	hoof map[notifications.HoofKey]struct{}
}

func NewNotificationRepo() notifications.Repository {
	return &notificationRepo{
		vacc: make(map[notifications.VaccKey]struct{}),
		hoof: make(map[notifications.HoofKey]struct{}),
	}
}

func (r *notificationRepo) InsertVaccIfAbsent(ctx context.Context, k notifications.VaccKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.vacc[k]; exists {
		return false, nil
	}
	r.vacc[k] = struct{}{}
	return true, nil
}

func (r *notificationRepo) InsertHoofIfAbsent(ctx context.Context, k notifications.HoofKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hoof[k]; exists {
		return false, nil
	}
	r.hoof[k] = struct{}{}
	return true, nil
}
