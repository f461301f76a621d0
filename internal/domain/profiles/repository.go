package profiles

import "context"

type Repository interface {
	Upsert(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	ListVetsByZip(ctx context.Context, zip string) ([]Profile, error)

	// ListOwnersWithNotifications devuelve los dueños con al menos un
	// aviso activado (entrada del cron diario).
	ListOwnersWithNotifications(ctx context.Context) ([]Profile, error)
}
