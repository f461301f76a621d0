package horses

import "context"

type Repository interface {
	Create(ctx context.Context, h Horse) error
	Update(ctx context.Context, h Horse) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Horse, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Horse, error)
}
