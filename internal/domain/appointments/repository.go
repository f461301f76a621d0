package appointments

import "context"

type Repository interface {
	Create(ctx context.Context, req Request) error
	Update(ctx context.Context, req Request) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Request, error)
	ListByVet(ctx context.Context, vetID string) ([]Request, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Request, error)

	// GetPending devuelve la solicitud pendiente del par dueño/vet,
	// si existe (regla de una solicitud abierta por par).
	GetPending(ctx context.Context, ownerID, vetID string) (Request, error)
}
