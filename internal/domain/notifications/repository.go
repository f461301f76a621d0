package notifications

import "context"

// Repository es el conjunto persistente de condiciones ya notificadas.
// Los inserts son condicionales (insert-if-absent) para que ejecuciones
// concurrentes sobre el mismo dueño no dupliquen avisos: la unicidad de
// la clave sustituye a cualquier lock de aplicación.
type Repository interface {
	// InsertVaccIfAbsent registra la clave si no existía.
	// Devuelve true solo para el llamador que la insertó.
	InsertVaccIfAbsent(ctx context.Context, k VaccKey) (bool, error)

	InsertHoofIfAbsent(ctx context.Context, k HoofKey) (bool, error)
}
