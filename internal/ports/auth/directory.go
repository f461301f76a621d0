package auth

import "context"

// Directory resuelve el correo de un usuario por su id. Lo usa el cron
// diario, que corre sin sesión de usuario.
type Directory interface {
	EmailByUserID(ctx context.Context, userID string) (string, error)
}
