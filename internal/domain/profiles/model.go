package profiles

import "time"

// Role distingue dueños de veterinarios.
type Role string

const (
	RoleOwner Role = "owner"
	RoleVet   Role = "vet"
)

// Profile es el perfil de usuario. El ID coincide con el user id del
// proveedor de autenticación.
type Profile struct {
	ID   string
	Role Role

	FirstName    string
	LastName     string
	StallName    string
	PracticeName string
	Zip          string

	NotifyVaccination bool
	NotifyHoof        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName compone el nombre para correos y listados.
func (p Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	default:
		return "Nutzer"
	}
}
