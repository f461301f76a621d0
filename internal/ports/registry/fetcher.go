package registry

import "context"

// ParsedHorse son los campos relevantes extraídos de un registro
// externo de caballos (nombre, raza, año, sexo, asociación de cría).
type ParsedHorse struct {
	Name                string
	Breed               string
	BirthYear           int
	Gender              string
	BreedingAssociation string
}

// Fetcher obtiene y parsea la ficha pública de un caballo a partir de
// su URL. Una URL no soportada o un fallo de parseo devuelven error;
// campos no encontrados quedan en cero.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (ParsedHorse, error)
}
