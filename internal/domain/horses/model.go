package horses

import "time"

// Vaccination es un registro de vacuna de una categoría concreta.
// Sequence puede venir vacío en datos antiguos; el booleano IsBooster
// es el campo legado equivalente (ver compliance.NormalizePhase).
type Vaccination struct {
	ID   string
	Type VaccCategory

	// Date es fecha de calendario, sin componente horario.
	Date time.Time

	Sequence       VaccSequence
	IsBooster      bool
	AdministeredBy string
	Status         VaccStatus
}

// ServiceRecord es una entrada del historial de servicios (herrador,
// desparasitación, dentista...).
type ServiceRecord struct {
	ID       string
	Type     ServiceType
	Date     time.Time
	Provider string
	Notes    string
}

// Horse representa un caballo registrado con sus colecciones propias.
// Las colecciones viven embebidas en el agregado: se crean y borran
// junto con el caballo.
type Horse struct {
	ID          string
	OwnerUserID string

	Name      string
	Breed     string
	BirthYear int

	IsoNr  string
	FeiNr  string
	ChipID string

	Gender              Gender
	Color               string
	BreedingAssociation string
	ImageURL            string
	WeightKg            *float64

	Vaccinations   []Vaccination
	ServiceHistory []ServiceRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}
