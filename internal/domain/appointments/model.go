package appointments

import "time"

// Status es el ciclo de vida de una solicitud de cita:
// pending -> accepted | rejected. El dueño confirma después de accepted.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// SelectedDueItem es un fallo concreto que el dueño marcó al pedir cita.
type SelectedDueItem struct {
	Type     string `json:"type"`
	Sequence string `json:"sequence"`
	Message  string `json:"message"`
}

// HorseSelection es la instantánea de un caballo dentro de la solicitud.
// Se guarda desnormalizada: la solicitud debe seguir siendo legible
// aunque el caballo cambie o se borre después.
type HorseSelection struct {
	HorseID            string            `json:"horseId"`
	Name               string            `json:"name"`
	IsoNr              string            `json:"isoNr"`
	ChipID             string            `json:"chipId"`
	Breed              string            `json:"breed"`
	BirthYear          int               `json:"birthYear"`
	NoVaccData         bool              `json:"noVaccData"`
	SelectedCategories []string          `json:"selectedCategories"`
	SelectedDueItems   []SelectedDueItem `json:"selectedDueItems"`
}

// OwnerContact son los datos de contacto del dueño en la solicitud.
type OwnerContact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	StallName string `json:"stallName"`
	Zip       string `json:"zip"`
	Email     string `json:"email"`
}

// VetInfo es opcional, para mostrar en el panel del dueño.
type VetInfo struct {
	PracticeName string `json:"practiceName"`
	Zip          string `json:"zip"`
}

// Payload es el cuerpo completo de la solicitud (persistido como JSON).
type Payload struct {
	Owner  OwnerContact     `json:"owner"`
	Vet    *VetInfo         `json:"vet,omitempty"`
	Horses []HorseSelection `json:"horses"`
}

// Request es una solicitud de cita de un dueño a un veterinario.
type Request struct {
	ID      string
	OwnerID string
	VetID   string

	Payload Payload
	Status  Status

	ScheduledDate    *time.Time
	VetResponseAt    *time.Time
	OwnerConfirmedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
