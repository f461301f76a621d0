package notifications

import (
	"equimanage-server/internal/domain/compliance"
	"equimanage-server/internal/domain/horses"
)

// VaccKey identifica de forma única una condición de fallo de vacuna
// ya notificada. Las fases son monótonas por categoría en la práctica,
// así que el conjunto solo crece por combinación caballo/categoría/fase.
type VaccKey struct {
	OwnerID  string
	HorseID  string
	Type     horses.VaccCategory
	Sequence horses.VaccSequence
}

// HoofKey identifica una condición de herrador ya notificada. Una
// escalada yellow→red es una clave nueva y vuelve a notificar.
type HoofKey struct {
	OwnerID string
	HorseID string
	Status  compliance.Status
}

// VaccDueNotice es un fallo de vacunación listo para notificar.
type VaccDueNotice struct {
	HorseID   string
	HorseName string
	Type      horses.VaccCategory
	Sequence  horses.VaccSequence
	Status    compliance.Status
	Message   string
}

// HoofDueNotice es un aviso de herrador listo para notificar.
type HoofDueNotice struct {
	HorseID   string
	HorseName string
	Status    compliance.Status
	DaysSince int
	Message   string
}

// Report resume una pasada del chequeo diario.
type Report struct {
	OwnersChecked int
	VaccSent      int
	HoofSent      int
}
