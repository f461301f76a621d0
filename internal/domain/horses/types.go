package horses

// Gender define el sexo del caballo (terminología ecuestre alemana).
// @Enum Hengst, Stute, Wallach
type Gender string

const (
	GenderStallion Gender = "Hengst"
	GenderMare     Gender = "Stute"
	GenderGelding  Gender = "Wallach"
)

// VaccCategory define las categorías fijas de vacunación.
// La conformidad se calcula de forma independiente por categoría.
type VaccCategory string

const (
	CategoryInfluenza VaccCategory = "Influenza"
	CategoryHerpes    VaccCategory = "Herpes"
	CategoryTetanus   VaccCategory = "Tetanus"
	CategoryWestNile  VaccCategory = "West-Nile-Virus"
)

// Categories enumera las categorías en orden estable (orden de desempate).
var Categories = []VaccCategory{
	CategoryInfluenza,
	CategoryHerpes,
	CategoryTetanus,
	CategoryWestNile,
}

// VaccSequence es la fase dentro del protocolo de vacunación.
// @Enum V1, V2, V3, Booster
type VaccSequence string

const (
	SequenceV1      VaccSequence = "V1"
	SequenceV2      VaccSequence = "V2"
	SequenceV3      VaccSequence = "V3"
	SequenceBooster VaccSequence = "Booster"
)

// VaccStatus indica si la vacuna fue confirmada.
// "planned" representa una cita futura aún no administrada y queda
// excluida por completo del cálculo de conformidad.
type VaccStatus string

const (
	VaccStatusVerified VaccStatus = "verified"
	VaccStatusPending  VaccStatus = "pending"
	VaccStatusPlanned  VaccStatus = "planned"
)

// ServiceType define los tipos de servicio del historial.
type ServiceType string

const (
	ServiceFarrier   ServiceType = "Hufschmied"
	ServiceDeworming ServiceType = "Entwurmung"
	ServiceDentist   ServiceType = "Zahnarzt"
	ServicePhysio    ServiceType = "Physio"
	ServiceOther     ServiceType = "Sonstiges"
)

func ValidCategory(c VaccCategory) bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

func ValidSequence(s VaccSequence) bool {
	switch s {
	case SequenceV1, SequenceV2, SequenceV3, SequenceBooster:
		return true
	}
	return false
}

func ValidServiceType(t ServiceType) bool {
	switch t {
	case ServiceFarrier, ServiceDeworming, ServiceDentist, ServicePhysio, ServiceOther:
		return true
	}
	return false
}
