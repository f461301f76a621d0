package compliance

// Status es el semáforo de conformidad, con orden total
// GREEN < YELLOW < RED. El estado agregado de un caballo es siempre el
// máximo (peor) de sus categorías.
type Status string

const (
	StatusGreen  Status = "GREEN"
	StatusYellow Status = "YELLOW"
	StatusRed    Status = "RED"
)

func (s Status) rank() int {
	switch s {
	case StatusGreen:
		return 0
	case StatusYellow:
		return 1
	case StatusRed:
		return 2
	default:
		return 0
	}
}

// Worst devuelve el peor de dos estados.
func Worst(a, b Status) Status {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// StatusColor mapea el estado a su token de color para la UI.
// Función total: cubre los 3 valores más un default defensivo.
func StatusColor(s Status) string {
	switch s {
	case StatusGreen:
		return "bg-emerald-500"
	case StatusYellow:
		return "bg-amber-500"
	case StatusRed:
		return "bg-rose-500"
	default:
		return "bg-gray-500"
	}
}

// StatusLabel mapea el estado a su etiqueta localizada.
func StatusLabel(s Status) string {
	switch s {
	case StatusGreen:
		return "Aktuell"
	case StatusYellow:
		return "Bald fällig"
	case StatusRed:
		return "Überfällig"
	default:
		return "Unbekannt"
	}
}
