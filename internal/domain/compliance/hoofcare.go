package compliance

import (
	"fmt"
	"sort"
	"time"

	"equimanage-server/internal/domain/horses"
)

// Umbrales del herrador: fällig a partir de 43 días (> 6 semanas),
// crítico a partir de 57 días (> 8 semanas).
const (
	HoofYellowAfterDays = 42
	HoofRedAfterDays    = 56
)

// HoofResult es el estado del cuidado de cascos.
type HoofResult struct {
	Status    Status
	DaysSince int
}

// CheckHoofCare evalúa el último servicio de herrador. Sin historial
// no hay evidencia negativa: el estado es GREEN con DaysSince 0.
func CheckHoofCare(h horses.Horse, asOf time.Time) HoofResult {
	var services []horses.ServiceRecord
	for _, r := range h.ServiceHistory {
		if r.Type == horses.ServiceFarrier {
			services = append(services, r)
		}
	}
	if len(services) == 0 {
		return HoofResult{Status: StatusGreen, DaysSince: 0}
	}

	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Date.After(services[j].Date)
	})

	d := daysBetween(services[0].Date, asOf)

	status := StatusGreen
	if d > HoofRedAfterDays {
		status = StatusRed
	} else if d > HoofYellowAfterDays {
		status = StatusYellow
	}

	return HoofResult{Status: status, DaysSince: d}
}

// HoofMessage formatea el recordatorio del herrador para un estado
// no conforme.
func HoofMessage(r HoofResult) string {
	switch r.Status {
	case StatusRed:
		return fmt.Sprintf("Letzter Schmied vor %d Tagen. Dringend Termin vereinbaren.", r.DaysSince)
	case StatusYellow:
		return fmt.Sprintf("Letzter Schmied vor %d Tagen. Erinnere dich an einen Termin.", r.DaysSince)
	default:
		return ""
	}
}
