package compliance

import (
	"fmt"
	"sort"
	"time"

	"equimanage-server/internal/domain/horses"
)

// Constantes de intervalo del protocolo (última revisión vigente):
// V1→V2: ventana [28, 70] días, vencida a partir del día 71.
// V2→V3 y refuerzos: ventana [180, 201] días ("6 meses" cuenta como
// 180 días constantes, no meses de calendario), vencida desde el 202.
// El preaviso arranca 14 días antes del inicio de la ventana.
const (
	DaysV2Due             = 28
	DaysV2GraceEnd        = 70
	Days6Months           = 6 * 30
	DaysV3BoosterGraceEnd = Days6Months + 21
	NotifyDaysBefore      = 14
)

// DueItem es un hallazgo YELLOW/RED de una categoría+fase concreta.
// Alimenta todas las listas de la UI y el differ de notificaciones.
type DueItem struct {
	Type     horses.VaccCategory
	Sequence horses.VaccSequence
	Status   Status
	Message  string
}

// NextDue es la entrada informativa por categoría con historial,
// incluidas las conformes (panel "todas las próximas fechas").
type NextDue struct {
	Type         horses.VaccCategory
	Sequence     horses.VaccSequence
	Status       Status
	DueDate      time.Time
	GraceEndDate time.Time
	Message      string
}

// NextDueInfo identifica la fecha límite no cumplida más temprana.
// Solo se rellena cuando el estado global es GREEN.
type NextDueInfo struct {
	Type     horses.VaccCategory
	Sequence horses.VaccSequence
	DueDate  time.Time
}

// Result es la salida completa del chequeo de vacunación.
type Result struct {
	Status     Status
	Message    string
	NextDue    *NextDueInfo
	DueItems   []DueItem
	AllNextDue []NextDue
}

// NormalizePhase deriva la fase canónica a partir de la dualidad
// legada sequence/isBooster: sequence manda; si falta, isBooster
// implica Booster y en otro caso V1.
func NormalizePhase(seq horses.VaccSequence, isBooster bool) horses.VaccSequence {
	if seq != "" {
		return seq
	}
	if isBooster {
		return horses.SequenceBooster
	}
	return horses.SequenceV1
}

// CheckVaccination calcula el estado de conformidad por categoría y el
// agregado del caballo a fecha asOf. Función pura: nunca muta el
// caballo y dos llamadas sobre los mismos datos dan el mismo resultado.
func CheckVaccination(h horses.Horse, asOf time.Time) Result {
	byType := map[horses.VaccCategory][]horses.Vaccination{}
	total := 0
	for _, v := range h.Vaccinations {
		if v.Status == horses.VaccStatusPlanned {
			continue
		}
		byType[v.Type] = append(byType[v.Type], v)
		total++
	}

	if total == 0 {
		return Result{
			Status:     StatusRed,
			Message:    "Keine Impfdaten gefunden.",
			DueItems:   []DueItem{},
			AllNextDue: []NextDue{},
		}
	}

	for _, list := range byType {
		sortByDateDesc(list)
	}

	res := Result{
		Status:     StatusGreen,
		DueItems:   []DueItem{},
		AllNextDue: []NextDue{},
	}
	var nextDue *NextDueInfo

	for _, category := range horses.Categories {
		list := byType[category]
		if len(list) == 0 {
			continue
		}

		c := checkCategory(category, list, asOf)

		res.Status = Worst(res.Status, c.status)
		if c.status != StatusGreen {
			res.DueItems = append(res.DueItems, DueItem{
				Type:     category,
				Sequence: c.phase,
				Status:   c.status,
				Message:  c.message,
			})
		} else if nextDue == nil || c.dueDate.Before(nextDue.DueDate) {
			nextDue = &NextDueInfo{Type: category, Sequence: c.phase, DueDate: c.dueDate}
		}

		res.AllNextDue = append(res.AllNextDue, NextDue{
			Type:         category,
			Sequence:     c.phase,
			Status:       c.status,
			DueDate:      c.dueDate,
			GraceEndDate: c.graceEnd,
			Message:      c.message,
		})
	}

	if res.Status == StatusGreen {
		res.NextDue = nextDue
		if nextDue != nil {
			res.Message = fmt.Sprintf("Konform. Nächste Fälligkeit: %s %s ab %s",
				nextDue.Sequence, nextDue.Type, formatDate(nextDue.DueDate))
		} else {
			res.Message = "Konform."
		}
		return res
	}

	// Mensaje global = mensaje de la peor categoría (primera en orden
	// de enumeración ante empate).
	for _, item := range res.DueItems {
		if item.Status == res.Status {
			res.Message = item.Message
			break
		}
	}
	return res
}

type categoryResult struct {
	phase    horses.VaccSequence
	status   Status
	message  string
	dueDate  time.Time
	graceEnd time.Time
}

func checkCategory(category horses.VaccCategory, list []horses.Vaccination, asOf time.Time) categoryResult {
	last := list[0]
	lastDate := startOfDay(last.Date)
	seq := NormalizePhase(last.Sequence, last.IsBooster)
	d := daysBetween(lastDate, asOf)

	onlyBooster := len(list) == 1 && seq == horses.SequenceBooster

	var (
		dueMin, dueMax int
		phase          horses.VaccSequence
		intervalOk     = true
	)
	switch {
	case onlyBooster:
		// Pista de solo-refuerzo: un Booster suelto es válido, no un
		// prerequisito roto.
		dueMin, dueMax = Days6Months, DaysV3BoosterGraceEnd
		phase = horses.SequenceBooster
	case seq == horses.SequenceV1:
		dueMin, dueMax = DaysV2Due, DaysV2GraceEnd
		phase = horses.SequenceV2
	case seq == horses.SequenceV2:
		dueMin, dueMax = Days6Months, DaysV3BoosterGraceEnd
		phase = horses.SequenceV3
		intervalOk = len(list) >= 2
	default:
		dueMin, dueMax = Days6Months, DaysV3BoosterGraceEnd
		phase = horses.SequenceBooster
	}

	dueDateMin := lastDate.AddDate(0, 0, dueMin)
	dueDateMax := lastDate.AddDate(0, 0, dueMax)
	label := fmt.Sprintf("%s %s", phase, category)
	if seq == horses.SequenceV2 && len(list) < 2 {
		label = fmt.Sprintf("V2 %s", category)
	}

	out := categoryResult{phase: phase, dueDate: dueDateMin, graceEnd: dueDateMax}

	if !intervalOk {
		out.status = StatusRed
		if seq == horses.SequenceV2 && len(list) < 2 {
			out.message = fmt.Sprintf("%s: ohne V1 – nicht konform.", label)
		} else {
			out.message = fmt.Sprintf("%s: Abstand zur Vorimpfung nicht eingehalten.", label)
		}
		return out
	}

	// Vencida estrictamente después del fin de la ventana.
	if d > dueMax {
		out.status = StatusRed
		out.message = fmt.Sprintf("%s: Überfällig. Spätestens-Termin war %s (seit %d Tagen überfällig)",
			label, formatDate(dueDateMax), d-dueMax)
		return out
	}

	if d >= dueMin-NotifyDaysBefore {
		daysLeftToEnd := daysBetween(asOf, dueDateMax)
		if daysLeftToEnd < 0 {
			daysLeftToEnd = 0
		}
		out.status = StatusYellow
		if d >= dueMin {
			out.message = fmt.Sprintf("%s: Fällig. Spätestens bis %s (noch %d Tage)",
				label, formatDate(dueDateMax), daysLeftToEnd)
		} else {
			out.message = fmt.Sprintf("%s: Ab %s fällig. Spätestens bis %s (noch %d Tage Überziehungsfrist)",
				label, formatDate(dueDateMin), formatDate(dueDateMax), daysLeftToEnd)
		}
		return out
	}

	out.status = StatusGreen
	return out
}

func sortByDateDesc(list []horses.Vaccination) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween cuenta días de calendario entre las medianoches locales
// de ambas fechas (negativo si to es anterior a from).
func daysBetween(from, to time.Time) int {
	f := startOfDay(from)
	t := startOfDay(to)
	hours := t.Sub(f).Hours()
	if hours < 0 {
		return -int((-hours + 12) / 24)
	}
	return int((hours + 12) / 24)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
