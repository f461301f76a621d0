package compliance

import (
	"sort"
	"time"

	"equimanage-server/internal/domain/horses"
)

// ActionType distingue el origen de una tarea pendiente.
type ActionType string

const (
	ActionVaccination ActionType = "VACC"
	ActionHoofCare    ActionType = "HOOF"
)

type ActionSubItem struct {
	Type     ActionType
	Priority Status
	Message  string
}

// ConsolidatedAction agrupa todas las tareas pendientes de un caballo
// para el panel de acciones multi-caballo.
type ConsolidatedAction struct {
	HorseID         string
	HorseName       string
	Tasks           []ActionSubItem
	HighestPriority Status
}

// ConsolidateActions evalúa vacunación y herrador de cada caballo y
// devuelve solo los que tienen tareas, peor prioridad primero (RED
// antes que YELLOW, empates en orden de entrada).
func ConsolidateActions(list []horses.Horse, asOf time.Time) []ConsolidatedAction {
	out := make([]ConsolidatedAction, 0)

	for _, h := range list {
		var tasks []ActionSubItem

		vacc := CheckVaccination(h, asOf)
		if vacc.Status != StatusGreen {
			tasks = append(tasks, ActionSubItem{
				Type:     ActionVaccination,
				Priority: vacc.Status,
				Message:  vacc.Message,
			})
		}

		hoof := CheckHoofCare(h, asOf)
		if hoof.Status != StatusGreen {
			msg := "Hufschmied fällig (über 6 Wochen)"
			if hoof.Status == StatusRed {
				msg = "Hufschmied überfällig (über 8 Wochen)"
			}
			tasks = append(tasks, ActionSubItem{
				Type:     ActionHoofCare,
				Priority: hoof.Status,
				Message:  msg,
			})
		}

		if len(tasks) == 0 {
			continue
		}

		highest := StatusYellow
		for _, t := range tasks {
			if t.Priority == StatusRed {
				highest = StatusRed
				break
			}
		}
		out = append(out, ConsolidatedAction{
			HorseID:         h.ID,
			HorseName:       h.Name,
			Tasks:           tasks,
			HighestPriority: highest,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].HighestPriority.rank() > out[j].HighestPriority.rank()
	})
	return out
}

// FilterDueItemsByCategory filtra hallazgos por categoría.
func FilterDueItemsByCategory(items []DueItem, category horses.VaccCategory) []DueItem {
	out := make([]DueItem, 0)
	for _, it := range items {
		if it.Type == category {
			out = append(out, it)
		}
	}
	return out
}

// FilterDueItemsByStatus filtra hallazgos por severidad.
func FilterDueItemsByStatus(items []DueItem, status Status) []DueItem {
	out := make([]DueItem, 0)
	for _, it := range items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

// FilterActionsByType conserva solo los caballos con alguna tarea del
// tipo dado (controles de filtro del panel).
func FilterActionsByType(items []ConsolidatedAction, t ActionType) []ConsolidatedAction {
	out := make([]ConsolidatedAction, 0)
	for _, it := range items {
		for _, task := range it.Tasks {
			if task.Type == t {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
