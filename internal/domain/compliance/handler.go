package compliance

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"equimanage-server/internal/domain/horses"
	"equimanage-server/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta los endpoints de solo lectura del semáforo:
// el chequeo por caballo y el panel consolidado de acciones.
func RegisterRoutes(r chi.Router, horsesSvc *horses.Service, now func() time.Time) {
	r.Get("/horses/{horseID}/compliance", checkHandler(horsesSvc, now))
	r.Get("/dashboard/actions", actionsHandler(horsesSvc, now))
}

const dateLayout = "2006-01-02"

type dueItemResponse struct {
	Type     string `json:"type"`
	Sequence string `json:"sequence"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type nextDueResponse struct {
	Type         string `json:"type"`
	Sequence     string `json:"sequence"`
	Status       string `json:"status"`
	DueDate      string `json:"due_date"`
	GraceEndDate string `json:"grace_end_date"`
	Message      string `json:"message"`
}

type nextDueInfoResponse struct {
	Type     string `json:"type"`
	Sequence string `json:"sequence"`
	DueDate  string `json:"due_date"`
}

type hoofResponse struct {
	Status    string `json:"status"`
	DaysSince int    `json:"days_since"`
	Message   string `json:"message,omitempty"`
}

// checkResponse es el resultado combinado de vacunación y herrador
// para un caballo, con los tokens de presentación ya resueltos.
type checkResponse struct {
	HorseID     string               `json:"horse_id"`
	AsOf        string               `json:"as_of"`
	Status      string               `json:"status"`
	StatusColor string               `json:"status_color"`
	StatusLabel string               `json:"status_label"`
	Message     string               `json:"message"`
	NextDue     *nextDueInfoResponse `json:"next_due,omitempty"`
	DueItems    []dueItemResponse    `json:"due_items"`
	AllNextDue  []nextDueResponse    `json:"all_next_due"`
	Hoof        hoofResponse         `json:"hoof"`
}

func toCheckResponse(horseID string, asOf time.Time, vacc Result, hoof HoofResult) checkResponse {
	out := checkResponse{
		HorseID:     horseID,
		AsOf:        asOf.Format(dateLayout),
		Status:      string(vacc.Status),
		StatusColor: StatusColor(vacc.Status),
		StatusLabel: StatusLabel(vacc.Status),
		Message:     vacc.Message,
		DueItems:    make([]dueItemResponse, 0, len(vacc.DueItems)),
		AllNextDue:  make([]nextDueResponse, 0, len(vacc.AllNextDue)),
		Hoof: hoofResponse{
			Status:    string(hoof.Status),
			DaysSince: hoof.DaysSince,
			Message:   HoofMessage(hoof),
		},
	}
	if vacc.NextDue != nil {
		out.NextDue = &nextDueInfoResponse{
			Type:     string(vacc.NextDue.Type),
			Sequence: string(vacc.NextDue.Sequence),
			DueDate:  vacc.NextDue.DueDate.Format(dateLayout),
		}
	}
	for _, it := range vacc.DueItems {
		out.DueItems = append(out.DueItems, dueItemResponse{
			Type:     string(it.Type),
			Sequence: string(it.Sequence),
			Status:   string(it.Status),
			Message:  it.Message,
		})
	}
	for _, nd := range vacc.AllNextDue {
		out.AllNextDue = append(out.AllNextDue, nextDueResponse{
			Type:         string(nd.Type),
			Sequence:     string(nd.Sequence),
			Status:       string(nd.Status),
			DueDate:      nd.DueDate.Format(dateLayout),
			GraceEndDate: nd.GraceEndDate.Format(dateLayout),
			Message:      nd.Message,
		})
	}
	return out
}

// checkHandler godoc
// @Summary Chequeo de conformidad de un caballo
// @Description Evalúa el estado de vacunación y herrador del caballo a la fecha dada (o hoy). Evaluación pura: no escribe nada.
// @Tags compliance
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param horseID path string true "ID del caballo"
// @Param as_of query string false "Fecha de evaluación YYYY-MM-DD (por defecto hoy)"
// @Success 200 {object} checkResponse
// @Failure 400 {string} string "as_of inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID}/compliance [get]
func checkHandler(horsesSvc *horses.Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		asOf, ok2 := parseAsOf(w, r, now)
		if !ok2 {
			return
		}

		h, err := horsesSvc.GetByID(r.Context(), chi.URLParam(r, "horseID"))
		if err != nil {
			http.Error(w, "horse not found", http.StatusNotFound)
			return
		}
		if h.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		vacc := CheckVaccination(h, asOf)
		hoof := CheckHoofCare(h, asOf)
		writeJSON(w, http.StatusOK, toCheckResponse(h.ID, asOf, vacc, hoof))
	}
}

type actionTaskResponse struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

type actionResponse struct {
	HorseID         string               `json:"horse_id"`
	HorseName       string               `json:"horse_name"`
	HighestPriority string               `json:"highest_priority"`
	Tasks           []actionTaskResponse `json:"tasks"`
}

// actionsHandler godoc
// @Summary Panel consolidado de acciones
// @Description Lista los caballos del dueño con tareas pendientes, peor prioridad primero. Con ?type=VACC|HOOF filtra por tipo de tarea.
// @Tags compliance
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param type query string false "Filtro por tipo de tarea" Enums(VACC, HOOF)
// @Param as_of query string false "Fecha de evaluación YYYY-MM-DD (por defecto hoy)"
// @Success 200 {array} actionResponse
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/actions [get]
func actionsHandler(horsesSvc *horses.Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		asOf, ok2 := parseAsOf(w, r, now)
		if !ok2 {
			return
		}

		list, err := horsesSvc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		actions := ConsolidateActions(list, asOf)
		if t := r.URL.Query().Get("type"); t != "" {
			actions = FilterActionsByType(actions, ActionType(t))
		}

		out := make([]actionResponse, 0, len(actions))
		for _, a := range actions {
			tasks := make([]actionTaskResponse, 0, len(a.Tasks))
			for _, task := range a.Tasks {
				tasks = append(tasks, actionTaskResponse{
					Type:     string(task.Type),
					Priority: string(task.Priority),
					Message:  task.Message,
				})
			}
			out = append(out, actionResponse{
				HorseID:         a.HorseID,
				HorseName:       a.HorseName,
				HighestPriority: string(a.HighestPriority),
				Tasks:           tasks,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseAsOf(w http.ResponseWriter, r *http.Request, now func() time.Time) (time.Time, bool) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return now(), true
	}
	asOf, err := time.Parse(dateLayout, raw)
	if err != nil {
		http.Error(w, "invalid as_of, expected YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, false
	}
	return asOf, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
