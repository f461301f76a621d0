package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"equimanage-server/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createHandler(svc))
		ar.Get("/", listOwnerHandler(svc))
		ar.Get("/inbox", listVetHandler(svc))

		ar.Route("/{requestID}", func(one chi.Router) {
			one.Post("/accept", acceptHandler(svc))
			one.Post("/reject", rejectHandler(svc))
			one.Post("/confirm", confirmHandler(svc))
			one.Delete("/", cancelHandler(svc))
		})
	})
}

const dateLayout = "2006-01-02"

type createRequest struct {
	VetID   string  `json:"vet_id"`
	Payload Payload `json:"payload"`
}

type acceptRequest struct {
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD
}

// requestResponse es la solicitud como la ven dueño y veterinario.
type requestResponse struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"owner_id"`
	VetID   string  `json:"vet_id"`
	Status  string  `json:"status"`
	Payload Payload `json:"payload"`

	ScheduledDate    *string    `json:"scheduled_date,omitempty"`
	VetResponseAt    *time.Time `json:"vet_response_at,omitempty"`
	OwnerConfirmedAt *time.Time `json:"owner_confirmed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRequestResponse(req Request) requestResponse {
	out := requestResponse{
		ID:               req.ID,
		OwnerID:          req.OwnerID,
		VetID:            req.VetID,
		Status:           string(req.Status),
		Payload:          req.Payload,
		VetResponseAt:    req.VetResponseAt,
		OwnerConfirmedAt: req.OwnerConfirmedAt,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
	if req.ScheduledDate != nil {
		d := req.ScheduledDate.Format(dateLayout)
		out.ScheduledDate = &d
	}
	return out
}

// createHandler godoc
// @Summary Solicitar cita a un veterinario
// @Description Crea la solicitud o, si ya existe una pendiente con el mismo veterinario, reemplaza su contenido.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createRequest true "Veterinario destino y contenido"
// @Success 201 {object} requestResponse
// @Failure 400 {string} string "invalid json / sin caballos"
// @Failure 401 {string} string "unauthorized"
// @Router /appointments [post]
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in createRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		req, err := svc.Create(r.Context(), claims.UserID, in.VetID, in.Payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRequestResponse(req))
	}
}

// listOwnerHandler godoc
// @Summary Solicitudes enviadas por el dueño
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Router /appointments [get]
func listOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		list, err := svc.ListForOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeList(w, list)
	}
}

// listVetHandler godoc
// @Summary Bandeja de entrada del veterinario
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Router /appointments/inbox [get]
func listVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		list, err := svc.ListForVet(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeList(w, list)
	}
}

// acceptHandler godoc
// @Summary Aceptar una solicitud con fecha propuesta
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body acceptRequest true "Fecha propuesta"
// @Success 200 {object} requestResponse
// @Failure 400 {string} string "fecha inválida"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "estado inválido"
// @Router /appointments/{requestID}/accept [post]
func acceptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in acceptRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		date, err := time.Parse(dateLayout, in.ScheduledDate)
		if err != nil {
			http.Error(w, "invalid scheduled_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		req, err := svc.Accept(r.Context(), claims.UserID, chi.URLParam(r, "requestID"), date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(req))
	}
}

// rejectHandler godoc
// @Summary Rechazar una solicitud
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} requestResponse
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "estado inválido"
// @Router /appointments/{requestID}/reject [post]
func rejectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req, err := svc.Reject(r.Context(), claims.UserID, chi.URLParam(r, "requestID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(req))
	}
}

// confirmHandler godoc
// @Summary Confirmar la fecha propuesta (dueño)
// @Description Idempotente: confirmar dos veces no cambia nada.
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} requestResponse
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "solo solicitudes aceptadas"
// @Router /appointments/{requestID}/confirm [post]
func confirmHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req, err := svc.ConfirmSchedule(r.Context(), claims.UserID, chi.URLParam(r, "requestID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(req))
	}
}

// cancelHandler godoc
// @Summary Retirar una solicitud pendiente (dueño)
// @Tags appointments
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param requestID path string true "ID de la solicitud"
// @Success 204 {string} string "sin contenido"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "solo solicitudes pendientes"
// @Router /appointments/{requestID} [delete]
func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Cancel(r.Context(), claims.UserID, chi.URLParam(r, "requestID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeList(w http.ResponseWriter, list []Request) {
	out := make([]requestResponse, 0, len(list))
	for _, req := range list {
		out = append(out, toRequestResponse(req))
	}
	writeJSON(w, http.StatusOK, out)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrInvalidState):
		http.Error(w, "invalid state", http.StatusConflict)
	default:
		http.Error(w, "request not found", http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
