package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"equimanage-server/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(svc))
		pr.Put("/", upsertProfileHandler(svc))
		pr.Put("/notifications", setNotifyFlagsHandler(svc))
	})
	r.Get("/vets", listVetsHandler(svc))
}

type profileRequest struct {
	Role         string `json:"role" enums:"owner,vet"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	StallName    string `json:"stall_name"`
	PracticeName string `json:"practice_name"`
	Zip          string `json:"zip"`

	NotifyVaccination bool `json:"notify_vaccination"`
	NotifyHoof        bool `json:"notify_hoof"`
}

type notifyFlagsRequest struct {
	NotifyVaccination bool `json:"notify_vaccination"`
	NotifyHoof        bool `json:"notify_hoof"`
}

type profileResponse struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DisplayName  string `json:"display_name"`
	StallName    string `json:"stall_name,omitempty"`
	PracticeName string `json:"practice_name,omitempty"`
	Zip          string `json:"zip,omitempty"`

	NotifyVaccination bool `json:"notify_vaccination"`
	NotifyHoof        bool `json:"notify_hoof"`
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:                p.ID,
		Role:              string(p.Role),
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		DisplayName:       p.DisplayName(),
		StallName:         p.StallName,
		PracticeName:      p.PracticeName,
		Zip:               p.Zip,
		NotifyVaccination: p.NotifyVaccination,
		NotifyHoof:        p.NotifyHoof,
	}
}

// getProfileHandler godoc
// @Summary Perfil del usuario autenticado
// @Tags profiles
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Router /profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// upsertProfileHandler godoc
// @Summary Crear o reemplazar el perfil
// @Tags profiles
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body profileRequest true "Datos del perfil"
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "invalid json / rol desconocido"
// @Failure 401 {string} string "unauthorized"
// @Router /profile [put]
func upsertProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in profileRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Upsert(r.Context(), claims.UserID, UpsertInput{
			Role:              Role(in.Role),
			FirstName:         in.FirstName,
			LastName:          in.LastName,
			StallName:         in.StallName,
			PracticeName:      in.PracticeName,
			Zip:               in.Zip,
			NotifyVaccination: in.NotifyVaccination,
			NotifyHoof:        in.NotifyHoof,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid input", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// setNotifyFlagsHandler godoc
// @Summary Actualizar avisos por correo
// @Description Cambia solo los flags de notificación sin tocar el resto del perfil.
// @Tags profiles
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body notifyFlagsRequest true "Flags de notificación"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Router /profile/notifications [put]
func setNotifyFlagsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in notifyFlagsRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.SetNotifyFlags(r.Context(), claims.UserID, in.NotifyVaccination, in.NotifyHoof)
		if err != nil {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// listVetsHandler godoc
// @Summary Buscar veterinarios por código postal
// @Tags profiles
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param zip query string true "Prefijo de código postal"
// @Success 200 {array} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Router /vets [get]
func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		vets, err := svc.ListVetsByZip(r.Context(), r.URL.Query().Get("zip"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]profileResponse, 0, len(vets))
		for _, v := range vets {
			out = append(out, toProfileResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
