package notifications

import (
	"encoding/json"
	"net/http"
	"strings"

	"equimanage-server/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el endpoint interactivo y el del cron. El guard
// del cron (secreto compartido) lo decide el router, no este módulo.
func RegisterRoutes(r chi.Router, svc *Service, cronGuard func(http.Handler) http.Handler) {
	r.Post("/notifications/check", checkOwnerHandler(svc))
	r.With(cronGuard).Post("/cron/daily-due-checks", dailyChecksHandler(svc))
}

// checkResponse resume un chequeo de fallos para un dueño.
type checkResponse struct {
	OK       bool `json:"ok"`
	VaccSent int  `json:"vacc_sent"`
	HoofSent int  `json:"hoof_sent"`
}

// reportResponse resume la pasada completa del cron diario.
type reportResponse struct {
	OK            bool `json:"ok"`
	OwnersChecked int  `json:"owners_checked"`
	VaccSent      int  `json:"vacc_sent"`
	HoofSent      int  `json:"hoof_sent"`
}

// checkOwnerHandler godoc
// @Summary Chequear fallos y notificar al dueño autenticado
// @Description Recalcula los fallos de vacunación y herrador de los caballos del dueño y envía correo solo por condiciones aún no notificadas. Idempotente: repetirlo sin cambios en los datos no envía nada.
// @Tags notifications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} checkResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Router /notifications/check [post]
func checkOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		owner, err := svc.profiles.GetByID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}

		ownerEmail := claims.Email
		if ownerEmail == "" {
			// Sesiones sin email en claims: resolver por directorio.
			ownerEmail, _ = svc.ownerEmail(r.Context(), claims.UserID)
		}

		vacc, hoof, err := svc.CheckOwner(r.Context(), owner, ownerEmail, svc.now())
		if err != nil {
			http.Error(w, "check failed", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, checkResponse{OK: true, VaccSent: vacc, HoofSent: hoof})
	}
}

// dailyChecksHandler godoc
// @Summary Cron diario de fallos
// @Description Recorre todos los dueños con avisos activados y notifica fallos nuevos. Protegido por X-Cron-Secret, no por sesión de usuario. Seguro de re-ejecutar.
// @Tags notifications
// @Produce json
// @Param X-Cron-Secret header string true "Secreto compartido del cron"
// @Success 200 {object} reportResponse
// @Failure 401 {string} string "unauthorized"
// @Router /cron/daily-due-checks [post]
func dailyChecksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.RunDailyChecks(r.Context(), svc.now())
		if err != nil {
			http.Error(w, "daily checks failed", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, reportResponse{
			OK:            true,
			OwnersChecked: report.OwnersChecked,
			VaccSent:      report.VaccSent,
			HoofSent:      report.HoofSent,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
