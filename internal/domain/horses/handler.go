package horses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"equimanage-server/internal/middleware"
	"equimanage-server/internal/ports/registry"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, fetcher registry.Fetcher) {
	r.Route("/horses", func(hr chi.Router) {
		hr.Post("/", createHorseHandler(svc))
		hr.Get("/", listHorsesHandler(svc))
		hr.Post("/import/rimondo", importRimondoHandler(fetcher))

		hr.Route("/{horseID}", func(one chi.Router) {
			one.Get("/", getHorseHandler(svc))
			one.Put("/", updateHorseHandler(svc))
			one.Delete("/", deleteHorseHandler(svc))
			one.Get("/history", historyHandler(svc))

			one.Post("/vaccinations", addVaccinationHandler(svc))
			one.Put("/vaccinations/{vaccID}", updateVaccinationHandler(svc))
			one.Delete("/vaccinations/{vaccID}", deleteVaccinationHandler(svc))

			one.Post("/services", addServiceRecordHandler(svc))
			one.Delete("/services/{recordID}", deleteServiceRecordHandler(svc))
		})
	})
}

const dateLayout = "2006-01-02"

// horseRequest es el cuerpo para crear/actualizar un caballo.
type horseRequest struct {
	Name                string   `json:"name"`
	Breed               string   `json:"breed"`
	BirthYear           int      `json:"birth_year"`
	IsoNr               string   `json:"iso_nr"`
	FeiNr               string   `json:"fei_nr"`
	ChipID              string   `json:"chip_id"`
	Gender              string   `json:"gender" enums:"Hengst,Stute,Wallach"`
	Color               string   `json:"color"`
	BreedingAssociation string   `json:"breeding_association"`
	ImageURL            string   `json:"image_url"`
	WeightKg            *float64 `json:"weight_kg"`
}

type vaccinationRequest struct {
	Type           string `json:"type" enums:"Influenza,Herpes,Tetanus,West-Nile-Virus"`
	Date           string `json:"date"` // YYYY-MM-DD
	Sequence       string `json:"sequence" enums:"V1,V2,V3,Booster"`
	IsBooster      bool   `json:"is_booster"`
	AdministeredBy string `json:"administered_by"`
	Status         string `json:"status" enums:"verified,pending,planned"`
}

type serviceRecordRequest struct {
	Type     string `json:"type" enums:"Hufschmied,Entwurmung,Zahnarzt,Physio,Sonstiges"`
	Date     string `json:"date"` // YYYY-MM-DD
	Provider string `json:"provider"`
	Notes    string `json:"notes"`
}

type vaccinationResponse struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Date           string `json:"date"`
	Sequence       string `json:"sequence,omitempty"`
	IsBooster      bool   `json:"is_booster"`
	AdministeredBy string `json:"administered_by"`
	Status         string `json:"status"`
}

type serviceRecordResponse struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Provider string `json:"provider,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// horseResponse representa un caballo devuelto por la API.
type horseResponse struct {
	ID                  string                  `json:"id"`
	OwnerUserID         string                  `json:"owner_user_id"`
	Name                string                  `json:"name"`
	Breed               string                  `json:"breed"`
	BirthYear           int                     `json:"birth_year"`
	IsoNr               string                  `json:"iso_nr"`
	FeiNr               string                  `json:"fei_nr"`
	ChipID              string                  `json:"chip_id"`
	Gender              string                  `json:"gender"`
	Color               string                  `json:"color"`
	BreedingAssociation string                  `json:"breeding_association"`
	ImageURL            string                  `json:"image_url"`
	WeightKg            *float64                `json:"weight_kg"`
	Vaccinations        []vaccinationResponse   `json:"vaccinations"`
	ServiceHistory      []serviceRecordResponse `json:"service_history"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	return vaccinationResponse{
		ID:             v.ID,
		Type:           string(v.Type),
		Date:           v.Date.Format(dateLayout),
		Sequence:       string(v.Sequence),
		IsBooster:      v.IsBooster,
		AdministeredBy: v.AdministeredBy,
		Status:         string(v.Status),
	}
}

func toServiceRecordResponse(rec ServiceRecord) serviceRecordResponse {
	return serviceRecordResponse{
		ID:       rec.ID,
		Type:     string(rec.Type),
		Date:     rec.Date.Format(dateLayout),
		Provider: rec.Provider,
		Notes:    rec.Notes,
	}
}

func toHorseResponse(h Horse) horseResponse {
	vaccs := make([]vaccinationResponse, 0, len(h.Vaccinations))
	for _, v := range h.Vaccinations {
		vaccs = append(vaccs, toVaccinationResponse(v))
	}
	records := make([]serviceRecordResponse, 0, len(h.ServiceHistory))
	for _, rec := range h.ServiceHistory {
		records = append(records, toServiceRecordResponse(rec))
	}
	return horseResponse{
		ID:                  h.ID,
		OwnerUserID:         h.OwnerUserID,
		Name:                h.Name,
		Breed:               h.Breed,
		BirthYear:           h.BirthYear,
		IsoNr:               h.IsoNr,
		FeiNr:               h.FeiNr,
		ChipID:              h.ChipID,
		Gender:              string(h.Gender),
		Color:               h.Color,
		BreedingAssociation: h.BreedingAssociation,
		ImageURL:            h.ImageURL,
		WeightKg:            h.WeightKg,
		Vaccinations:        vaccs,
		ServiceHistory:      records,
		CreatedAt:           h.CreatedAt,
		UpdatedAt:           h.UpdatedAt,
	}
}

func (in horseRequest) toInput() CreateInput {
	return CreateInput{
		Name:                in.Name,
		Breed:               in.Breed,
		BirthYear:           in.BirthYear,
		IsoNr:               in.IsoNr,
		FeiNr:               in.FeiNr,
		ChipID:              in.ChipID,
		Gender:              in.Gender,
		Color:               in.Color,
		BreedingAssociation: in.BreedingAssociation,
		ImageURL:            in.ImageURL,
		WeightKg:            in.WeightKg,
	}
}

// createHorseHandler godoc
// @Summary Crear caballo
// @Description Registra un caballo para el dueño autenticado.
// @Tags horses
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body horseRequest true "Datos del caballo"
// @Success 201 {object} horseResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Router /horses [post]
func createHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in horseRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		h, err := svc.Create(r.Context(), claims.UserID, in.toInput())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toHorseResponse(h))
	}
}

// listHorsesHandler godoc
// @Summary Listar caballos propios
// @Tags horses
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} horseResponse
// @Failure 401 {string} string "unauthorized"
// @Router /horses [get]
func listHorsesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]horseResponse, 0, len(list))
		for _, h := range list {
			out = append(out, toHorseResponse(h))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		h, err := svc.GetByID(r.Context(), chi.URLParam(r, "horseID"))
		if err != nil {
			http.Error(w, "horse not found", http.StatusNotFound)
			return
		}
		if h.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

func updateHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in horseRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		h, err := svc.UpdateProfile(r.Context(), claims.UserID, chi.URLParam(r, "horseID"), in.toInput())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

func deleteHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "horseID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type yearGroupResponse struct {
	Year  int   `json:"year"`
	Items []any `json:"items"`
}

// historyResponse agrupa el historial por año para los paneles
// colapsables (años y fechas descendentes).
type historyResponse struct {
	Vaccinations []yearGroupResponse `json:"vaccinations"`
	Services     []yearGroupResponse `json:"services"`
}

// historyHandler godoc
// @Summary Historial agrupado por año
// @Tags horses
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param horseID path string true "ID del caballo"
// @Success 200 {object} historyResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID}/history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		h, err := svc.GetByID(r.Context(), chi.URLParam(r, "horseID"))
		if err != nil {
			http.Error(w, "horse not found", http.StatusNotFound)
			return
		}
		if h.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		out := historyResponse{
			Vaccinations: make([]yearGroupResponse, 0),
			Services:     make([]yearGroupResponse, 0),
		}
		for _, g := range GroupVaccinationsByYear(h.Vaccinations) {
			items := make([]any, 0, len(g.Items))
			for _, v := range g.Items {
				items = append(items, toVaccinationResponse(v))
			}
			out.Vaccinations = append(out.Vaccinations, yearGroupResponse{Year: g.Year, Items: items})
		}
		for _, g := range GroupServicesByYear(h.ServiceHistory) {
			items := make([]any, 0, len(g.Items))
			for _, rec := range g.Items {
				items = append(items, toServiceRecordResponse(rec))
			}
			out.Services = append(out.Services, yearGroupResponse{Year: g.Year, Items: items})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func addVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok2 := decodeVaccination(w, r)
		if !ok2 {
			return
		}

		h, err := svc.AddVaccination(r.Context(), claims.UserID, chi.URLParam(r, "horseID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toHorseResponse(h))
	}
}

func updateVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok2 := decodeVaccination(w, r)
		if !ok2 {
			return
		}

		h, err := svc.UpdateVaccination(r.Context(), claims.UserID, chi.URLParam(r, "horseID"), chi.URLParam(r, "vaccID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

func deleteVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		h, err := svc.DeleteVaccination(r.Context(), claims.UserID, chi.URLParam(r, "horseID"), chi.URLParam(r, "vaccID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

func addServiceRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body serviceRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		date, err := time.Parse(dateLayout, body.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		h, err := svc.AddServiceRecord(r.Context(), claims.UserID, chi.URLParam(r, "horseID"), ServiceRecordInput{
			Type:     ServiceType(body.Type),
			Date:     date,
			Provider: body.Provider,
			Notes:    body.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toHorseResponse(h))
	}
}

func deleteServiceRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		h, err := svc.DeleteServiceRecord(r.Context(), claims.UserID, chi.URLParam(r, "horseID"), chi.URLParam(r, "recordID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

type rimondoRequest struct {
	URL string `json:"url"`
}

type rimondoResponse struct {
	Name                string `json:"name,omitempty"`
	Breed               string `json:"breed,omitempty"`
	BirthYear           int    `json:"birth_year,omitempty"`
	Gender              string `json:"gender,omitempty"`
	BreedingAssociation string `json:"breeding_association,omitempty"`
}

// importRimondoHandler godoc
// @Summary Prefill desde el registro rimondo
// @Description Obtiene la ficha pública de un caballo en rimondo.com y devuelve los campos parseados. No persiste nada: solo prefill del formulario.
// @Tags horses
// @Accept json
// @Produce json
// @Param payload body rimondoRequest true "URL de rimondo.com"
// @Success 200 {object} rimondoResponse
// @Failure 400 {string} string "url inválida"
// @Failure 502 {string} string "registro no disponible"
// @Router /horses/import/rimondo [post]
func importRimondoHandler(fetcher registry.Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if fetcher == nil {
			http.Error(w, "registry import not configured", http.StatusServiceUnavailable)
			return
		}

		var body rimondoRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		parsed, err := fetcher.Fetch(r.Context(), body.URL)
		if err != nil {
			http.Error(w, "registry fetch failed", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, rimondoResponse{
			Name:                parsed.Name,
			Breed:               parsed.Breed,
			BirthYear:           parsed.BirthYear,
			Gender:              parsed.Gender,
			BreedingAssociation: parsed.BreedingAssociation,
		})
	}
}

func decodeVaccination(w http.ResponseWriter, r *http.Request) (VaccinationInput, bool) {
	var body vaccinationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return VaccinationInput{}, false
	}
	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return VaccinationInput{}, false
	}
	return VaccinationInput{
		Type:           VaccCategory(body.Type),
		Date:           date,
		Sequence:       VaccSequence(body.Sequence),
		IsBooster:      body.IsBooster,
		AdministeredBy: body.AdministeredBy,
		Status:         VaccStatus(body.Status),
	}, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "horse not found", http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
