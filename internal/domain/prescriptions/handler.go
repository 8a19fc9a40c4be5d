package prescriptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"know-your-doses/internal/domain/persons"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas planas: los tres módulos comparten el
// prefijo /persons/{personID} y chi no admite montar subrouters solapados.
func RegisterRoutes(r chi.Router, svc *Service, personsSvc *persons.Service) {
	r.Post("/persons/{personID}/prescriptions", createPrescriptionHandler(svc, personsSvc))
	r.Get("/persons/{personID}/prescriptions", listPrescriptionsHandler(svc, personsSvc))
	r.Patch("/persons/{personID}/prescriptions/{prescriptionID}", updatePrescriptionHandler(svc, personsSvc))
	r.Delete("/persons/{personID}/prescriptions/{prescriptionID}", deletePrescriptionHandler(svc, personsSvc))
}

type createPrescriptionRequest struct {
	CompoundName string `json:"compound_name"`
	Amount       int    `json:"amount"`
	Unit         string `json:"unit" enums:"mg,mcg,ml,set"`
	Frequency    string `json:"frequency" enums:"daily,twice-daily,weekly,mon-wed-fri,mon-thu,weekdays,monthly,quarterly"`
	CyclingOn    *int   `json:"cycling_on"`
	CyclingOff   *int   `json:"cycling_off"`
	IconType     string `json:"icon_type"`

	DateFirstPrescribed string `json:"date_first_prescribed"` // YYYY-MM-DD opcional
}

type prescriptionDates struct {
	DateFirstPrescribed  string  `json:"date_first_prescribed"`  // YYYY-MM-DD
	DateLastModified     string  `json:"date_last_modified"`     // YYYY-MM-DD
	DateLastAdministered *string `json:"date_last_administered"` // YYYY-MM-DD o null
}

type updatePrescriptionRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	CompoundName *string `json:"compound_name"`
	Amount       *int    `json:"amount"`
	Unit         *string `json:"unit"`
	Frequency    *string `json:"frequency"`
	CyclingOn    *int    `json:"cycling_on"`
	CyclingOff   *int    `json:"cycling_off"`
	ClearCycling bool    `json:"clear_cycling"`
	IconType     *string `json:"icon_type"`

	// Si viene, la edición tocó fechas: se guardan tal cual (las tres)
	// y no se auto-actualiza date_last_modified.
	Dates *prescriptionDates `json:"dates"`
}

type prescriptionResponse struct {
	ID           string `json:"id"`
	PersonID     string `json:"person_id"`
	CompoundName string `json:"compound_name"`
	Amount       int    `json:"amount"`
	Unit         string `json:"unit"`
	Frequency    string `json:"frequency"`
	CyclingOn    *int   `json:"cycling_on"`
	CyclingOff   *int   `json:"cycling_off"`
	IconType     string `json:"icon_type"`

	DateFirstPrescribed  string  `json:"date_first_prescribed"`
	DateLastModified     string  `json:"date_last_modified"`
	DateLastAdministered *string `json:"date_last_administered"`
}

// createPrescriptionHandler godoc
// @Summary Crear receta
// @Description Crea una receta para la persona indicada. Si no viene date_first_prescribed se usa la fecha actual como ancla de recurrencia. El ciclado exige cycling_on y cycling_off juntos.
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param payload body createPrescriptionRequest true "Datos de la receta"
// @Success 201 {object} prescriptionResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "person not found"
// @Router /persons/{personID}/prescriptions [post]
func createPrescriptionHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		var req createPrescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var first *time.Time
		if strings.TrimSpace(req.DateFirstPrescribed) != "" {
			t, err := time.Parse("2006-01-02", req.DateFirstPrescribed)
			if err != nil {
				http.Error(w, "date_first_prescribed must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			first = &t
		}

		p, err := svc.Create(r.Context(), personID, CreateInput{
			CompoundName:        req.CompoundName,
			Amount:              req.Amount,
			Unit:                req.Unit,
			Frequency:           req.Frequency,
			CyclingOn:           req.CyclingOn,
			CyclingOff:          req.CyclingOff,
			IconType:            req.IconType,
			DateFirstPrescribed: first,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPrescriptionResponse(p))
	}
}

// listPrescriptionsHandler godoc
// @Summary Listar recetas de una persona
// @Tags prescriptions
// @Produce json
// @Param personID path string true "ID de la persona"
// @Success 200 {array} prescriptionResponse
// @Failure 404 {string} string "person not found"
// @Failure 500 {string} string "internal error"
// @Router /persons/{personID}/prescriptions [get]
func listPrescriptionsHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		items, err := svc.ListByPerson(r.Context(), personID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]prescriptionResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPrescriptionResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updatePrescriptionHandler godoc
// @Summary Editar receta
// @Description Edita una receta. Si el payload incluye el bloque dates, las tres fechas se persisten tal cual (edición explícita de fechas); si no lo incluye, date_last_modified se auto-actualiza a hoy.
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param prescriptionID path string true "ID de la receta"
// @Param payload body updatePrescriptionRequest true "Campos a modificar"
// @Success 200 {object} prescriptionResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "prescription not found"
// @Router /persons/{personID}/prescriptions/{prescriptionID} [patch]
func updatePrescriptionHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		prescriptionID := chi.URLParam(r, "prescriptionID")

		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		// La receta debe existir y pertenecer a la persona de la ruta.
		existing, err := svc.GetByID(r.Context(), prescriptionID)
		if err != nil || existing.PersonID != personID {
			http.Error(w, "prescription not found", http.StatusNotFound)
			return
		}

		var req updatePrescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			CompoundName: req.CompoundName,
			Amount:       req.Amount,
			Unit:         req.Unit,
			Frequency:    req.Frequency,
			CyclingOn:    req.CyclingOn,
			CyclingOff:   req.CyclingOff,
			ClearCycling: req.ClearCycling,
			IconType:     req.IconType,
		}

		if req.Dates != nil {
			dates, err := parseDates(req.Dates)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			in.Dates = dates
		}

		p, err := svc.Update(r.Context(), prescriptionID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toPrescriptionResponse(p))
	}
}

// deletePrescriptionHandler godoc
// @Summary Borrar receta
// @Description Borra la receta. Las dosis históricas NO se borran: quedan con la referencia a la receta huérfana, el historial se conserva.
// @Tags prescriptions
// @Param personID path string true "ID de la persona"
// @Param prescriptionID path string true "ID de la receta"
// @Success 204 {string} string "sin contenido"
// @Failure 404 {string} string "prescription not found"
// @Router /persons/{personID}/prescriptions/{prescriptionID} [delete]
func deletePrescriptionHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		prescriptionID := chi.URLParam(r, "prescriptionID")

		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		existing, err := svc.GetByID(r.Context(), prescriptionID)
		if err != nil || existing.PersonID != personID {
			http.Error(w, "prescription not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), prescriptionID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseDates(in *prescriptionDates) (*DatesInput, error) {
	first, err := time.Parse("2006-01-02", in.DateFirstPrescribed)
	if err != nil {
		return nil, errDateFormat
	}
	modified, err := time.Parse("2006-01-02", in.DateLastModified)
	if err != nil {
		return nil, errDateFormat
	}

	out := &DatesInput{
		FirstPrescribed: first,
		LastModified:    modified,
	}
	if in.DateLastAdministered != nil && strings.TrimSpace(*in.DateLastAdministered) != "" {
		last, err := time.Parse("2006-01-02", *in.DateLastAdministered)
		if err != nil {
			return nil, errDateFormat
		}
		out.LastAdministered = &last
	}
	return out, nil
}

var errDateFormat = errors.New("dates must be YYYY-MM-DD")

func toPrescriptionResponse(p Prescription) prescriptionResponse {
	resp := prescriptionResponse{
		ID:                  p.ID,
		PersonID:            p.PersonID,
		CompoundName:        p.CompoundName,
		Amount:              p.Amount,
		Unit:                string(p.Unit),
		Frequency:           string(p.Frequency),
		IconType:            p.IconType,
		DateFirstPrescribed: p.DateFirstPrescribed.Format("2006-01-02"),
		DateLastModified:    p.DateLastModified.Format("2006-01-02"),
	}
	if p.Cycling != nil {
		on, off := p.Cycling.On, p.Cycling.Off
		resp.CyclingOn = &on
		resp.CyclingOff = &off
	}
	if p.DateLastAdministered != nil {
		s := p.DateLastAdministered.Format("2006-01-02")
		resp.DateLastAdministered = &s
	}
	return resp
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
