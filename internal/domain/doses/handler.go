package doses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"know-your-doses/internal/domain/persons"
	"know-your-doses/internal/domain/prescriptions"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas planas: los tres módulos comparten el
// prefijo /persons/{personID} y chi no admite montar subrouters solapados.
func RegisterRoutes(r chi.Router, svc *Service, personsSvc *persons.Service, prescSvc *prescriptions.Service) {
	// Reconciliación
	r.Get("/persons/{personID}/due", dueHandler(svc, personsSvc))
	r.Post("/persons/{personID}/prescriptions/{prescriptionID}/administer", administerHandler(svc, personsSvc, prescSvc))
	r.Post("/persons/{personID}/backfill-missed", backfillMissedHandler(svc, personsSvc))
	r.Get("/persons/{personID}/upcoming", upcomingHandler(svc, personsSvc))

	// Historial (ediciones manuales)
	r.Get("/persons/{personID}/doses", listDosesHandler(svc, personsSvc))
	r.Post("/persons/{personID}/doses", createDoseHandler(svc, personsSvc))
	r.Patch("/persons/{personID}/doses/{doseID}", updateDoseHandler(svc, personsSvc))
	r.Delete("/persons/{personID}/doses/{doseID}", deleteDoseHandler(svc, personsSvc))
}

type doseResponse struct {
	ID               string `json:"id"`
	PersonID         string `json:"person_id"`
	PrescriptionID   string `json:"prescription_id,omitempty"` // vacío si es huérfana/manual
	DateAdministered string `json:"date_administered"`
	CompoundName     string `json:"compound_name"`
	Amount           int    `json:"amount"`
	Unit             string `json:"unit"`
	DoseNumber       int    `json:"dose_number"`
	Missed           bool   `json:"missed"`
}

type dueItemResponse struct {
	PrescriptionID string `json:"prescription_id"`
	CompoundName   string `json:"compound_name"`
	Amount         int    `json:"amount"`
	Unit           string `json:"unit"`
	IconType       string `json:"icon_type"`
	Expected       int    `json:"expected"`
	Remaining      int    `json:"remaining"`
}

type dueDayResponse struct {
	Date  string            `json:"date"` // YYYY-MM-DD
	Items []dueItemResponse `json:"items"`
}

type upcomingResponse struct {
	CompoundName string  `json:"compound_name"`
	Unit         string  `json:"unit"`
	TotalDoses   int     `json:"total_doses"`
	TotalAmount  float64 `json:"total_amount"`
}

type recordDoseRequest struct {
	PrescriptionID   string `json:"prescription_id"`
	DateAdministered string `json:"date_administered"` // YYYY-MM-DD
	CompoundName     string `json:"compound_name"`
	Amount           int    `json:"amount"`
	Unit             string `json:"unit" enums:"mg,mcg,ml,set"`
	DoseNumber       int    `json:"dose_number"` // 1..2
}

// dueHandler godoc
// @Summary Dosis pendientes
// @Description Devuelve, por día, las recetas con dosis pendientes (esperadas según la regla de recurrencia menos las ya administradas). date por defecto es hoy; days extiende la ventana hacia adelante (la grilla semanal de la UI usa 7).
// @Tags reconciliation
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param date query string false "Fecha inicial YYYY-MM-DD (default hoy)"
// @Param days query int false "Días de ventana, 1-31 (default 1)"
// @Success 200 {array} dueDayResponse
// @Failure 400 {string} string "date inválida"
// @Failure 404 {string} string "person not found"
// @Failure 500 {string} string "internal error"
// @Router /persons/{personID}/due [get]
func dueHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		from, err := dateParam(r, "date", svc.Today())
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		days := intParam(r, "days", 1, 1, 31)

		out := make([]dueDayResponse, 0, days)
		for offset := 0; offset < days; offset++ {
			day := from.AddDate(0, 0, offset)

			items, err := svc.Due(r.Context(), personID, day)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			dayOut := dueDayResponse{
				Date:  day.Format("2006-01-02"),
				Items: make([]dueItemResponse, 0, len(items)),
			}
			for _, it := range items {
				dayOut.Items = append(dayOut.Items, dueItemResponse{
					PrescriptionID: it.Prescription.ID,
					CompoundName:   it.Prescription.CompoundName,
					Amount:         it.Prescription.Amount,
					Unit:           string(it.Prescription.Unit),
					IconType:       it.Prescription.IconType,
					Expected:       it.Expected,
					Remaining:      it.Remaining,
				})
			}
			out = append(out, dayOut)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// administerHandler godoc
// @Summary Administrar dosis
// @Description Registra una administración para la receta en el día indicado (default hoy). Asigna el número de slot y actualiza date_last_administered. Si no queda ningún slot responde 409; la operación no es idempotente.
// @Tags reconciliation
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param prescriptionID path string true "ID de la receta"
// @Param date query string false "Fecha YYYY-MM-DD (default hoy)"
// @Success 201 {object} doseResponse
// @Failure 400 {string} string "date inválida"
// @Failure 404 {string} string "prescription not found"
// @Failure 409 {string} string "no doses remaining"
// @Failure 500 {string} string "internal error"
// @Router /persons/{personID}/prescriptions/{prescriptionID}/administer [post]
func administerHandler(svc *Service, personsSvc *persons.Service, prescSvc *prescriptions.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		prescriptionID := chi.URLParam(r, "prescriptionID")

		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		// La receta debe existir y pertenecer a la persona de la ruta.
		p, err := prescSvc.GetByID(r.Context(), prescriptionID)
		if err != nil || p.PersonID != personID {
			http.Error(w, "prescription not found", http.StatusNotFound)
			return
		}

		day, err := dateParam(r, "date", svc.Today())
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		e, err := svc.Administer(r.Context(), prescriptionID, day)
		if err != nil {
			if errors.Is(err, ErrNoDosesRemaining) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toDoseResponse(e))
	}
}

// backfillMissedHandler godoc
// @Summary Rellenar dosis omitidas
// @Description Inserta placeholders de cantidad cero para las dosis que quedaron sin registrar en el día indicado (default ayer). La UI lo invoca una vez por carga del dashboard. Idempotente: la segunda pasada no inserta nada.
// @Tags reconciliation
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param date query string false "Fecha YYYY-MM-DD (default ayer)"
// @Success 200 {object} map[string]int "inserted: placeholders creados"
// @Failure 400 {string} string "date inválida"
// @Failure 404 {string} string "person not found"
// @Failure 500 {string} string "internal error"
// @Router /persons/{personID}/backfill-missed [post]
func backfillMissedHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		day, err := dateParam(r, "date", svc.Today().AddDate(0, 0, -1))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		inserted, err := svc.BackfillMissed(r.Context(), personID, day)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int{"inserted": inserted})
	}
}

// upcomingHandler godoc
// @Summary Dosis futuras agregadas
// @Description Suma las dosis esperadas por compuesto en una ventana hacia adelante. Los buckets se funden por nombre de compuesto; mcg con total > 1000 se muestra convertido a mg.
// @Tags reconciliation
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param date query string false "Fecha inicial YYYY-MM-DD (default hoy)"
// @Param days query int false "Días de ventana, 1-365 (default 30)"
// @Success 200 {array} upcomingResponse
// @Failure 400 {string} string "date inválida"
// @Failure 404 {string} string "person not found"
// @Failure 500 {string} string "internal error"
// @Router /persons/{personID}/upcoming [get]
func upcomingHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		from, err := dateParam(r, "date", svc.Today())
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		days := intParam(r, "days", 30, 1, 365)

		items, err := svc.Upcoming(r.Context(), personID, from, days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]upcomingResponse, 0, len(items))
		for _, b := range items {
			out = append(out, upcomingResponse{
				CompoundName: b.CompoundName,
				Unit:         string(b.Unit),
				TotalDoses:   b.TotalDoses,
				TotalAmount:  b.TotalAmount,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listDosesHandler godoc
// @Summary Historial de dosis
// @Description Lista el historial de administraciones de la persona, más reciente primero. Permite filtrar por compuesto exacto. Entradas con amount 0 son placeholders de dosis omitida.
// @Tags doses
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param compound query string false "Nombre de compuesto exacto"
// @Param limit query int false "Máximo de entradas (1-500, default 100)"
// @Success 200 {array} doseResponse
// @Failure 404 {string} string "person not found"
// @Failure 500 {string} string "internal error"
// @Router /persons/{personID}/doses [get]
func listDosesHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		filter := ListFilter{
			CompoundName: strings.TrimSpace(r.URL.Query().Get("compound")),
			Limit:        intParam(r, "limit", 100, 1, 500),
		}

		items, err := svc.ListByPerson(r.Context(), personID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]doseResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toDoseResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createDoseHandler godoc
// @Summary Alta manual en el historial
// @Description Agrega una entrada de historial a mano, sin pasar por la reconciliación. prescription_id es opcional: una entrada manual puede quedar sin receta asociada.
// @Tags doses
// @Accept json
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param payload body recordDoseRequest true "Datos de la dosis"
// @Success 201 {object} doseResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "person not found"
// @Router /persons/{personID}/doses [post]
func createDoseHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		in, err := decodeRecordInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := svc.RecordManual(r.Context(), personID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toDoseResponse(e))
	}
}

// updateDoseHandler godoc
// @Summary Editar entrada del historial
// @Tags doses
// @Accept json
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param doseID path string true "ID de la entrada"
// @Param payload body recordDoseRequest true "Datos de la dosis"
// @Success 200 {object} doseResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "dose not found"
// @Router /persons/{personID}/doses/{doseID} [patch]
func updateDoseHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		doseID := chi.URLParam(r, "doseID")

		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		existing, err := svc.GetByID(r.Context(), doseID)
		if err != nil || existing.PersonID != personID {
			http.Error(w, "dose not found", http.StatusNotFound)
			return
		}

		in, err := decodeRecordInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := svc.UpdateManual(r.Context(), doseID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, toDoseResponse(e))
	}
}

// deleteDoseHandler godoc
// @Summary Borrar entrada del historial
// @Tags doses
// @Param personID path string true "ID de la persona"
// @Param doseID path string true "ID de la entrada"
// @Success 204 {string} string "sin contenido"
// @Failure 404 {string} string "dose not found"
// @Router /persons/{personID}/doses/{doseID} [delete]
func deleteDoseHandler(svc *Service, personsSvc *persons.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personID := chi.URLParam(r, "personID")
		doseID := chi.URLParam(r, "doseID")

		if _, err := personsSvc.GetByID(r.Context(), personID); err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		existing, err := svc.GetByID(r.Context(), doseID)
		if err != nil || existing.PersonID != personID {
			http.Error(w, "dose not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), doseID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeRecordInput(r *http.Request) (RecordInput, error) {
	var req recordDoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return RecordInput{}, errors.New("invalid json")
	}

	day, err := time.Parse("2006-01-02", req.DateAdministered)
	if err != nil {
		return RecordInput{}, errors.New("date_administered must be YYYY-MM-DD")
	}

	return RecordInput{
		PrescriptionID:   req.PrescriptionID,
		DateAdministered: day,
		CompoundName:     req.CompoundName,
		Amount:           req.Amount,
		Unit:             req.Unit,
		DoseNumber:       req.DoseNumber,
	}, nil
}

func dateParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", v)
}

func intParam(r *http.Request, name string, fallback, min, max int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= min && n <= max {
			return n
		}
	}
	return fallback
}

func toDoseResponse(e DoseEvent) doseResponse {
	return doseResponse{
		ID:               e.ID,
		PersonID:         e.PersonID,
		PrescriptionID:   e.PrescriptionID,
		DateAdministered: e.DateAdministered.Format("2006-01-02"),
		CompoundName:     e.CompoundName,
		Amount:           e.Amount,
		Unit:             string(e.Unit),
		DoseNumber:       e.DoseNumber,
		Missed:           e.Missed(),
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
