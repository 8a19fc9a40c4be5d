package persons

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas planas: los tres módulos comparten el
// prefijo /persons y chi no admite montar subrouters solapados.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/persons", createPersonHandler(svc))
	r.Get("/persons", listPersonsHandler(svc))
	r.Get("/persons/{personID}", getPersonHandler(svc))
}

type createPersonRequest struct {
	Name string `json:"name"`
}

type personResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DateAdded string `json:"date_added"` // YYYY-MM-DD
}

// createPersonHandler godoc
// @Summary Crear persona
// @Description Registra una persona cuyo régimen de medicación se va a seguir. La fecha de alta queda en el día actual.
// @Tags persons
// @Accept json
// @Produce json
// @Param payload body createPersonRequest true "Nombre de la persona"
// @Success 201 {object} personResponse
// @Failure 400 {string} string "invalid json / nombre vacío"
// @Router /persons [post]
func createPersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPersonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), req.Name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPersonResponse(p))
	}
}

// listPersonsHandler godoc
// @Summary Listar personas
// @Description Lista todas las personas registradas, ordenadas por nombre.
// @Tags persons
// @Produce json
// @Success 200 {array} personResponse
// @Failure 500 {string} string "internal error"
// @Router /persons [get]
func listPersonsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]personResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPersonResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPersonHandler godoc
// @Summary Obtener persona
// @Tags persons
// @Produce json
// @Param personID path string true "ID de la persona"
// @Success 200 {object} personResponse
// @Failure 404 {string} string "person not found"
// @Router /persons/{personID} [get]
func getPersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "personID"))
		if err != nil {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPersonResponse(p))
	}
}

func toPersonResponse(p Person) personResponse {
	return personResponse{
		ID:        p.ID,
		Name:      p.Name,
		DateAdded: p.DateAdded.Format("2006-01-02"),
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
