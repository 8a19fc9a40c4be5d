package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"know-your-doses/internal/router"
)

// Reloj fijo para que due/administer/backfill sean deterministas.
// 2025-06-10 es martes.
func fixedNow() time.Time {
	return time.Date(2025, time.June, 10, 15, 30, 0, 0, time.UTC)
}

func TestHTTP_EndToEnd_Reconciliation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Now: fixedNow}))
	defer ts.Close()

	// 1) Alta de persona
	personID := createPerson(t, ts.URL, "Alice")

	// 2) Receta twice-daily anclada antes de hoy (para que ayer también cuente)
	rxID := createPrescription(t, ts.URL, personID, map[string]any{
		"compound_name":         "Metformin",
		"amount":                500,
		"unit":                  "mg",
		"frequency":             "twice-daily",
		"date_first_prescribed": "2025-06-01",
	})

	// 3) Hoy hay 2 dosis pendientes
	{
		st, body := doReq(t, ts.URL, "GET", "/persons/"+personID+"/due", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 due, got %d body=%s", st, string(body))
		}
		var days []struct {
			Date  string `json:"date"`
			Items []struct {
				PrescriptionID string `json:"prescription_id"`
				Expected       int    `json:"expected"`
				Remaining      int    `json:"remaining"`
			} `json:"items"`
		}
		mustUnmarshal(t, body, &days)
		if len(days) != 1 || days[0].Date != "2025-06-10" {
			t.Fatalf("expected single day 2025-06-10, got %s", string(body))
		}
		if len(days[0].Items) != 1 || days[0].Items[0].Expected != 2 || days[0].Items[0].Remaining != 2 {
			t.Fatalf("expected 2 pending doses, got %s", string(body))
		}
	}

	// 4) Administrar dos veces: slots 1 y 2
	for want := 1; want <= 2; want++ {
		st, body := doReq(t, ts.URL, "POST", "/persons/"+personID+"/prescriptions/"+rxID+"/administer", nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 administer #%d, got %d body=%s", want, st, string(body))
		}
		var dose struct {
			DoseNumber int    `json:"dose_number"`
			Date       string `json:"date_administered"`
		}
		mustUnmarshal(t, body, &dose)
		if dose.DoseNumber != want {
			t.Fatalf("expected dose number %d, got %d", want, dose.DoseNumber)
		}
		if dose.Date != "2025-06-10" {
			t.Fatalf("expected dose dated today, got %s", dose.Date)
		}
	}

	// 5) Tercera administración del día: conflicto
	{
		st, _ := doReq(t, ts.URL, "POST", "/persons/"+personID+"/prescriptions/"+rxID+"/administer", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on third administer, got %d", st)
		}
	}

	// 6) Ya no queda nada pendiente hoy
	{
		st, body := doReq(t, ts.URL, "GET", "/persons/"+personID+"/due", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 due, got %d", st)
		}
		var days []struct {
			Items []json.RawMessage `json:"items"`
		}
		mustUnmarshal(t, body, &days)
		if len(days) != 1 || len(days[0].Items) != 0 {
			t.Fatalf("expected empty due list after administering, got %s", string(body))
		}
	}

	// 7) La receta refleja la última administración
	{
		st, body := doReq(t, ts.URL, "GET", "/persons/"+personID+"/prescriptions", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list prescriptions, got %d", st)
		}
		var list []struct {
			ID                   string  `json:"id"`
			DateLastAdministered *string `json:"date_last_administered"`
		}
		mustUnmarshal(t, body, &list)
		if len(list) != 1 || list[0].DateLastAdministered == nil || *list[0].DateLastAdministered != "2025-06-10" {
			t.Fatalf("expected date_last_administered 2025-06-10, got %s", string(body))
		}
	}

	// 8) Agregado futuro: 3 días x 2 dosis x 500mg
	{
		st, body := doReq(t, ts.URL, "GET", "/persons/"+personID+"/upcoming?days=3", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 upcoming, got %d body=%s", st, string(body))
		}
		var buckets []struct {
			CompoundName string  `json:"compound_name"`
			Unit         string  `json:"unit"`
			TotalDoses   int     `json:"total_doses"`
			TotalAmount  float64 `json:"total_amount"`
		}
		mustUnmarshal(t, body, &buckets)
		if len(buckets) != 1 {
			t.Fatalf("expected 1 bucket, got %s", string(body))
		}
		if buckets[0].TotalDoses != 6 || buckets[0].TotalAmount != 3000 || buckets[0].Unit != "mg" {
			t.Fatalf("expected 6 doses / 3000 mg, got %+v", buckets[0])
		}
	}

	// 9) Backfill de ayer: inserta los 2 placeholders y la segunda pasada nada
	{
		st, body := doReq(t, ts.URL, "POST", "/persons/"+personID+"/backfill-missed", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 backfill, got %d body=%s", st, string(body))
		}
		var resp map[string]int
		mustUnmarshal(t, body, &resp)
		if resp["inserted"] != 2 {
			t.Fatalf("expected 2 inserted, got %d", resp["inserted"])
		}

		st, body = doReq(t, ts.URL, "POST", "/persons/"+personID+"/backfill-missed", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 backfill #2, got %d", st)
		}
		mustUnmarshal(t, body, &resp)
		if resp["inserted"] != 0 {
			t.Fatalf("expected idempotent backfill, got %d", resp["inserted"])
		}
	}

	// 10) Historial: 2 administradas de hoy + 2 omitidas de ayer
	{
		st, body := doReq(t, ts.URL, "GET", "/persons/"+personID+"/doses", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 doses, got %d", st)
		}
		var doses []struct {
			Date   string `json:"date_administered"`
			Missed bool   `json:"missed"`
		}
		mustUnmarshal(t, body, &doses)
		if len(doses) != 4 {
			t.Fatalf("expected 4 history entries, got %d body=%s", len(doses), string(body))
		}
		missed := 0
		for _, d := range doses {
			if d.Missed {
				missed++
				if d.Date != "2025-06-09" {
					t.Fatalf("expected missed placeholders dated yesterday, got %s", d.Date)
				}
			}
		}
		if missed != 2 {
			t.Fatalf("expected 2 missed placeholders, got %d", missed)
		}
	}

	// 11) Borrar la receta deja el historial huérfano pero intacto
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/persons/"+personID+"/prescriptions/"+rxID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete prescription, got %d", st)
		}

		st, body := doReq(t, ts.URL, "GET", "/persons/"+personID+"/doses", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 doses after delete, got %d", st)
		}
		var doses []json.RawMessage
		mustUnmarshal(t, body, &doses)
		if len(doses) != 4 {
			t.Fatalf("expected history preserved after prescription delete, got %d", len(doses))
		}
	}
}

func TestHTTP_Prescriptions_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Now: fixedNow}))
	defer ts.Close()

	personID := createPerson(t, ts.URL, "Bob")

	// frecuencia desconocida => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/persons/"+personID+"/prescriptions", map[string]any{
			"compound_name": "X",
			"amount":        1,
			"frequency":     "hourly",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown frequency, got %d", st)
		}
	}

	// ciclado incompleto => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/persons/"+personID+"/prescriptions", map[string]any{
			"compound_name": "X",
			"amount":        1,
			"cycling_on":    5,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for cycling_on without cycling_off, got %d", st)
		}
	}

	// persona inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/persons/nope/prescriptions", map[string]any{
			"compound_name": "X",
			"amount":        1,
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown person, got %d", st)
		}
	}
}

func TestHTTP_Administer_WrongPerson_NotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Now: fixedNow}))
	defer ts.Close()

	aliceID := createPerson(t, ts.URL, "Alice")
	bobID := createPerson(t, ts.URL, "Bob")

	rxID := createPrescription(t, ts.URL, aliceID, map[string]any{
		"compound_name": "Metformin",
		"amount":        500,
	})

	// la receta es de Alice: administrar por la ruta de Bob no existe
	st, _ := doReq(t, ts.URL, "POST", "/persons/"+bobID+"/prescriptions/"+rxID+"/administer", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 administering another person's prescription, got %d", st)
	}
}

func createPerson(t *testing.T, baseURL, name string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/persons", map[string]any{"name": name})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create person, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create person: missing id body=%s", string(body))
	}
	return resp.ID
}

func createPrescription(t *testing.T, baseURL, personID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/persons/"+personID+"/prescriptions", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create prescription, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create prescription: missing id body=%s", string(body))
	}
	return resp.ID
}

func mustUnmarshal(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
