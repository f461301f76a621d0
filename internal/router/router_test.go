package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equimanage-server/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	t.Cleanup(ts.Close)
	return ts
}

func day(daysAgo int) string {
	return time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
}

func TestHTTP_EndToEnd_OwnerComplianceFlow(t *testing.T) {
	ts := newTestServer(t)

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// 1) Owner crea su perfil con avisos activados
	{
		st, body := doReq(t, ts.URL, "PUT", "/profile", ownerID, map[string]any{
			"role":               "owner",
			"first_name":         "Anna",
			"last_name":          "Schmidt",
			"zip":                "48143",
			"notify_vaccination": true,
			"notify_hoof":        true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 upsert profile, got %d body=%s", st, string(body))
		}
	}

	// 2) Owner registra un caballo
	horseID := createHorse(t, ts.URL, ownerID, map[string]any{
		"name":       "Amadeus",
		"breed":      "Hannoveraner",
		"birth_year": 2015,
		"gender":     "Wallach",
	})

	// 3) Sin sesión => 401; otro usuario => 403
	{
		st, _ := doReq(t, ts.URL, "GET", "/horses/"+horseID, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without session, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/horses/"+horseID, strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for stranger, got %d", st)
		}
	}

	// 4) V1 de Influenza hace 40 días => V2 en ventana (YELLOW)
	{
		st, body := doReq(t, ts.URL, "POST", "/horses/"+horseID+"/vaccinations", ownerID, map[string]any{
			"type":     "Influenza",
			"date":     day(40),
			"sequence": "V1",
			"status":   "verified",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add vaccination, got %d body=%s", st, string(body))
		}
	}

	// 5) Último herrador hace 71 días => RED
	{
		st, body := doReq(t, ts.URL, "POST", "/horses/"+horseID+"/services", ownerID, map[string]any{
			"type": "Hufschmied",
			"date": day(71),
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add service, got %d body=%s", st, string(body))
		}
	}

	// 6) Chequeo combinado
	{
		st, body := doReq(t, ts.URL, "GET", "/horses/"+horseID+"/compliance", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 compliance, got %d body=%s", st, string(body))
		}

		var resp struct {
			Status      string `json:"status"`
			StatusLabel string `json:"status_label"`
			Hoof        struct {
				Status    string `json:"status"`
				DaysSince int    `json:"days_since"`
			} `json:"hoof"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal compliance: %v", err)
		}
		if resp.Status != "YELLOW" {
			t.Fatalf("vaccination status = %s, quiere YELLOW body=%s", resp.Status, string(body))
		}
		if resp.StatusLabel != "Bald fällig" {
			t.Fatalf("status label = %q", resp.StatusLabel)
		}
		if resp.Hoof.Status != "RED" || resp.Hoof.DaysSince != 71 {
			t.Fatalf("hoof = %+v, quiere RED/71", resp.Hoof)
		}
	}

	// 7) Panel de acciones: un caballo con tarea HOOF y tarea VACC
	{
		st, body := doReq(t, ts.URL, "GET", "/dashboard/actions", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 actions, got %d body=%s", st, string(body))
		}
		var resp []struct {
			HorseID         string `json:"horse_id"`
			HighestPriority string `json:"highest_priority"`
			Tasks           []struct {
				Type string `json:"type"`
			} `json:"tasks"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal actions: %v", err)
		}
		if len(resp) != 1 || resp[0].HorseID != horseID {
			t.Fatalf("actions = %s", string(body))
		}
		if resp[0].HighestPriority != "RED" || len(resp[0].Tasks) != 2 {
			t.Fatalf("action = %s", string(body))
		}
	}

	// 8) Chequeo de avisos: primera pasada registra, la segunda es no-op
	{
		st, body := doNotifCheck(t, ts.URL, ownerID)
		if st != http.StatusOK {
			t.Fatalf("expected 200 notifications check, got %d body=%s", st, string(body))
		}
		var resp struct {
			VaccSent int `json:"vacc_sent"`
			HoofSent int `json:"hoof_sent"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.VaccSent != 1 || resp.HoofSent != 1 {
			t.Fatalf("first check = %s, quiere 1/1", string(body))
		}
	}
	{
		st, body := doNotifCheck(t, ts.URL, ownerID)
		if st != http.StatusOK {
			t.Fatalf("expected 200 second check, got %d", st)
		}
		var resp struct {
			VaccSent int `json:"vacc_sent"`
			HoofSent int `json:"hoof_sent"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.VaccSent != 0 || resp.HoofSent != 0 {
			t.Fatalf("second check = %s, quiere 0/0 (idempotente)", string(body))
		}
	}
}

// doNotifCheck añade el email de dev: sin email no hay destinatario y
// el differ no registra nada.
func doNotifCheck(t *testing.T, baseURL, userID string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest("POST", baseURL+"/notifications/check", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Debug-User-ID", userID)
	req.Header.Set("X-Debug-User-Email", userID+"@example.com")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func TestHTTP_EndToEnd_AppointmentFlow(t *testing.T) {
	ts := newTestServer(t)

	ownerID := "owner-1"
	vetID := "vet-1"

	// Perfiles de ambos lados
	{
		st, _ := doReq(t, ts.URL, "PUT", "/profile", ownerID, map[string]any{
			"role": "owner", "first_name": "Anna", "zip": "48143",
		})
		if st != http.StatusOK {
			t.Fatalf("owner profile: %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "PUT", "/profile", vetID, map[string]any{
			"role": "vet", "practice_name": "Tierarztpraxis Nord", "zip": "48145",
		})
		if st != http.StatusOK {
			t.Fatalf("vet profile: %d", st)
		}
	}

	// Búsqueda de vets por prefijo de zip
	{
		st, body := doReq(t, ts.URL, "GET", "/vets?zip=48", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 vets, got %d", st)
		}
		var vets []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &vets)
		if len(vets) != 1 || vets[0].ID != vetID {
			t.Fatalf("vets = %s", string(body))
		}
	}

	// Owner solicita cita
	var requestID string
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments", ownerID, map[string]any{
			"vet_id": vetID,
			"payload": map[string]any{
				"owner": map[string]any{"firstName": "Anna", "zip": "48143"},
				"horses": []map[string]any{
					{"horseId": "h1", "name": "Amadeus", "selectedCategories": []string{"Influenza"}},
				},
			},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" {
			t.Fatalf("missing appointment id body=%s", string(body))
		}
		requestID = resp.ID
	}

	// Segunda solicitud al mismo vet reutiliza la pendiente
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments", ownerID, map[string]any{
			"vet_id": vetID,
			"payload": map[string]any{
				"owner":  map[string]any{"firstName": "Anna"},
				"horses": []map[string]any{{"horseId": "h1", "name": "Amadeus"}},
			},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 re-create, got %d", st)
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != requestID {
			t.Fatalf("re-create devolvió otra solicitud: %s != %s", resp.ID, requestID)
		}
	}

	// El vet la ve en su bandeja y la acepta con fecha
	{
		st, body := doReq(t, ts.URL, "GET", "/appointments/inbox", vetID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 inbox, got %d", st)
		}
		var list []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 || list[0].Status != "pending" {
			t.Fatalf("inbox = %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments/"+requestID+"/accept", vetID, map[string]any{
			"scheduled_date": day(-14),
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept, got %d body=%s", st, string(body))
		}
	}

	// El dueño confirma; confirmar dos veces es idempotente
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments/"+requestID+"/confirm", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/appointments/"+requestID+"/confirm", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 double confirm, got %d", st)
		}
	}

	// Ya aceptada: cancelar devuelve conflicto
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/appointments/"+requestID, ownerID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 cancel accepted, got %d", st)
		}
	}
}

func TestHTTP_CronRequiresSecret(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		CronSecret:   "s3cret",
	}))
	defer ts.Close()

	// Sin header => 401
	{
		req, _ := http.NewRequest("POST", ts.URL+"/cron/daily-due-checks", nil)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 without secret, got %d", res.StatusCode)
		}
	}

	// Con secreto => 200 y reporte vacío
	{
		req, _ := http.NewRequest("POST", ts.URL+"/cron/daily-due-checks", nil)
		req.Header.Set("X-Cron-Secret", "s3cret")
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 with secret, got %d", res.StatusCode)
		}
		body, _ := io.ReadAll(res.Body)
		var resp struct {
			OwnersChecked int `json:"owners_checked"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.OwnersChecked != 0 {
			t.Fatalf("report = %s, quiere 0 dueños", string(body))
		}
	}
}

func TestHTTP_CronClosedWithoutSecret(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest("POST", ts.URL+"/cron/daily-due-checks", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with cron disabled, got %d", res.StatusCode)
	}
}

func createHorse(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/horses", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create horse, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create horse: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
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
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
