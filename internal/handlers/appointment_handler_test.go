package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/fieldcrypt"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/infra/repository"
	ucAppointment "github.com/aaafasf/PETPOCKEBACKEND1/internal/usecase/appointment"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := fieldcrypt.New("test-secret")
	if err != nil {
		t.Fatal(err)
	}

	repo := repository.NewMemoryAppointmentRepository()
	details := repository.NewMemoryDetailStore()

	changeState := ucAppointment.NewChangeState(repo, details, nil, "America/Guayaquil")

	h := NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(repo, details, codec, nil),
		ucAppointment.NewGetAppointment(repo, details, codec),
		ucAppointment.NewListAppointments(repo, details, codec),
		ucAppointment.NewListByClient(repo, details, codec),
		ucAppointment.NewUpdateAppointment(repo, details, codec, nil),
		ucAppointment.NewRescheduleAppointment(repo, details, nil),
		changeState,
		ucAppointment.NewCancelAppointment(changeState),
		ucAppointment.NewCheckAvailability(repo),
		ucAppointment.NewStatistics(repo, nil),
	)

	r := gin.New()
	r.POST("/api/appointments", h.Create)
	r.GET("/api/appointments", h.List)
	r.GET("/api/calendar", h.Calendar)
	r.GET("/api/appointments/:id", h.Get)
	r.PUT("/api/appointments/:id", h.Update)
	r.PATCH("/api/appointments/:id/reschedule", h.Reschedule)
	r.PATCH("/api/appointments/:id/state", h.ChangeState)
	r.PATCH("/api/appointments/:id/cancel", h.Cancel)
	r.GET("/api/clients/:clientId/appointments", h.ListByClient)
	r.GET("/api/availability", h.Availability)
	r.GET("/api/statistics", h.Statistics)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const createBody = `{
	"client_id": 1,
	"pet_id": 5,
	"service_id": 3,
	"date": "2025-12-30",
	"time": "14:00",
	"pet_name": "Firulais",
	"reason": "checkup"
}`

func TestCreateReturns201WithID(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/appointments", createBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID == 0 {
		t.Fatalf("expected an id in %s", w.Body.String())
	}
}

func TestCreateMissingFieldsReturns400(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/appointments", `{"pet_id": 5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreateConflictReturns409(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/appointments", createBody)
	w := do(t, r, http.MethodPost, "/api/appointments", createBody)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGetMissingReturns404(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/appointments/42", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetDecryptsPII(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/appointments", createBody)

	w := do(t, r, http.MethodGet, "/api/appointments/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		PetName string `json:"pet_name"`
		Detail  struct {
			Reason string `json:"reason"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.PetName != "Firulais" {
		t.Fatalf("pet_name = %q", resp.PetName)
	}
	if resp.Detail.Reason != "checkup" {
		t.Fatalf("detail.reason = %q", resp.Detail.Reason)
	}
}

func TestIllegalTransitionReturns400(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/appointments", createBody)
	do(t, r, http.MethodPatch, "/api/appointments/1/cancel", "{}")

	w := do(t, r, http.MethodPatch, "/api/appointments/1/state", `{"state":"confirmed"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestCancelThenAvailabilityFreesSlot(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/appointments", createBody)

	w := do(t, r, http.MethodGet, "/api/availability?date=2025-12-30&time=14:00", "")
	if !strings.Contains(w.Body.String(), `"available":false`) {
		t.Fatalf("slot should be taken: %s", w.Body.String())
	}

	if w := do(t, r, http.MethodPatch, "/api/appointments/1/cancel", "{}"); w.Code != http.StatusOK {
		t.Fatalf("cancel status = %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/availability?date=2025-12-30&time=14:00", "")
	if !strings.Contains(w.Body.String(), `"available":true`) {
		t.Fatalf("slot should be free: %s", w.Body.String())
	}
}

func TestAvailabilityRejectsMalformedSlot(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/availability?date=tomorrow&time=14:00", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRescheduleMissingReturns404(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPatch, "/api/appointments/99/reschedule", `{"date":"2025-12-31"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestListAppointmentsWindow(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/appointments", createBody)

	var listed struct {
		Data  []json.RawMessage `json:"data"`
		Total int               `json:"total"`
	}

	w := do(t, r, http.MethodGet, "/api/appointments?from=2025-12-01&to=2025-12-31", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil || listed.Total != 1 {
		t.Fatalf("window total = %d (%v), body = %s", listed.Total, err, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/appointments?from=2026-02-01", "")
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil || listed.Total != 0 {
		t.Fatalf("later window should be empty: %s", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/appointments?from=not-a-date", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed bound status = %d", w.Code)
	}
}

func TestCalendarOmitsCancelled(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/appointments", createBody)
	do(t, r, http.MethodPatch, "/api/appointments/1/cancel", "{}")

	w := do(t, r, http.MethodGet, "/api/calendar?from=2025-12-30&to=2025-12-30", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var listed struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil || listed.Total != 0 {
		t.Fatalf("cancelled row leaked into the calendar: %s", w.Body.String())
	}
}

func TestStatisticsShape(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/appointments", createBody)

	w := do(t, r, http.MethodGet, "/api/statistics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Total     int64 `json:"total_appointments"`
		Scheduled int64 `json:"scheduled"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || resp.Scheduled != 1 {
		t.Fatalf("stats = %+v", resp)
	}
}
