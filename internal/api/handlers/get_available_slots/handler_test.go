package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/Nimixx/Call-Scheduler-sub000/internal/usecase/get_available_slots"
)

type stubUseCase struct {
	resp *getAvailableSlots.Response
	err  error
	req  *getAvailableSlots.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.req = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(h *Handler, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/consultants/{consultantId}/available-slots", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		ConsultantID: 1,
		Date:         time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		DayOfWeek:    1,
		Slots: []getAvailableSlots.Slot{
			{StartTime: "09:00:00", EndTime: "10:00:00", DurationMinutes: 60, Available: true},
			{StartTime: "10:00:00", EndTime: "11:00:00", DurationMinutes: 60, Available: false},
		},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, "/api/v1/consultants/1/available-slots?date=2025-06-09")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2025-06-09"`)
	assert.Contains(t, rec.Body.String(), `"available":false`)
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(1), uc.req.ConsultantID)
}

func TestHandle_BadInputs(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	rec := doRequest(h, "/api/v1/consultants/abc/available-slots?date=2025-06-09")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h, "/api/v1/consultants/1/available-slots")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_date")

	rec = doRequest(h, "/api/v1/consultants/1/available-slots?date=09-06-2025")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_date")
}

func TestHandle_ConsultantNotFound(t *testing.T) {
	h := NewHandler(&stubUseCase{err: getAvailableSlots.ErrConsultantNotFound}, nopLogger{})

	rec := doRequest(h, "/api/v1/consultants/99/available-slots?date=2025-06-09")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
