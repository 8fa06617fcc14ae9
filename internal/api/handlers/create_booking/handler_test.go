package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	createBooking "github.com/Nimixx/Call-Scheduler-sub000/internal/usecase/create_booking"
)

type stubUseCase struct {
	resp *createBooking.Response
	err  error
	req  *createBooking.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.req = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"consultantId":1,"customerName":"Ivan","customerEmail":"ivan@example.com","bookingDate":"2025-06-09","startTime":"10:00"}`

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:            7,
		ConsultantID:  1,
		CustomerName:  "Ivan",
		CustomerEmail: "ivan@example.com",
		Date:          time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00:00",
		EndTime:       "11:00:00",
		Status:        domain.StatusPending,
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	assert.Contains(t, rec.Body.String(), `"endTime":"11:00:00"`)
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(1), uc.req.ConsultantID)
}

func TestHandle_MalformedBody(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	rec := doRequest(h, `{"consultantId":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadDateAndTime(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	rec := doRequest(h, `{"consultantId":1,"customerName":"Ivan","customerEmail":"ivan@example.com","bookingDate":"09.06.2025","startTime":"10:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_date")

	rec = doRequest(h, `{"consultantId":1,"customerName":"Ivan","customerEmail":"ivan@example.com","bookingDate":"2025-06-09","startTime":"1000"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_time")
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"slot taken", createBooking.ErrSlotTaken, http.StatusConflict, "slot_taken"},
		{"consultant not found", createBooking.ErrConsultantNotFound, http.StatusNotFound, "not_found"},
		{"invalid email", createBooking.ErrInvalidEmail, http.StatusBadRequest, "invalid_email"},
		{"date in past", createBooking.ErrDateInPast, http.StatusBadRequest, "date_in_past"},
		{"date too far", createBooking.ErrDateTooFarInFuture, http.StatusBadRequest, "date_too_far"},
		{"outside hours", createBooking.ErrOutsideWorkingHours, http.StatusBadRequest, "outside_hours"},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, nopLogger{})
			rec := doRequest(h, validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}
