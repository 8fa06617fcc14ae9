package get_consultant_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	bookingsService "github.com/Nimixx/Call-Scheduler-sub000/internal/service/bookings"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/service/bookings/models"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus       = "некорректный статус бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/bookings
// Query params: date (опционально), status (опционально), includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/bookings - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	req := &models.GetConsultantBookingsRequest{
		ConsultantID:     consultantID,
		IncludeCancelled: r.URL.Query().Get("includeCancelled") == "true",
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/bookings - Invalid date %q: %v", dateStr, err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetConsultantBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidStatus):
			h.logger.Warn("GET /consultants/{id}/bookings - Invalid status: consultant_id=%d", consultantID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConsultantID)

		default:
			h.logger.Error("GET /consultants/{id}/bookings - Failed: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/bookings - Returned %d bookings: consultant_id=%d",
		len(result.Bookings), consultantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
