package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	getAvailableSlots "github.com/Nimixx/Call-Scheduler-sub000/internal/usecase/get_available_slots"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgConsultantNotFound  = "консультант не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-slots - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /consultants/{id}/available-slots - Missing date")
		handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ConsultantID: consultantID,
		Date:         date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrConsultantNotFound):
			h.logger.Warn("GET /consultants/{id}/available-slots - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput),
			errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /consultants/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConsultantID)

		default:
			h.logger.Error("GET /consultants/{id}/available-slots - Failed: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/available-slots - Returned %d slots: consultant_id=%d, date=%s",
		len(result.Slots), consultantID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
