package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers"
	scheduleService "github.com/Nimixx/Call-Scheduler-sub000/internal/service/schedule"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidWindow       = "некорректное рабочее окно"
	msgConsultantNotFound  = "консультант не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/consultants/{consultantId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /consultants/{id}/schedule - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	var req scheduleService.ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /consultants/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Replace(r.Context(), consultantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrConsultantNotFound):
			h.logger.Warn("PUT /consultants/{id}/schedule - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, scheduleService.ErrInvalidWindow):
			h.logger.Warn("PUT /consultants/{id}/schedule - Invalid window: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidTime, msgInvalidWindow)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /consultants/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /consultants/{id}/schedule - Failed: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /consultants/{id}/schedule - Schedule replaced: consultant_id=%d, windows=%d",
		consultantID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
