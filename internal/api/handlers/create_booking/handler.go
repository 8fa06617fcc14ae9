package create_booking

import (
	"errors"
	"net/http"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/api/handlers"
	createBooking "github.com/Nimixx/Call-Scheduler-sub000/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidEmail       = "некорректный email клиента"
	msgSlotTaken          = "выбранный временной слот уже занят"
	msgConsultantNotFound = "консультант не найден"
	msgDateInPast         = "дата бронирования уже прошла"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgOutsideHours       = "время вне рабочих часов консультанта"
)

var (
	errBadDate = errors.New("create_booking handler: bad date")
	errBadTime = errors.New("create_booking handler: bad time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errBadTime) {
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidTime, msgInvalidTime)
		} else {
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: consultant_id=%d, date=%s, time=%s",
				req.ConsultantID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, handlers.CodeSlotTaken, msgSlotTaken)

		case errors.Is(err, createBooking.ErrConsultantNotFound):
			h.logger.Warn("POST /bookings - Consultant not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, createBooking.ErrInvalidEmail):
			h.logger.Warn("POST /bookings - Invalid email: consultant_id=%d", req.ConsultantID)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidEmail, msgInvalidEmail)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: consultant_id=%d, date=%s", req.ConsultantID, req.BookingDate)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeDateInPast, msgDateInPast)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far: consultant_id=%d, date=%s", req.ConsultantID, req.BookingDate)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeDateTooFar, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: consultant_id=%d, date=%s", req.ConsultantID, req.BookingDate)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTime):
			h.logger.Warn("POST /bookings - Invalid time: consultant_id=%d, time=%s", req.ConsultantID, req.StartTime)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidTime, msgInvalidTime)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: consultant_id=%d, date=%s, time=%s",
				req.ConsultantID, req.BookingDate, req.StartTime)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeOutsideHours, msgOutsideHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: consultant_id=%d, error=%v",
				req.ConsultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, consultant_id=%d, date=%s, time=%s",
		result.ID, result.ConsultantID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
