package create_booking

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден или неактивен
	ErrConsultantNotFound = errors.New("create_booking: consultant not found")

	// ErrInvalidEmail возвращается при некорректном email клиента
	ErrInvalidEmail = errors.New("create_booking: invalid customer email")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateInPast возвращается, когда дата бронирования уже прошла
	ErrDateInPast = errors.New("create_booking: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTime возвращается при некорректном формате времени начала
	ErrInvalidTime = errors.New("create_booking: invalid start time")

	// ErrOutsideWorkingHours возвращается, когда время не совпадает ни с одним
	// слотом рабочего окна (или окна на этот день нет)
	ErrOutsideWorkingHours = errors.New("create_booking: time is outside working hours")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
