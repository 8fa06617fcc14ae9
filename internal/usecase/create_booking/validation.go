package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantId must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if err := validateEmail(req.CustomerEmail); err != nil {
		return err
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidTime)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	return nil
}

// validateEmail проверяет синтаксис email по RFC 5322
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidEmail)
	}
	if len(email) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customerEmail exceeds %d characters", ErrInvalidEmail, domain.MaxCustomerEmailLength)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	// ParseAddress принимает форму "Name <user@host>", нам нужен голый адрес
	if addr.Address != email {
		return fmt.Errorf("%w: expected bare address", ErrInvalidEmail)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не выходит за горизонт
// бронирования
func validateDate(bookingDate, now time.Time, maxAdvanceDays int) error {
	dateOnly := truncateToDay(bookingDate)
	nowOnly := truncateToDay(now)

	if dateOnly.Before(nowOnly) {
		return ErrDateInPast
	}

	if maxAdvanceDays == 0 {
		return nil
	}

	maxDate := nowOnly.AddDate(0, 0, maxAdvanceDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateSlotStart проверяет, что время начала совпадает с одним из слотов
// рабочего окна. Сравнение по секундам от начала дня с нормализацией по
// модулю суток - для ночных окон запрошенное "01:00" матчится со слотом,
// сгенерированным за полночью.
func validateSlotStart(window *domain.AvailabilityWindow, cfg domain.SchedulingConfig, start types.TimeString) error {
	requested, err := start.SecondsOfDay()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	windowStart, err := window.StartTime.SecondsOfDay()
	if err != nil {
		return fmt.Errorf("%w: malformed availability window: %v", ErrInternal, err)
	}

	effectiveEnd, err := window.EffectiveEndSeconds()
	if err != nil {
		return fmt.Errorf("%w: malformed availability window: %v", ErrInternal, err)
	}

	duration := cfg.SlotDurationSeconds()
	step := cfg.StepSeconds()

	for cursor := windowStart; cursor+duration <= effectiveEnd; cursor += step {
		if cursor%types.SecondsPerDay == requested {
			return nil
		}
	}

	return ErrOutsideWorkingHours
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
