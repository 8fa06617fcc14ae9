package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/events"
	availabilityRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/availability"
	bookingRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/booking"
	consultantRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/consultant"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// UseCase use case для создания бронирования.
//
// Проверка занятости слота не делается до вставки: единственный арбитр
// конфликта - частичный уникальный индекс по активным бронированиям.
// Конкурентные запросы на один слот разрешаются базой, проигравший получает
// ErrSlotTaken.
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	consultantRepo   ConsultantRepository
	publisher        EventPublisher
	cache            CacheInvalidator
	config           domain.SchedulingConfig
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	consultantRepo ConsultantRepository,
	publisher EventPublisher,
	cache CacheInvalidator,
	config domain.SchedulingConfig,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		consultantRepo:   consultantRepo,
		publisher:        publisher,
		cache:            cache,
		config:           config,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: consultant=%d, date=%s, time=%s, email=%s",
		req.ConsultantID, req.Date.Format(domain.DateFormat), req.StartTime, req.CustomerEmail)

	now := uc.timeProvider.Now()

	// 2. Нормализуем конфигурацию слотов
	cfg := uc.normalizedConfig()

	// 3. Валидация даты: не в прошлом и в пределах горизонта
	if err := validateDate(req.Date, now, cfg.MaxAdvanceDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование консультанта
	consultant, err := uc.consultantRepo.GetByID(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, consultantRepo.ErrConsultantNotFound) {
			uc.logger.Warn("CreateBooking: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}
	if !consultant.Active {
		uc.logger.Warn("CreateBooking: consultant id=%d is inactive", req.ConsultantID)
		return nil, ErrConsultantNotFound
	}

	// 5. Получаем рабочее окно на день недели даты
	dayOfWeek := int(req.Date.Weekday())
	window, err := uc.availabilityRepo.GetByConsultantAndWeekday(ctx, req.ConsultantID, dayOfWeek)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			uc.logger.Warn("CreateBooking: consultant=%d has no window on weekday=%d", req.ConsultantID, dayOfWeek)
			return nil, ErrOutsideWorkingHours
		}
		uc.logger.Error("CreateBooking: failed to get availability window: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability window: %v", ErrInternal, err)
	}

	// 6. Время должно совпадать с началом одного из слотов окна
	if err := validateSlotStart(window, cfg, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed for consultant=%d, time=%s: %v",
			req.ConsultantID, req.StartTime, err)
		return nil, err
	}

	// 7. Вставляем бронирование. Конфликт по слоту разрешает уникальный
	// индекс - никакой предварительной проверки занятости.
	startSec, err := req.StartTime.SecondsOfDay()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	normalizedStart := types.NewTimeStringFromSeconds(startSec)

	booking := &domain.Booking{
		ConsultantID:  req.ConsultantID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		BookingDate:   truncateToDay(req.Date),
		StartTime:     normalizedStart,
		Status:        domain.StatusPending,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			uc.logger.Info("CreateBooking: slot taken: consultant=%d, date=%s, time=%s",
				req.ConsultantID, req.Date.Format(domain.DateFormat), normalizedStart)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d for consultant=%d, date=%s, time=%s",
		created.ID, created.ConsultantID, created.BookingDate.Format(domain.DateFormat), created.StartTime)

	// 8. Пост-обработка: сброс кеша и событие. Бронирование уже
	// зафиксировано, ошибки здесь не отменяют результат.
	if err := uc.cache.Invalidate(ctx, created.ConsultantID, created.BookingDate); err != nil {
		uc.logger.Warn("CreateBooking: cache invalidation failed: %v", err)
	}

	uc.publisher.Publish(events.BookingEvent{
		Name:          events.EventBookingCreated,
		BookingID:     created.ID,
		ConsultantID:  created.ConsultantID,
		CustomerName:  created.CustomerName,
		CustomerEmail: created.CustomerEmail,
		BookingDate:   created.BookingDate.Format(domain.DateFormat),
		StartTime:     created.StartTime,
		OccurredAt:    now,
	})

	endTime, err := created.StartTime.AddSeconds(cfg.SlotDurationSeconds())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:            created.ID,
		ConsultantID:  created.ConsultantID,
		CustomerName:  created.CustomerName,
		CustomerEmail: created.CustomerEmail,
		Date:          created.BookingDate,
		StartTime:     created.StartTime,
		EndTime:       endTime,
		Status:        created.Status,
		CreatedAt:     created.CreatedAt,
	}, nil
}

// normalizedConfig возвращает конфигурацию с безопасными значениями,
// фиксируя каждый фолбэк в логах и метриках
func (uc *UseCase) normalizedConfig() domain.SchedulingConfig {
	cfg, diagnostics := uc.config.Normalize()
	for _, d := range diagnostics {
		uc.logger.Warn("CreateBooking: config fallback: %s: %s", d.Parameter, d.Message)
		uc.metrics.IncConfigFallback(d.Parameter)
	}
	return cfg
}
