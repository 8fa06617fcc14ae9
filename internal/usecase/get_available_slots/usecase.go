package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	availabilityRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/availability"
	consultantRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/consultant"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// UseCase use case для получения доступных слотов консультанта на дату
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	consultantRepo   ConsultantRepository
	cache            BlockedTimesCache
	config           domain.SchedulingConfig
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	consultantRepo ConsultantRepository,
	cache BlockedTimesCache,
	config domain.SchedulingConfig,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		consultantRepo:   consultantRepo,
		cache:            cache,
		config:           config,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: consultant=%d, date=%s",
		req.ConsultantID, req.Date.Format(domain.DateFormat))

	// 2. Проверяем существование консультанта
	consultant, err := uc.consultantRepo.GetByID(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, consultantRepo.ErrConsultantNotFound) {
			uc.logger.Warn("GetAvailableSlots: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}
	if !consultant.Active {
		uc.logger.Warn("GetAvailableSlots: consultant id=%d is inactive", req.ConsultantID)
		return nil, ErrConsultantNotFound
	}

	// 3. Нормализуем конфигурацию слотов. Невалидные параметры заменяются
	// безопасными значениями по умолчанию, расчет продолжается.
	cfg := uc.normalizedConfig()

	dayOfWeek := int(req.Date.Weekday())

	// 4. Получаем рабочее окно на день недели даты
	window, err := uc.availabilityRepo.GetByConsultantAndWeekday(ctx, req.ConsultantID, dayOfWeek)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			uc.logger.Info("GetAvailableSlots: consultant=%d has no window on weekday=%d", req.ConsultantID, dayOfWeek)
			return &Response{
				ConsultantID: req.ConsultantID,
				Date:         req.Date,
				DayOfWeek:    dayOfWeek,
				Slots:        []Slot{},
			}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability window: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability window: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты рабочего окна
	candidates := generateSlotCandidates(window, cfg)

	// 6. Получаем занятые времена (кеш, затем база)
	blocked, err := uc.blockedStartTimes(ctx, req.ConsultantID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
	}

	// 7. Помечаем занятые слоты
	markBlockedSlots(candidates, blocked)

	slots := make([]Slot, len(candidates))
	for i, c := range candidates {
		slots[i] = Slot{
			StartTime:       c.Start,
			EndTime:         c.End,
			DurationMinutes: cfg.SlotDurationMinutes,
			Available:       c.Available,
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d blocked) for consultant=%d, date=%s",
		len(slots), len(blocked), req.ConsultantID, req.Date.Format(domain.DateFormat))

	return &Response{
		ConsultantID: req.ConsultantID,
		Date:         req.Date,
		DayOfWeek:    dayOfWeek,
		Slots:        slots,
	}, nil
}

// normalizedConfig возвращает конфигурацию с безопасными значениями,
// фиксируя каждый фолбэк в логах и метриках
func (uc *UseCase) normalizedConfig() domain.SchedulingConfig {
	cfg, diagnostics := uc.config.Normalize()
	for _, d := range diagnostics {
		uc.logger.Warn("GetAvailableSlots: config fallback: %s: %s", d.Parameter, d.Message)
		uc.metrics.IncConfigFallback(d.Parameter)
	}
	return cfg
}

// blockedStartTimes читает занятые времена через кеш; промах или ошибка кеша
// ведут в базу, ошибка записи в кеш не фатальна
func (uc *UseCase) blockedStartTimes(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, error) {
	blocked, hit, err := uc.cache.Get(ctx, consultantID, date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache read failed for consultant=%d: %v", consultantID, err)
	}
	if hit {
		uc.logger.Debug("GetAvailableSlots: cache hit for consultant=%d, date=%s", consultantID, date.Format(domain.DateFormat))
		return blocked, nil
	}

	blocked, err = uc.bookingRepo.GetBlockedStartTimes(ctx, consultantID, date)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, consultantID, date, blocked); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache write failed for consultant=%d: %v", consultantID, err)
	}

	return blocked, nil
}
