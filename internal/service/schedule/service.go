package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	consultantRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/consultant"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// Service сервис управления недельным расписанием консультантов
type Service struct {
	availabilityRepo AvailabilityRepository
	consultantRepo   ConsultantRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	availabilityRepo AvailabilityRepository,
	consultantRepo ConsultantRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		consultantRepo:   consultantRepo,
		logger:           logger,
	}
}

// Get возвращает недельное расписание консультанта
func (s *Service) Get(ctx context.Context, consultantID int64) (*ScheduleResponse, error) {
	s.logger.Info("GetSchedule: consultant=%d", consultantID)

	if err := s.checkConsultant(ctx, "GetSchedule", consultantID); err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.GetAllByConsultant(ctx, consultantID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return fromDomainWindows(consultantID, windows), nil
}

// Replace полностью заменяет недельное расписание консультанта. Дни, не
// упомянутые в запросе, удаляются.
func (s *Service) Replace(ctx context.Context, consultantID int64, req *ReplaceScheduleRequest) (*ScheduleResponse, error) {
	s.logger.Info("ReplaceSchedule: consultant=%d, windows=%d", consultantID, len(req.Windows))

	windows, err := s.toDomainWindows(consultantID, req.Windows)
	if err != nil {
		s.logger.Warn("ReplaceSchedule: validation failed for consultant=%d: %v", consultantID, err)
		return nil, err
	}

	if err := s.checkConsultant(ctx, "ReplaceSchedule", consultantID); err != nil {
		return nil, err
	}

	// Upsert перечисленных дней
	requested := make(map[int]bool, len(windows))
	for _, w := range windows {
		requested[w.DayOfWeek] = true
		if _, err := s.availabilityRepo.Upsert(ctx, w); err != nil {
			s.logger.Error("ReplaceSchedule: upsert failed for consultant=%d, weekday=%d: %v",
				consultantID, w.DayOfWeek, err)
			return nil, fmt.Errorf("%w: ReplaceSchedule - upsert error: %v", ErrInternal, err)
		}
	}

	// Удаление дней, выпавших из расписания
	for day := domain.MinDayOfWeek; day <= domain.MaxDayOfWeek; day++ {
		if requested[day] {
			continue
		}
		if err := s.availabilityRepo.DeleteByConsultantAndWeekday(ctx, consultantID, day); err != nil {
			s.logger.Error("ReplaceSchedule: delete failed for consultant=%d, weekday=%d: %v",
				consultantID, day, err)
			return nil, fmt.Errorf("%w: ReplaceSchedule - delete error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("ReplaceSchedule: consultant=%d schedule replaced", consultantID)
	return s.Get(ctx, consultantID)
}

func (s *Service) toDomainWindows(consultantID int64, dtos []WindowDTO) ([]*domain.AvailabilityWindow, error) {
	if consultantID <= 0 {
		return nil, fmt.Errorf("%w: consultantId must be positive", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(dtos))
	windows := make([]*domain.AvailabilityWindow, 0, len(dtos))

	for _, dto := range dtos {
		if dto.DayOfWeek < domain.MinDayOfWeek || dto.DayOfWeek > domain.MaxDayOfWeek {
			return nil, fmt.Errorf("%w: dayOfWeek %d out of range", ErrInvalidWindow, dto.DayOfWeek)
		}
		if seen[dto.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate dayOfWeek %d", ErrInvalidWindow, dto.DayOfWeek)
		}
		seen[dto.DayOfWeek] = true

		start, err := types.NewTimeStringFromString(dto.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidWindow, err)
		}
		end, err := types.NewTimeStringFromString(dto.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidWindow, err)
		}

		windows = append(windows, &domain.AvailabilityWindow{
			ConsultantID: consultantID,
			DayOfWeek:    dto.DayOfWeek,
			StartTime:    start,
			EndTime:      end,
		})
	}

	return windows, nil
}

func (s *Service) checkConsultant(ctx context.Context, op string, consultantID int64) error {
	if _, err := s.consultantRepo.GetByID(ctx, consultantID); err != nil {
		if errors.Is(err, consultantRepo.ErrConsultantNotFound) {
			s.logger.Warn("%s: consultant id=%d not found", op, consultantID)
			return ErrConsultantNotFound
		}
		s.logger.Error("%s: failed to get consultant id=%d: %v", op, consultantID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
