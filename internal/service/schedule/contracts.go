package schedule

import (
	"context"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
)

// AvailabilityRepository интерфейс репозитория рабочих окон
type AvailabilityRepository interface {
	GetAllByConsultant(ctx context.Context, consultantID int64) ([]*domain.AvailabilityWindow, error)
	Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	DeleteByConsultantAndWeekday(ctx context.Context, consultantID int64, dayOfWeek int) error
}

// ConsultantRepository интерфейс репозитория консультантов
type ConsultantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
