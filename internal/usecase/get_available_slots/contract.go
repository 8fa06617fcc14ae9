package get_available_slots

import (
	"context"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// BookingRepository интерфейс для работы с хранилищем бронирований
type BookingRepository interface {
	GetBlockedStartTimes(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, error)
}

// AvailabilityRepository интерфейс для работы с рабочими окнами консультантов
type AvailabilityRepository interface {
	GetByConsultantAndWeekday(ctx context.Context, consultantID int64, dayOfWeek int) (*domain.AvailabilityWindow, error)
}

// ConsultantRepository интерфейс для работы с консультантами
type ConsultantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultant, error)
}

// BlockedTimesCache кеш занятых времен на (consultant, date)
type BlockedTimesCache interface {
	Get(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, bool, error)
	Set(ctx context.Context, consultantID int64, date time.Time, times []types.TimeString) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для метрик фолбэков конфигурации
type Metrics interface {
	IncConfigFallback(parameter string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с использованием реального времени
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
