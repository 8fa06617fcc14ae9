package create_booking

import (
	"context"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/events"
)

// BookingRepository интерфейс для работы с хранилищем бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityRepository интерфейс для работы с рабочими окнами консультантов
type AvailabilityRepository interface {
	GetByConsultantAndWeekday(ctx context.Context, consultantID int64, dayOfWeek int) (*domain.AvailabilityWindow, error)
}

// ConsultantRepository интерфейс для работы с консультантами
type ConsultantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultant, error)
}

// EventPublisher публикует доменные события без блокировки вызывающего
type EventPublisher interface {
	Publish(event events.BookingEvent)
}

// CacheInvalidator сбрасывает кеш занятых времен после мутаций
type CacheInvalidator interface {
	Invalidate(ctx context.Context, consultantID int64, date time.Time) error
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
