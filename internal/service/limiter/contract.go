package limiter

import (
	"context"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/infra/ratelimit"
)

// Store хранилище счетчиков и блокировок rate limiter'а
type Store interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetCounter(ctx context.Context, key string) (*ratelimit.Counter, error)
	PutCounter(ctx context.Context, key string, counter ratelimit.Counter, ttl time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для метрик решений лимитера
type Metrics interface {
	IncRateLimitDecision(class, outcome string)
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
