package middleware

import (
	"context"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/service/limiter"
)

// Limiter интерфейс сервиса ограничения частоты запросов
type Limiter interface {
	Check(ctx context.Context, class limiter.Class, identity string) limiter.Decision
}

// HTTPMetrics интерфейс для метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path, status string, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
