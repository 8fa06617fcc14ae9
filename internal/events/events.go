package events

import (
	"context"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// Имена событий
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent доменное событие жизненного цикла бронирования
type BookingEvent struct {
	Name          string           `json:"event"`
	BookingID     int64            `json:"bookingId"`
	ConsultantID  int64            `json:"consultantId"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	BookingDate   string           `json:"bookingDate"`
	StartTime     types.TimeString `json:"startTime"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// Handler обработчик событий. Вызывается в горутине шины, блокирующие
// обработчики задерживают доставку остальным подписчикам.
type Handler interface {
	Handle(ctx context.Context, event BookingEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
}

// Metrics интерфейс для метрик публикаций
type Metrics interface {
	IncEventPublished(event string)
}
