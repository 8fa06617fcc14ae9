package events

import (
	"context"
	"sync"
)

const defaultBufferSize = 64

// Bus внутрипроцессная шина доменных событий.
//
// Publish не блокирует вызывающего: события кладутся в буферизованный канал,
// при переполнении событие отбрасывается с предупреждением. Бронирование уже
// зафиксировано в базе, потеря уведомления допустима.
type Bus struct {
	ch      chan BookingEvent
	logger  Logger
	metrics Metrics

	mu       sync.RWMutex
	handlers []Handler

	closeOnce sync.Once
	done      chan struct{}
}

// NewBus создает шину событий
func NewBus(logger Logger, metrics Metrics) *Bus {
	return &Bus{
		ch:      make(chan BookingEvent, defaultBufferSize),
		logger:  logger,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

// Subscribe регистрирует обработчик. Вызывать до Run.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish публикует событие без блокировки вызывающего
func (b *Bus) Publish(event BookingEvent) {
	select {
	case b.ch <- event:
		b.metrics.IncEventPublished(event.Name)
	default:
		b.logger.Warn("EventBus: buffer full, dropping event %s for booking %d", event.Name, event.BookingID)
	}
}

// Run доставляет события подписчикам до отмены контекста
func (b *Bus) Run(ctx context.Context) {
	defer b.closeOnce.Do(func() { close(b.done) })

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("EventBus: shutting down")
			return
		case event := <-b.ch:
			b.mu.RLock()
			handlers := b.handlers
			b.mu.RUnlock()
			for _, h := range handlers {
				h.Handle(ctx, event)
			}
		}
	}
}

// Done закрывается после завершения Run
func (b *Bus) Done() <-chan struct{} {
	return b.done
}
