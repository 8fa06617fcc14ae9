package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []BookingEvent
}

func (h *recordingHandler) Handle(_ context.Context, event BookingEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

func (h *recordingHandler) snapshot() []BookingEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]BookingEvent, len(h.events))
	copy(out, h.events)
	return out
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{}) {}

type countingMetrics struct {
	mu        sync.Mutex
	published map[string]int
}

func (m *countingMetrics) IncEventPublished(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.published == nil {
		m.published = map[string]int{}
	}
	m.published[event]++
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestBus_DeliversToSubscribers(t *testing.T) {
	metrics := &countingMetrics{}
	bus := NewBus(nopLogger{}, metrics)
	first := &recordingHandler{}
	second := &recordingHandler{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	ctx, cancel := context.WithCancel(context.Background())
	go bus.Run(ctx)

	bus.Publish(BookingEvent{Name: EventBookingCreated, BookingID: 1})
	bus.Publish(BookingEvent{Name: EventBookingCancelled, BookingID: 1})

	waitFor(t, func() bool { return len(first.snapshot()) == 2 && len(second.snapshot()) == 2 })

	got := first.snapshot()
	assert.Equal(t, EventBookingCreated, got[0].Name)
	assert.Equal(t, EventBookingCancelled, got[1].Name)

	metrics.mu.Lock()
	assert.Equal(t, 1, metrics.published[EventBookingCreated])
	assert.Equal(t, 1, metrics.published[EventBookingCancelled])
	metrics.mu.Unlock()

	cancel()
	select {
	case <-bus.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("bus did not stop after context cancellation")
	}
}

func TestBus_PublishDoesNotBlockWhenFull(t *testing.T) {
	bus := NewBus(nopLogger{}, &countingMetrics{})

	// Run не запущен, буфер переполняется и лишние события отбрасываются
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < defaultBufferSize*2; i++ {
			bus.Publish(BookingEvent{Name: EventBookingCreated, BookingID: int64(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on full buffer")
	}
}

func TestBus_DoneClosesAfterRun(t *testing.T) {
	bus := NewBus(nopLogger{}, &countingMetrics{})

	ctx, cancel := context.WithCancel(context.Background())
	go bus.Run(ctx)

	select {
	case <-bus.Done():
		t.Fatal("Done closed before Run finished")
	default:
	}

	cancel()
	select {
	case <-bus.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed")
	}

	require.NotPanics(t, func() { bus.Publish(BookingEvent{Name: EventBookingCreated}) })
}
