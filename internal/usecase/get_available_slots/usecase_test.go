package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	availabilityRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/availability"
	consultantRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/consultant"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

type fakeBookingRepo struct {
	blocked []types.TimeString
	err     error
	calls   int
}

func (f *fakeBookingRepo) GetBlockedStartTimes(_ context.Context, _ int64, _ time.Time) ([]types.TimeString, error) {
	f.calls++
	return f.blocked, f.err
}

type fakeAvailabilityRepo struct {
	windows map[int]*domain.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) GetByConsultantAndWeekday(_ context.Context, _ int64, dayOfWeek int) (*domain.AvailabilityWindow, error) {
	w, ok := f.windows[dayOfWeek]
	if !ok {
		return nil, availabilityRepo.ErrWindowNotFound
	}
	return w, nil
}

type fakeConsultantRepo struct {
	consultants map[int64]*domain.Consultant
}

func (f *fakeConsultantRepo) GetByID(_ context.Context, id int64) (*domain.Consultant, error) {
	c, ok := f.consultants[id]
	if !ok {
		return nil, consultantRepo.ErrConsultantNotFound
	}
	return c, nil
}

type fakeCache struct {
	entries map[string][]types.TimeString
	sets    int
}

func cacheKey(consultantID int64, date time.Time) string {
	return date.Format(domain.DateFormat)
}

func (f *fakeCache) Get(_ context.Context, consultantID int64, date time.Time) ([]types.TimeString, bool, error) {
	if f.entries == nil {
		return nil, false, nil
	}
	v, ok := f.entries[cacheKey(consultantID, date)]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, consultantID int64, date time.Time, times []types.TimeString) error {
	if f.entries == nil {
		f.entries = make(map[string][]types.TimeString)
	}
	f.entries[cacheKey(consultantID, date)] = times
	f.sets++
	return nil
}

type fakeMetrics struct {
	fallbacks map[string]int
}

func (f *fakeMetrics) IncConfigFallback(parameter string) {
	if f.fallbacks == nil {
		f.fallbacks = make(map[string]int)
	}
	f.fallbacks[parameter]++
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Понедельник
var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func newTestUseCase(
	bookings *fakeBookingRepo,
	availability *fakeAvailabilityRepo,
	config domain.SchedulingConfig,
) (*UseCase, *fakeMetrics, *fakeCache) {
	consultants := &fakeConsultantRepo{consultants: map[int64]*domain.Consultant{
		1: {ID: 1, Name: "Anna", Email: "anna@example.com", Active: true},
		2: {ID: 2, Name: "Boris", Email: "boris@example.com", Active: false},
	}}
	metrics := &fakeMetrics{}
	cache := &fakeCache{}
	uc := NewUseCase(bookings, availability, consultants, cache, config, metrics, nopLogger{})
	return uc, metrics, cache
}

func TestExecute_ReturnsSlotsWithBlockedMarked(t *testing.T) {
	bookings := &fakeBookingRepo{blocked: []types.TimeString{"10:00:00"}}
	availability := &fakeAvailabilityRepo{windows: map[int]*domain.AvailabilityWindow{
		1: {ConsultantID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
	}}
	uc, _, cache := newTestUseCase(bookings, availability, domain.SchedulingConfig{
		SlotDurationMinutes: 60,
		MaxAdvanceDays:      30,
	})

	resp, err := uc.Execute(context.Background(), &Request{ConsultantID: 1, Date: testDate})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, 1, resp.DayOfWeek)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
	// Результат закеширован
	assert.Equal(t, 1, cache.sets)
}

func TestExecute_NoWindowReturnsEmptySlots(t *testing.T) {
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{windows: map[int]*domain.AvailabilityWindow{}}
	uc, _, _ := newTestUseCase(bookings, availability, domain.SchedulingConfig{
		SlotDurationMinutes: 60,
		MaxAdvanceDays:      30,
	})

	resp, err := uc.Execute(context.Background(), &Request{ConsultantID: 1, Date: testDate})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, bookings.calls)
}

func TestExecute_ConsultantNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, domain.SchedulingConfig{
		SlotDurationMinutes: 60,
	})

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 99, Date: testDate})

	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestExecute_InactiveConsultantTreatedAsNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, domain.SchedulingConfig{
		SlotDurationMinutes: 60,
	})

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 2, Date: testDate})

	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestExecute_InvalidConfigFallsBackToDefaults(t *testing.T) {
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{windows: map[int]*domain.AvailabilityWindow{
		1: {ConsultantID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
	}}
	// 45 не делит час нацело, буфер больше длительности
	uc, metrics, _ := newTestUseCase(bookings, availability, domain.SchedulingConfig{
		SlotDurationMinutes: 45,
		BufferMinutes:       90,
		MaxAdvanceDays:      -1,
	})

	resp, err := uc.Execute(context.Background(), &Request{ConsultantID: 1, Date: testDate})

	require.NoError(t, err)
	// Дефолт 60 минут без буфера: 09:00, 10:00, 11:00
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
	assert.Equal(t, 1, metrics.fallbacks["slot_duration_minutes"])
	assert.Equal(t, 1, metrics.fallbacks["buffer_minutes"])
	assert.Equal(t, 1, metrics.fallbacks["max_advance_days"])
}

func TestExecute_UsesCachedBlockedTimes(t *testing.T) {
	bookings := &fakeBookingRepo{blocked: []types.TimeString{"09:00:00"}}
	availability := &fakeAvailabilityRepo{windows: map[int]*domain.AvailabilityWindow{
		1: {ConsultantID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	}}
	uc, _, cache := newTestUseCase(bookings, availability, domain.SchedulingConfig{
		SlotDurationMinutes: 60,
		MaxAdvanceDays:      30,
	})
	cache.entries = map[string][]types.TimeString{
		cacheKey(1, testDate): {"10:00:00"},
	}

	resp, err := uc.Execute(context.Background(), &Request{ConsultantID: 1, Date: testDate})

	require.NoError(t, err)
	// База не тронута, использован кеш
	assert.Equal(t, 0, bookings.calls)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, domain.SchedulingConfig{})

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ConsultantID: 1})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
