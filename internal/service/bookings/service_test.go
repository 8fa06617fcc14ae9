package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/events"
	bookingRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/booking"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	lastFilter   domain.BookingsFilter
	cancelReason string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByConsultantWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ConsultantID == filter.ConsultantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	f.cancelReason = reason
	if reason != "" {
		b.CancellationReason = &reason
	}
	now := time.Now()
	b.CancelledAt = &now
	return nil
}

type fakePublisher struct {
	events []events.BookingEvent
}

func (f *fakePublisher) Publish(e events.BookingEvent) {
	f.events = append(f.events, e)
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(context.Context, int64, time.Time) error {
	f.calls++
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeBookingRepo) (*Service, *fakePublisher, *fakeInvalidator) {
	pub := &fakePublisher{}
	inv := &fakeInvalidator{}
	return NewService(repo, pub, inv, nopLogger{}), pub, inv
}

func pendingBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		ConsultantID:  1,
		CustomerName:  "Анна Петрова",
		CustomerEmail: "anna@example.com",
		BookingDate:   time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00:00",
		Status:        domain.StatusPending,
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: pendingBooking(5)}}
	svc, _, _ := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2025-06-09", resp.BookingDate)
	assert.Equal(t, "pending", resp.Status)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: pendingBooking(5)}}
	svc, pub, inv := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{CancellationReason: "  планы изменились  "})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "планы изменились", repo.cancelReason)
	assert.Equal(t, 1, inv.calls)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.EventBookingCancelled, pub.events[0].Name)
	assert.Equal(t, int64(5), pub.events[0].BookingID)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := pendingBooking(5)
	b.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: b}}
	svc, pub, _ := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, pub.events)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: pendingBooking(5)}}
	svc, _, _ := newTestService(repo)

	req := &models.CancelBookingRequest{CancellationReason: strings.Repeat("a", domain.MaxCancellationReasonLength+1)}
	_, err := svc.Cancel(context.Background(), 5, req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirm(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{5: pendingBooking(5)}}
	svc, _, _ := newTestService(repo)

	resp, err := svc.Confirm(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	// Повторное подтверждение уже confirmed бронирования
	_, err = svc.Confirm(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestGetConsultantBookings(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1),
		2: pendingBooking(2),
	}}
	svc, _, _ := newTestService(repo)

	status := "pending"
	resp, err := svc.GetConsultantBookings(context.Background(), &models.GetConsultantBookingsRequest{
		ConsultantID: 1,
		Status:       &status,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusPending, *repo.lastFilter.Status)

	badStatus := "unknown"
	_, err = svc.GetConsultantBookings(context.Background(), &models.GetConsultantBookingsRequest{
		ConsultantID: 1,
		Status:       &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.GetConsultantBookings(context.Background(), &models.GetConsultantBookingsRequest{ConsultantID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
