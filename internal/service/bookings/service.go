package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/events"
	bookingRepo "github.com/Nimixx/Call-Scheduler-sub000/internal/infra/storage/booking"
	"github.com/Nimixx/Call-Scheduler-sub000/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	cache       CacheInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		cache:       cache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetConsultantBookings получает бронирования консультанта с фильтрацией
// по дате и статусу. Отмененные не включаются без includeCancelled.
func (s *Service) GetConsultantBookings(ctx context.Context, req *models.GetConsultantBookingsRequest) (*models.BookingListResponse, error) {
	if req.ConsultantID <= 0 {
		return nil, fmt.Errorf("%w: consultantId must be positive", ErrInvalidInput)
	}

	s.logger.Info("GetConsultantBookings: consultant=%d, date=%v, status=%v, includeCancelled=%t",
		req.ConsultantID, req.Date, req.Status, req.IncludeCancelled)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetConsultantBookings: invalid status=%v for consultant=%d", req.Status, req.ConsultantID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	bookings, err := s.bookingRepo.GetByConsultantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultantBookings: repository error for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConsultantBookings: fetched %d bookings for consultant=%d", len(bookings), req.ConsultantID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Отмена освобождает слот: частичный индекс
// не учитывает отмененные записи, поэтому на это время можно бронировать
// снова.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	reason := strings.TrimSpace(req.CancellationReason)
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled", bookingID)

	// Слот освободился - сбрасываем кеш и шлем событие
	if err := s.cache.Invalidate(ctx, booking.ConsultantID, booking.BookingDate); err != nil {
		s.logger.Warn("Cancel: cache invalidation failed: %v", err)
	}

	s.publisher.Publish(events.BookingEvent{
		Name:          events.EventBookingCancelled,
		BookingID:     booking.ID,
		ConsultantID:  booking.ConsultantID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime,
		OccurredAt:    time.Now(),
	})

	return s.GetByID(ctx, bookingID)
}

// Confirm подтверждает pending бронирование
func (s *Service) Confirm(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, "Confirm", bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", bookingID, booking.Status)
		return nil, ErrCannotConfirm
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: booking id=%d confirmed", bookingID)
	return s.GetByID(ctx, bookingID)
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
