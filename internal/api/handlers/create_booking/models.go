package create_booking

import (
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	createBooking "github.com/Nimixx/Call-Scheduler-sub000/internal/usecase/create_booking"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ConsultantID  int64  `json:"consultantId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	BookingDate   string `json:"bookingDate"` // "2025-10-15"
	StartTime     string `json:"startTime"`   // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	ConsultantID  int64  `json:"consultantId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	BookingDate   string `json:"bookingDate"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и время остаются строками до этой точки; ошибки парсинга различимы
// по виду (ErrBadDate / ErrBadTime).
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errBadDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errBadTime
	}

	return &createBooking.Request{
		ConsultantID:  r.ConsultantID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Date:          bookingDate,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		ConsultantID:  resp.ConsultantID,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		BookingDate:   resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        string(resp.Status),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
