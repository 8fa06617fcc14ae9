package create_booking

import (
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ConsultantID  int64            // ID консультанта
	CustomerName  string           // Имя клиента
	CustomerEmail string           // Email клиента
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64                // ID бронирования
	ConsultantID  int64                // ID консультанта
	CustomerName  string               // Имя клиента
	CustomerEmail string               // Email клиента
	Date          time.Time            // Дата бронирования
	StartTime     types.TimeString     // Время начала
	EndTime       types.TimeString     // Время конца (начало + длительность)
	Status        domain.BookingStatus // Статус бронирования
	CreatedAt     time.Time            // Время создания записи
}
