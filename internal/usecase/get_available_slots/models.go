package get_available_slots

import (
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата, на которую запрашивались слоты
	DayOfWeek    int       // День недели даты (0 = воскресенье)
	Slots        []Slot    // Слоты рабочего окна; пустой список, если окна нет
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота
	EndTime         types.TimeString // Время конца слота (может быть "за полночью")
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // false, если на это время уже есть активное бронирование
}
