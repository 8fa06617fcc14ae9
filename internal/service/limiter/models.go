package limiter

import "time"

// Class класс эндпоинта с собственным порогом запросов
type Class string

const (
	// ClassRead GET-эндпоинты (просмотр слотов, списки бронирований)
	ClassRead Class = "read"
	// ClassWrite мутирующие эндпоинты (создание, отмена, подтверждение)
	ClassWrite Class = "write"
)

// Decision результат проверки лимита для одного запроса
type Decision struct {
	// Allowed true, если запрос пропущен
	Allowed bool
	// Limit порог запросов в окне для класса эндпоинта
	Limit int64
	// Remaining сколько запросов осталось в текущем окне
	Remaining int64
	// Reset момент начала следующего окна
	Reset time.Time
	// RetryAfter через сколько можно повторить (только для отклоненных)
	RetryAfter time.Duration
}
