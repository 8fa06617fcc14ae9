package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// SecondsPerDay количество секунд в сутках, используется для wrap-around арифметики
const SecondsPerDay = 24 * 60 * 60

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("types: invalid time string format, expected HH:MM or HH:MM:SS")

	// ErrInvalidScanValue возвращается при попытке сканировать неподдерживаемый тип из БД
	ErrInvalidScanValue = errors.New("types: unsupported scan value for TimeString")
)

// TimeString время суток в формате "HH:MM" или "HH:MM:SS" (wall-clock, без даты и зоны).
// Используется для времени начала слотов и границ окон доступности.
// Арифметика (AddMinutes/AddSeconds) циклична по модулю суток: 23:30 + 60 минут = 00:30.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04:05"))
}

// NewTimeStringFromSeconds создает TimeString из количества секунд с начала суток.
// Значение нормализуется по модулю суток, поэтому допустимы значения >= 24h
// (например, конец overnight окна).
func NewTimeStringFromSeconds(seconds int) TimeString {
	seconds = ((seconds % SecondsPerDay) + SecondsPerDay) % SecondsPerDay
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", h, m, s))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	if _, err := t.SecondsOfDay(); err != nil {
		return err
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает каноническое представление "HH:MM:SS"
func (t TimeString) String() string {
	sec, err := t.SecondsOfDay()
	if err != nil {
		return string(t)
	}
	return string(NewTimeStringFromSeconds(sec))
}

// Short возвращает представление "HH:MM" (для ответов API, где секунды не нужны)
func (t TimeString) Short() string {
	sec, err := t.SecondsOfDay()
	if err != nil {
		return string(t)
	}
	return fmt.Sprintf("%02d:%02d", sec/3600, (sec%3600)/60)
}

// SecondsOfDay возвращает количество секунд с начала суток
func (t TimeString) SecondsOfDay() (int, error) {
	var h, m, s int

	switch n, _ := fmt.Sscanf(string(t), "%d:%d:%d", &h, &m, &s); n {
	case 2:
		s = 0
	case 3:
		// секунды распарсились
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	return h*3600 + m*60 + s, nil
}

// AddSeconds прибавляет секунды с переходом через полночь
func (t TimeString) AddSeconds(seconds int) (TimeString, error) {
	sec, err := t.SecondsOfDay()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromSeconds(sec + seconds), nil
}

// AddMinutes прибавляет минуты с переходом через полночь
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	return t.AddSeconds(minutes * 60)
}

// IsBefore возвращает true, если t строго раньше other в пределах одних суток
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.SecondsOfDay()
	b, errB := other.SecondsOfDay()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other в пределах одних суток
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.SecondsOfDay()
	b, errB := other.SecondsOfDay()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Equal сравнивает два времени по значению (09:00 == 09:00:00)
func (t TimeString) Equal(other TimeString) bool {
	a, errA := t.SecondsOfDay()
	b, errB := other.SecondsOfDay()
	if errA != nil || errB != nil {
		return false
	}
	return a == b
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner для чтения колонки TIME.
// lib/pq возвращает TIME как []byte, другие драйверы могут отдавать string или time.Time.
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		*t = TimeString(string(v))
	case string:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidScanValue, value)
	}
	return t.Validate()
}
