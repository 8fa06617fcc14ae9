package domain

// Default scheduling values, substituted when the configured ones are invalid
const (
	DefaultSlotDurationMinutes = 60
	DefaultBufferMinutes       = 0
	DefaultMaxAdvanceDays      = 30 // 0 = unlimited
)

// Business validation constants
const (
	MinDayOfWeek = 0
	MaxDayOfWeek = 6

	MaxCustomerNameLength       = 200
	MaxCustomerEmailLength      = 254
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов, занимающих слот.
// Отмененные бронирования слот не занимают - слот снова доступен.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
