package domain

import "fmt"

// SchedulingConfig scheduling parameters for the whole service: slot length,
// buffer between slots and the advance-booking horizon.
type SchedulingConfig struct {
	SlotDurationMinutes int
	BufferMinutes       int
	MaxAdvanceDays      int // 0 = unlimited
}

// ConfigDiagnostic описывает подстановку безопасного дефолта вместо
// некорректного параметра конфигурации
type ConfigDiagnostic struct {
	Parameter string
	Message   string
}

// admissibleLongDurations длительности свыше часа, разрешенные явно
var admissibleLongDurations = map[int]bool{90: true, 120: true}

// validSlotDuration: длительности до часа включительно должны давать ровные
// границы внутри часа (15/30/60), свыше часа допустимы только из явного списка
func validSlotDuration(minutes int) bool {
	if minutes <= 0 {
		return false
	}
	if minutes <= 60 {
		return 60%minutes == 0
	}
	return admissibleLongDurations[minutes]
}

// Normalize validates the configuration and substitutes safe defaults for
// invalid values. A configuration error is never a hard failure of a
// request: the caller receives a usable config plus diagnostics to report.
func (c SchedulingConfig) Normalize() (SchedulingConfig, []ConfigDiagnostic) {
	out := c
	var diags []ConfigDiagnostic

	if !validSlotDuration(out.SlotDurationMinutes) {
		diags = append(diags, ConfigDiagnostic{
			Parameter: "slot_duration_minutes",
			Message: fmt.Sprintf("invalid slot duration %d, falling back to %d",
				out.SlotDurationMinutes, DefaultSlotDurationMinutes),
		})
		out.SlotDurationMinutes = DefaultSlotDurationMinutes
	}

	if out.BufferMinutes < 0 || out.BufferMinutes >= out.SlotDurationMinutes {
		diags = append(diags, ConfigDiagnostic{
			Parameter: "buffer_minutes",
			Message: fmt.Sprintf("invalid buffer %d for slot duration %d, falling back to %d",
				out.BufferMinutes, out.SlotDurationMinutes, DefaultBufferMinutes),
		})
		out.BufferMinutes = DefaultBufferMinutes
	}

	if out.MaxAdvanceDays < 0 {
		diags = append(diags, ConfigDiagnostic{
			Parameter: "max_advance_days",
			Message: fmt.Sprintf("negative advance horizon %d, falling back to %d",
				out.MaxAdvanceDays, DefaultMaxAdvanceDays),
		})
		out.MaxAdvanceDays = DefaultMaxAdvanceDays
	}

	return out, diags
}

// SlotDurationSeconds длительность слота в секундах
func (c SchedulingConfig) SlotDurationSeconds() int {
	return c.SlotDurationMinutes * 60
}

// BufferSeconds буфер после слота в секундах
func (c SchedulingConfig) BufferSeconds() int {
	return c.BufferMinutes * 60
}

// StepSeconds шаг между началами соседних слотов
func (c SchedulingConfig) StepSeconds() int {
	return c.SlotDurationSeconds() + c.BufferSeconds()
}

// HasAdvanceLimit returns true if there's a limit on how far in advance
// bookings can be made
func (c SchedulingConfig) HasAdvanceLimit() bool {
	return c.MaxAdvanceDays > 0
}
