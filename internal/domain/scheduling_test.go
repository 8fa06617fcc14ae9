package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ValidConfigUntouched(t *testing.T) {
	cfg := SchedulingConfig{SlotDurationMinutes: 30, BufferMinutes: 15, MaxAdvanceDays: 14}

	out, diags := cfg.Normalize()

	assert.Empty(t, diags)
	assert.Equal(t, cfg, out)
}

func TestNormalize_SlotDuration(t *testing.T) {
	valid := []int{15, 30, 60, 90, 120, 10, 20, 12}
	for _, d := range valid {
		cfg := SchedulingConfig{SlotDurationMinutes: d}
		out, diags := cfg.Normalize()
		assert.Empty(t, diags, "duration %d", d)
		assert.Equal(t, d, out.SlotDurationMinutes)
	}

	invalid := []int{0, -30, 45, 61, 75, 100, 180}
	for _, d := range invalid {
		cfg := SchedulingConfig{SlotDurationMinutes: d}
		out, diags := cfg.Normalize()
		assert.Len(t, diags, 1, "duration %d", d)
		assert.Equal(t, "slot_duration_minutes", diags[0].Parameter)
		assert.Equal(t, DefaultSlotDurationMinutes, out.SlotDurationMinutes)
	}
}

func TestNormalize_Buffer(t *testing.T) {
	// Буфер не меньше нуля и строго меньше длительности
	cfg := SchedulingConfig{SlotDurationMinutes: 30, BufferMinutes: -5}
	out, diags := cfg.Normalize()
	assert.Len(t, diags, 1)
	assert.Equal(t, "buffer_minutes", diags[0].Parameter)
	assert.Equal(t, DefaultBufferMinutes, out.BufferMinutes)

	cfg = SchedulingConfig{SlotDurationMinutes: 30, BufferMinutes: 30}
	out, diags = cfg.Normalize()
	assert.Len(t, diags, 1)
	assert.Equal(t, DefaultBufferMinutes, out.BufferMinutes)
}

func TestNormalize_BufferCheckedAgainstSubstitutedDuration(t *testing.T) {
	// Длительность невалидна и заменяется на 60: буфер 45 при этом валиден
	cfg := SchedulingConfig{SlotDurationMinutes: 45, BufferMinutes: 45}
	out, diags := cfg.Normalize()

	assert.Len(t, diags, 1)
	assert.Equal(t, "slot_duration_minutes", diags[0].Parameter)
	assert.Equal(t, 60, out.SlotDurationMinutes)
	assert.Equal(t, 45, out.BufferMinutes)
}

func TestNormalize_AdvanceDays(t *testing.T) {
	cfg := SchedulingConfig{SlotDurationMinutes: 60, MaxAdvanceDays: -1}
	out, diags := cfg.Normalize()
	assert.Len(t, diags, 1)
	assert.Equal(t, "max_advance_days", diags[0].Parameter)
	assert.Equal(t, DefaultMaxAdvanceDays, out.MaxAdvanceDays)

	// Ноль означает "без ограничения" и не считается ошибкой
	cfg = SchedulingConfig{SlotDurationMinutes: 60, MaxAdvanceDays: 0}
	out, diags = cfg.Normalize()
	assert.Empty(t, diags)
	assert.False(t, out.HasAdvanceLimit())
}

func TestStepSeconds(t *testing.T) {
	cfg := SchedulingConfig{SlotDurationMinutes: 30, BufferMinutes: 15}
	assert.Equal(t, 45*60, cfg.StepSeconds())
}
