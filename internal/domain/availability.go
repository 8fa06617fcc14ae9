package domain

import (
	"time"

	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// AvailabilityWindow represents a consultant's weekly availability for one
// day of the week. At most one window exists per (consultant, dayOfWeek).
//
// EndTime <= StartTime denotes an overnight window wrapping past midnight;
// EndTime == StartTime denotes a full 24h window.
type AvailabilityWindow struct {
	ID           int64
	ConsultantID int64
	DayOfWeek    int // 0 = Sunday ... 6 = Saturday, как time.Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOvernight returns true if the window wraps past midnight
// (including the full-24h case where start == end)
func (w *AvailabilityWindow) IsOvernight() bool {
	startSec, err := w.StartTime.SecondsOfDay()
	if err != nil {
		return false
	}
	endSec, err := w.EndTime.SecondsOfDay()
	if err != nil {
		return false
	}
	return endSec <= startSec
}

// EffectiveEndSeconds returns the window end as seconds from the start of
// the window's day, normalized past midnight for overnight windows.
// start == end reads as a full 24h window (documented assumption).
func (w *AvailabilityWindow) EffectiveEndSeconds() (int, error) {
	startSec, err := w.StartTime.SecondsOfDay()
	if err != nil {
		return 0, err
	}
	endSec, err := w.EndTime.SecondsOfDay()
	if err != nil {
		return 0, err
	}
	if endSec <= startSec {
		endSec += types.SecondsPerDay
	}
	return endSec, nil
}

// DurationSeconds returns the total length of the window in seconds
func (w *AvailabilityWindow) DurationSeconds() (int, error) {
	startSec, err := w.StartTime.SecondsOfDay()
	if err != nil {
		return 0, err
	}
	endSec, err := w.EffectiveEndSeconds()
	if err != nil {
		return 0, err
	}
	return endSec - startSec, nil
}
