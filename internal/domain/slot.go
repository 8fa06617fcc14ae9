package domain

import "github.com/Nimixx/Call-Scheduler-sub000/pkg/types"

// SlotCandidate represents a bookable time slot derived from an
// availability window. Computed per request, never persisted.
//
// Times are wall-clock only: for slots of an overnight window that fall
// past midnight, End (and possibly Start) is numerically smaller than the
// window start. Callers pair each slot with the requested date.
type SlotCandidate struct {
	Start     types.TimeString
	End       types.TimeString
	Available bool
}

// WrapsMidnight returns true if the slot ends on the following calendar day
func (s *SlotCandidate) WrapsMidnight() bool {
	startSec, err := s.Start.SecondsOfDay()
	if err != nil {
		return false
	}
	endSec, err := s.End.SecondsOfDay()
	if err != nil {
		return false
	}
	return endSec <= startSec
}
