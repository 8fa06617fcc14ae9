package get_available_slots

import (
	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	getAvailableSlots "github.com/Nimixx/Call-Scheduler-sub000/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00:00"
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	ConsultantID int64          `json:"consultantId"`
	Date         string         `json:"date"`
	DayOfWeek    int            `json:"dayOfWeek"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		ConsultantID: resp.ConsultantID,
		Date:         resp.Date.Format(domain.DateFormat),
		DayOfWeek:    resp.DayOfWeek,
		Slots:        make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		})
	}
	return out
}
