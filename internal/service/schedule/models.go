package schedule

import (
	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
)

// WindowDTO рабочее окно одного дня недели
type WindowDTO struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "HH:MM" или "HH:MM:SS"
	EndTime   string `json:"endTime"`   // конец <= начала означает ночное окно
}

// ReplaceScheduleRequest запрос на полную замену недельного расписания.
// Дни, не перечисленные в Windows, из расписания удаляются.
type ReplaceScheduleRequest struct {
	Windows []WindowDTO `json:"windows"`
}

// ScheduleResponse ответ с недельным расписанием консультанта
type ScheduleResponse struct {
	ConsultantID int64       `json:"consultantId"`
	Windows      []WindowDTO `json:"windows"`
}

// fromDomainWindows конвертирует domain окна в DTO
func fromDomainWindows(consultantID int64, windows []*domain.AvailabilityWindow) *ScheduleResponse {
	resp := &ScheduleResponse{
		ConsultantID: consultantID,
		Windows:      make([]WindowDTO, 0, len(windows)),
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowDTO{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}
	return resp
}
