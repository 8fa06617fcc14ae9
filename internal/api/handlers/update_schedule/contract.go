package update_schedule

import (
	"context"

	scheduleService "github.com/Nimixx/Call-Scheduler-sub000/internal/service/schedule"
)

type ScheduleService interface {
	Replace(ctx context.Context, consultantID int64, req *scheduleService.ReplaceScheduleRequest) (*scheduleService.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
