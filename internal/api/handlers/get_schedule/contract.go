package get_schedule

import (
	"context"

	scheduleService "github.com/Nimixx/Call-Scheduler-sub000/internal/service/schedule"
)

type ScheduleService interface {
	Get(ctx context.Context, consultantID int64) (*scheduleService.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
