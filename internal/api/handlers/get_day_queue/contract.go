package get_day_queue

import (
	"context"
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/service/queue/models"
)

type QueueService interface {
	DaySchedule(ctx context.Context, date time.Time) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
