package apply_delay

import (
	"context"

	"github.com/m04kA/Clinic-QueueService/internal/service/queue/models"
)

type QueueService interface {
	ApplyDelay(ctx context.Context, id int64, minutes int) (*models.DelayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
