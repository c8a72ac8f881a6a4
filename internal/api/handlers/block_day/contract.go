package block_day

import (
	"context"

	"github.com/m04kA/Clinic-QueueService/internal/service/blocks/models"
)

type BlockService interface {
	BlockDay(ctx context.Context, req *models.BlockDayRequest) (*models.DayBlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
