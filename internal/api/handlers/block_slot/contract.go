package block_slot

import (
	"context"

	"github.com/m04kA/Clinic-QueueService/internal/service/blocks/models"
)

type BlockService interface {
	BlockSlot(ctx context.Context, req *models.BlockSlotRequest) (*models.SlotBlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
