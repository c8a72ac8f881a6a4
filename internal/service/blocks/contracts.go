package blocks

import (
	"context"
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	CreateDayBlock(ctx context.Context, b *domain.BlockedDay) (*domain.BlockedDay, error)
	CreateSlotBlock(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error)
	GetDayBlock(ctx context.Context, date time.Time) (*domain.BlockedDay, error)
	ListSlotBlocks(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
