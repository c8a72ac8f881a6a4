package admit_booking

import (
	"context"
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByDay(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
	MaxSequence(ctx context.Context, date time.Time, slotLabel string) (int, error)
	HasActiveOnDate(ctx context.Context, phone string, date time.Time) (bool, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetDayBlock(ctx context.Context, date time.Time) (*domain.BlockedDay, error)
	IsSlotBlocked(ctx context.Context, date time.Time, slotLabel string) (bool, error)
}

// NotifyServiceClient интерфейс клиента шлюза уведомлений
type NotifyServiceClient interface {
	Notify(ctx context.Context, kind domain.NotificationKind, phone string, payload map[string]string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
