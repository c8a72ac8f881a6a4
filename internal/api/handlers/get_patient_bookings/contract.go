package get_patient_bookings

import (
	"context"

	"github.com/m04kA/Clinic-QueueService/internal/service/queue/models"
)

type QueueService interface {
	GetByPhone(ctx context.Context, phone string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
