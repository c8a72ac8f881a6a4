package block_day

import (
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/internal/service/blocks/models"
)

// BlockDayRequest HTTP request model
type BlockDayRequest struct {
	Date   string `json:"date"` // "2025-10-15"
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockDayRequest) ToServiceRequest(staffID string) (*models.BlockDayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.BlockDayRequest{
		Date:      date,
		Reason:    r.Reason,
		CreatedBy: staffID,
	}, nil
}
