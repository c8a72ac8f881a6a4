package block_slot

import (
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/internal/service/blocks/models"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Date      string `json:"date"` // "2025-10-15"
	SlotLabel string `json:"slotLabel"`
	Reason    string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockSlotRequest) ToServiceRequest(staffID string) (*models.BlockSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.BlockSlotRequest{
		Date:      date,
		SlotLabel: r.SlotLabel,
		Reason:    r.Reason,
		CreatedBy: staffID,
	}, nil
}
