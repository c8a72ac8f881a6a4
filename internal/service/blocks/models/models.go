package models

import (
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
)

// Request модели

// BlockDayRequest запрос на блокировку целого дня
type BlockDayRequest struct {
	Date      time.Time
	Reason    string
	CreatedBy string // идентификатор сотрудника
}

// BlockSlotRequest запрос на блокировку конкретного слота
type BlockSlotRequest struct {
	Date      time.Time
	SlotLabel string
	Reason    string
	CreatedBy string
}

// Response модели

// DayBlockResponse созданная блокировка дня
type DayBlockResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // "2025-10-15"
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlotBlockResponse созданная блокировка слота
type SlotBlockResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	SlotLabel string    `json:"slotLabel"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainDayBlock конвертирует domain модель в DTO
func FromDomainDayBlock(b *domain.BlockedDay) *DayBlockResponse {
	if b == nil {
		return nil
	}
	return &DayBlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainSlotBlock конвертирует domain модель в DTO
func FromDomainSlotBlock(b *domain.BlockedSlot) *SlotBlockResponse {
	if b == nil {
		return nil
	}
	return &SlotBlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		SlotLabel: b.SlotLabel,
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
	}
}
