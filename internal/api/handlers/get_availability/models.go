package get_availability

import (
	"github.com/m04kA/Clinic-QueueService/internal/domain"
	getAvailability "github.com/m04kA/Clinic-QueueService/internal/usecase/get_availability"
)

// SlotAvailabilityResponse доступность одного слота
type SlotAvailabilityResponse struct {
	Label     string `json:"label"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
	Status    string `json:"status"` // available | full | blocked
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date      string                     `json:"date"`
	Available bool                       `json:"available"`
	Reason    string                     `json:"reason,omitempty"`
	Slots     []SlotAvailabilityResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Available: resp.Available,
		Reason:    resp.Reason,
		Slots:     make([]SlotAvailabilityResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotAvailabilityResponse{
			Label:     s.Label,
			Capacity:  s.Capacity,
			Booked:    s.Booked,
			Available: s.Available,
			Status:    s.Status,
		})
	}

	return out
}
