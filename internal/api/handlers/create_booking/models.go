package create_booking

import (
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	admitBooking "github.com/m04kA/Clinic-QueueService/internal/usecase/admit_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date        string `json:"date"` // "2025-10-15"
	SlotLabel   string `json:"slotLabel"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	PatientID   *int64 `json:"patientId,omitempty"`
	IsEmergency bool   `json:"isEmergency,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64  `json:"id"`
	PatientID         *int64 `json:"patientId,omitempty"`
	FullName          string `json:"fullName"`
	Phone             string `json:"phone"`
	Date              string `json:"date"`
	SlotLabel         string `json:"slotLabel"`
	AdmissionSequence int    `json:"admissionSequence"`
	Position          int    `json:"position"`
	EstimatedTime     string `json:"estimatedTime,omitempty"` // "11:00 AM"
	Status            string `json:"status"`
	IsEmergency       bool   `json:"isEmergency"`
	CreatedAt         string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(isEmergency bool) (admitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return admitBooking.Request{}, err
	}

	return admitBooking.Request{
		Date:        date,
		SlotLabel:   r.SlotLabel,
		FullName:    r.FullName,
		Phone:       r.Phone,
		PatientID:   r.PatientID,
		IsEmergency: isEmergency,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *admitBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		PatientID:         resp.PatientID,
		FullName:          resp.FullName,
		Phone:             resp.Phone,
		Date:              resp.Date.Format(domain.DateFormat),
		SlotLabel:         resp.SlotLabel,
		AdmissionSequence: resp.AdmissionSequence,
		Position:          resp.Position,
		EstimatedTime:     resp.EstimatedTime,
		Status:            resp.Status,
		IsEmergency:       resp.IsEmergency,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
