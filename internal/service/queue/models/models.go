package models

import (
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
)

// Request модели

// ApplyDelayRequest запрос на добавление задержки к записи
type ApplyDelayRequest struct {
	Minutes int `json:"minutes"`
}

// Response модели

// BookingResponse ответ с данными записи
// Position и EstimatedTime вычисляются при чтении и присутствуют
// только у предстоящих записей
type BookingResponse struct {
	ID                int64   `json:"id"`
	PatientID         *int64  `json:"patientId,omitempty"`
	FullName          string  `json:"fullName"`
	Phone             string  `json:"phone"`
	Date              string  `json:"date"` // "2025-10-15"
	SlotLabel         string  `json:"slotLabel"`
	AdmissionSequence int     `json:"admissionSequence"`
	Position          *int    `json:"position,omitempty"`
	EstimatedTime     *string `json:"estimatedTime,omitempty"` // "11:00 AM"
	Status            string  `json:"status"`
	IsEmergency       bool    `json:"isEmergency"`
	DelayMinutes      int     `json:"delayMinutes"`
	ReminderSent      bool    `json:"reminderSent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// DayScheduleResponse очередь дня в порядке слотов каталога
type DayScheduleResponse struct {
	Date     string            `json:"date"`
	Bookings []BookingResponse `json:"bookings"`
}

// DelayResponse результат добавления задержки
type DelayResponse struct {
	Booking BookingResponse `json:"booking"`
	OldTime string          `json:"oldTime"`
	NewTime string          `json:"newTime"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, position *int, estimatedTime *string) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		PatientID:         b.PatientID,
		FullName:          b.FullName,
		Phone:             b.Phone,
		Date:              b.Date.Format(domain.DateFormat),
		SlotLabel:         b.SlotLabel,
		AdmissionSequence: b.AdmissionSequence,
		Position:          position,
		EstimatedTime:     estimatedTime,
		Status:            string(b.Status),
		IsEmergency:       b.IsEmergency,
		DelayMinutes:      b.DelayMinutes,
		ReminderSent:      b.ReminderSent,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
