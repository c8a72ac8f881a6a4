package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusSeen      BookingStatus = "seen"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a patient or guest appointment in the daily queue
type Booking struct {
	ID        int64
	PatientID *int64 // nil для гостевых записей
	FullName  string
	Phone     string

	Date      time.Time // календарный день приема (без времени)
	SlotLabel string    // метка слота, ключ соединения с каталогом

	// AdmissionSequence монотонный счетчик в рамках (date, slot_label).
	// Назначается при создании и никогда не переназначается - единственный
	// ключ упорядочивания очереди.
	AdmissionSequence int

	Status       BookingStatus
	IsEmergency  bool
	DelayMinutes int // накопленная задержка, добавляется к расчетному времени
	ReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies a place in the queue
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusSeen || b.Status == StatusCancelled
}

// CountsTowardCapacity returns true if the booking consumes slot capacity
// Экстренные записи никогда не занимают место в слоте
func (b *Booking) CountsTowardCapacity() bool {
	return b.IsActive() && !b.IsEmergency
}

// DayBookingsFilter фильтр для получения записей на день
type DayBookingsFilter struct {
	Date             time.Time // Обязательный параметр
	SlotLabel        *string   // Фильтр по слоту (опционально)
	IncludeCancelled bool      // Включать ли отмененные записи
}
