package get_availability

import "time"

// Статусы слота в сводке доступности
const (
	SlotStatusAvailable = "available"
	SlotStatusFull      = "full"
	SlotStatusBlocked   = "blocked"
)

// Request модель запроса сводки доступности на день
type Request struct {
	Date time.Time
}

// SlotAvailability доступность одного слота
type SlotAvailability struct {
	Label     string
	Capacity  int
	Booked    int // активные неэкстренные записи
	Available int
	Status    string
}

// Response сводка доступности дня
// Если день недоступен (выходной или блокировка), слоты не возвращаются
type Response struct {
	Date      time.Time
	Available bool
	Reason    string // причина недоступности дня
	Slots     []SlotAvailability
}
