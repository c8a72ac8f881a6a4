package admit_booking

import "time"

// Request модель запроса на запись в слот
type Request struct {
	Date        time.Time // Дата приема (без времени)
	SlotLabel   string    // Метка слота (например, "10:30 AM - 11:30 AM")
	FullName    string    // Имя пациента или гостя
	Phone       string    // Телефон для уведомлений, ключ дубликат-проверки
	PatientID   *int64    // ID пациента (nil для гостевых записей)
	IsEmergency bool      // Экстренная запись (только персонал)
}

// Response модель ответа с созданной записью
type Response struct {
	ID                int64
	PatientID         *int64
	FullName          string
	Phone             string
	Date              time.Time
	SlotLabel         string
	AdmissionSequence int
	Position          int    // Порядковый номер в очереди слота
	EstimatedTime     string // Расчетное время приема, 12-часовой формат
	Status            string
	IsEmergency       bool
	CreatedAt         time.Time
}
