package domain

// Default configuration values
const (
	// DefaultLeadTimeMinutes минимальное время до начала слота для обычной записи
	DefaultLeadTimeMinutes = 120

	// FallbackGapMinutes шаг очереди для слота, отсутствующего в каталоге
	FallbackGapMinutes = 15
)

// Reminder window: напоминание отправляется записям, расчетное время которых
// наступает через 55-65 минут
const (
	ReminderWindowMinMinutes = 55
	ReminderWindowMaxMinutes = 65
)

// Business validation constants
const (
	MaxFullNameLength = 120
	MaxPhoneLength    = 20
	MaxReasonLength   = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов записей, занимающих место в очереди
// Используется для фильтрации при подсчете занятости слотов
var ActiveStatuses = []BookingStatus{
	StatusUpcoming,
	StatusSeen,
}
