package admit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("admit_booking: invalid input data")

	// ErrSlotNotFound возвращается, когда метка слота отсутствует в каталоге
	// Неизвестная метка - жесткая ошибка, а не слот вместимостью 1
	ErrSlotNotFound = errors.New("admit_booking: slot label not found in catalog")

	// ErrTooLateToBook возвращается при нарушении минимального времени до приема
	ErrTooLateToBook = errors.New("admit_booking: appointments must be booked at least 2 hours in advance")

	// ErrClinicClosed возвращается, когда клиника закрыта в этот день недели
	ErrClinicClosed = errors.New("admit_booking: clinic is closed on this day")

	// ErrDayBlocked возвращается, когда день административно заблокирован
	ErrDayBlocked = errors.New("admit_booking: this day is not available for booking")

	// ErrSlotBlocked возвращается, когда слот административно заблокирован
	ErrSlotBlocked = errors.New("admit_booking: this time slot is not available for booking")

	// ErrDuplicateBooking возвращается, когда у телефона уже есть
	// неотмененная запись на эту дату
	ErrDuplicateBooking = errors.New("admit_booking: an active booking already exists for this date")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("admit_booking: this time slot is fully booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("admit_booking: internal error")
)
