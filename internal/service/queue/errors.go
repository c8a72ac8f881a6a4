package queue

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.queue: invalid input data")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("service.queue: booking not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("service.queue: invalid status transition")

	// ErrInvalidDelay возвращается, когда задержка не является положительной
	ErrInvalidDelay = errors.New("service.queue: delay must be a positive number of minutes")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.queue: internal error")
)
