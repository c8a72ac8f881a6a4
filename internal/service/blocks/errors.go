package blocks

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.blocks: invalid input data")

	// ErrSlotNotFound возвращается, когда метка слота отсутствует в каталоге
	ErrSlotNotFound = errors.New("service.blocks: slot label not found in catalog")

	// ErrDuplicateBlock возвращается при повторной блокировке дня или слота
	ErrDuplicateBlock = errors.New("service.blocks: day or slot is already blocked")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.blocks: internal error")
)
