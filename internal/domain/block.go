package domain

import "time"

// BlockedDay административная блокировка целого дня
// Уникальна по дате
type BlockedDay struct {
	ID        int64
	Date      time.Time
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// BlockedSlot административная блокировка конкретного слота на дату
// Уникальна по паре (дата, метка слота)
// Не затрагивает уже созданные записи в этом слоте
type BlockedSlot struct {
	ID        int64
	Date      time.Time
	SlotLabel string
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
