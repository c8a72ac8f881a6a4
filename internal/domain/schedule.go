package domain

import (
	"fmt"
	"strings"
	"time"
)

// QueuePosition вычисляет порядковый номер записи в очереди слота
// Позиция выводится из admission sequence, а не из сохраненного времени:
// отмена более ранней записи автоматически сдвигает все последующие
// без каскадного обновления - пересчитывается только при чтении
//
// peers - все записи того же (date, slotLabel), включая саму запись
func QueuePosition(b *Booking, peers []*Booking) int {
	position := 0
	for _, peer := range peers {
		if !peer.IsActive() {
			continue
		}
		if peer.AdmissionSequence < b.AdmissionSequence {
			position++
		}
	}
	return position
}

// EstimateMinute вычисляет расчетную минуту приема от начала суток
// gap = floor(duration / capacity); для слота, отсутствующего в каталоге,
// начало парсится из метки, gap = FallbackGapMinutes
// Результат может превышать 1440 - нормализация выполняется при форматировании
func EstimateMinute(slot *SlotDefinition, slotLabel string, position, delayMinutes int) (int, error) {
	var startMinute, gap int

	if slot != nil {
		startMinute = slot.StartMinute
		gap = slot.GapMinutes()
	} else {
		parsed, err := ParseSlotLabelStart(slotLabel)
		if err != nil {
			return 0, err
		}
		startMinute = parsed
		gap = FallbackGapMinutes
	}

	return startMinute + position*gap + delayMinutes, nil
}

// ParseSlotLabelStart извлекает минуту начала из метки вида "10:30 AM - 11:30 AM"
func ParseSlotLabelStart(label string) (int, error) {
	parts := strings.SplitN(label, " - ", 2)

	t, err := time.Parse("3:04 PM", strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse start time from label %q", ErrSlotNotFound, label)
	}

	return t.Hour()*60 + t.Minute(), nil
}
