package domain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrSlotNotFound возвращается, когда метка слота отсутствует в каталоге
	ErrSlotNotFound = errors.New("slot label is not present in the catalog")

	// ErrInvalidSlotDefinition возвращается при некорректном определении слота
	ErrInvalidSlotDefinition = errors.New("invalid slot definition")
)

// SlotDefinition describes one fixed daily time window
// Definitions are immutable and configured once at process start
type SlotDefinition struct {
	Label           string // например, "10:30 AM - 11:30 AM"
	StartMinute     int    // минута от начала суток
	EndMinute       int
	Capacity        int
	DurationMinutes int
}

// GapMinutes returns the interval between consecutive queue positions
func (s *SlotDefinition) GapMinutes() int {
	if s.Capacity <= 0 {
		return FallbackGapMinutes
	}
	return s.DurationMinutes / s.Capacity
}

// SlotCatalog упорядоченный каталог дневных слотов
// Единственный источник конфигурации слотов, передается явно во все компоненты
type SlotCatalog struct {
	slots   []SlotDefinition
	byLabel map[string]*SlotDefinition
}

// NewSlotCatalog создает каталог из определений слотов
// Слоты валидируются и сортируются хронологически по времени начала
func NewSlotCatalog(defs []SlotDefinition) (*SlotCatalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: catalog must contain at least one slot", ErrInvalidSlotDefinition)
	}

	slots := make([]SlotDefinition, len(defs))
	copy(slots, defs)

	for i := range slots {
		s := &slots[i]

		if s.Label == "" {
			return nil, fmt.Errorf("%w: empty label", ErrInvalidSlotDefinition)
		}
		if s.StartMinute < 0 || s.StartMinute >= s.EndMinute {
			return nil, fmt.Errorf("%w: %s: start minute must be before end minute", ErrInvalidSlotDefinition, s.Label)
		}
		if s.Capacity < 1 {
			return nil, fmt.Errorf("%w: %s: capacity must be at least 1", ErrInvalidSlotDefinition, s.Label)
		}
		if s.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: %s: duration must be positive", ErrInvalidSlotDefinition, s.Label)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartMinute < slots[j].StartMinute
	})

	byLabel := make(map[string]*SlotDefinition, len(slots))
	for i := range slots {
		if _, exists := byLabel[slots[i].Label]; exists {
			return nil, fmt.Errorf("%w: duplicate label %s", ErrInvalidSlotDefinition, slots[i].Label)
		}
		byLabel[slots[i].Label] = &slots[i]
	}

	return &SlotCatalog{slots: slots, byLabel: byLabel}, nil
}

// Resolve находит определение слота по метке
func (c *SlotCatalog) Resolve(label string) (*SlotDefinition, error) {
	slot, ok := c.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSlotNotFound, label)
	}
	return slot, nil
}

// All возвращает все слоты в хронологическом порядке
func (c *SlotCatalog) All() []SlotDefinition {
	return c.slots
}
