package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/internal/infra/storage/block"
)

// UseCase сводка доступности слотов на день
type UseCase struct {
	bookingRepo   BookingRepository
	blockRepo     BlockRepository
	catalog       *domain.SlotCatalog
	closedWeekday *time.Weekday
	logger        Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	catalog *domain.SlotCatalog,
	closedWeekday *time.Weekday,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		blockRepo:     blockRepo,
		catalog:       catalog,
		closedWeekday: closedWeekday,
		logger:        logger,
	}
}

// Execute возвращает сводку доступности на дату
//
// Порядок проверок: еженедельный выходной, затем блокировка дня, затем
// сводка по слотам в хронологическом порядке каталога. Занятость
// считается только по активным неэкстренным записям - экстренные записи
// никогда не уменьшают отображаемую доступность
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Execute: invalid request: %v", err)
		return nil, err
	}

	// 2. Еженедельный выходной клиники
	if uc.closedWeekday != nil && req.Date.Weekday() == *uc.closedWeekday {
		return &Response{
			Date:      req.Date,
			Available: false,
			Reason:    "closed",
		}, nil
	}

	// 3. Административная блокировка дня
	dayBlock, err := uc.blockRepo.GetDayBlock(ctx, req.Date)
	if err != nil && !errors.Is(err, block.ErrBlockNotFound) {
		uc.logger.Error("Execute: failed to check day block: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if dayBlock != nil {
		return &Response{
			Date:      req.Date,
			Available: false,
			Reason:    dayBlock.Reason,
		}, nil
	}

	// 4. Записи дня и блокировки слотов
	bookings, err := uc.bookingRepo.GetByDay(ctx, domain.DayBookingsFilter{Date: req.Date})
	if err != nil {
		uc.logger.Error("Execute: failed to load day bookings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	slotBlocks, err := uc.blockRepo.ListSlotBlocks(ctx, req.Date)
	if err != nil {
		uc.logger.Error("Execute: failed to load slot blocks: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	blockedLabels := make(map[string]struct{}, len(slotBlocks))
	for _, sb := range slotBlocks {
		blockedLabels[sb.SlotLabel] = struct{}{}
	}

	occupied := make(map[string]int)
	for _, b := range bookings {
		if b.CountsTowardCapacity() {
			occupied[b.SlotLabel]++
		}
	}

	// 5. Сводка по каждому слоту каталога
	slots := make([]SlotAvailability, 0, len(uc.catalog.All()))
	for _, def := range uc.catalog.All() {
		booked := occupied[def.Label]
		available := def.Capacity - booked
		if available < 0 {
			available = 0
		}

		status := SlotStatusAvailable
		switch {
		case hasLabel(blockedLabels, def.Label):
			status = SlotStatusBlocked
			available = 0
		case available == 0:
			status = SlotStatusFull
		}

		slots = append(slots, SlotAvailability{
			Label:     def.Label,
			Capacity:  def.Capacity,
			Booked:    booked,
			Available: available,
			Status:    status,
		})
	}

	return &Response{
		Date:      req.Date,
		Available: true,
		Slots:     slots,
	}, nil
}

func hasLabel(set map[string]struct{}, label string) bool {
	_, ok := set[label]
	return ok
}
