package admit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/internal/infra/storage/block"
	"github.com/m04kA/Clinic-QueueService/pkg/ptr"
	"github.com/m04kA/Clinic-QueueService/pkg/types"
)

// UseCase создание записи в слот дневной очереди
type UseCase struct {
	bookingRepo     BookingRepository
	blockRepo       BlockRepository
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	catalog         *domain.SlotCatalog
	closedWeekday   *time.Weekday
	leadTimeMinutes int
	logger          Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	catalog *domain.SlotCatalog,
	closedWeekday *time.Weekday,
	leadTimeMinutes int,
	logger Logger,
) *UseCase {
	if leadTimeMinutes <= 0 {
		leadTimeMinutes = domain.DefaultLeadTimeMinutes
	}
	return &UseCase{
		bookingRepo:     bookingRepo,
		blockRepo:       blockRepo,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		catalog:         catalog,
		closedWeekday:   closedWeekday,
		leadTimeMinutes: leadTimeMinutes,
		logger:          logger,
	}
}

// Execute создает запись в слот
//
// Проверки до транзакции: валидация полей, разрешение слота по каталогу,
// минимальное время до приема, блокировки дня и слота. Экстренные записи
// пропускают все проверки, кроме валидации полей и разрешения слота.
//
// Внутри serializable-транзакции: проверка дубликата по телефону, проверка
// вместимости по заблокированному снимку слота, назначение admission sequence.
// Вместимость не может быть превышена двумя конкурентными запросами: оба
// читают один и тот же заблокированный снимок, и второй видит запись первого.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Execute: invalid request: %v", err)
		return nil, err
	}

	// 2. Разрешение слота по каталогу - неизвестная метка отклоняется сразу
	slot, err := uc.catalog.Resolve(req.SlotLabel)
	if err != nil {
		uc.logger.Warn("Execute: unknown slot label %q", req.SlotLabel)
		return nil, fmt.Errorf("%w: %q", ErrSlotNotFound, req.SlotLabel)
	}

	// 3. Правила допуска - экстренные записи их пропускают
	if !req.IsEmergency {
		if err := uc.checkAdmissionRules(ctx, req, slot); err != nil {
			return nil, err
		}
	}

	// 4. Создание записи в serializable-транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Дубликат: не более одной активной записи на телефон в день
		if !req.IsEmergency {
			exists, err := uc.bookingRepo.HasActiveOnDate(txCtx, req.Phone, req.Date)
			if err != nil {
				return fmt.Errorf("check duplicate: %w", err)
			}
			if exists {
				return ErrDuplicateBooking
			}
		}

		// 4.2. Снимок слота с блокировкой строк - сериализует конкурентный допуск
		peers, err := uc.bookingRepo.GetByDay(txCtx, domain.DayBookingsFilter{
			Date:      req.Date,
			SlotLabel: ptr.Ptr(req.SlotLabel),
		})
		if err != nil {
			return fmt.Errorf("load slot snapshot: %w", err)
		}

		// 4.3. Вместимость считается по активным неэкстренным записям
		if !req.IsEmergency {
			occupied := 0
			for _, peer := range peers {
				if peer.CountsTowardCapacity() {
					occupied++
				}
			}
			if occupied >= slot.Capacity {
				return ErrSlotFull
			}
		}

		// 4.4. Sequence = MAX + 1 по всем записям слота, включая отмененные,
		// поэтому номера никогда не переиспользуются
		maxSeq, err := uc.bookingRepo.MaxSequence(txCtx, req.Date, req.SlotLabel)
		if err != nil {
			return fmt.Errorf("resolve admission sequence: %w", err)
		}

		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			PatientID:         req.PatientID,
			FullName:          req.FullName,
			Phone:             req.Phone,
			Date:              req.Date,
			SlotLabel:         req.SlotLabel,
			AdmissionSequence: maxSeq + 1,
			Status:            domain.StatusUpcoming,
			IsEmergency:       req.IsEmergency,
		})
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		switch {
		case isAdmissionError(err):
			uc.logger.Info("Execute: booking rejected: phone=%s, date=%s, slot=%s: %v",
				req.Phone, req.Date.Format(domain.DateFormat), req.SlotLabel, err)
			return nil, err
		default:
			uc.logger.Error("Execute: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 5. Позиция и расчетное время для ответа
	position, estimated := uc.estimate(ctx, created, slot)

	uc.logger.Info("Execute: booking created: id=%d, date=%s, slot=%s, sequence=%d, emergency=%t",
		created.ID, created.Date.Format(domain.DateFormat), created.SlotLabel, created.AdmissionSequence, created.IsEmergency)

	// 6. Уведомление о подтверждении после фиксации транзакции
	// Экстренные записи создаются персоналом на месте - подтверждение не отправляется
	if !req.IsEmergency {
		uc.sendConfirmation(ctx, created, estimated)
	}

	return &Response{
		ID:                created.ID,
		PatientID:         created.PatientID,
		FullName:          created.FullName,
		Phone:             created.Phone,
		Date:              created.Date,
		SlotLabel:         created.SlotLabel,
		AdmissionSequence: created.AdmissionSequence,
		Position:          position,
		EstimatedTime:     estimated,
		Status:            string(created.Status),
		IsEmergency:       created.IsEmergency,
		CreatedAt:         created.CreatedAt,
	}, nil
}

// checkAdmissionRules проверяет правила допуска для обычных записей
func (uc *UseCase) checkAdmissionRules(ctx context.Context, req Request, slot *domain.SlotDefinition) error {
	// Еженедельный выходной клиники
	if uc.closedWeekday != nil && req.Date.Weekday() == *uc.closedWeekday {
		return ErrClinicClosed
	}

	// Минимальное время до начала слота
	now := uc.timeProvider.Now()
	slotStart := time.Date(
		req.Date.Year(), req.Date.Month(), req.Date.Day(),
		slot.StartMinute/60, slot.StartMinute%60, 0, 0, now.Location(),
	)
	if now.After(slotStart.Add(-time.Duration(uc.leadTimeMinutes) * time.Minute)) {
		return ErrTooLateToBook
	}

	// Административные блокировки дня и слота
	dayBlock, err := uc.blockRepo.GetDayBlock(ctx, req.Date)
	if err != nil && !isBlockNotFound(err) {
		uc.logger.Error("checkAdmissionRules: failed to check day block: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if dayBlock != nil {
		return ErrDayBlocked
	}

	blocked, err := uc.blockRepo.IsSlotBlocked(ctx, req.Date, req.SlotLabel)
	if err != nil {
		uc.logger.Error("checkAdmissionRules: failed to check slot block: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if blocked {
		return ErrSlotBlocked
	}

	return nil
}

// estimate вычисляет позицию и расчетное время приема созданной записи
func (uc *UseCase) estimate(ctx context.Context, b *domain.Booking, slot *domain.SlotDefinition) (int, string) {
	peers, err := uc.bookingRepo.GetByDay(ctx, domain.DayBookingsFilter{
		Date:      b.Date,
		SlotLabel: ptr.Ptr(b.SlotLabel),
	})
	if err != nil {
		uc.logger.Warn("estimate: failed to load slot bookings: %v", err)
		peers = []*domain.Booking{b}
	}

	position := domain.QueuePosition(b, peers)

	minute, err := domain.EstimateMinute(slot, b.SlotLabel, position, b.DelayMinutes)
	if err != nil {
		uc.logger.Warn("estimate: failed to compute estimated time: %v", err)
		return position, ""
	}

	return position, types.FormatClock12(minute)
}

// sendConfirmation отправляет подтверждение записи
// Доставка best-effort: ошибка логируется и не влияет на результат
func (uc *UseCase) sendConfirmation(ctx context.Context, b *domain.Booking, estimated string) {
	err := uc.notifyClient.Notify(ctx, domain.NotificationConfirmation, b.Phone, map[string]string{
		"name":           b.FullName,
		"date":           b.Date.Format(domain.DateFormat),
		"slot":           b.SlotLabel,
		"estimated_time": estimated,
	})
	if err != nil {
		uc.logger.Warn("sendConfirmation: failed to notify phone=%s: %v", b.Phone, err)
	}
}

// isAdmissionError отличает отказ по правилам допуска от внутренней ошибки
func isAdmissionError(err error) bool {
	return errors.Is(err, ErrDuplicateBooking) || errors.Is(err, ErrSlotFull)
}

func isBlockNotFound(err error) bool {
	return errors.Is(err, block.ErrBlockNotFound)
}
