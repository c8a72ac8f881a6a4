package queue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	bookingRepo "github.com/m04kA/Clinic-QueueService/internal/infra/storage/booking"
	"github.com/m04kA/Clinic-QueueService/internal/service/queue/models"
	"github.com/m04kA/Clinic-QueueService/pkg/ptr"
	"github.com/m04kA/Clinic-QueueService/pkg/types"
)

// Service сервис дневной очереди: позиции, расчетное время, действия персонала
type Service struct {
	bookingRepo  BookingRepository
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	catalog      *domain.SlotCatalog
	logger       Logger
}

// NewService создает новый экземпляр сервиса очереди
func NewService(
	bookingRepo BookingRepository,
	notifyClient NotifyServiceClient,
	catalog *domain.SlotCatalog,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		catalog:      catalog,
		logger:       logger,
	}
}

// GetByID получает запись по ID с позицией и расчетным временем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.fetchBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, booking), nil
}

// GetByPhone получает историю записей по номеру телефона
// Позиция и расчетное время заполняются только у предстоящих записей
func (s *Service) GetByPhone(ctx context.Context, phone string) (*models.BookingListResponse, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("GetByPhone: repository error for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: GetByPhone - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *s.toResponse(ctx, b))
	}

	s.logger.Info("GetByPhone: fetched %d bookings for phone=%s", len(bookings), phone)
	return resp, nil
}

// DaySchedule возвращает очередь дня: активные записи в порядке слотов
// каталога, внутри слота - по admission sequence. Экстренные записи
// отображаются наравне с обычными
func (s *Service) DaySchedule(ctx context.Context, date time.Time) (*models.DayScheduleResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByDay(ctx, domain.DayBookingsFilter{Date: date})
	if err != nil {
		s.logger.Error("DaySchedule: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: DaySchedule - repository error: %v", ErrInternal, err)
	}

	// Порядок слотов задается каталогом, неизвестные метки уходят в конец
	slotOrder := make(map[string]int, len(s.catalog.All()))
	for i, def := range s.catalog.All() {
		slotOrder[def.Label] = i
	}

	sorted := make([]*domain.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oki := slotOrder[sorted[i].SlotLabel]
		oj, okj := slotOrder[sorted[j].SlotLabel]
		if !oki {
			oi = len(slotOrder)
		}
		if !okj {
			oj = len(slotOrder)
		}
		if oi != oj {
			return oi < oj
		}
		return sorted[i].AdmissionSequence < sorted[j].AdmissionSequence
	})

	peersBySlot := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		peersBySlot[b.SlotLabel] = append(peersBySlot[b.SlotLabel], b)
	}

	resp := &models.DayScheduleResponse{
		Date:     date.Format(domain.DateFormat),
		Bookings: make([]models.BookingResponse, 0, len(sorted)),
	}
	for _, b := range sorted {
		position, estimated := s.positionAndEstimate(b, peersBySlot[b.SlotLabel])
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(b, position, estimated))
	}

	s.logger.Info("DaySchedule: %d bookings for date=%s", len(sorted), date.Format(domain.DateFormat))
	return resp, nil
}

// MarkSeen помечает запись как принятую врачом
// После успешного перехода пациенту отправляется благодарственное сообщение
func (s *Service) MarkSeen(ctx context.Context, id int64) (*models.BookingResponse, error) {
	return s.transition(ctx, id, domain.StatusSeen)
}

// Cancel отменяет запись
// Последующие записи слота автоматически сдвигаются вверх: позиции
// выводятся из admission sequence при каждом чтении
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

// ApplyDelay добавляет задержку к записи и уведомляет пациента
// о переносе расчетного времени
func (s *Service) ApplyDelay(ctx context.Context, id int64, minutes int) (*models.DelayResponse, error) {
	if minutes <= 0 {
		s.logger.Warn("ApplyDelay: rejected non-positive delay=%d for booking id=%d", minutes, id)
		return nil, ErrInvalidDelay
	}

	booking, err := s.fetchBooking(ctx, "ApplyDelay", id)
	if err != nil {
		return nil, err
	}

	peers, err := s.slotPeers(ctx, booking)
	if err != nil {
		return nil, err
	}

	position := domain.QueuePosition(booking, peers)
	oldMinute, estErr := s.estimateMinute(booking, position)

	if err := s.bookingRepo.AddDelay(ctx, id, minutes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ApplyDelay: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ApplyDelay - repository error: %v", ErrInternal, err)
	}

	booking.DelayMinutes += minutes

	var oldTime, newTime string
	if estErr == nil {
		oldTime = types.FormatClock12(oldMinute)
		newTime = types.FormatClock12(oldMinute + minutes)
	}

	s.logger.Info("ApplyDelay: booking id=%d delayed by %d minutes, total delay=%d",
		id, minutes, booking.DelayMinutes)

	// Уведомление о переносе после сохранения, ошибка не влияет на результат
	s.notify(ctx, domain.NotificationReschedule, booking.Phone, map[string]string{
		"name":     booking.FullName,
		"date":     booking.Date.Format(domain.DateFormat),
		"slot":     booking.SlotLabel,
		"old_time": oldTime,
		"new_time": newTime,
	})

	return &models.DelayResponse{
		Booking: *models.FromDomainBooking(booking, ptr.Ptr(position), optionalTime(oldMinute+minutes, estErr)),
		OldTime: oldTime,
		NewTime: newTime,
	}, nil
}

// ScanReminders отправляет напоминания записям, расчетное время которых
// наступает примерно через час. Возвращает число отправленных напоминаний
func (s *Service) ScanReminders(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nowMinute := now.Hour()*60 + now.Minute()

	candidates, err := s.bookingRepo.ListUnreminded(ctx, today)
	if err != nil {
		s.logger.Error("ScanReminders: repository error: %v", err)
		return 0, fmt.Errorf("%w: ScanReminders - repository error: %v", ErrInternal, err)
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	dayBookings, err := s.bookingRepo.GetByDay(ctx, domain.DayBookingsFilter{Date: today})
	if err != nil {
		s.logger.Error("ScanReminders: failed to load day bookings: %v", err)
		return 0, fmt.Errorf("%w: ScanReminders - repository error: %v", ErrInternal, err)
	}

	peersBySlot := make(map[string][]*domain.Booking)
	for _, b := range dayBookings {
		peersBySlot[b.SlotLabel] = append(peersBySlot[b.SlotLabel], b)
	}

	sent := 0
	for _, b := range candidates {
		if b.Status != domain.StatusUpcoming {
			continue
		}

		position := domain.QueuePosition(b, peersBySlot[b.SlotLabel])
		minute, err := s.estimateMinute(b, position)
		if err != nil {
			s.logger.Warn("ScanReminders: cannot estimate time for booking id=%d: %v", b.ID, err)
			continue
		}

		ahead := minute - nowMinute
		if ahead < domain.ReminderWindowMinMinutes || ahead > domain.ReminderWindowMaxMinutes {
			continue
		}

		err = s.notifyClient.Notify(ctx, domain.NotificationReminder, b.Phone, map[string]string{
			"name":           b.FullName,
			"date":           b.Date.Format(domain.DateFormat),
			"slot":           b.SlotLabel,
			"estimated_time": types.FormatClock12(minute),
		})
		if err != nil {
			s.logger.Warn("ScanReminders: failed to notify booking id=%d: %v", b.ID, err)
			continue
		}

		if err := s.bookingRepo.MarkReminderSent(ctx, b.ID); err != nil {
			s.logger.Error("ScanReminders: failed to mark reminder sent for booking id=%d: %v", b.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.logger.Info("ScanReminders: sent %d reminders", sent)
	}
	return sent, nil
}

// Вспомогательные методы

// transition переводит запись в новый статус по таблице допустимых переходов
func (s *Service) transition(ctx context.Context, id int64, to domain.BookingStatus) (*models.BookingResponse, error) {
	booking, err := s.fetchBooking(ctx, "transition", id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, to) {
		s.logger.Warn("transition: booking id=%d cannot move %s -> %s", id, booking.Status, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, to); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("transition: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	booking.Status = to
	s.logger.Info("transition: booking id=%d moved to status=%s", id, to)

	switch to {
	case domain.StatusSeen:
		s.notify(ctx, domain.NotificationThankYou, booking.Phone, map[string]string{
			"name": booking.FullName,
		})
	case domain.StatusCancelled:
		// Экстренные записи создаются персоналом, пациент не ждет подтверждения
		if !booking.IsEmergency {
			s.notify(ctx, domain.NotificationCancellation, booking.Phone, map[string]string{
				"name": booking.FullName,
				"date": booking.Date.Format(domain.DateFormat),
				"slot": booking.SlotLabel,
			})
		}
	}

	return models.FromDomainBooking(booking, nil, nil), nil
}

func (s *Service) fetchBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) slotPeers(ctx context.Context, b *domain.Booking) ([]*domain.Booking, error) {
	peers, err := s.bookingRepo.GetByDay(ctx, domain.DayBookingsFilter{
		Date:      b.Date,
		SlotLabel: ptr.Ptr(b.SlotLabel),
	})
	if err != nil {
		s.logger.Error("slotPeers: repository error for booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: slotPeers - repository error: %v", ErrInternal, err)
	}
	return peers, nil
}

// estimateMinute вычисляет расчетную минуту приема с учетом задержки
// Слот, отсутствующий в каталоге, обслуживается по запасному пути:
// начало из метки, интервал по умолчанию
func (s *Service) estimateMinute(b *domain.Booking, position int) (int, error) {
	slot, err := s.catalog.Resolve(b.SlotLabel)
	if err != nil {
		slot = nil
	}
	return domain.EstimateMinute(slot, b.SlotLabel, position, b.DelayMinutes)
}

// toResponse строит DTO с позицией и расчетным временем для предстоящей записи
func (s *Service) toResponse(ctx context.Context, b *domain.Booking) *models.BookingResponse {
	if b.Status != domain.StatusUpcoming {
		return models.FromDomainBooking(b, nil, nil)
	}

	peers, err := s.slotPeers(ctx, b)
	if err != nil {
		return models.FromDomainBooking(b, nil, nil)
	}

	position := domain.QueuePosition(b, peers)
	minute, err := s.estimateMinute(b, position)
	if err != nil {
		s.logger.Warn("toResponse: cannot estimate time for booking id=%d: %v", b.ID, err)
		return models.FromDomainBooking(b, ptr.Ptr(position), nil)
	}

	return models.FromDomainBooking(b, ptr.Ptr(position), ptr.Ptr(types.FormatClock12(minute)))
}

func (s *Service) positionAndEstimate(b *domain.Booking, peers []*domain.Booking) (*int, *string) {
	position := domain.QueuePosition(b, peers)
	minute, err := s.estimateMinute(b, position)
	if err != nil {
		s.logger.Warn("positionAndEstimate: cannot estimate time for booking id=%d: %v", b.ID, err)
		return ptr.Ptr(position), nil
	}
	return ptr.Ptr(position), ptr.Ptr(types.FormatClock12(minute))
}

func (s *Service) notify(ctx context.Context, kind domain.NotificationKind, phone string, payload map[string]string) {
	if err := s.notifyClient.Notify(ctx, kind, phone, payload); err != nil {
		s.logger.Warn("notify: failed to send %s to phone=%s: %v", kind, phone, err)
	}
}

func optionalTime(minute int, err error) *string {
	if err != nil {
		return nil
	}
	return ptr.Ptr(types.FormatClock12(minute))
}
