package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	blockRepo "github.com/m04kA/Clinic-QueueService/internal/infra/storage/block"
	"github.com/m04kA/Clinic-QueueService/internal/service/blocks/models"
)

// Service сервис административных блокировок дней и слотов
// Блокировки влияют только на новые записи: существующие записи
// заблокированного дня остаются в очереди
type Service struct {
	blockRepo BlockRepository
	catalog   *domain.SlotCatalog
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockRepo BlockRepository, catalog *domain.SlotCatalog, logger Logger) *Service {
	return &Service{
		blockRepo: blockRepo,
		catalog:   catalog,
		logger:    logger,
	}
}

// BlockDay блокирует целый день для новых записей
func (s *Service) BlockDay(ctx context.Context, req *models.BlockDayRequest) (*models.DayBlockResponse, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	created, err := s.blockRepo.CreateDayBlock(ctx, &domain.BlockedDay{
		Date:      req.Date,
		Reason:    strings.TrimSpace(req.Reason),
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, blockRepo.ErrDuplicateBlock) {
			s.logger.Warn("BlockDay: date=%s is already blocked", req.Date.Format(domain.DateFormat))
			return nil, ErrDuplicateBlock
		}
		s.logger.Error("BlockDay: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: BlockDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockDay: date=%s blocked by %s, reason=%q",
		created.Date.Format(domain.DateFormat), created.CreatedBy, created.Reason)
	return models.FromDomainDayBlock(created), nil
}

// BlockSlot блокирует конкретный слот на дату
// Метка слота проверяется по каталогу
func (s *Service) BlockSlot(ctx context.Context, req *models.BlockSlotRequest) (*models.SlotBlockResponse, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	if _, err := s.catalog.Resolve(req.SlotLabel); err != nil {
		s.logger.Warn("BlockSlot: unknown slot label %q", req.SlotLabel)
		return nil, fmt.Errorf("%w: %q", ErrSlotNotFound, req.SlotLabel)
	}

	created, err := s.blockRepo.CreateSlotBlock(ctx, &domain.BlockedSlot{
		Date:      req.Date,
		SlotLabel: req.SlotLabel,
		Reason:    strings.TrimSpace(req.Reason),
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, blockRepo.ErrDuplicateBlock) {
			s.logger.Warn("BlockSlot: date=%s slot=%q is already blocked",
				req.Date.Format(domain.DateFormat), req.SlotLabel)
			return nil, ErrDuplicateBlock
		}
		s.logger.Error("BlockSlot: repository error for date=%s slot=%q: %v",
			req.Date.Format(domain.DateFormat), req.SlotLabel, err)
		return nil, fmt.Errorf("%w: BlockSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockSlot: date=%s slot=%q blocked by %s, reason=%q",
		created.Date.Format(domain.DateFormat), created.SlotLabel, created.CreatedBy, created.Reason)
	return models.FromDomainSlotBlock(created), nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func validateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}
