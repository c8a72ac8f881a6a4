package block

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/pkg/dbmetrics"
	"github.com/m04kA/Clinic-QueueService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении unique constraint
const uniqueViolation = "23505"

// Repository репозиторий административных блокировок дней и слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateDayBlock блокирует целый день
// Повторная блокировка той же даты возвращает ErrDuplicateBlock
func (r *Repository) CreateDayBlock(ctx context.Context, b *domain.BlockedDay) (*domain.BlockedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_days").
		Columns("block_date", "reason", "created_by").
		Values(b.Date, b.Reason, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDayBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBlock
		}
		return nil, fmt.Errorf("%w: CreateDayBlock - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time

	return b, nil
}

// CreateSlotBlock блокирует конкретный слот на дату
// Повторная блокировка той же пары (дата, слот) возвращает ErrDuplicateBlock
func (r *Repository) CreateSlotBlock(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("block_date", "slot_label", "reason", "created_by").
		Values(b.Date, b.SlotLabel, b.Reason, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSlotBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBlock
		}
		return nil, fmt.Errorf("%w: CreateSlotBlock - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time

	return b, nil
}

// GetDayBlock возвращает блокировку дня, если она существует
func (r *Repository) GetDayBlock(ctx context.Context, date time.Time) (*domain.BlockedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "block_date", "reason", "created_by", "created_at").
		From("blocked_days").
		Where(squirrel.Eq{"block_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBlock - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.BlockedDay
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Date,
		&b.Reason,
		&b.CreatedBy,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBlock - scan block: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time

	return &b, nil
}

// ListSlotBlocks возвращает блокировки слотов на дату
func (r *Repository) ListSlotBlocks(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "block_date", "slot_label", "reason", "created_by", "created_at").
		From("blocked_slots").
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("slot_label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedSlot, 0)

	for rows.Next() {
		var b domain.BlockedSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.Date,
			&b.SlotLabel,
			&b.Reason,
			&b.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSlotBlocks - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time

		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlotBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// IsSlotBlocked проверяет блокировку конкретного слота на дату
func (r *Repository) IsSlotBlocked(ctx context.Context, date time.Time, slotLabel string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("blocked_slots").
		Where(squirrel.Eq{"block_date": date, "slot_label": slotLabel}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsSlotBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsSlotBlocked - scan result: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// isUniqueViolation проверяет, что ошибка вызвана нарушением unique constraint
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
